package content

// Edition describes a translation edition served by the content API.
type Edition struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Translator string `json:"translator"`
	Language   string `json:"language"`
}

// ArabicEdition is the edition the Arabic text is requested in.
const ArabicEdition = "ar.alafasy"

// DefaultEdition is used when an unknown edition is requested.
const DefaultEdition = "en.sahih"

var editions = []Edition{
	{ID: "en.sahih", Name: "Sahih International", Translator: "Sahih International", Language: "en"},
	{ID: "en.arberry", Name: "Arberry", Translator: "A. J. Arberry", Language: "en"},
	{ID: "en.pickthall", Name: "Pickthall", Translator: "Marmaduke Pickthall", Language: "en"},
	{ID: "en.yusufali", Name: "Yusuf Ali", Translator: "Abdullah Yusuf Ali", Language: "en"},
	{ID: "ur.jalandhry", Name: "Jalandhry (Urdu)", Translator: "Fateh Muhammad Jalandhry", Language: "ur"},
}

// Editions returns the supported translation editions, default first.
func Editions() []Edition {
	out := make([]Edition, len(editions))
	copy(out, editions)
	return out
}

// LookupEdition returns the edition with id, falling back to the default.
func LookupEdition(id string) (Edition, bool) {
	for _, e := range editions {
		if e.ID == id {
			return e, true
		}
	}
	return editions[0], false
}
