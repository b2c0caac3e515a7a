package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vytor/ayahrecall/internal/logger"
	"golang.org/x/sync/errgroup"
)

const DefaultBaseURL = "https://api.alquran.cloud/v1"

// ErrUnavailable is returned when neither the text nor the translation
// could be fetched.
var ErrUnavailable = errors.New("content unavailable")

type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *logger.Logger
}

func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        logger.Default().WithPrefix("content"),
	}
}

type ayahResp struct {
	Code   int             `json:"code"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type ayahData struct {
	Number        int    `json:"number"`
	Text          string `json:"text"`
	NumberInSurah int    `json:"numberInSurah"`
	Juz           int    `json:"juz"`
	Page          int    `json:"page"`
	Surah         struct {
		Number        int    `json:"number"`
		Name          string `json:"name"`
		EnglishName   string `json:"englishName"`
		NumberOfAyahs int    `json:"numberOfAyahs"`
	} `json:"surah"`
}

// Verse fetches the Arabic text and the requested translation concurrently.
// A failure of one half is logged and leaves that half nil; an error is
// returned only when both fail.
func (c *Client) Verse(ctx context.Context, itemID, edition string) (Verse, error) {
	log := logger.FromContext(ctx).WithPrefix("content").WithField("item_id", itemID)

	chapter, number, err := ParseItemID(itemID)
	if err != nil {
		return Verse{}, err
	}
	ed, known := LookupEdition(edition)
	if !known && edition != "" {
		log.Warn("unknown edition %q, using %s", edition, ed.ID)
	}

	var (
		arabic, translated       *ayahData
		arabicErr, translatedErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		arabic, arabicErr = c.fetchAyah(ctx, itemID, ArabicEdition)
		return nil
	})
	g.Go(func() error {
		translated, translatedErr = c.fetchAyah(ctx, itemID, ed.ID)
		return nil
	})
	_ = g.Wait()

	v := Verse{ItemID: itemID, Chapter: chapter, Number: number}
	if arabicErr != nil {
		log.Warn("arabic text missing: %v", arabicErr)
	} else {
		v.Arabic = &ArabicText{
			Text:           arabic.Text,
			ChapterName:    arabic.Surah.Name,
			ChapterEnglish: arabic.Surah.EnglishName,
			ChapterVerses:  arabic.Surah.NumberOfAyahs,
			Juz:            arabic.Juz,
			Page:           arabic.Page,
			AbsoluteNumber: arabic.Number,
		}
	}
	if translatedErr != nil {
		log.Warn("translation missing: %v", translatedErr)
	} else {
		v.Translation = &Translation{
			Text:       translated.Text,
			Edition:    ed.ID,
			Name:       ed.Name,
			Translator: ed.Translator,
			Language:   ed.Language,
		}
	}

	if v.Arabic == nil && v.Translation == nil {
		log.Error("failed to load verse: arabic=%v, translation=%v", arabicErr, translatedErr)
		return Verse{}, fmt.Errorf("%w: %s: %v", ErrUnavailable, itemID, errors.Join(arabicErr, translatedErr))
	}
	log.Debug("verse loaded: arabic=%t, translation=%t", v.Arabic != nil, v.Translation != nil)
	return v, nil
}

func (c *Client) fetchAyah(ctx context.Context, itemID, edition string) (*ayahData, error) {
	log := logger.FromContext(ctx).WithPrefix("content").WithField("edition", edition)
	url := fmt.Sprintf("%s/ayah/%s/%s", c.baseURL, itemID, edition)

	log.Debug("fetching ayah from: %s", url)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("ayah response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("ayah status %d: %s", resp.StatusCode, string(body))
	}

	var out ayahResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode ayah response: %w", err)
	}
	// The API reports errors in-band with a string in data.
	var data ayahData
	if err := json.Unmarshal(out.Data, &data); err != nil || data.Text == "" {
		return nil, fmt.Errorf("ayah %s/%s has no text (status %q)", itemID, edition, out.Status)
	}
	return &data, nil
}
