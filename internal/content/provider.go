// Package content fetches verse text and translations for memorization items.
package content

import "context"

// Provider defines the interface for verse content lookups.
// This interface enables testability by allowing mock implementations.
type Provider interface {
	Verse(ctx context.Context, itemID, edition string) (Verse, error)
}

// Ensure Client implements the interface
var _ Provider = (*Client)(nil)

// Verse is the content of one item. Either part may be missing when its
// upstream request failed.
type Verse struct {
	ItemID      string       `json:"itemId"`
	Chapter     int          `json:"chapter"`
	Number      int          `json:"number"`
	Arabic      *ArabicText  `json:"arabic"`
	Translation *Translation `json:"translation"`
}

type ArabicText struct {
	Text           string `json:"text"`
	ChapterName    string `json:"chapterName"`
	ChapterEnglish string `json:"chapterEnglishName"`
	ChapterVerses  int    `json:"chapterVerses"`
	Juz            int    `json:"juz"`
	Page           int    `json:"page"`
	AbsoluteNumber int    `json:"absoluteNumber"`
}

type Translation struct {
	Text       string `json:"text"`
	Edition    string `json:"edition"`
	Name       string `json:"name"`
	Translator string `json:"translator"`
	Language   string `json:"language"`
}
