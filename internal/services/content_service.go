package services

import (
	"context"
	stderrors "errors"

	"github.com/vytor/ayahrecall/internal/content"
	"github.com/vytor/ayahrecall/internal/errors"
	"github.com/vytor/ayahrecall/internal/logger"
)

// ContentService handles verse content lookups
type ContentService interface {
	Verse(ctx context.Context, itemID, edition string) (content.Verse, error)
	Editions() []content.Edition
}

type contentService struct {
	provider       content.Provider
	defaultEdition string
}

// NewContentService creates a new ContentService. defaultEdition is used
// when a request names none.
func NewContentService(provider content.Provider, defaultEdition string) ContentService {
	if defaultEdition == "" {
		defaultEdition = content.DefaultEdition
	}
	return &contentService{provider: provider, defaultEdition: defaultEdition}
}

func (s *contentService) Verse(ctx context.Context, itemID, edition string) (content.Verse, error) {
	log := logger.FromContext(ctx).WithField("item_id", itemID)
	if edition == "" {
		edition = s.defaultEdition
	}
	if _, ok := content.LookupEdition(edition); !ok {
		return content.Verse{}, errors.NewValidationError("edition", "unknown edition "+edition)
	}

	v, err := s.provider.Verse(ctx, itemID, edition)
	if err != nil {
		if stderrors.Is(err, content.ErrInvalidItemID) {
			return content.Verse{}, errors.NewValidationError("itemId", "must be chapter:verse with chapter 1-114", err)
		}
		log.Error("failed to fetch verse: %v", err)
		return content.Verse{}, errors.NewUpstreamError("content provider", err)
	}
	return v, nil
}

func (s *contentService) Editions() []content.Edition {
	return content.Editions()
}
