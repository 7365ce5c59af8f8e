package out

import (
	"context"

	"flipdeck/internal/modules/deck/domain"
)

type SnapshotStore interface {
	Save(ctx context.Context, cards []domain.Card) error
	// Load fails with apperrors.ErrNoSavedDeck when nothing was saved yet.
	Load(ctx context.Context) ([]domain.Card, error)
}

// FormatParser turns raw input of a non-text format into cards.
type FormatParser interface {
	Parse(ctx context.Context, format, raw string) ([]domain.Card, error)
}
