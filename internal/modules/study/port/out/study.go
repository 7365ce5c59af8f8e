package out

import (
	"context"

	"flipdeck/internal/modules/study/domain"
)

// DeckStore persists the shuffled order of the running session.
type DeckStore interface {
	SaveDeck(ctx context.Context, cards []domain.Card) error
	// LoadDeck fails with apperrors.ErrNoSavedDeck when nothing was saved.
	LoadDeck(ctx context.Context) ([]domain.Card, error)
}

type ResultsReporter interface {
	Report(ctx context.Context, result domain.Result) error
}
