package out

import (
	"context"

	deckdto "flipdeck/internal/modules/deck/dto"
	deckin "flipdeck/internal/modules/deck/port/in"
	"flipdeck/internal/modules/study/domain"
	studyout "flipdeck/internal/modules/study/port/out"
)

// DeckStoreAdapter keeps the session order in the deck module's snapshot.
type DeckStoreAdapter struct {
	deck deckin.Usecase
}

func NewDeckStoreAdapter(deck deckin.Usecase) studyout.DeckStore {
	return &DeckStoreAdapter{deck: deck}
}

func (a *DeckStoreAdapter) SaveDeck(ctx context.Context, cards []domain.Card) error {
	out := make([]deckdto.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, deckdto.Card{Front: c.Front, Back: c.Back})
	}
	return a.deck.SaveSnapshot(ctx, out)
}

func (a *DeckStoreAdapter) LoadDeck(ctx context.Context) ([]domain.Card, error) {
	saved, err := a.deck.Saved(ctx)
	if err != nil {
		return nil, err
	}
	cards := make([]domain.Card, 0, len(saved.Cards))
	for _, c := range saved.Cards {
		cards = append(cards, domain.Card{Front: c.Front, Back: c.Back})
	}
	return cards, nil
}
