package service

import (
	"context"
	"fmt"
	"strings"

	"flipdeck/internal/modules/deck/domain"
	deckout "flipdeck/internal/modules/deck/port/out"
	apperrors "flipdeck/internal/platform/errors"
)

type DeckService struct {
	snapshots deckout.SnapshotStore
	parser    deckout.FormatParser
}

func NewDeckService(snapshots deckout.SnapshotStore, parser deckout.FormatParser) *DeckService {
	return &DeckService{snapshots: snapshots, parser: parser}
}

// Parse returns the valid cards in raw and how many parsed cards were
// dropped as incomplete.
func (s *DeckService) Parse(ctx context.Context, format, raw string) ([]domain.Card, int, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" || format == domain.FormatText {
		cards := domain.ParseText(raw)
		if len(cards) == 0 {
			return nil, 0, apperrors.ErrEmptyDeck
		}
		return cards, domain.CountLines(raw) - len(cards), nil
	}
	if s.parser == nil {
		return nil, 0, fmt.Errorf("%w: no importer for format %q", apperrors.ErrInvalidInput, format)
	}
	parsed, err := s.parser.Parse(ctx, format, raw)
	if err != nil {
		return nil, 0, err
	}
	cards := make([]domain.Card, 0, len(parsed))
	for _, c := range parsed {
		c = domain.Card{Front: strings.TrimSpace(c.Front), Back: strings.TrimSpace(c.Back)}
		if c.Valid() {
			cards = append(cards, c)
		}
	}
	if len(cards) == 0 {
		return nil, 0, apperrors.ErrEmptyDeck
	}
	return cards, len(parsed) - len(cards), nil
}

func (s *DeckService) Save(ctx context.Context, cards []domain.Card) error {
	if len(cards) == 0 {
		return apperrors.ErrEmptyDeck
	}
	return s.snapshots.Save(ctx, cards)
}

func (s *DeckService) Load(ctx context.Context) ([]domain.Card, error) {
	cards, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, apperrors.ErrNoSavedDeck
	}
	return cards, nil
}
