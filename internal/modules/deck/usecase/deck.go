package usecase

import (
	"context"

	"flipdeck/internal/modules/deck/domain"
	"flipdeck/internal/modules/deck/dto"
	deckin "flipdeck/internal/modules/deck/port/in"
	"flipdeck/internal/modules/deck/service"
)

type Interactor struct {
	svc *service.DeckService
}

func NewInteractor(svc *service.DeckService) deckin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Import(ctx context.Context, input dto.ImportInput) (dto.DeckOutput, error) {
	cards, dropped, err := i.svc.Parse(ctx, input.Format, input.Raw)
	if err != nil {
		return dto.DeckOutput{}, err
	}
	if input.Save {
		if err := i.svc.Save(ctx, cards); err != nil {
			return dto.DeckOutput{}, err
		}
	}
	format := input.Format
	if format == "" {
		format = domain.FormatText
	}
	return dto.DeckOutput{Format: format, Cards: toDTO(cards), Dropped: dropped}, nil
}

func (i *Interactor) Saved(ctx context.Context) (dto.DeckOutput, error) {
	cards, err := i.svc.Load(ctx)
	if err != nil {
		return dto.DeckOutput{}, err
	}
	return dto.DeckOutput{Format: domain.FormatText, Cards: toDTO(cards), Text: domain.FormatLines(cards)}, nil
}

func (i *Interactor) SaveSnapshot(ctx context.Context, cards []dto.Card) error {
	out := make([]domain.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, domain.Card{Front: c.Front, Back: c.Back})
	}
	return i.svc.Save(ctx, out)
}

func toDTO(cards []domain.Card) []dto.Card {
	out := make([]dto.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, dto.Card{Front: c.Front, Back: c.Back})
	}
	return out
}
