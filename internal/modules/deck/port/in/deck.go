package in

import (
	"context"

	"flipdeck/internal/modules/deck/dto"
)

type Usecase interface {
	Import(ctx context.Context, input dto.ImportInput) (dto.DeckOutput, error)
	Saved(ctx context.Context) (dto.DeckOutput, error)
	SaveSnapshot(ctx context.Context, cards []dto.Card) error
}
