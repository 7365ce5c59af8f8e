package in

import (
	"context"

	"flipdeck/internal/modules/deck/dto"
	deckin "flipdeck/internal/modules/deck/port/in"
)

type CLIHandler struct {
	usecase deckin.Usecase
}

func NewCLIHandler(usecase deckin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Import(ctx context.Context, raw, format string, save bool) (dto.DeckOutput, error) {
	return h.usecase.Import(ctx, dto.ImportInput{Raw: raw, Format: format, Save: save})
}

func (h CLIHandler) Saved(ctx context.Context) (dto.DeckOutput, error) {
	return h.usecase.Saved(ctx)
}
