package in

import (
	"context"

	"flipdeck/internal/modules/history/dto"
	historyin "flipdeck/internal/modules/history/port/in"
)

type CLIHandler struct {
	usecase historyin.Usecase
}

func NewCLIHandler(usecase historyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.Entry, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Summary(ctx context.Context, input dto.RecordInput) (dto.SummaryOutput, error) {
	return h.usecase.Summary(ctx, input)
}
