package in

import (
	"context"

	"flipdeck/internal/modules/importer/dto"
	importerin "flipdeck/internal/modules/importer/port/in"
)

type CLIHandler struct {
	usecase importerin.Usecase
}

func NewCLIHandler(usecase importerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Parse(ctx context.Context, format, raw string) (dto.ParseOutput, error) {
	return h.usecase.Parse(ctx, dto.ParseInput{Format: format, Raw: raw})
}
