package in

import (
	"context"

	"flipdeck/internal/modules/importer/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Parse(ctx context.Context, input dto.ParseInput) (dto.ParseOutput, error)
}
