package in

import (
	"context"

	"flipdeck/internal/modules/history/dto"
)

type Usecase interface {
	Record(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error)
	List(ctx context.Context) ([]dto.Entry, error)
	Summary(ctx context.Context, input dto.RecordInput) (dto.SummaryOutput, error)
}
