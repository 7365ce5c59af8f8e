package in

import (
	"context"

	"flipdeck/internal/modules/study/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StepOutput, error)
	Resume(ctx context.Context) (dto.StepOutput, error)
	DragStart(ctx context.Context, pointerX float64) (dto.StepOutput, error)
	DragMove(ctx context.Context, pointerX float64) (dto.StepOutput, error)
	DragEnd(ctx context.Context) (dto.StepOutput, error)
	Flip(ctx context.Context) (dto.StepOutput, error)
	Know(ctx context.Context) (dto.StepOutput, error)
	DontKnow(ctx context.Context) (dto.StepOutput, error)
	Fire(ctx context.Context, timer dto.Timer) (dto.StepOutput, error)
	Frame(ctx context.Context) dto.FrameOutput
}
