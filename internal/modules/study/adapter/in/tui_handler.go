package in

import (
	"context"

	"flipdeck/internal/modules/study/dto"
	studyin "flipdeck/internal/modules/study/port/in"
)

// TUIHandler is the study surface the terminal UI drives.
type TUIHandler struct {
	usecase studyin.Usecase
}

func NewTUIHandler(usecase studyin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Start(ctx context.Context, cards []dto.Card) (dto.StepOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{Cards: cards})
}

func (h TUIHandler) Resume(ctx context.Context) (dto.StepOutput, error) {
	return h.usecase.Resume(ctx)
}

func (h TUIHandler) Press(ctx context.Context, pointerX float64) (dto.StepOutput, error) {
	return h.usecase.DragStart(ctx, pointerX)
}

func (h TUIHandler) Motion(ctx context.Context, pointerX float64) (dto.StepOutput, error) {
	return h.usecase.DragMove(ctx, pointerX)
}

func (h TUIHandler) Release(ctx context.Context) (dto.StepOutput, error) {
	return h.usecase.DragEnd(ctx)
}

func (h TUIHandler) Flip(ctx context.Context) (dto.StepOutput, error) {
	return h.usecase.Flip(ctx)
}

func (h TUIHandler) Know(ctx context.Context) (dto.StepOutput, error) {
	return h.usecase.Know(ctx)
}

func (h TUIHandler) DontKnow(ctx context.Context) (dto.StepOutput, error) {
	return h.usecase.DontKnow(ctx)
}

func (h TUIHandler) Fire(ctx context.Context, timer dto.Timer) (dto.StepOutput, error) {
	return h.usecase.Fire(ctx, timer)
}

func (h TUIHandler) Frame(ctx context.Context) dto.FrameOutput {
	return h.usecase.Frame(ctx)
}
