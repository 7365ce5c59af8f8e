package usecase

import (
	"context"

	"flipdeck/internal/modules/study/domain"
	"flipdeck/internal/modules/study/dto"
	studyin "flipdeck/internal/modules/study/port/in"
	"flipdeck/internal/modules/study/service"
)

type Interactor struct {
	ctrl *service.Controller
}

func NewInteractor(ctrl *service.Controller) studyin.Usecase {
	return &Interactor{ctrl: ctrl}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.StepOutput, error) {
	cards := make([]domain.Card, 0, len(input.Cards))
	for _, c := range input.Cards {
		cards = append(cards, domain.Card{Front: c.Front, Back: c.Back})
	}
	return i.step(i.ctrl.StartSession(ctx, cards))
}

func (i *Interactor) Resume(ctx context.Context) (dto.StepOutput, error) {
	return i.step(i.ctrl.ResumeSession(ctx))
}

func (i *Interactor) DragStart(_ context.Context, pointerX float64) (dto.StepOutput, error) {
	return i.step(i.ctrl.DragStart(pointerX))
}

func (i *Interactor) DragMove(_ context.Context, pointerX float64) (dto.StepOutput, error) {
	return i.step(i.ctrl.DragMove(pointerX))
}

func (i *Interactor) DragEnd(_ context.Context) (dto.StepOutput, error) {
	return i.step(i.ctrl.DragEnd())
}

func (i *Interactor) Flip(_ context.Context) (dto.StepOutput, error) {
	return i.step(i.ctrl.Flip())
}

func (i *Interactor) Know(_ context.Context) (dto.StepOutput, error) {
	return i.step(i.ctrl.Know())
}

func (i *Interactor) DontKnow(_ context.Context) (dto.StepOutput, error) {
	return i.step(i.ctrl.DontKnow())
}

func (i *Interactor) Fire(ctx context.Context, timer dto.Timer) (dto.StepOutput, error) {
	kind, ok := timerKind(timer.Kind)
	if !ok {
		return i.step(service.Output{Event: domain.Event{Kind: domain.EventIgnored}, Frame: i.ctrl.Frame()}, nil)
	}
	return i.step(i.ctrl.Fire(ctx, domain.Timer{
		Kind:    kind,
		After:   timer.After,
		Session: timer.Session,
		Card:    timer.Card,
		Version: timer.Version,
	}))
}

func (i *Interactor) Frame(_ context.Context) dto.FrameOutput {
	return toFrame(i.ctrl.Frame())
}

// step keeps the frame on error so the screen can still be redrawn.
func (i *Interactor) step(out service.Output, err error) (dto.StepOutput, error) {
	result := dto.StepOutput{
		Event:     eventName(out.Event.Kind),
		Direction: out.Event.Direction.String(),
		Frame:     toFrame(out.Frame),
		Timers:    make([]dto.Timer, 0, len(out.Timers)),
		Finished:  out.Finished,
	}
	for _, t := range out.Timers {
		result.Timers = append(result.Timers, dto.Timer{Kind: t.Kind.String(), After: t.After, Session: t.Session, Card: t.Card, Version: t.Version})
	}
	if res, ok := i.ctrl.Result(); ok && out.Finished {
		result.Result = toResult(res)
	}
	return result, err
}

func timerKind(name string) (domain.TimerKind, bool) {
	for _, k := range []domain.TimerKind{domain.TimerFlip, domain.TimerSettle, domain.TimerExit} {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

func eventName(kind domain.EventKind) string {
	switch kind {
	case domain.EventIgnored:
		return "ignored"
	case domain.EventDragged:
		return "dragged"
	case domain.EventFlipped:
		return "flipped"
	case domain.EventFlipSettled:
		return "flip_settled"
	case domain.EventCancelled:
		return "cancelled"
	case domain.EventSettled:
		return "settled"
	case domain.EventCommitted:
		return "committed"
	case domain.EventResolved:
		return "resolved"
	default:
		return ""
	}
}

func toFrame(f domain.Frame) dto.FrameOutput {
	return dto.FrameOutput{
		Front:              f.Front,
		Back:               f.Back,
		Flipped:            f.Flipped,
		Phase:              string(f.Phase),
		State:              string(f.State),
		Transform:          f.Transform.String(),
		TranslateX:         f.Transform.TranslateX,
		Rotate:             f.Transform.Rotate,
		TranslateY:         f.Transform.TranslateY,
		Scale:              f.Transform.Scale,
		FlipY:              f.Transform.FlipY,
		TransitionDuration: f.Transition.Duration,
		TransitionEasing:   f.Transition.Easing,
		FrontFeedback:      f.FrontFeedback.String(),
		BackFeedback:       f.BackFeedback.String(),
		Dragging:           f.Dragging,
		Progress:           f.Progress,
		Index:              f.Index,
		Total:              f.Total,
		Done:               f.Done,
	}
}

func toResult(r domain.Result) dto.ResultOutput {
	return dto.ResultOutput{
		SessionID:    r.SessionID,
		Percent:      r.Percent,
		KnownCount:   r.KnownCount,
		UnknownCount: r.UnknownCount,
		Total:        r.Total,
		KnownCards:   toCards(r.KnownCards),
		UnknownCards: toCards(r.UnknownCards),
	}
}

func toCards(cards []domain.Card) []dto.Card {
	out := make([]dto.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, dto.Card{Front: c.Front, Back: c.Back})
	}
	return out
}
