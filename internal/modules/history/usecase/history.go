package usecase

import (
	"context"

	"flipdeck/internal/modules/history/domain"
	"flipdeck/internal/modules/history/dto"
	historyin "flipdeck/internal/modules/history/port/in"
	"flipdeck/internal/modules/history/service"
)

type Interactor struct {
	svc *service.HistoryService
}

func NewInteractor(svc *service.HistoryService) historyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Record(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error) {
	entries, path, err := i.svc.Record(ctx, toResult(input))
	if err != nil {
		return dto.RecordOutput{}, err
	}
	return dto.RecordOutput{Entries: toEntries(entries), NotePath: path}, nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.Entry, error) {
	entries, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	return toEntries(entries), nil
}

func (i *Interactor) Summary(_ context.Context, input dto.RecordInput) (dto.SummaryOutput, error) {
	return dto.SummaryOutput{
		Verdict:  domain.Verdict(input.Percent),
		Markdown: domain.Summary(toResult(input)),
	}, nil
}

func toResult(input dto.RecordInput) domain.Result {
	return domain.Result{
		SessionID:    input.SessionID,
		Percent:      input.Percent,
		KnownCount:   input.KnownCount,
		UnknownCount: input.UnknownCount,
		Total:        input.Total,
		KnownCards:   toCards(input.KnownCards),
		UnknownCards: toCards(input.UnknownCards),
	}
}

func toCards(cards []dto.Card) []domain.Card {
	out := make([]domain.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, domain.Card{Front: c.Front, Back: c.Back})
	}
	return out
}

func toEntries(entries []domain.Entry) []dto.Entry {
	out := make([]dto.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.Entry{Date: e.Date, Score: e.Score, Count: e.Count})
	}
	return out
}
