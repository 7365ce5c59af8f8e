package out

import (
	"context"

	historydto "flipdeck/internal/modules/history/dto"
	historyin "flipdeck/internal/modules/history/port/in"
	"flipdeck/internal/modules/study/domain"
	studyout "flipdeck/internal/modules/study/port/out"
)

type ResultsReporterAdapter struct {
	history historyin.Usecase
}

func NewResultsReporterAdapter(history historyin.Usecase) studyout.ResultsReporter {
	return &ResultsReporterAdapter{history: history}
}

func (a *ResultsReporterAdapter) Report(ctx context.Context, result domain.Result) error {
	_, err := a.history.Record(ctx, historydto.RecordInput{
		SessionID:    result.SessionID,
		Percent:      result.Percent,
		KnownCount:   result.KnownCount,
		UnknownCount: result.UnknownCount,
		Total:        result.Total,
		KnownCards:   toHistoryCards(result.KnownCards),
		UnknownCards: toHistoryCards(result.UnknownCards),
	})
	return err
}

func toHistoryCards(cards []domain.Card) []historydto.Card {
	out := make([]historydto.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, historydto.Card{Front: c.Front, Back: c.Back})
	}
	return out
}
