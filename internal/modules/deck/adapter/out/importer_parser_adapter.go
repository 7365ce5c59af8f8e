package out

import (
	"context"

	"flipdeck/internal/modules/deck/domain"
	deckout "flipdeck/internal/modules/deck/port/out"
	importerdto "flipdeck/internal/modules/importer/dto"
	importerin "flipdeck/internal/modules/importer/port/in"
)

// ImporterParserAdapter hands non-text formats to importer plugins.
type ImporterParserAdapter struct {
	importer importerin.Usecase
}

func NewImporterParserAdapter(importer importerin.Usecase) deckout.FormatParser {
	return &ImporterParserAdapter{importer: importer}
}

func (a *ImporterParserAdapter) Parse(ctx context.Context, format, raw string) ([]domain.Card, error) {
	out, err := a.importer.Parse(ctx, importerdto.ParseInput{Format: format, Raw: raw})
	if err != nil {
		return nil, err
	}
	cards := make([]domain.Card, 0, len(out.Cards))
	for _, c := range out.Cards {
		cards = append(cards, domain.Card{Front: c.Front, Back: c.Back})
	}
	return cards, nil
}
