package out

import (
	"context"

	"flipdeck/internal/modules/history/domain"
)

type HistoryStore interface {
	// Load returns an empty history when nothing was stored yet.
	Load(ctx context.Context) ([]domain.Entry, error)
	Save(ctx context.Context, entries []domain.Entry) error
}

// NoteStore writes session notes and keeps the history overview current.
type NoteStore interface {
	WriteResult(ctx context.Context, note domain.Note) (string, error)
	WriteOverview(ctx context.Context, entries []domain.Entry) error
}
