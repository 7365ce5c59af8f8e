package service

import (
	"context"
	"fmt"

	"flipdeck/internal/modules/history/domain"
	historyout "flipdeck/internal/modules/history/port/out"
	"flipdeck/internal/platform/clock"
	apperrors "flipdeck/internal/platform/errors"
)

type HistoryService struct {
	clock clock.Clock
	store historyout.HistoryStore
	notes historyout.NoteStore
}

// NewHistoryService accepts a nil NoteStore, in which case only the rolling
// history is kept.
func NewHistoryService(clock clock.Clock, store historyout.HistoryStore, notes historyout.NoteStore) *HistoryService {
	return &HistoryService{clock: clock, store: store, notes: notes}
}

func (s *HistoryService) Record(ctx context.Context, result domain.Result) ([]domain.Entry, string, error) {
	if result.Total <= 0 {
		return nil, "", fmt.Errorf("record result: %w: total must be positive", apperrors.ErrInvalidInput)
	}
	now := s.clock.Now().UTC()
	entries, err := s.store.Load(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("load history: %w", err)
	}
	entries = domain.Push(entries, domain.Entry{
		Date:  now.Format(domain.DateLayout),
		Score: result.Percent,
		Count: result.Total,
	})
	if err := s.store.Save(ctx, entries); err != nil {
		return nil, "", fmt.Errorf("save history: %w", err)
	}
	if s.notes == nil {
		return entries, "", nil
	}
	path, err := s.notes.WriteResult(ctx, domain.Note{Result: result, FinishedAt: now})
	if err != nil {
		return entries, "", err
	}
	if err := s.notes.WriteOverview(ctx, entries); err != nil {
		return entries, path, err
	}
	return entries, path, nil
}

func (s *HistoryService) List(ctx context.Context) ([]domain.Entry, error) {
	return s.store.Load(ctx)
}
