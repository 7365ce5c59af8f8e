package out

import (
	"context"
	"encoding/json"
	"fmt"

	"flipdeck/internal/modules/history/domain"
	historyout "flipdeck/internal/modules/history/port/out"
	"flipdeck/internal/platform/blob"
)

type BlobHistoryStore struct {
	store blob.Store
}

func NewBlobHistoryStore(store blob.Store) historyout.HistoryStore {
	return &BlobHistoryStore{store: store}
}

func (s *BlobHistoryStore) Load(ctx context.Context) ([]domain.Entry, error) {
	payload, ok, err := s.store.Get(ctx, domain.HistoryKey)
	if err != nil {
		return nil, err
	}
	entries := []domain.Entry{}
	if !ok {
		return entries, nil
	}
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return entries, nil
}

func (s *BlobHistoryStore) Save(ctx context.Context, entries []domain.Entry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	return s.store.Set(ctx, domain.HistoryKey, payload)
}
