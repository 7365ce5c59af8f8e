package out

import (
	"context"
	"encoding/json"
	"fmt"

	"flipdeck/internal/modules/deck/domain"
	deckout "flipdeck/internal/modules/deck/port/out"
	"flipdeck/internal/platform/blob"
	apperrors "flipdeck/internal/platform/errors"
)

type BlobSnapshotStore struct {
	store blob.Store
}

func NewBlobSnapshotStore(store blob.Store) deckout.SnapshotStore {
	return &BlobSnapshotStore{store: store}
}

func (s *BlobSnapshotStore) Save(ctx context.Context, cards []domain.Card) error {
	payload, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("marshal deck snapshot: %w", err)
	}
	return s.store.Set(ctx, domain.SnapshotKey, payload)
}

func (s *BlobSnapshotStore) Load(ctx context.Context) ([]domain.Card, error) {
	payload, ok, err := s.store.Get(ctx, domain.SnapshotKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrNoSavedDeck
	}
	cards := []domain.Card{}
	if err := json.Unmarshal(payload, &cards); err != nil {
		return nil, fmt.Errorf("decode deck snapshot: %w", err)
	}
	return cards, nil
}
