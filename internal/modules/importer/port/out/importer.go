package out

import (
	"context"

	"flipdeck/internal/modules/importer/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Parse(ctx context.Context, manifest domain.Manifest, req domain.ParseRequest) ([]domain.Card, error)
}
