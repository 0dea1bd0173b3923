package cache

import (
	"context"
	"time"

	"github.com/tu-usuario/retail-ledger/internal/domain/matching"
)

// CatalogCache cachea el catálogo de candidatos para el matching POS, para no
// releer todos los productos activos en cada resolución.
type CatalogCache interface {
	Get(ctx context.Context, key string) ([]matching.Candidate, bool, error)
	Set(ctx context.Context, key string, candidates []matching.Candidate, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// NoopCatalogCache desactiva el cacheo (cada resolución lee de la BD).
type NoopCatalogCache struct{}

func (NoopCatalogCache) Get(_ context.Context, _ string) ([]matching.Candidate, bool, error) {
	return nil, false, nil
}

func (NoopCatalogCache) Set(_ context.Context, _ string, _ []matching.Candidate, _ time.Duration) error {
	return nil
}

func (NoopCatalogCache) Delete(_ context.Context, _ string) error {
	return nil
}
