package repository

import (
	"context"

	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// ReconciliationRepository define el puerto de persistencia de sesiones de conteo.
type ReconciliationRepository interface {
	Create(ctx context.Context, rec *entity.Reconciliation) error
	GetByID(ctx context.Context, id string) (*entity.Reconciliation, error)
	// GetForUpdate bloquea la sesión: evita cerrar y contar a la vez.
	GetForUpdate(ctx context.Context, id string) (*entity.Reconciliation, error)
	// UpsertCount registra o reemplaza el conteo de un producto en la sesión.
	UpsertCount(ctx context.Context, count *entity.ReconciliationCount) error
	ListCounts(ctx context.Context, reconciliationID string) ([]*entity.ReconciliationCount, error)
	// Close marca la sesión como CLOSED con su marca de tiempo.
	Close(ctx context.Context, rec *entity.Reconciliation) error
}
