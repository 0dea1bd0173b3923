package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para productos (DIP).
// La creación y edición del catálogo es responsabilidad de otro sistema; el
// motor solo lee productos y mantiene la proyección de stock.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) durante la tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// UpdateStock reescribe la proyección cacheada de stock.
	UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error
	// ListActive devuelve los productos activos (candidatos para matching POS).
	ListActive(ctx context.Context) ([]*entity.Product, error)
	// ListBelowReorder devuelve productos activos con stock <= reorder_level.
	ListBelowReorder(ctx context.Context) ([]*entity.Product, error)
}
