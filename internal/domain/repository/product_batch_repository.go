package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// ProductBatchRepository define el puerto de persistencia para lotes.
// El orden FEFO es: vencimiento más próximo primero, lotes sin vencimiento al
// final, desempate por fecha de recepción.
type ProductBatchRepository interface {
	// ListByProductFEFO devuelve los lotes con cantidad > 0 en orden FEFO.
	ListByProductFEFO(ctx context.Context, productID string) ([]*entity.ProductBatch, error)
	// ListByProductFEFOForUpdate igual que ListByProductFEFO pero bloqueando las filas.
	ListByProductFEFOForUpdate(ctx context.Context, productID string) ([]*entity.ProductBatch, error)
	// GetForReceiptForUpdate busca el lote de un producto con ese vencimiento
	// (nil = sin vencimiento) y lo bloquea. Devuelve nil si no existe.
	GetForReceiptForUpdate(ctx context.Context, productID string, expiry *time.Time) (*entity.ProductBatch, error)
	Create(ctx context.Context, batch *entity.ProductBatch) error
	UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error
}
