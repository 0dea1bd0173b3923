package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// StockMovementRepository es el puerto del libro de movimientos: solo altas y
// lecturas. No existen métodos de actualización ni borrado; los movimientos son
// inmutables y su secuencia por producto es la fuente de verdad del stock.
type StockMovementRepository interface {
	// Create persiste el movimiento dentro de la transacción del caller.
	// Un error de almacenamiento envuelve domain.ErrLedgerWriteFailed: la
	// transacción completa debe revertirse, nunca hay escritura parcial.
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByProduct devuelve movimientos en orden (created_at, seq) ascendente.
	ListByProduct(ctx context.Context, productID string, since *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// SumByProduct suma los deltas del producto: el stock autoritativo.
	SumByProduct(ctx context.Context, productID string) (decimal.Decimal, error)
}
