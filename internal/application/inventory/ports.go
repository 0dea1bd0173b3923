package inventory

import (
	"context"

	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Movements       repository.StockMovementRepository
	Batches         repository.ProductBatchRepository
	Products        repository.ProductRepository
	Sales           repository.SaleRepository
	PurchaseOrders  repository.PurchaseOrderRepository
	Reconciliations repository.ReconciliationRepository
	Customers       repository.CustomerRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD con aislamiento al menos
// repeatable read. Commit si fn retorna nil; rollback en cualquier otro caso,
// incluida la cancelación del contexto. Garantiza la atomicidad del motor:
// validación de stock, escritura del libro y actualización de la proyección
// suceden juntas o no suceden.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
