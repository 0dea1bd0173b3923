package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
	"github.com/tu-usuario/retail-ledger/pkg/logger"
)

// Projector responde "cuánto hay ahora" a partir del libro de movimientos.
// products.stock es una proyección cacheada (camino rápido para chequeos de
// disponibilidad); la suma del libro es el valor autoritativo para auditorías.
// La caché debe poder reconstruirse desde el libro en cualquier momento.
type Projector struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	batchRepo    repository.ProductBatchRepository
	txRunner     TxRunner
	log          *logger.Logger
}

// NewProjector construye el proyector con repositorios atados al pool.
func NewProjector(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	batchRepo repository.ProductBatchRepository,
	txRunner TxRunner,
	log *logger.Logger,
) *Projector {
	return &Projector{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		batchRepo:    batchRepo,
		txRunner:     txRunner,
		log:          log,
	}
}

// CurrentStock devuelve el stock proyectado del producto (camino rápido, caché).
// Un producto sin movimientos tiene stock 0, no null.
func (p *Projector) CurrentStock(ctx context.Context, productID string) (decimal.Decimal, error) {
	product, err := p.productRepo.GetByID(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	return product.Stock, nil
}

// LedgerStock suma los movimientos del producto: el valor autoritativo.
func (p *Projector) LedgerStock(ctx context.Context, productID string) (decimal.Decimal, error) {
	return p.movementRepo.SumByProduct(ctx, productID)
}

// BatchStock devuelve los lotes con existencias del producto en orden FEFO.
func (p *Projector) BatchStock(ctx context.Context, productID string) ([]*entity.ProductBatch, error) {
	product, err := p.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return p.batchRepo.ListByProductFEFO(ctx, productID)
}

// StockAudit compara la caché contra la suma del libro.
type StockAudit struct {
	ProductID string
	Cached    decimal.Decimal
	Ledger    decimal.Decimal
	Drift     decimal.Decimal // Cached - Ledger; distinto de cero = señal de auditoría
}

// AuditStock deriva el stock desde el libro y lo compara con la caché.
// Una divergencia se registra en el log como señal para disparar auditoría.
func (p *Projector) AuditStock(ctx context.Context, productID string) (*StockAudit, error) {
	product, err := p.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	ledger, err := p.movementRepo.SumByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	audit := &StockAudit{
		ProductID: productID,
		Cached:    product.Stock,
		Ledger:    ledger,
		Drift:     product.Stock.Sub(ledger),
	}
	if !audit.Drift.IsZero() {
		p.log.Warn().
			Str("product_id", productID).
			Str("cached", audit.Cached.String()).
			Str("ledger", audit.Ledger.String()).
			Msg("proyección de stock divergente del libro")
	}
	return audit, nil
}

// RebuildStock reescribe la caché con la suma del libro, de forma transaccional
// y bloqueando la fila del producto para no pisar operaciones en vuelo.
func (p *Projector) RebuildStock(ctx context.Context, productID string) (decimal.Decimal, error) {
	var rebuilt decimal.Decimal
	err := p.txRunner.Run(ctx, func(r TxRepos) error {
		product, err := r.Products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		sum, err := r.Movements.SumByProduct(ctx, productID)
		if err != nil {
			return err
		}
		rebuilt = sum
		if product.Stock.Equal(sum) {
			return nil
		}
		return r.Products.UpdateStock(ctx, productID, sum)
	})
	if err != nil {
		return decimal.Zero, err
	}
	return rebuilt, nil
}

// Movements devuelve la historia del producto en orden (created_at, seq).
func (p *Projector) Movements(ctx context.Context, productID string, since *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	product, err := p.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return p.movementRepo.ListByProduct(ctx, productID, since, limit, offset)
}

// LowStock devuelve los productos activos en o por debajo de su punto de reorden.
func (p *Projector) LowStock(ctx context.Context) ([]*entity.Product, error) {
	return p.productRepo.ListBelowReorder(ctx)
}
