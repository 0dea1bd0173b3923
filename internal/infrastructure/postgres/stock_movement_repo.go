package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// StockMovementRepo implementa repository.StockMovementRepository sobre PostgreSQL.
// La tabla stock_movements es de solo inserción: sin UPDATE ni DELETE. La
// columna seq es BIGSERIAL y desempata movimientos con el mismo created_at.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepo crea el repositorio; q puede ser el pool o una transacción.
func NewStockMovementRepo(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `INSERT INTO stock_movements
		(id, product_id, batch_id, type, quantity, description, reconciliation_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.ProductID, m.BatchID, m.Type, m.Quantity,
		m.Description, m.ReconciliationID, m.CreatedAt,
	).Scan(&m.Seq)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLedgerWriteFailed, err)
	}
	return nil
}

func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, since *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT id, product_id, batch_id, type, quantity, description, reconciliation_id, seq, created_at
		FROM stock_movements
		WHERE product_id = $1 AND ($2::timestamptz IS NULL OR created_at >= $2)
		ORDER BY created_at ASC, seq ASC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, productID, since, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error al listar movimientos: %w", err)
	}
	defer rows.Close()

	var movements []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.BatchID, &m.Type, &m.Quantity,
			&m.Description, &m.ReconciliationID, &m.Seq, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error al leer movimiento: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}

func (r *StockMovementRepo) SumByProduct(ctx context.Context, productID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock_movements WHERE product_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("error al sumar movimientos: %w", err)
	}
	return sum, nil
}
