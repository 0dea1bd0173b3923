package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// ProductBatchRepo implementa repository.ProductBatchRepository sobre PostgreSQL.
type ProductBatchRepo struct {
	q Querier
}

// NewProductBatchRepo crea el repositorio; q puede ser el pool o una transacción.
func NewProductBatchRepo(q Querier) *ProductBatchRepo {
	return &ProductBatchRepo{q: q}
}

var _ repository.ProductBatchRepository = (*ProductBatchRepo)(nil)

// Orden FEFO: vence antes primero, sin vencimiento al final, desempate por recepción.
const batchFEFOQuery = `SELECT id, product_id, quantity, expiry_date, received_date
	FROM product_batches
	WHERE product_id = $1 AND quantity > 0
	ORDER BY expiry_date ASC NULLS LAST, received_date ASC, id ASC`

func (r *ProductBatchRepo) ListByProductFEFO(ctx context.Context, productID string) ([]*entity.ProductBatch, error) {
	return r.scanMany(ctx, batchFEFOQuery, productID)
}

func (r *ProductBatchRepo) ListByProductFEFOForUpdate(ctx context.Context, productID string) ([]*entity.ProductBatch, error) {
	return r.scanMany(ctx, batchFEFOQuery+` FOR UPDATE`, productID)
}

func (r *ProductBatchRepo) GetForReceiptForUpdate(ctx context.Context, productID string, expiry *time.Time) (*entity.ProductBatch, error) {
	// IS NOT DISTINCT FROM trata NULL = NULL como verdadero (lotes no perecederos)
	query := `SELECT id, product_id, quantity, expiry_date, received_date
		FROM product_batches
		WHERE product_id = $1 AND expiry_date IS NOT DISTINCT FROM $2
		ORDER BY received_date ASC
		LIMIT 1
		FOR UPDATE`
	var b entity.ProductBatch
	err := r.q.QueryRow(ctx, query, productID, expiry).Scan(
		&b.ID, &b.ProductID, &b.Quantity, &b.ExpiryDate, &b.ReceivedDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error al buscar lote: %w", err)
	}
	return &b, nil
}

func (r *ProductBatchRepo) Create(ctx context.Context, batch *entity.ProductBatch) error {
	query := `INSERT INTO product_batches (id, product_id, quantity, expiry_date, received_date)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		batch.ID, batch.ProductID, batch.Quantity, batch.ExpiryDate, batch.ReceivedDate,
	)
	if err != nil {
		return fmt.Errorf("error al crear lote: %w", err)
	}
	return nil
}

func (r *ProductBatchRepo) UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error {
	query := `UPDATE product_batches SET quantity = $1 WHERE id = $2`
	tag, err := r.q.Exec(ctx, query, quantity, id)
	if err != nil {
		return fmt.Errorf("error al actualizar lote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lote %s no existe", id)
	}
	return nil
}

func (r *ProductBatchRepo) scanMany(ctx context.Context, query string, args ...any) ([]*entity.ProductBatch, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error al listar lotes: %w", err)
	}
	defer rows.Close()

	var batches []*entity.ProductBatch
	for rows.Next() {
		var b entity.ProductBatch
		if err := rows.Scan(&b.ID, &b.ProductID, &b.Quantity, &b.ExpiryDate, &b.ReceivedDate); err != nil {
			return nil, fmt.Errorf("error al leer lote: %w", err)
		}
		batches = append(batches, &b)
	}
	return batches, rows.Err()
}
