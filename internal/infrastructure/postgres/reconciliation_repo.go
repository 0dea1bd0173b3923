package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// ReconciliationRepo implementa repository.ReconciliationRepository sobre PostgreSQL.
type ReconciliationRepo struct {
	q Querier
}

// NewReconciliationRepo crea el repositorio; q puede ser el pool o una transacción.
func NewReconciliationRepo(q Querier) *ReconciliationRepo {
	return &ReconciliationRepo{q: q}
}

var _ repository.ReconciliationRepository = (*ReconciliationRepo)(nil)

func (r *ReconciliationRepo) Create(ctx context.Context, rec *entity.Reconciliation) error {
	query := `INSERT INTO reconciliations (id, date, status, notes, closed_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, rec.ID, rec.Date, rec.Status, rec.Notes, rec.ClosedAt)
	if err != nil {
		return fmt.Errorf("error al crear sesión de reconciliación: %w", err)
	}
	return nil
}

func (r *ReconciliationRepo) GetByID(ctx context.Context, id string) (*entity.Reconciliation, error) {
	query := `SELECT id, date, status, notes, closed_at FROM reconciliations WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

func (r *ReconciliationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Reconciliation, error) {
	query := `SELECT id, date, status, notes, closed_at FROM reconciliations WHERE id = $1 FOR UPDATE`
	return r.scanOne(ctx, query, id)
}

func (r *ReconciliationRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Reconciliation, error) {
	var rec entity.Reconciliation
	err := r.q.QueryRow(ctx, query, args...).Scan(&rec.ID, &rec.Date, &rec.Status, &rec.Notes, &rec.ClosedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error al consultar sesión de reconciliación: %w", err)
	}
	return &rec, nil
}

func (r *ReconciliationRepo) UpsertCount(ctx context.Context, count *entity.ReconciliationCount) error {
	// Contar dos veces el mismo producto reemplaza el conteo anterior
	query := `INSERT INTO reconciliation_counts
		(id, reconciliation_id, product_id, system_quantity, counted_quantity, delta, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (reconciliation_id, product_id) DO UPDATE SET
			system_quantity = EXCLUDED.system_quantity,
			counted_quantity = EXCLUDED.counted_quantity,
			delta = EXCLUDED.delta,
			created_at = EXCLUDED.created_at`
	_, err := r.q.Exec(ctx, query,
		count.ID, count.ReconciliationID, count.ProductID,
		count.SystemQuantity, count.CountedQuantity, count.Delta, count.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error al registrar conteo: %w", err)
	}
	return nil
}

func (r *ReconciliationRepo) ListCounts(ctx context.Context, reconciliationID string) ([]*entity.ReconciliationCount, error) {
	query := `SELECT id, reconciliation_id, product_id, system_quantity, counted_quantity, delta, created_at
		FROM reconciliation_counts WHERE reconciliation_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("error al listar conteos: %w", err)
	}
	defer rows.Close()

	var counts []*entity.ReconciliationCount
	for rows.Next() {
		var c entity.ReconciliationCount
		if err := rows.Scan(
			&c.ID, &c.ReconciliationID, &c.ProductID,
			&c.SystemQuantity, &c.CountedQuantity, &c.Delta, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error al leer conteo: %w", err)
		}
		counts = append(counts, &c)
	}
	return counts, rows.Err()
}

func (r *ReconciliationRepo) Close(ctx context.Context, rec *entity.Reconciliation) error {
	query := `UPDATE reconciliations SET status = $1, notes = $2, closed_at = $3 WHERE id = $4`
	tag, err := r.q.Exec(ctx, query, rec.Status, rec.Notes, rec.ClosedAt, rec.ID)
	if err != nil {
		return fmt.Errorf("error al cerrar sesión de reconciliación: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sesión de reconciliación %s no existe", rec.ID)
	}
	return nil
}
