package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// POSMappingRepo implementa repository.POSMappingRepository sobre PostgreSQL.
// Restricción única en (tenant_id, pos_item_name).
type POSMappingRepo struct {
	q Querier
}

// NewPOSMappingRepo crea el repositorio; q puede ser el pool o una transacción.
func NewPOSMappingRepo(q Querier) *POSMappingRepo {
	return &POSMappingRepo{q: q}
}

var _ repository.POSMappingRepository = (*POSMappingRepo)(nil)

const posMappingColumns = `id, tenant_id, pos_item_name, matched_product_id,
	last_sold_price, confidence_score, created_at, updated_at`

func (r *POSMappingRepo) GetByTenantAndName(ctx context.Context, tenantID, posItemName string) (*entity.POSItemMapping, error) {
	query := `SELECT ` + posMappingColumns + `
		FROM pos_item_mappings WHERE tenant_id = $1 AND pos_item_name = $2`
	var m entity.POSItemMapping
	err := r.q.QueryRow(ctx, query, tenantID, posItemName).Scan(
		&m.ID, &m.TenantID, &m.POSItemName, &m.MatchedProductID,
		&m.LastSoldPrice, &m.ConfidenceScore, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error al consultar mapeo POS: %w", err)
	}
	return &m, nil
}

func (r *POSMappingRepo) Create(ctx context.Context, mapping *entity.POSItemMapping) error {
	query := `INSERT INTO pos_item_mappings
		(id, tenant_id, pos_item_name, matched_product_id, last_sold_price, confidence_score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		mapping.ID, mapping.TenantID, mapping.POSItemName, mapping.MatchedProductID,
		mapping.LastSoldPrice, mapping.ConfidenceScore, mapping.CreatedAt, mapping.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: mapeo POS (%s, %s)", domain.ErrDuplicate, mapping.TenantID, mapping.POSItemName)
		}
		return fmt.Errorf("error al crear mapeo POS: %w", err)
	}
	return nil
}

func (r *POSMappingRepo) Update(ctx context.Context, mapping *entity.POSItemMapping) error {
	query := `UPDATE pos_item_mappings
		SET matched_product_id = $1, last_sold_price = $2, confidence_score = $3, updated_at = $4
		WHERE id = $5`
	tag, err := r.q.Exec(ctx, query,
		mapping.MatchedProductID, mapping.LastSoldPrice, mapping.ConfidenceScore, mapping.UpdatedAt, mapping.ID,
	)
	if err != nil {
		return fmt.Errorf("error al actualizar mapeo POS: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mapeo POS %s no existe", mapping.ID)
	}
	return nil
}

func (r *POSMappingRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.POSItemMapping, error) {
	query := `SELECT ` + posMappingColumns + `
		FROM pos_item_mappings WHERE tenant_id = $1 ORDER BY pos_item_name`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("error al listar mapeos POS: %w", err)
	}
	defer rows.Close()

	var mappings []*entity.POSItemMapping
	for rows.Next() {
		var m entity.POSItemMapping
		if err := rows.Scan(
			&m.ID, &m.TenantID, &m.POSItemName, &m.MatchedProductID,
			&m.LastSoldPrice, &m.ConfidenceScore, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error al leer mapeo POS: %w", err)
		}
		mappings = append(mappings, &m)
	}
	return mappings, rows.Err()
}
