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

// SaleRepo implementa repository.SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepo crea el repositorio; q puede ser el pool o una transacción.
func NewSaleRepo(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

var _ repository.SaleRepository = (*SaleRepo)(nil)

func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `INSERT INTO sales
		(id, sale_number, user_id, customer_id, subtotal, tax, discount, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.SaleNumber, sale.UserID, sale.CustomerID,
		sale.Subtotal, sale.Tax, sale.Discount, sale.Total, sale.Status, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de venta %s", domain.ErrDuplicate, sale.SaleNumber)
		}
		return fmt.Errorf("error al crear venta: %w", err)
	}
	return nil
}

func (r *SaleRepo) CreateItem(ctx context.Context, item *entity.SaleItem) error {
	query := `INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("error al crear ítem de venta: %w", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	query := `SELECT id, sale_number, user_id, customer_id, subtotal, tax, discount, total, status, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.SaleNumber, &s.UserID, &s.CustomerID,
		&s.Subtotal, &s.Tax, &s.Discount, &s.Total, &s.Status, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error al consultar venta: %w", err)
	}
	return &s, nil
}

func (r *SaleRepo) ListItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	query := `SELECT id, sale_id, product_id, quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("error al listar ítems de venta: %w", err)
	}
	defer rows.Close()

	var items []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("error al leer ítem de venta: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}
