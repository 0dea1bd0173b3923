package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// ProductRepo implementa repository.ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepo crea el repositorio; q puede ser el pool o una transacción.
func NewProductRepo(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, barcode, name, category, description,
	price, cost_price, stock, reorder_level, is_active, created_at, updated_at`

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(ctx, query, id)
}

func (r *ProductRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.SKU, &p.Barcode, &p.Name, &p.Category, &p.Description,
		&p.Price, &p.CostPrice, &p.Stock, &p.ReorderLevel, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error al consultar producto: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error {
	query := `UPDATE products SET stock = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.q.Exec(ctx, query, stock, id)
	if err != nil {
		return fmt.Errorf("error al actualizar stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("producto %s no existe", id)
	}
	return nil
}

func (r *ProductRepo) ListActive(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active = true ORDER BY name`
	return r.scanMany(ctx, query)
}

func (r *ProductRepo) ListBelowReorder(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE is_active = true AND stock <= reorder_level
		ORDER BY stock ASC`
	return r.scanMany(ctx, query)
}

func (r *ProductRepo) scanMany(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error al listar productos: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Barcode, &p.Name, &p.Category, &p.Description,
			&p.Price, &p.CostPrice, &p.Stock, &p.ReorderLevel, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error al leer producto: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}
