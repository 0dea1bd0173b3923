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

// CustomerRepo implementa repository.CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepo crea el repositorio; q puede ser el pool o una transacción.
func NewCustomerRepo(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `SELECT id, name, email, phone, loyalty_points, is_active, created_at, updated_at
		FROM customers WHERE id = $1`
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.LoyaltyPoints, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error al consultar cliente: %w", err)
	}
	return &c, nil
}

func (r *CustomerRepo) AddLoyaltyPoints(ctx context.Context, id string, points decimal.Decimal) error {
	query := `UPDATE customers SET loyalty_points = loyalty_points + $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.q.Exec(ctx, query, points, id)
	if err != nil {
		return fmt.Errorf("error al acreditar puntos: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cliente %s no existe", id)
	}
	return nil
}
