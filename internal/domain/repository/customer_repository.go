package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia de clientes.
// El motor solo acredita puntos de fidelización al confirmar ventas.
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	AddLoyaltyPoints(ctx context.Context, id string, points decimal.Decimal) error
}
