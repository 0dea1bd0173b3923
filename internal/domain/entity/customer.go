package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer es el cliente de fidelización. Los puntos se acreditan al confirmar
// una venta asociada al cliente.
type Customer struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	LoyaltyPoints decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
