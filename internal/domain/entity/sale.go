package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "COMPLETED"
	SaleStatusCancelled = "CANCELLED"
)

// Sale es la cabecera de una transacción de venta. Se crea de forma atómica con
// sus ítems y los movimientos SALE resultantes, o no se crea en absoluto.
type Sale struct {
	ID         string
	SaleNumber string
	UserID     string
	CustomerID *string // opcional
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Discount   decimal.Decimal
	Total      decimal.Decimal // Subtotal + Tax - Discount
	Status     string
	CreatedAt  time.Time
}

// SaleItem es una línea de venta. Subtotal = Quantity * UnitPrice.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
