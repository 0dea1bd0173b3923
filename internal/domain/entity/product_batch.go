package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductBatch es un lote de un producto, creado al recibir una orden de compra.
// La cantidad se consume en orden FEFO (primero el lote que vence antes; los
// lotes sin vencimiento se consumen de último). Nunca queda en negativo.
type ProductBatch struct {
	ID           string
	ProductID    string
	Quantity     decimal.Decimal
	ExpiryDate   *time.Time // nil = no perecedero
	ReceivedDate time.Time
}

// Expired indica si el lote ya venció respecto al instante dado.
func (b *ProductBatch) Expired(now time.Time) bool {
	return b.ExpiryDate != nil && b.ExpiryDate.Before(now)
}
