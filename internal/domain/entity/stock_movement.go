package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType es el conjunto cerrado de tipos de movimiento del libro.
type MovementType string

const (
	MovementSale            MovementType = "SALE"
	MovementPurchaseReceipt MovementType = "PURCHASE_RECEIPT"
	MovementAdjustment      MovementType = "ADJUSTMENT"
	MovementReconciliation  MovementType = "RECONCILIATION"
)

// Valid reporta si el tipo pertenece al conjunto cerrado.
func (t MovementType) Valid() bool {
	switch t {
	case MovementSale, MovementPurchaseReceipt, MovementAdjustment, MovementReconciliation:
		return true
	}
	return false
}

// StockMovement es la entrada atómica del libro de inventario: inmutable una vez
// creada. La suma de los deltas de un producto es su stock proyectado.
// El orden por producto es (CreatedAt, Seq); Seq desempata timestamps iguales.
type StockMovement struct {
	ID               string
	ProductID        string
	BatchID          *string // lote afectado, si aplica
	Type             MovementType
	Quantity         decimal.Decimal // delta con signo: negativo para ventas
	Description      string
	ReconciliationID *string // solo para movimientos RECONCILIATION
	Seq              int64   // asignado por la BD, monotónico
	CreatedAt        time.Time
}
