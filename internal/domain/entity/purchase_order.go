package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// POStatus es el conjunto cerrado de estados de una orden de compra.
type POStatus string

const (
	POStatusDraft             POStatus = "DRAFT"
	POStatusOrdered           POStatus = "ORDERED"
	POStatusPartiallyReceived POStatus = "PARTIALLY_RECEIVED"
	POStatusReceived          POStatus = "RECEIVED"
	POStatusCancelled         POStatus = "CANCELLED"
)

// CanTransitionTo valida la máquina de estados:
// DRAFT → ORDERED → PARTIALLY_RECEIVED → RECEIVED; CANCELLED solo antes de recibir.
func (s POStatus) CanTransitionTo(next POStatus) bool {
	switch s {
	case POStatusDraft:
		return next == POStatusOrdered || next == POStatusCancelled
	case POStatusOrdered:
		return next == POStatusPartiallyReceived || next == POStatusReceived || next == POStatusCancelled
	case POStatusPartiallyReceived:
		return next == POStatusPartiallyReceived || next == POStatusReceived
	}
	return false
}

// PurchaseOrder es una orden de compra a un proveedor. ReceivedAt queda nil
// hasta que todos los ítems estén completamente recibidos (recepción parcial
// se representa con el estado PARTIALLY_RECEIVED, no con un booleano).
type PurchaseOrder struct {
	ID          string
	VendorID    string
	OrderNumber string
	OrderDate   time.Time
	Status      POStatus
	TotalAmount decimal.Decimal
	Notes       string
	SentAt      *time.Time
	ReceivedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PurchaseOrderItem es una línea de la orden. ReceivedQuantity acumula las
// recepciones parciales y nunca supera Quantity.
type PurchaseOrderItem struct {
	ID               string
	PurchaseOrderID  string
	ProductID        string
	Quantity         decimal.Decimal
	ReceivedQuantity decimal.Decimal
	UnitCost         decimal.Decimal
	TotalCost        decimal.Decimal
}

// Pending devuelve la cantidad aún no recibida de la línea.
func (i *PurchaseOrderItem) Pending() decimal.Decimal {
	return i.Quantity.Sub(i.ReceivedQuantity)
}

// FullyReceived indica si la línea ya no tiene cantidad pendiente.
func (i *PurchaseOrderItem) FullyReceived() bool {
	return i.ReceivedQuantity.GreaterThanOrEqual(i.Quantity)
}
