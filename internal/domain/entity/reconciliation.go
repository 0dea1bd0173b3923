package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationStatus: OPEN → CLOSED (terminal, sin reapertura).
type ReconciliationStatus string

const (
	ReconciliationOpen   ReconciliationStatus = "OPEN"
	ReconciliationClosed ReconciliationStatus = "CLOSED"
)

// Reconciliation es una sesión de conteo físico. Mientras está OPEN se registran
// conteos; al cerrar queda inmutable. Las correcciones posteriores requieren una
// sesión nueva.
type Reconciliation struct {
	ID       string
	Date     time.Time
	Status   ReconciliationStatus
	Notes    string
	ClosedAt *time.Time
}

// ReconciliationCount es el conteo de un producto dentro de la sesión.
// Delta = CountedQuantity - SystemQuantity. Delta cero es un marcador explícito
// de "sin discrepancia"; con delta distinto de cero existe además un movimiento
// RECONCILIATION asociado a la sesión.
type ReconciliationCount struct {
	ID               string
	ReconciliationID string
	ProductID        string
	SystemQuantity   decimal.Decimal
	CountedQuantity  decimal.Decimal
	Delta            decimal.Decimal
	CreatedAt        time.Time
}
