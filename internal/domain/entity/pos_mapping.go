package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// POSItemMapping vincula un nombre crudo del punto de venta con un producto
// canónico del inventario. Único por (TenantID, POSItemName).
// ConfidenceScore vive en [0, 1]; nil significa que aún no hay evidencia.
// Los mapeos de baja confianza se marcan para revisión, nunca se borran.
type POSItemMapping struct {
	ID               string
	TenantID         string
	POSItemName      string
	MatchedProductID string
	LastSoldPrice    decimal.Decimal
	ConfidenceScore  *decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
