package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveItemRequest body para POST /api/purchase-orders/:id/items/:itemID/receive.
type ReceiveItemRequest struct {
	Quantity   decimal.Decimal `json:"quantity"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
}

// ReceiveItemResponse resultado de una recepción.
type ReceiveItemResponse struct {
	PurchaseOrderID string          `json:"purchase_order_id"`
	Status          string          `json:"status"`
	BatchID         string          `json:"batch_id"`
	NewStock        decimal.Decimal `json:"new_stock"`
}

// PurchaseOrderItemResponse línea de una orden de compra.
type PurchaseOrderItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	Pending          decimal.Decimal `json:"pending"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
}

// VendorResponse proveedor de la orden.
type VendorResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PurchaseOrderResponse orden de compra con líneas y proveedor.
type PurchaseOrderResponse struct {
	ID          string                      `json:"id"`
	OrderNumber string                      `json:"order_number"`
	OrderDate   time.Time                   `json:"order_date"`
	Status      string                      `json:"status"`
	TotalAmount decimal.Decimal             `json:"total_amount"`
	Notes       string                      `json:"notes,omitempty"`
	SentAt      *time.Time                  `json:"sent_at,omitempty"`
	ReceivedAt  *time.Time                  `json:"received_at,omitempty"`
	Vendor      *VendorResponse             `json:"vendor,omitempty"`
	Items       []PurchaseOrderItemResponse `json:"items"`
}

// StockResponse proyección de stock de un producto.
type StockResponse struct {
	ProductID string          `json:"product_id"`
	Stock     decimal.Decimal `json:"stock"`
}

// StockAuditResponse compara la proyección cacheada contra la suma del libro.
type StockAuditResponse struct {
	ProductID string          `json:"product_id"`
	Cached    decimal.Decimal `json:"cached"`
	Ledger    decimal.Decimal `json:"ledger"`
	Drift     decimal.Decimal `json:"drift"` // cached - ledger; cero = consistente
}

// BatchResponse lote de un producto.
type BatchResponse struct {
	ID           string          `json:"id"`
	Quantity     decimal.Decimal `json:"quantity"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
	ReceivedDate time.Time       `json:"received_date"`
}

// MovementResponse entrada del libro de movimientos.
type MovementResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	BatchID          *string         `json:"batch_id,omitempty"`
	Type             string          `json:"type"`
	Quantity         decimal.Decimal `json:"quantity"`
	Description      string          `json:"description,omitempty"`
	ReconciliationID *string         `json:"reconciliation_id,omitempty"`
	Seq              int64           `json:"seq"`
	CreatedAt        time.Time       `json:"created_at"`
}

// LowStockProductResponse producto en o bajo su nivel de reorden.
type LowStockProductResponse struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Stock        decimal.Decimal `json:"stock"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}

// StartReconciliationRequest body para POST /api/reconciliations.
type StartReconciliationRequest struct {
	Notes string `json:"notes,omitempty"`
}

// RecordCountRequest body para POST /api/reconciliations/:id/counts.
type RecordCountRequest struct {
	ProductID       string          `json:"product_id"`
	CountedQuantity decimal.Decimal `json:"counted_quantity"`
}

// ReconciliationCountResponse conteo registrado.
type ReconciliationCountResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	SystemQuantity  decimal.Decimal `json:"system_quantity"`
	CountedQuantity decimal.Decimal `json:"counted_quantity"`
	Delta           decimal.Decimal `json:"delta"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ReconciliationResponse sesión de conteo con sus conteos.
type ReconciliationResponse struct {
	ID       string                        `json:"id"`
	Date     time.Time                     `json:"date"`
	Status   string                        `json:"status"`
	Notes    string                        `json:"notes,omitempty"`
	ClosedAt *time.Time                    `json:"closed_at,omitempty"`
	Counts   []ReconciliationCountResponse `json:"counts,omitempty"`
}
