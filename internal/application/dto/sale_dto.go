package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest es una línea del body de POST /api/sales.
// UnitPrice es opcional: si falta se usa el precio de catálogo del producto.
type SaleLineRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerID *string           `json:"customer_id,omitempty"`
	Lines      []SaleLineRequest `json:"lines"`
	Tax        decimal.Decimal   `json:"tax"`
	Discount   decimal.Decimal   `json:"discount"`
}

// SaleItemResponse línea de venta confirmada.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta confirmada con sus líneas.
type SaleResponse struct {
	ID         string             `json:"id"`
	SaleNumber string             `json:"sale_number"`
	CustomerID *string            `json:"customer_id,omitempty"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	Tax        decimal.Decimal    `json:"tax"`
	Discount   decimal.Decimal    `json:"discount"`
	Total      decimal.Decimal    `json:"total"`
	Status     string             `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	Items      []SaleItemResponse `json:"items"`
}
