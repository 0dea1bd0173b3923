package dto

import "github.com/shopspring/decimal"

// ResolvePOSItemRequest body para POST /api/pos/resolve.
type ResolvePOSItemRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ResolvePOSItemResponse resultado de la resolución.
type ResolvePOSItemResponse struct {
	Outcome     string           `json:"outcome"` // MATCHED, CREATED, QUEUED
	MappingID   string           `json:"mapping_id,omitempty"`
	ProductID   string           `json:"product_id,omitempty"`
	Confidence  *decimal.Decimal `json:"confidence,omitempty"`
	NeedsReview bool             `json:"needs_review"`
	Score       float64          `json:"score,omitempty"`
}

// POSSyncLineRequest línea cruda del reporte de ventas del POS.
type POSSyncLineRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
}

// POSSyncRequest body para POST /api/pos/sync.
type POSSyncRequest struct {
	Lines []POSSyncLineRequest `json:"lines"`
}

// POSSyncLineResponse resultado por línea de la sincronización.
type POSSyncLineResponse struct {
	Name      string          `json:"name"`
	Outcome   string          `json:"outcome"`
	ProductID string          `json:"product_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// POSSyncResponse resumen de la sincronización.
type POSSyncResponse struct {
	SaleID     string                `json:"sale_id,omitempty"`
	SaleNumber string                `json:"sale_number,omitempty"`
	Queued     int                   `json:"queued"`
	Lines      []POSSyncLineResponse `json:"lines"`
}
