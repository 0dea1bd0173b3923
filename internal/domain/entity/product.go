package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la tienda.
// Stock es una proyección materializada del libro de movimientos: se puede
// reconstruir en cualquier momento sumando los movimientos del producto.
// La baja es lógica (IsActive); nunca se borra mientras exista historial.
type Product struct {
	ID           string
	SKU          string // código único
	Barcode      string // opcional, único si está presente
	Name         string
	Category     string
	Description  string
	Price        decimal.Decimal // precio de venta
	CostPrice    decimal.Decimal // costo de compra
	Stock        decimal.Decimal // proyección cacheada, nunca negativa
	ReorderLevel decimal.Decimal // umbral de alerta de stock bajo
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
