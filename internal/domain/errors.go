package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrOverReceipt            = errors.New("cantidad recibida excede lo pendiente de la orden")
	ErrReconciliationClosed   = errors.New("la sesión de reconciliación está cerrada")
	ErrLedgerWriteFailed      = errors.New("falló la escritura en el libro de movimientos")
	ErrConcurrentModification = errors.New("conflicto de concurrencia, reintentar la operación")
	ErrInvalidTransition      = errors.New("transición de estado inválida")
)

// InsufficientStockError detalla qué producto no alcanzó y cuánto había disponible.
// errors.Is(err, ErrInsufficientStock) sigue funcionando para el manejo genérico.
type InsufficientStockError struct {
	ProductID string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: solicitado %s, disponible %s",
		e.ProductID, e.Requested.String(), e.Available.String())
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
