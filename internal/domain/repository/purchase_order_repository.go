package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia de órdenes de compra.
// La creación de órdenes es del CRUD externo; el motor solo las recibe.
type PurchaseOrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	GetVendor(ctx context.Context, vendorID string) (*entity.Vendor, error)
	// GetForUpdate bloquea la cabecera de la orden durante la recepción.
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	GetItemForUpdate(ctx context.Context, itemID string) (*entity.PurchaseOrderItem, error)
	ListItems(ctx context.Context, purchaseOrderID string) ([]*entity.PurchaseOrderItem, error)
	UpdateItemReceived(ctx context.Context, itemID string, receivedQuantity decimal.Decimal) error
	// UpdateStatus persiste estado y marcas de tiempo de la cabecera.
	UpdateStatus(ctx context.Context, po *entity.PurchaseOrder) error
}
