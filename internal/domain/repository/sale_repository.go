package repository

import (
	"context"

	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia de ventas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	ListItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error)
}
