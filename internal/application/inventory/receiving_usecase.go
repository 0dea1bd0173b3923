package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// ReceivingUseCase aplica recepciones de órdenes de compra: crea o incrementa
// el lote correspondiente, escribe el movimiento PURCHASE_RECEIPT y avanza el
// estado de la orden. Las entregas parciales repetidas son representables.
type ReceivingUseCase struct {
	txRunner TxRunner
	poRepo   repository.PurchaseOrderRepository
}

// NewReceivingUseCase construye el caso de uso; poRepo atiende las lecturas
// fuera de transacción.
func NewReceivingUseCase(txRunner TxRunner, poRepo repository.PurchaseOrderRepository) *ReceivingUseCase {
	return &ReceivingUseCase{txRunner: txRunner, poRepo: poRepo}
}

// ReceiveItemInput es la entrada de ReceivePurchaseOrderItem.
type ReceiveItemInput struct {
	POItemID         string
	ReceivedQuantity decimal.Decimal
	ExpiryDate       *time.Time // nil = lote sin vencimiento
}

// ReceiveResult resume el efecto de la recepción.
type ReceiveResult struct {
	PurchaseOrderID string
	Status          entity.POStatus
	BatchID         string
	NewStock        decimal.Decimal
}

// ReceivePurchaseOrderItem valida 0 < cantidad <= pendiente y aplica la
// recepción en una sola transacción. Sobre-recepción → ErrOverReceipt sin
// efectos. Cuando todos los ítems quedan completos, la orden pasa a RECEIVED
// y se estampa ReceivedAt; si no, queda en PARTIALLY_RECEIVED.
func (uc *ReceivingUseCase) ReceivePurchaseOrderItem(ctx context.Context, in ReceiveItemInput) (*ReceiveResult, error) {
	if in.POItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.ReceivedQuantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var result *ReceiveResult

	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		item, err := r.PurchaseOrders.GetItemForUpdate(ctx, in.POItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		po, err := r.PurchaseOrders.GetForUpdate(ctx, item.PurchaseOrderID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status != entity.POStatusOrdered && po.Status != entity.POStatusPartiallyReceived {
			return domain.ErrInvalidTransition
		}
		if in.ReceivedQuantity.GreaterThan(item.Pending()) {
			return domain.ErrOverReceipt
		}

		product, err := r.Products.GetForUpdate(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		// Lote por (producto, vencimiento): incrementar si existe, crear si no
		batch, err := r.Batches.GetForReceiptForUpdate(ctx, item.ProductID, in.ExpiryDate)
		if err != nil {
			return err
		}
		if batch == nil {
			batch = &entity.ProductBatch{
				ID:           uuid.New().String(),
				ProductID:    item.ProductID,
				Quantity:     in.ReceivedQuantity,
				ExpiryDate:   in.ExpiryDate,
				ReceivedDate: now,
			}
			if err := r.Batches.Create(ctx, batch); err != nil {
				return err
			}
		} else {
			if err := r.Batches.UpdateQuantity(ctx, batch.ID, batch.Quantity.Add(in.ReceivedQuantity)); err != nil {
				return err
			}
		}

		batchID := batch.ID
		mov := &entity.StockMovement{
			ID:          uuid.New().String(),
			ProductID:   item.ProductID,
			BatchID:     &batchID,
			Type:        entity.MovementPurchaseReceipt,
			Quantity:    in.ReceivedQuantity,
			Description: "Recepción OC " + po.OrderNumber,
			CreatedAt:   now,
		}
		if err := r.Movements.Create(ctx, mov); err != nil {
			return err
		}

		newReceived := item.ReceivedQuantity.Add(in.ReceivedQuantity)
		if err := r.PurchaseOrders.UpdateItemReceived(ctx, item.ID, newReceived); err != nil {
			return err
		}
		newStock := product.Stock.Add(in.ReceivedQuantity)
		if err := r.Products.UpdateStock(ctx, product.ID, newStock); err != nil {
			return err
		}

		// ¿Quedó la orden completa?
		items, err := r.PurchaseOrders.ListItems(ctx, po.ID)
		if err != nil {
			return err
		}
		complete := true
		for _, it := range items {
			received := it.ReceivedQuantity
			if it.ID == item.ID {
				received = newReceived
			}
			if received.LessThan(it.Quantity) {
				complete = false
				break
			}
		}
		next := entity.POStatusPartiallyReceived
		if complete {
			next = entity.POStatusReceived
		}
		if !po.Status.CanTransitionTo(next) {
			return domain.ErrInvalidTransition
		}
		po.Status = next
		po.UpdatedAt = now
		if complete {
			receivedAt := now
			po.ReceivedAt = &receivedAt
		}
		if err := r.PurchaseOrders.UpdateStatus(ctx, po); err != nil {
			return err
		}

		result = &ReceiveResult{
			PurchaseOrderID: po.ID,
			Status:          po.Status,
			BatchID:         batch.ID,
			NewStock:        newStock,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// PurchaseOrderView es la orden con sus líneas y el proveedor, para consulta.
type PurchaseOrderView struct {
	Order  *entity.PurchaseOrder
	Items  []*entity.PurchaseOrderItem
	Vendor *entity.Vendor
}

// Get devuelve la orden completa para seguimiento de la recepción.
func (uc *ReceivingUseCase) Get(ctx context.Context, purchaseOrderID string) (*PurchaseOrderView, error) {
	if purchaseOrderID == "" {
		return nil, domain.ErrInvalidInput
	}
	po, err := uc.poRepo.GetByID(ctx, purchaseOrderID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.poRepo.ListItems(ctx, purchaseOrderID)
	if err != nil {
		return nil, err
	}
	vendor, err := uc.poRepo.GetVendor(ctx, po.VendorID)
	if err != nil {
		return nil, err
	}
	return &PurchaseOrderView{Order: po, Items: items, Vendor: vendor}, nil
}

// MarkOrdered transiciona la orden DRAFT → ORDERED y estampa SentAt.
func (uc *ReceivingUseCase) MarkOrdered(ctx context.Context, purchaseOrderID string) error {
	if purchaseOrderID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.Run(ctx, func(r TxRepos) error {
		po, err := r.PurchaseOrders.GetForUpdate(ctx, purchaseOrderID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if !po.Status.CanTransitionTo(entity.POStatusOrdered) {
			return domain.ErrInvalidTransition
		}
		po.Status = entity.POStatusOrdered
		po.SentAt = &now
		po.UpdatedAt = now
		return r.PurchaseOrders.UpdateStatus(ctx, po)
	})
}
