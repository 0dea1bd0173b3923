package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// SaleUseCase confirma ventas multi-línea de forma atómica: valida stock,
// consume lotes en orden FEFO y escribe un movimiento SALE por cada
// (producto, lote) afectado. Si alguna línea no se puede satisfacer, la venta
// completa falla sin efectos (ningún movimiento, ninguna fila de venta).
type SaleUseCase struct {
	txRunner TxRunner
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner TxRunner) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner}
}

// SaleLineInput es una línea solicitada. UnitPrice nil usa el precio del producto.
type SaleLineInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice *decimal.Decimal
}

// CommitSaleInput es la entrada de CommitSale.
type CommitSaleInput struct {
	UserID     string
	CustomerID *string
	Lines      []SaleLineInput
	Tax        decimal.Decimal
	Discount   decimal.Decimal
}

// CommitSale valida y confirma la venta dentro de una sola transacción.
// Los productos se bloquean en orden de ID ascendente para que ventas
// concurrentes sobre conjuntos solapados no se bloqueen mutuamente en cruz.
func (uc *SaleUseCase) CommitSale(ctx context.Context, in CommitSaleInput) (*entity.Sale, []*entity.SaleItem, error) {
	if in.UserID == "" || len(in.Lines) == 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	if in.Tax.LessThan(decimal.Zero) || in.Discount.LessThan(decimal.Zero) {
		return nil, nil, domain.ErrInvalidInput
	}
	// Cantidad solicitada acumulada por producto (una misma venta puede repetir producto)
	requested := make(map[string]decimal.Decimal)
	for _, line := range in.Lines {
		if line.ProductID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, nil, domain.ErrInvalidInput
		}
		requested[line.ProductID] = requested[line.ProductID].Add(line.Quantity)
	}
	productIDs := make([]string, 0, len(requested))
	for id := range requested {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	now := time.Now()
	saleNumber := fmt.Sprintf("SALE-%d", now.UnixNano())

	var sale *entity.Sale
	var items []*entity.SaleItem

	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		// 1) Bloquear productos en orden global y validar disponibilidad completa
		// antes de escribir nada: la validación es libre de efectos.
		products := make(map[string]*entity.Product, len(productIDs))
		for _, id := range productIDs {
			product, err := r.Products.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if !product.IsActive {
				return domain.ErrInvalidInput
			}
			if product.Stock.LessThan(requested[id]) {
				return &domain.InsufficientStockError{
					ProductID: id,
					Requested: requested[id],
					Available: product.Stock,
				}
			}
			products[id] = product
		}

		// 2) Consumir lotes FEFO y escribir un movimiento SALE por lote tocado
		for _, id := range productIDs {
			if err := uc.depleteFEFO(ctx, r, id, requested[id], saleNumber, now); err != nil {
				return err
			}
			newStock := products[id].Stock.Sub(requested[id])
			if err := r.Products.UpdateStock(ctx, id, newStock); err != nil {
				return err
			}
		}

		// 3) Cabecera, líneas y totales (aritmética decimal, nunca float binario)
		var subtotalSum decimal.Decimal
		saleID := uuid.New().String()
		items = make([]*entity.SaleItem, 0, len(in.Lines))
		for _, line := range in.Lines {
			unitPrice := products[line.ProductID].Price
			if line.UnitPrice != nil {
				if line.UnitPrice.LessThan(decimal.Zero) {
					return domain.ErrInvalidInput
				}
				unitPrice = *line.UnitPrice
			}
			lineSubtotal := line.Quantity.Mul(unitPrice)
			subtotalSum = subtotalSum.Add(lineSubtotal)
			items = append(items, &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: unitPrice,
				Subtotal:  lineSubtotal,
			})
		}
		sale = &entity.Sale{
			ID:         saleID,
			SaleNumber: saleNumber,
			UserID:     in.UserID,
			CustomerID: in.CustomerID,
			Subtotal:   subtotalSum,
			Tax:        in.Tax,
			Discount:   in.Discount,
			Total:      subtotalSum.Add(in.Tax).Sub(in.Discount),
			Status:     entity.SaleStatusCompleted,
			CreatedAt:  now,
		}
		if err := r.Sales.Create(ctx, sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := r.Sales.CreateItem(ctx, item); err != nil {
				return err
			}
		}

		// 4) Fidelización: un punto por unidad monetaria entera del total
		if in.CustomerID != nil {
			customer, err := r.Customers.GetByID(ctx, *in.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return domain.ErrNotFound
			}
			points := sale.Total.Floor()
			if points.GreaterThan(decimal.Zero) {
				if err := r.Customers.AddLoyaltyPoints(ctx, customer.ID, points); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return sale, items, nil
}

// depleteFEFO consume qty del producto lote a lote (vence-primero-sale-primero).
// Si la caché prometió más de lo que cubren los lotes, el remanente se registra
// como movimiento sin lote para que la suma del libro siga cuadrando; la
// discrepancia de lotes queda para la siguiente reconciliación.
func (uc *SaleUseCase) depleteFEFO(ctx context.Context, r TxRepos, productID string, qty decimal.Decimal, saleNumber string, now time.Time) error {
	batches, err := r.Batches.ListByProductFEFOForUpdate(ctx, productID)
	if err != nil {
		return err
	}
	remaining := qty
	for _, batch := range batches {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		take := decimal.Min(batch.Quantity, remaining)
		if !take.GreaterThan(decimal.Zero) {
			continue
		}
		if err := r.Batches.UpdateQuantity(ctx, batch.ID, batch.Quantity.Sub(take)); err != nil {
			return err
		}
		batchID := batch.ID
		mov := &entity.StockMovement{
			ID:          uuid.New().String(),
			ProductID:   productID,
			BatchID:     &batchID,
			Type:        entity.MovementSale,
			Quantity:    take.Neg(),
			Description: "Venta " + saleNumber,
			CreatedAt:   now,
		}
		if err := r.Movements.Create(ctx, mov); err != nil {
			return err
		}
		remaining = remaining.Sub(take)
	}
	if remaining.GreaterThan(decimal.Zero) {
		mov := &entity.StockMovement{
			ID:          uuid.New().String(),
			ProductID:   productID,
			Type:        entity.MovementSale,
			Quantity:    remaining.Neg(),
			Description: "Venta " + saleNumber + " (sin lote)",
			CreatedAt:   now,
		}
		if err := r.Movements.Create(ctx, mov); err != nil {
			return err
		}
	}
	return nil
}
