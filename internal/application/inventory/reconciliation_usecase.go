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

// ReconciliationUseCase maneja sesiones de conteo físico: OPEN → CLOSED,
// sin reapertura. Cada conteo compara lo contado contra la proyección y, si
// hay discrepancia, escribe un movimiento RECONCILIATION etiquetado con la
// sesión y corrige la caché, todo en la misma transacción.
type ReconciliationUseCase struct {
	txRunner TxRunner
	recRepo  repository.ReconciliationRepository
}

// NewReconciliationUseCase construye el caso de uso.
func NewReconciliationUseCase(txRunner TxRunner, recRepo repository.ReconciliationRepository) *ReconciliationUseCase {
	return &ReconciliationUseCase{txRunner: txRunner, recRepo: recRepo}
}

// Start abre una sesión nueva de conteo.
func (uc *ReconciliationUseCase) Start(ctx context.Context, notes string) (*entity.Reconciliation, error) {
	rec := &entity.Reconciliation{
		ID:     uuid.New().String(),
		Date:   time.Now(),
		Status: entity.ReconciliationOpen,
		Notes:  notes,
	}
	if err := uc.recRepo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// RecordCount registra el conteo físico de un producto dentro de la sesión.
// Bloquea la fila del producto solo durante el conteo, para que ninguna venta
// o recepción aterrice "dentro" de la ventana contada y corrompa el delta.
// Delta cero deja un marcador explícito de "sin discrepancia".
func (uc *ReconciliationUseCase) RecordCount(ctx context.Context, reconciliationID, productID string, countedQuantity decimal.Decimal) (*entity.ReconciliationCount, error) {
	if reconciliationID == "" || productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if countedQuantity.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var count *entity.ReconciliationCount

	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		rec, err := r.Reconciliations.GetForUpdate(ctx, reconciliationID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		if rec.Status == entity.ReconciliationClosed {
			return domain.ErrReconciliationClosed
		}

		product, err := r.Products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		delta := countedQuantity.Sub(product.Stock)
		count = &entity.ReconciliationCount{
			ID:               uuid.New().String(),
			ReconciliationID: reconciliationID,
			ProductID:        productID,
			SystemQuantity:   product.Stock,
			CountedQuantity:  countedQuantity,
			Delta:            delta,
			CreatedAt:        now,
		}
		if err := r.Reconciliations.UpsertCount(ctx, count); err != nil {
			return err
		}
		if delta.IsZero() {
			return nil
		}

		recID := reconciliationID
		mov := &entity.StockMovement{
			ID:               uuid.New().String(),
			ProductID:        productID,
			Type:             entity.MovementReconciliation,
			Quantity:         delta,
			Description:      "Ajuste por conteo físico",
			ReconciliationID: &recID,
			CreatedAt:        now,
		}
		if err := r.Movements.Create(ctx, mov); err != nil {
			return err
		}
		return r.Products.UpdateStock(ctx, productID, countedQuantity)
	})
	if err != nil {
		return nil, err
	}
	return count, nil
}

// Close cierra la sesión. Idempotente: cerrar una sesión ya cerrada es no-op.
// Cada conteo dejó su movimiento o su marcador en la misma transacción que lo
// registró, así que al llegar aquí la sesión siempre está consistente.
func (uc *ReconciliationUseCase) Close(ctx context.Context, reconciliationID string) error {
	if reconciliationID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.Run(ctx, func(r TxRepos) error {
		rec, err := r.Reconciliations.GetForUpdate(ctx, reconciliationID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		if rec.Status == entity.ReconciliationClosed {
			return nil
		}
		rec.Status = entity.ReconciliationClosed
		rec.ClosedAt = &now
		return r.Reconciliations.Close(ctx, rec)
	})
}

// GetSession devuelve la sesión con sus conteos (para consulta y auditoría).
func (uc *ReconciliationUseCase) GetSession(ctx context.Context, reconciliationID string) (*entity.Reconciliation, []*entity.ReconciliationCount, error) {
	rec, err := uc.recRepo.GetByID(ctx, reconciliationID)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, domain.ErrNotFound
	}
	counts, err := uc.recRepo.ListCounts(ctx, reconciliationID)
	if err != nil {
		return nil, nil, err
	}
	return rec, counts, nil
}
