package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/retail-ledger/internal/application/inventory"
	"github.com/tu-usuario/retail-ledger/internal/domain"
)

// TxRunner ejecuta casos de uso dentro de una transacción con aislamiento
// repeatable read. Los repositorios que recibe el callback quedan atados a la
// transacción; todo se confirma o todo se revierte.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner sobre el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

var _ inventory.TxRunner = (*TxRunner)(nil)

// Run abre la transacción, arma los repositorios atados a ella y ejecuta fn.
// Conflictos de serialización y deadlocks se traducen a
// domain.ErrConcurrentModification para que el caller reintente.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return fmt.Errorf("no se pudo iniciar la transacción: %w", err)
	}
	defer func() {
		// Rollback es no-op si ya hubo commit
		_ = tx.Rollback(ctx)
	}()

	repos := inventory.TxRepos{
		Movements:       NewStockMovementRepo(tx),
		Batches:         NewProductBatchRepo(tx),
		Products:        NewProductRepo(tx),
		Sales:           NewSaleRepo(tx),
		PurchaseOrders:  NewPurchaseOrderRepo(tx),
		Reconciliations: NewReconciliationRepo(tx),
		Customers:       NewCustomerRepo(tx),
	}

	if err := fn(repos); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", domain.ErrConcurrentModification, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", domain.ErrConcurrentModification, err)
		}
		return fmt.Errorf("no se pudo confirmar la transacción: %w", err)
	}
	return nil
}
