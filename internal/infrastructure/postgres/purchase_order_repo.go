package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// PurchaseOrderRepo implementa repository.PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepo crea el repositorio; q puede ser el pool o una transacción.
func NewPurchaseOrderRepo(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const poColumns = `id, vendor_id, order_number, order_date, status, total_amount,
	notes, sent_at, received_at, created_at, updated_at`

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1 FOR UPDATE`
	return r.scanOne(ctx, query, id)
}

func (r *PurchaseOrderRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&po.ID, &po.VendorID, &po.OrderNumber, &po.OrderDate, &po.Status,
		&po.TotalAmount, &po.Notes, &po.SentAt, &po.ReceivedAt, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error al consultar orden de compra: %w", err)
	}
	return &po, nil
}

func (r *PurchaseOrderRepo) GetVendor(ctx context.Context, vendorID string) (*entity.Vendor, error) {
	query := `SELECT id, name, contact_person, email, phone, address, is_active
		FROM vendors WHERE id = $1`
	var v entity.Vendor
	err := r.q.QueryRow(ctx, query, vendorID).Scan(
		&v.ID, &v.Name, &v.ContactPerson, &v.Email, &v.Phone, &v.Address, &v.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error al consultar proveedor: %w", err)
	}
	return &v, nil
}

func (r *PurchaseOrderRepo) GetItemForUpdate(ctx context.Context, itemID string) (*entity.PurchaseOrderItem, error) {
	query := `SELECT id, purchase_order_id, product_id, quantity, received_quantity, unit_cost, total_cost
		FROM purchase_order_items WHERE id = $1 FOR UPDATE`
	var it entity.PurchaseOrderItem
	err := r.q.QueryRow(ctx, query, itemID).Scan(
		&it.ID, &it.PurchaseOrderID, &it.ProductID,
		&it.Quantity, &it.ReceivedQuantity, &it.UnitCost, &it.TotalCost,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error al consultar ítem de orden: %w", err)
	}
	return &it, nil
}

func (r *PurchaseOrderRepo) ListItems(ctx context.Context, purchaseOrderID string) ([]*entity.PurchaseOrderItem, error) {
	query := `SELECT id, purchase_order_id, product_id, quantity, received_quantity, unit_cost, total_cost
		FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, purchaseOrderID)
	if err != nil {
		return nil, fmt.Errorf("error al listar ítems de orden: %w", err)
	}
	defer rows.Close()

	var items []*entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(
			&it.ID, &it.PurchaseOrderID, &it.ProductID,
			&it.Quantity, &it.ReceivedQuantity, &it.UnitCost, &it.TotalCost,
		); err != nil {
			return nil, fmt.Errorf("error al leer ítem de orden: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (r *PurchaseOrderRepo) UpdateItemReceived(ctx context.Context, itemID string, receivedQuantity decimal.Decimal) error {
	query := `UPDATE purchase_order_items SET received_quantity = $1 WHERE id = $2`
	tag, err := r.q.Exec(ctx, query, receivedQuantity, itemID)
	if err != nil {
		return fmt.Errorf("error al actualizar ítem de orden: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ítem de orden %s no existe", itemID)
	}
	return nil
}

func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `UPDATE purchase_orders
		SET status = $1, sent_at = $2, received_at = $3, updated_at = NOW()
		WHERE id = $4`
	tag, err := r.q.Exec(ctx, query, po.Status, po.SentAt, po.ReceivedAt, po.ID)
	if err != nil {
		return fmt.Errorf("error al actualizar orden de compra: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("orden de compra %s no existe", po.ID)
	}
	return nil
}
