package inventory_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/application/inventory"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un memStore compartido y repositorios finos encima.
// El memTxRunner serializa las "transacciones" con un mutex y restaura un
// snapshot del estado cuando el callback falla, imitando el rollback.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	batches   map[string]*entity.ProductBatch
	movements []*entity.StockMovement
	sales     map[string]*entity.Sale
	saleItems map[string][]*entity.SaleItem
	pos       map[string]*entity.PurchaseOrder
	poItems   map[string]*entity.PurchaseOrderItem
	recs      map[string]*entity.Reconciliation
	counts    map[string]*entity.ReconciliationCount // clave: recID + "|" + productID
	customers map[string]*entity.Customer
	vendors   map[string]*entity.Vendor
	seq       int64
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[string]*entity.Product),
		batches:   make(map[string]*entity.ProductBatch),
		sales:     make(map[string]*entity.Sale),
		saleItems: make(map[string][]*entity.SaleItem),
		pos:       make(map[string]*entity.PurchaseOrder),
		poItems:   make(map[string]*entity.PurchaseOrderItem),
		recs:      make(map[string]*entity.Reconciliation),
		counts:    make(map[string]*entity.ReconciliationCount),
		customers: make(map[string]*entity.Customer),
		vendors:   make(map[string]*entity.Vendor),
	}
}

func (s *memStore) snapshot() *memStore {
	snap := newMemStore()
	for k, v := range s.products {
		cp := *v
		snap.products[k] = &cp
	}
	for k, v := range s.batches {
		cp := *v
		snap.batches[k] = &cp
	}
	snap.movements = make([]*entity.StockMovement, len(s.movements))
	for i, v := range s.movements {
		cp := *v
		snap.movements[i] = &cp
	}
	for k, v := range s.sales {
		cp := *v
		snap.sales[k] = &cp
	}
	for k, v := range s.saleItems {
		items := make([]*entity.SaleItem, len(v))
		for i, it := range v {
			cp := *it
			items[i] = &cp
		}
		snap.saleItems[k] = items
	}
	for k, v := range s.pos {
		cp := *v
		snap.pos[k] = &cp
	}
	for k, v := range s.poItems {
		cp := *v
		snap.poItems[k] = &cp
	}
	for k, v := range s.recs {
		cp := *v
		snap.recs[k] = &cp
	}
	for k, v := range s.counts {
		cp := *v
		snap.counts[k] = &cp
	}
	for k, v := range s.customers {
		cp := *v
		snap.customers[k] = &cp
	}
	for k, v := range s.vendors {
		cp := *v
		snap.vendors[k] = &cp
	}
	snap.seq = s.seq
	return snap
}

func (s *memStore) restore(snap *memStore) {
	s.products = snap.products
	s.batches = snap.batches
	s.movements = snap.movements
	s.sales = snap.sales
	s.saleItems = snap.saleItems
	s.pos = snap.pos
	s.poItems = snap.poItems
	s.recs = snap.recs
	s.counts = snap.counts
	s.customers = snap.customers
	s.vendors = snap.vendors
	s.seq = snap.seq
}

func (s *memStore) repos() inventory.TxRepos {
	return inventory.TxRepos{
		Movements:       &memMovementRepo{s: s},
		Batches:         &memBatchRepo{s: s},
		Products:        &memProductRepo{s: s},
		Sales:           &memSaleRepo{s: s},
		PurchaseOrders:  &memPORepo{s: s},
		Reconciliations: &memRecRepo{s: s},
		Customers:       &memCustomerRepo{s: s},
	}
}

type memTxRunner struct {
	s *memStore
}

var _ inventory.TxRunner = (*memTxRunner)(nil)

func (tr *memTxRunner) Run(_ context.Context, fn func(r inventory.TxRepos) error) error {
	tr.s.mu.Lock()
	defer tr.s.mu.Unlock()
	snap := tr.s.snapshot()
	if err := fn(tr.s.repos()); err != nil {
		tr.s.restore(snap)
		return err
	}
	return nil
}

// ── ProductRepository ─────────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProductRepo) UpdateStock(_ context.Context, id string, stock decimal.Decimal) error {
	p, ok := r.s.products[id]
	if !ok {
		return nil
	}
	p.Stock = stock
	return nil
}

func (r *memProductRepo) ListActive(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.IsActive {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memProductRepo) ListBelowReorder(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.IsActive && p.Stock.LessThanOrEqual(p.ReorderLevel) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stock.LessThan(out[j].Stock) })
	return out, nil
}

// ── ProductBatchRepository ────────────────────────────────────────────────────

type memBatchRepo struct{ s *memStore }

var _ repository.ProductBatchRepository = (*memBatchRepo)(nil)

func (r *memBatchRepo) fefo(productID string) []*entity.ProductBatch {
	var out []*entity.ProductBatch
	for _, b := range r.s.batches {
		if b.ProductID == productID && b.Quantity.GreaterThan(decimal.Zero) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		bi, bj := out[i], out[j]
		switch {
		case bi.ExpiryDate == nil && bj.ExpiryDate == nil:
		case bi.ExpiryDate == nil:
			return false
		case bj.ExpiryDate == nil:
			return true
		case !bi.ExpiryDate.Equal(*bj.ExpiryDate):
			return bi.ExpiryDate.Before(*bj.ExpiryDate)
		}
		if !bi.ReceivedDate.Equal(bj.ReceivedDate) {
			return bi.ReceivedDate.Before(bj.ReceivedDate)
		}
		return bi.ID < bj.ID
	})
	return out
}

func (r *memBatchRepo) ListByProductFEFO(_ context.Context, productID string) ([]*entity.ProductBatch, error) {
	return r.fefo(productID), nil
}

func (r *memBatchRepo) ListByProductFEFOForUpdate(_ context.Context, productID string) ([]*entity.ProductBatch, error) {
	return r.fefo(productID), nil
}

func (r *memBatchRepo) GetForReceiptForUpdate(_ context.Context, productID string, expiry *time.Time) (*entity.ProductBatch, error) {
	var found *entity.ProductBatch
	for _, b := range r.s.batches {
		if b.ProductID != productID {
			continue
		}
		sameExpiry := (b.ExpiryDate == nil && expiry == nil) ||
			(b.ExpiryDate != nil && expiry != nil && b.ExpiryDate.Equal(*expiry))
		if !sameExpiry {
			continue
		}
		if found == nil || b.ReceivedDate.Before(found.ReceivedDate) {
			cp := *b
			found = &cp
		}
	}
	return found, nil
}

func (r *memBatchRepo) Create(_ context.Context, batch *entity.ProductBatch) error {
	cp := *batch
	r.s.batches[batch.ID] = &cp
	return nil
}

func (r *memBatchRepo) UpdateQuantity(_ context.Context, id string, quantity decimal.Decimal) error {
	if b, ok := r.s.batches[id]; ok {
		b.Quantity = quantity
	}
	return nil
}

// ── StockMovementRepository ───────────────────────────────────────────────────

type memMovementRepo struct{ s *memStore }

var _ repository.StockMovementRepository = (*memMovementRepo)(nil)

func (r *memMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.seq++
	m.Seq = r.s.seq
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) ListByProduct(_ context.Context, productID string, since *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID != productID {
			continue
		}
		if since != nil && m.CreatedAt.Before(*since) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Seq < out[j].Seq
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memMovementRepo) SumByProduct(_ context.Context, productID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			sum = sum.Add(m.Quantity)
		}
	}
	return sum, nil
}

// ── SaleRepository ────────────────────────────────────────────────────────────

type memSaleRepo struct{ s *memStore }

var _ repository.SaleRepository = (*memSaleRepo)(nil)

func (r *memSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	cp := *sale
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *memSaleRepo) CreateItem(_ context.Context, item *entity.SaleItem) error {
	cp := *item
	r.s.saleItems[item.SaleID] = append(r.s.saleItems[item.SaleID], &cp)
	return nil
}

func (r *memSaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}

func (r *memSaleRepo) ListItems(_ context.Context, saleID string) ([]*entity.SaleItem, error) {
	items := r.s.saleItems[saleID]
	out := make([]*entity.SaleItem, len(items))
	for i, it := range items {
		cp := *it
		out[i] = &cp
	}
	return out, nil
}

// ── PurchaseOrderRepository ───────────────────────────────────────────────────

type memPORepo struct{ s *memStore }

var _ repository.PurchaseOrderRepository = (*memPORepo)(nil)

func (r *memPORepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	po, ok := r.s.pos[id]
	if !ok {
		return nil, nil
	}
	cp := *po
	return &cp, nil
}

func (r *memPORepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *memPORepo) GetVendor(_ context.Context, vendorID string) (*entity.Vendor, error) {
	v, ok := r.s.vendors[vendorID]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *memPORepo) GetItemForUpdate(_ context.Context, itemID string) (*entity.PurchaseOrderItem, error) {
	it, ok := r.s.poItems[itemID]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *memPORepo) ListItems(_ context.Context, purchaseOrderID string) ([]*entity.PurchaseOrderItem, error) {
	var out []*entity.PurchaseOrderItem
	for _, it := range r.s.poItems {
		if it.PurchaseOrderID == purchaseOrderID {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memPORepo) UpdateItemReceived(_ context.Context, itemID string, receivedQuantity decimal.Decimal) error {
	if it, ok := r.s.poItems[itemID]; ok {
		it.ReceivedQuantity = receivedQuantity
	}
	return nil
}

func (r *memPORepo) UpdateStatus(_ context.Context, po *entity.PurchaseOrder) error {
	cp := *po
	r.s.pos[po.ID] = &cp
	return nil
}

// ── ReconciliationRepository ──────────────────────────────────────────────────

type memRecRepo struct{ s *memStore }

var _ repository.ReconciliationRepository = (*memRecRepo)(nil)

func countKey(recID, productID string) string {
	return recID + "|" + productID
}

func (r *memRecRepo) Create(_ context.Context, rec *entity.Reconciliation) error {
	cp := *rec
	r.s.recs[rec.ID] = &cp
	return nil
}

func (r *memRecRepo) GetByID(_ context.Context, id string) (*entity.Reconciliation, error) {
	rec, ok := r.s.recs[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *memRecRepo) GetForUpdate(ctx context.Context, id string) (*entity.Reconciliation, error) {
	return r.GetByID(ctx, id)
}

func (r *memRecRepo) UpsertCount(_ context.Context, count *entity.ReconciliationCount) error {
	cp := *count
	r.s.counts[countKey(count.ReconciliationID, count.ProductID)] = &cp
	return nil
}

func (r *memRecRepo) ListCounts(_ context.Context, reconciliationID string) ([]*entity.ReconciliationCount, error) {
	var out []*entity.ReconciliationCount
	for key, c := range r.s.counts {
		if strings.HasPrefix(key, reconciliationID+"|") {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (r *memRecRepo) Close(_ context.Context, rec *entity.Reconciliation) error {
	cp := *rec
	r.s.recs[rec.ID] = &cp
	return nil
}

// ── CustomerRepository ────────────────────────────────────────────────────────

type memCustomerRepo struct{ s *memStore }

var _ repository.CustomerRepository = (*memCustomerRepo)(nil)

func (r *memCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCustomerRepo) AddLoyaltyPoints(_ context.Context, id string, points decimal.Decimal) error {
	if c, ok := r.s.customers[id]; ok {
		c.LoyaltyPoints = c.LoyaltyPoints.Add(points)
	}
	return nil
}

// ── Builders ──────────────────────────────────────────────────────────────────

func qty(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func (s *memStore) addProduct(id, name string, stock, price decimal.Decimal) *entity.Product {
	p := &entity.Product{
		ID:           id,
		SKU:          "SKU-" + id,
		Name:         name,
		Price:        price,
		Stock:        stock,
		ReorderLevel: qty("5"),
		IsActive:     true,
	}
	s.products[id] = p
	return p
}

func (s *memStore) addBatch(id, productID string, quantity decimal.Decimal, expiry *time.Time, received time.Time) *entity.ProductBatch {
	b := &entity.ProductBatch{
		ID:           id,
		ProductID:    productID,
		Quantity:     quantity,
		ExpiryDate:   expiry,
		ReceivedDate: received,
	}
	s.batches[id] = b
	return b
}

func (s *memStore) addVendor(id, name string) *entity.Vendor {
	v := &entity.Vendor{ID: id, Name: name, IsActive: true}
	s.vendors[id] = v
	return v
}

func (s *memStore) addPO(id string, status entity.POStatus) *entity.PurchaseOrder {
	po := &entity.PurchaseOrder{
		ID:          id,
		VendorID:    "vendor-1",
		OrderNumber: "OC-" + id,
		OrderDate:   time.Now(),
		Status:      status,
	}
	s.pos[id] = po
	return po
}

func (s *memStore) addPOItem(id, poID, productID string, quantity, received decimal.Decimal) *entity.PurchaseOrderItem {
	it := &entity.PurchaseOrderItem{
		ID:               id,
		PurchaseOrderID:  poID,
		ProductID:        productID,
		Quantity:         quantity,
		ReceivedQuantity: received,
		UnitCost:         qty("2"),
	}
	s.poItems[id] = it
	return it
}

func (s *memStore) movementsFor(productID string) []*entity.StockMovement {
	var out []*entity.StockMovement
	for _, m := range s.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out
}
