package posmatch_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/retail-ledger/internal/application/posmatch"
	"github.com/tu-usuario/retail-ledger/internal/cache"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
	"github.com/tu-usuario/retail-ledger/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memMappingRepo struct {
	mappings map[string]*entity.POSItemMapping // clave: tenant + "|" + nombre
}

var _ repository.POSMappingRepository = (*memMappingRepo)(nil)

func newMemMappingRepo() *memMappingRepo {
	return &memMappingRepo{mappings: make(map[string]*entity.POSItemMapping)}
}

func mappingKey(tenantID, name string) string { return tenantID + "|" + name }

func (r *memMappingRepo) GetByTenantAndName(_ context.Context, tenantID, posItemName string) (*entity.POSItemMapping, error) {
	m, ok := r.mappings[mappingKey(tenantID, posItemName)]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memMappingRepo) Create(_ context.Context, mapping *entity.POSItemMapping) error {
	cp := *mapping
	r.mappings[mappingKey(mapping.TenantID, mapping.POSItemName)] = &cp
	return nil
}

func (r *memMappingRepo) Update(_ context.Context, mapping *entity.POSItemMapping) error {
	cp := *mapping
	r.mappings[mappingKey(mapping.TenantID, mapping.POSItemName)] = &cp
	return nil
}

func (r *memMappingRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.POSItemMapping, error) {
	var out []*entity.POSItemMapping
	for key, m := range r.mappings {
		if len(key) > len(tenantID) && key[:len(tenantID)+1] == tenantID+"|" {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memCatalogRepo struct {
	products []*entity.Product
}

var _ repository.ProductRepository = (*memCatalogRepo)(nil)

func (r *memCatalogRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCatalogRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memCatalogRepo) UpdateStock(_ context.Context, _ string, _ decimal.Decimal) error {
	return nil
}

func (r *memCatalogRepo) ListActive(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.IsActive {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memCatalogRepo) ListBelowReorder(_ context.Context) ([]*entity.Product, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

func price(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func testConfig() posmatch.Config {
	return posmatch.Config{
		AcceptThreshold:    0.85,
		PriceTolerancePct:  price("0.10"),
		PriceDivergencePct: price("0.30"),
		ConfidenceStep:     price("0.05"),
		ConfidencePenalty:  price("0.15"),
		ReviewThreshold:    price("0.50"),
		CatalogTTL:         time.Minute,
	}
}

func newResolverFixture(products ...*entity.Product) (*memMappingRepo, *posmatch.Resolver) {
	mappings := newMemMappingRepo()
	catalog := &memCatalogRepo{products: products}
	resolver := posmatch.NewResolver(mappings, catalog, cache.NewMemoryCatalogCache(), testConfig(), logger.Nop())
	return mappings, resolver
}

func activeProduct(id, name, sku string) *entity.Product {
	return &entity.Product{ID: id, Name: name, SKU: sku, IsActive: true}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: Sin mapeo previo, un candidato sobre el umbral crea el mapeo con la
// similitud como confianza inicial.
func TestResolve_CreaMapeoPorSimilitud(t *testing.T) {
	mappings, resolver := newResolverFixture(
		activeProduct("p1", "Coca-Cola 330ml", "BEB-001"),
		activeProduct("p2", "Agua Mineral 500ml", "BEB-002"),
	)

	res, err := resolver.Resolve(context.Background(), "t1", "COCA COLA 330ML", price("1.50"))
	require.NoError(t, err)
	assert.Equal(t, posmatch.OutcomeCreated, res.Outcome)
	assert.Equal(t, "p1", res.ProductID)
	require.NotNil(t, res.Confidence)
	assert.Equal(t, 1.0, res.Score, "normalización iguala los nombres")
	assert.False(t, res.NeedsReview)

	stored, err := mappings.GetByTenantAndName(context.Background(), "t1", "COCA COLA 330ML")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "p1", stored.MatchedProductID)
	assert.True(t, stored.LastSoldPrice.Equal(price("1.50")))
}

// Caso 2: Sin candidato aceptable la línea queda encolada y no se escribe nada.
func TestResolve_BajoUmbralQuedaEncolado(t *testing.T) {
	mappings, resolver := newResolverFixture(
		activeProduct("p1", "Detergente Ropa 3L", "LIM-001"),
	)

	res, err := resolver.Resolve(context.Background(), "t1", "Pollo Asado Entero", price("9"))
	require.NoError(t, err)
	assert.Equal(t, posmatch.OutcomeQueued, res.Outcome)
	assert.Empty(t, res.ProductID)
	assert.Less(t, res.Score, 0.85)

	assert.Empty(t, mappings.mappings, "un falso positivo no contamina los mapeos")
}

// Caso 3: El mapeo existente se aplica y el precio consistente sube la confianza.
func TestResolve_PrecioConsistenteSubeConfianza(t *testing.T) {
	mappings, resolver := newResolverFixture()
	conf := price("0.90")
	require.NoError(t, mappings.Create(context.Background(), &entity.POSItemMapping{
		ID: "m1", TenantID: "t1", POSItemName: "COKE 330",
		MatchedProductID: "p1", LastSoldPrice: price("1.50"), ConfidenceScore: &conf,
	}))

	// 1.55 está dentro del 10% de tolerancia sobre 1.50
	res, err := resolver.Resolve(context.Background(), "t1", "COKE 330", price("1.55"))
	require.NoError(t, err)
	assert.Equal(t, posmatch.OutcomeMatched, res.Outcome)
	assert.Equal(t, "p1", res.ProductID)
	assert.True(t, res.Confidence.Equal(price("0.95")), "0.90 + step 0.05")

	stored, _ := mappings.GetByTenantAndName(context.Background(), "t1", "COKE 330")
	assert.True(t, stored.LastSoldPrice.Equal(price("1.55")), "el último precio siempre se actualiza")
}

// Caso 4: La confianza nunca supera 1.
func TestResolve_ConfianzaConTopeEnUno(t *testing.T) {
	mappings, resolver := newResolverFixture()
	conf := price("0.98")
	require.NoError(t, mappings.Create(context.Background(), &entity.POSItemMapping{
		ID: "m1", TenantID: "t1", POSItemName: "COKE 330",
		MatchedProductID: "p1", LastSoldPrice: price("1.50"), ConfidenceScore: &conf,
	}))

	res, err := resolver.Resolve(context.Background(), "t1", "COKE 330", price("1.50"))
	require.NoError(t, err)
	assert.True(t, res.Confidence.Equal(price("1")))
}

// Caso 5: Un precio divergente castiga la confianza; bajo el umbral de
// revisión el mapeo se marca pero sigue aplicándose (nunca se borra).
func TestResolve_PrecioDivergenteBajaConfianza(t *testing.T) {
	mappings, resolver := newResolverFixture()
	conf := price("0.55")
	require.NoError(t, mappings.Create(context.Background(), &entity.POSItemMapping{
		ID: "m1", TenantID: "t1", POSItemName: "COKE 330",
		MatchedProductID: "p1", LastSoldPrice: price("1.50"), ConfidenceScore: &conf,
	}))

	// 3.00 duplica el último precio: más del 30% de divergencia
	res, err := resolver.Resolve(context.Background(), "t1", "COKE 330", price("3.00"))
	require.NoError(t, err)
	assert.Equal(t, posmatch.OutcomeMatched, res.Outcome)
	assert.True(t, res.Confidence.Equal(price("0.40")), "0.55 - penalización 0.15")
	assert.True(t, res.NeedsReview, "bajo el umbral de revisión")
	assert.Equal(t, "p1", res.ProductID, "el mapeo se sigue aplicando")
}

// Caso 6: Entre la tolerancia y la divergencia la señal es neutral.
func TestResolve_BandaNeutralNoCambiaConfianza(t *testing.T) {
	mappings, resolver := newResolverFixture()
	conf := price("0.80")
	require.NoError(t, mappings.Create(context.Background(), &entity.POSItemMapping{
		ID: "m1", TenantID: "t1", POSItemName: "COKE 330",
		MatchedProductID: "p1", LastSoldPrice: price("1.50"), ConfidenceScore: &conf,
	}))

	// 1.80 es +20%: sobre la tolerancia (10%) pero bajo la divergencia (30%)
	res, err := resolver.Resolve(context.Background(), "t1", "COKE 330", price("1.80"))
	require.NoError(t, err)
	assert.True(t, res.Confidence.Equal(price("0.80")), "ni refuerza ni castiga")
}

// Caso 7: La confianza nunca baja de cero.
func TestResolve_ConfianzaConPisoEnCero(t *testing.T) {
	mappings, resolver := newResolverFixture()
	conf := price("0.10")
	require.NoError(t, mappings.Create(context.Background(), &entity.POSItemMapping{
		ID: "m1", TenantID: "t1", POSItemName: "COKE 330",
		MatchedProductID: "p1", LastSoldPrice: price("1.50"), ConfidenceScore: &conf,
	}))

	res, err := resolver.Resolve(context.Background(), "t1", "COKE 330", price("5.00"))
	require.NoError(t, err)
	assert.True(t, res.Confidence.Equal(price("0")))
}

// Caso 8: Los mapeos son por tenant: el mismo nombre en otro tenant no aplica.
func TestResolve_AisladoPorTenant(t *testing.T) {
	mappings, resolver := newResolverFixture(
		activeProduct("p9", "Empanada Carne", "COM-001"),
	)
	conf := price("0.90")
	require.NoError(t, mappings.Create(context.Background(), &entity.POSItemMapping{
		ID: "m1", TenantID: "t1", POSItemName: "EMPANADA",
		MatchedProductID: "p1", LastSoldPrice: price("1"), ConfidenceScore: &conf,
	}))

	res, err := resolver.Resolve(context.Background(), "t2", "EMPANADA", price("1"))
	require.NoError(t, err)
	assert.NotEqual(t, posmatch.OutcomeMatched, res.Outcome, "el mapeo de t1 no sirve para t2")
}

// Caso 9: Entradas inválidas.
func TestResolve_EntradasInvalidas(t *testing.T) {
	_, resolver := newResolverFixture()
	ctx := context.Background()

	_, err := resolver.Resolve(ctx, "", "algo", price("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = resolver.Resolve(ctx, "t1", "", price("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = resolver.Resolve(ctx, "t1", "algo", price("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
