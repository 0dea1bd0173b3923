package posmatch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/cache"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/matching"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
	"github.com/tu-usuario/retail-ledger/pkg/logger"
)

// Config son los parámetros heurísticos del resolver. Los valores correctos son
// una decisión de producto/operación, por eso vienen de configuración y no de
// constantes en el código.
type Config struct {
	// AcceptThreshold: similitud mínima [0,1] para crear un mapeo automático.
	AcceptThreshold float64
	// PriceTolerancePct: desviación relativa de precio considerada consistente (ej. 0.10).
	PriceTolerancePct decimal.Decimal
	// PriceDivergencePct: desviación a partir de la cual el precio se considera
	// contradictorio y baja la confianza (ej. 0.30).
	PriceDivergencePct decimal.Decimal
	// ConfidenceStep: incremento por evidencia consistente.
	ConfidenceStep decimal.Decimal
	// ConfidencePenalty: decremento por evidencia contradictoria.
	ConfidencePenalty decimal.Decimal
	// ReviewThreshold: por debajo de esto el mapeo se marca para revisión manual.
	ReviewThreshold decimal.Decimal
	// CatalogTTL: vigencia de la caché del catálogo de candidatos.
	CatalogTTL time.Duration
}

// Outcome clasifica el resultado de una resolución.
type Outcome string

const (
	// OutcomeMatched: existía un mapeo exacto (tenant, nombre POS) y se aplicó.
	OutcomeMatched Outcome = "MATCHED"
	// OutcomeCreated: no existía mapeo; el matching difuso superó el umbral y se creó.
	OutcomeCreated Outcome = "CREATED"
	// OutcomeQueued: sin mapeo y sin candidato aceptable; queda para mapeo manual
	// y no se escribe ningún registro (evita contaminar con falsos positivos).
	OutcomeQueued Outcome = "QUEUED"
)

// Result es el resultado de resolver un ítem POS.
type Result struct {
	Outcome     Outcome
	MappingID   string
	ProductID   string
	Confidence  *decimal.Decimal
	NeedsReview bool
	Score       float64 // similitud del matching difuso, solo para OutcomeCreated
}

// Resolver mapea nombres crudos del punto de venta a productos canónicos,
// manteniendo un puntaje de confianza [0,1] que evoluciona con la evidencia.
// Los mapeos nunca se borran; los de baja confianza se marcan para revisión.
type Resolver struct {
	mappingRepo repository.POSMappingRepository
	productRepo repository.ProductRepository
	catalog     cache.CatalogCache
	cfg         Config
	log         *logger.Logger
}

// NewResolver construye el resolver.
func NewResolver(
	mappingRepo repository.POSMappingRepository,
	productRepo repository.ProductRepository,
	catalog cache.CatalogCache,
	cfg Config,
	log *logger.Logger,
) *Resolver {
	return &Resolver{
		mappingRepo: mappingRepo,
		productRepo: productRepo,
		catalog:     catalog,
		cfg:         cfg,
		log:         log,
	}
}

var (
	one  = decimal.NewFromInt(1)
	zero = decimal.Zero
)

// Resolve procesa un par (nombre POS, precio observado) para un tenant.
func (rs *Resolver) Resolve(ctx context.Context, tenantID, posItemName string, observedPrice decimal.Decimal) (*Result, error) {
	if tenantID == "" || posItemName == "" {
		return nil, domain.ErrInvalidInput
	}
	if observedPrice.LessThan(zero) {
		return nil, domain.ErrInvalidInput
	}

	mapping, err := rs.mappingRepo.GetByTenantAndName(ctx, tenantID, posItemName)
	if err != nil {
		return nil, err
	}
	if mapping != nil {
		return rs.applyExisting(ctx, mapping, observedPrice)
	}
	return rs.resolveNew(ctx, tenantID, posItemName, observedPrice)
}

// applyExisting aplica el mapeo conocido y ajusta la confianza según la
// consistencia del precio observado con el último precio registrado.
func (rs *Resolver) applyExisting(ctx context.Context, mapping *entity.POSItemMapping, observedPrice decimal.Decimal) (*Result, error) {
	conf := zero
	if mapping.ConfidenceScore != nil {
		conf = *mapping.ConfidenceScore
	}

	switch rs.priceSignal(mapping.LastSoldPrice, observedPrice) {
	case priceConsistent:
		conf = decimal.Min(one, conf.Add(rs.cfg.ConfidenceStep))
	case priceDivergent:
		conf = decimal.Max(zero, conf.Sub(rs.cfg.ConfidencePenalty))
	}

	mapping.LastSoldPrice = observedPrice
	mapping.ConfidenceScore = &conf
	mapping.UpdatedAt = time.Now()
	if err := rs.mappingRepo.Update(ctx, mapping); err != nil {
		return nil, err
	}

	needsReview := conf.LessThan(rs.cfg.ReviewThreshold)
	if needsReview {
		rs.log.Warn().
			Str("tenant_id", mapping.TenantID).
			Str("pos_item", mapping.POSItemName).
			Str("confidence", conf.String()).
			Msg("mapeo POS bajo el umbral de confianza, marcado para revisión")
	}
	return &Result{
		Outcome:     OutcomeMatched,
		MappingID:   mapping.ID,
		ProductID:   mapping.MatchedProductID,
		Confidence:  &conf,
		NeedsReview: needsReview,
	}, nil
}

// resolveNew hace matching difuso contra el catálogo de productos activos.
func (rs *Resolver) resolveNew(ctx context.Context, tenantID, posItemName string, observedPrice decimal.Decimal) (*Result, error) {
	candidates, err := rs.candidates(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	best, ok := matching.BestMatch(posItemName, candidates)
	if !ok || best.Score < rs.cfg.AcceptThreshold {
		score := 0.0
		if ok {
			score = best.Score
		}
		rs.log.Info().
			Str("tenant_id", tenantID).
			Str("pos_item", posItemName).
			Float64("best_score", score).
			Msg("ítem POS sin candidato aceptable, encolado para mapeo manual")
		return &Result{Outcome: OutcomeQueued, Score: score}, nil
	}

	conf := decimal.NewFromFloat(best.Score)
	if conf.GreaterThan(one) {
		conf = one
	}
	now := time.Now()
	mapping := &entity.POSItemMapping{
		ID:               uuid.New().String(),
		TenantID:         tenantID,
		POSItemName:      posItemName,
		MatchedProductID: best.Candidate.ProductID,
		LastSoldPrice:    observedPrice,
		ConfidenceScore:  &conf,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := rs.mappingRepo.Create(ctx, mapping); err != nil {
		return nil, err
	}
	return &Result{
		Outcome:     OutcomeCreated,
		MappingID:   mapping.ID,
		ProductID:   mapping.MatchedProductID,
		Confidence:  &conf,
		NeedsReview: conf.LessThan(rs.cfg.ReviewThreshold),
		Score:       best.Score,
	}, nil
}

// candidates devuelve el catálogo de candidatos, con caché por tenant.
func (rs *Resolver) candidates(ctx context.Context, tenantID string) ([]matching.Candidate, error) {
	key := "pos:candidates:" + tenantID
	if cached, ok, err := rs.catalog.Get(ctx, key); err == nil && ok {
		return cached, nil
	}
	products, err := rs.productRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	candidates := make([]matching.Candidate, 0, len(products))
	for _, p := range products {
		candidates = append(candidates, matching.Candidate{
			ProductID: p.ID,
			Name:      p.Name,
			SKU:       p.SKU,
			Barcode:   p.Barcode,
		})
	}
	if err := rs.catalog.Set(ctx, key, candidates, rs.cfg.CatalogTTL); err != nil {
		// La caché es mejor-esfuerzo: un fallo no debe tumbar la resolución
		rs.log.Debug().Err(err).Msg("no se pudo cachear el catálogo de candidatos")
	}
	return candidates, nil
}

type priceSignalKind int

const (
	priceNeutral priceSignalKind = iota
	priceConsistent
	priceDivergent
)

// priceSignal clasifica el precio observado contra el último registrado.
// Entre la banda de tolerancia y la de divergencia la señal es neutral:
// ni refuerza ni castiga.
func (rs *Resolver) priceSignal(last, observed decimal.Decimal) priceSignalKind {
	if last.IsZero() {
		return priceConsistent
	}
	diffPct := observed.Sub(last).Abs().Div(last)
	switch {
	case diffPct.LessThanOrEqual(rs.cfg.PriceTolerancePct):
		return priceConsistent
	case diffPct.GreaterThanOrEqual(rs.cfg.PriceDivergencePct):
		return priceDivergent
	default:
		return priceNeutral
	}
}
