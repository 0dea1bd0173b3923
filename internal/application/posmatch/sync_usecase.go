package posmatch

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/application/inventory"
	"github.com/tu-usuario/retail-ledger/internal/domain"
)

// SyncUseCase procesa un reporte de ventas del punto de venta: resuelve cada
// línea a un producto canónico y confirma una venta con las líneas aceptadas.
// Las líneas sin resolución quedan encoladas, nunca se venden a ciegas.
type SyncUseCase struct {
	resolver *Resolver
	saleUC   *inventory.SaleUseCase
}

// NewSyncUseCase construye el caso de uso.
func NewSyncUseCase(resolver *Resolver, saleUC *inventory.SaleUseCase) *SyncUseCase {
	return &SyncUseCase{resolver: resolver, saleUC: saleUC}
}

// SyncLine es una línea cruda del reporte POS.
type SyncLine struct {
	Name     string
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// SyncLineReport es el resultado por línea.
type SyncLineReport struct {
	Name      string
	Outcome   Outcome
	ProductID string
	Quantity  decimal.Decimal
}

// SyncReport resume la sincronización completa.
type SyncReport struct {
	SaleID     string
	SaleNumber string
	Lines      []SyncLineReport
	Queued     int
}

// SyncSales resuelve todas las líneas y luego confirma una única venta con las
// aceptadas. La venta es atómica: si alguna línea aceptada no tiene stock, la
// operación completa falla y el caller decide (ajustar o reconciliar antes).
func (uc *SyncUseCase) SyncSales(ctx context.Context, tenantID, userID string, lines []SyncLine) (*SyncReport, error) {
	if tenantID == "" || userID == "" || len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	report := &SyncReport{Lines: make([]SyncLineReport, 0, len(lines))}
	var saleLines []inventory.SaleLineInput

	for _, line := range lines {
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		res, err := uc.resolver.Resolve(ctx, tenantID, line.Name, line.Price)
		if err != nil {
			return nil, err
		}
		entry := SyncLineReport{
			Name:     line.Name,
			Outcome:  res.Outcome,
			Quantity: line.Quantity,
		}
		if res.Outcome == OutcomeQueued {
			report.Queued++
			report.Lines = append(report.Lines, entry)
			continue
		}
		entry.ProductID = res.ProductID
		report.Lines = append(report.Lines, entry)

		price := line.Price
		saleLines = append(saleLines, inventory.SaleLineInput{
			ProductID: res.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: &price,
		})
	}

	if len(saleLines) == 0 {
		return report, nil
	}
	sale, _, err := uc.saleUC.CommitSale(ctx, inventory.CommitSaleInput{
		UserID: userID,
		Lines:  saleLines,
	})
	if err != nil {
		return nil, err
	}
	report.SaleID = sale.ID
	report.SaleNumber = sale.SaleNumber
	return report, nil
}
