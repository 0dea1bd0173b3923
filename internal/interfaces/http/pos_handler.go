package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/posmatch"
)

// POSHandler maneja la resolución de ítems POS y la sincronización de ventas.
type POSHandler struct {
	resolver *posmatch.Resolver
	syncUC   *posmatch.SyncUseCase
}

// NewPOSHandler construye el handler.
func NewPOSHandler(resolver *posmatch.Resolver, syncUC *posmatch.SyncUseCase) *POSHandler {
	return &POSHandler{resolver: resolver, syncUC: syncUC}
}

// Resolve godoc
// @Summary      Resolver un nombre crudo del POS a un producto canónico
// @Description  Primero busca el mapeo exacto (tenant, nombre); si no existe
//               hace matching difuso contra el catálogo. Sin candidato
//               aceptable la línea queda encolada para mapeo manual.
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResolvePOSItemRequest  true  "nombre POS y precio observado"
// @Success      200   {object}  dto.ResolvePOSItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pos/resolve [post]
func (h *POSHandler) Resolve(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ResolvePOSItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	res, err := h.resolver.Resolve(c.Context(), tenantID, in.Name, in.Price)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.ResolvePOSItemResponse{
		Outcome:     string(res.Outcome),
		MappingID:   res.MappingID,
		ProductID:   res.ProductID,
		Confidence:  res.Confidence,
		NeedsReview: res.NeedsReview,
		Score:       res.Score,
	})
}

// Sync godoc
// @Summary      Sincronizar un reporte de ventas del POS
// @Description  Resuelve cada línea a un producto y confirma una única venta
//               atómica con las líneas aceptadas. Las líneas sin resolución
//               quedan encoladas y se reportan.
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.POSSyncRequest  true  "líneas crudas del POS"
// @Success      200   {object}  dto.POSSyncResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pos/sync [post]
func (h *POSHandler) Sync(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	userID := GetUserID(c)
	if tenantID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.POSSyncRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	lines := make([]posmatch.SyncLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, posmatch.SyncLine{Name: l.Name, Price: l.Price, Quantity: l.Quantity})
	}

	report, err := h.syncUC.SyncSales(c.Context(), tenantID, userID, lines)
	if err != nil {
		return mapDomainError(c, err)
	}

	resp := dto.POSSyncResponse{
		SaleID:     report.SaleID,
		SaleNumber: report.SaleNumber,
		Queued:     report.Queued,
		Lines:      make([]dto.POSSyncLineResponse, 0, len(report.Lines)),
	}
	for _, l := range report.Lines {
		resp.Lines = append(resp.Lines, dto.POSSyncLineResponse{
			Name:      l.Name,
			Outcome:   string(l.Outcome),
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}
	return c.JSON(resp)
}
