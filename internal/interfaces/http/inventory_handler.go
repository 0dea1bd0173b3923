package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/inventory"
)

// InventoryHandler expone las consultas de stock, lotes y movimientos (protegido).
type InventoryHandler struct {
	projector *inventory.Projector
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(projector *inventory.Projector) *InventoryHandler {
	return &InventoryHandler{projector: projector}
}

// GetStock godoc
// @Summary      Stock actual de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	productID := c.Params("id")
	stock, err := h.projector.CurrentStock(c.Context(), productID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.StockResponse{ProductID: productID, Stock: stock})
}

// GetStockAudit godoc
// @Summary      Auditar la proyección de stock contra el libro de movimientos
// @Description  Deriva el stock autoritativo sumando los movimientos y lo
//               compara con la proyección cacheada. Drift distinto de cero es
//               señal de corrupción de la caché.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true   "ID del producto"
// @Param        rebuild  query  bool    false  "true = reescribir la caché con la suma del libro"
// @Success      200  {object}  dto.StockAuditResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock/audit [get]
func (h *InventoryHandler) GetStockAudit(c *fiber.Ctx) error {
	productID := c.Params("id")
	audit, err := h.projector.AuditStock(c.Context(), productID)
	if err != nil {
		return mapDomainError(c, err)
	}
	if c.QueryBool("rebuild") && !audit.Drift.IsZero() {
		rebuilt, err := h.projector.RebuildStock(c.Context(), productID)
		if err != nil {
			return mapDomainError(c, err)
		}
		audit.Cached = rebuilt
		audit.Drift = audit.Cached.Sub(audit.Ledger)
	}
	return c.JSON(dto.StockAuditResponse{
		ProductID: audit.ProductID,
		Cached:    audit.Cached,
		Ledger:    audit.Ledger,
		Drift:     audit.Drift,
	})
}

// GetBatches godoc
// @Summary      Lotes con existencias de un producto, en orden FEFO
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}   dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/batches [get]
func (h *InventoryHandler) GetBatches(c *fiber.Ctx) error {
	batches, err := h.projector.BatchStock(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	resp := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		resp = append(resp, dto.BatchResponse{
			ID:           b.ID,
			Quantity:     b.Quantity,
			ExpiryDate:   b.ExpiryDate,
			ReceivedDate: b.ReceivedDate,
		})
	}
	return c.JSON(resp)
}

// GetMovements godoc
// @Summary      Historia de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        since   query  string  false  "filtrar desde (RFC 3339)"
// @Param        limit   query  int     false  "máximo de filas (default 50)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) GetMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	var since *time.Time
	if raw := c.Query("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "since debe ser RFC 3339"})
		}
		since = &t
	}

	movements, err := h.projector.Movements(c.Context(), c.Params("id"), since, page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	resp := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		resp = append(resp, dto.MovementResponse{
			ID:               m.ID,
			ProductID:        m.ProductID,
			BatchID:          m.BatchID,
			Type:             string(m.Type),
			Quantity:         m.Quantity,
			Description:      m.Description,
			ReconciliationID: m.ReconciliationID,
			Seq:              m.Seq,
			CreatedAt:        m.CreatedAt,
		})
	}
	return c.JSON(resp)
}

// GetLowStock godoc
// @Summary      Productos en o por debajo de su punto de reorden
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockProductResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	products, err := h.projector.LowStock(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	resp := make([]dto.LowStockProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, dto.LowStockProductResponse{
			ProductID:    p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			Stock:        p.Stock,
			ReorderLevel: p.ReorderLevel,
		})
	}
	return c.JSON(resp)
}
