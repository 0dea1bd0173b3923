package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/inventory"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// ReconciliationHandler maneja las sesiones de conteo físico (protegido).
type ReconciliationHandler struct {
	uc *inventory.ReconciliationUseCase
}

// NewReconciliationHandler construye el handler.
func NewReconciliationHandler(uc *inventory.ReconciliationUseCase) *ReconciliationHandler {
	return &ReconciliationHandler{uc: uc}
}

// Start godoc
// @Summary      Abrir una sesión de reconciliación
// @Tags         reconciliations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartReconciliationRequest  false  "notas opcionales"
// @Success      201   {object}  dto.ReconciliationResponse
// @Router       /api/reconciliations [post]
func (h *ReconciliationHandler) Start(c *fiber.Ctx) error {
	var in dto.StartReconciliationRequest
	// El body es opcional
	_ = c.BodyParser(&in)

	rec, err := h.uc.Start(c.Context(), in.Notes)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toReconciliationResponse(rec, nil))
}

// RecordCount godoc
// @Summary      Registrar el conteo físico de un producto
// @Description  Calcula el delta contra el stock del sistema y, si hay
//               discrepancia, emite un movimiento RECONCILIATION y corrige la
//               proyección en la misma transacción. Repetir el conteo de un
//               producto reemplaza el anterior.
// @Tags         reconciliations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.RecordCountRequest  true  "producto y cantidad contada"
// @Success      201   {object}  dto.ReconciliationCountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reconciliations/{id}/counts [post]
func (h *ReconciliationHandler) RecordCount(c *fiber.Ctx) error {
	var in dto.RecordCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	count, err := h.uc.RecordCount(c.Context(), c.Params("id"), in.ProductID, in.CountedQuantity)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCountResponse(count))
}

// Close godoc
// @Summary      Cerrar una sesión de reconciliación
// @Description  El cierre es terminal e idempotente: cerrar una sesión ya
//               cerrada responde 200 sin efectos.
// @Tags         reconciliations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reconciliations/{id}/close [post]
func (h *ReconciliationHandler) Close(c *fiber.Ctx) error {
	if err := h.uc.Close(c.Context(), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "sesión cerrada"})
}

// Get godoc
// @Summary      Consultar una sesión de reconciliación con sus conteos
// @Tags         reconciliations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.ReconciliationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reconciliations/{id} [get]
func (h *ReconciliationHandler) Get(c *fiber.Ctx) error {
	rec, counts, err := h.uc.GetSession(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toReconciliationResponse(rec, counts))
}

func toReconciliationResponse(rec *entity.Reconciliation, counts []*entity.ReconciliationCount) dto.ReconciliationResponse {
	resp := dto.ReconciliationResponse{
		ID:       rec.ID,
		Date:     rec.Date,
		Status:   string(rec.Status),
		Notes:    rec.Notes,
		ClosedAt: rec.ClosedAt,
	}
	for _, count := range counts {
		resp.Counts = append(resp.Counts, toCountResponse(count))
	}
	return resp
}

func toCountResponse(count *entity.ReconciliationCount) dto.ReconciliationCountResponse {
	return dto.ReconciliationCountResponse{
		ID:              count.ID,
		ProductID:       count.ProductID,
		SystemQuantity:  count.SystemQuantity,
		CountedQuantity: count.CountedQuantity,
		Delta:           count.Delta,
		CreatedAt:       count.CreatedAt,
	}
}
