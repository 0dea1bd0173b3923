package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/inventory"
)

// PurchaseHandler maneja la recepción de órdenes de compra (protegido).
type PurchaseHandler struct {
	uc *inventory.ReceivingUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *inventory.ReceivingUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Get godoc
// @Summary      Consultar una orden de compra con sus líneas y proveedor
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseHandler) Get(c *fiber.Ctx) error {
	view, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}

	out := dto.PurchaseOrderResponse{
		ID:          view.Order.ID,
		OrderNumber: view.Order.OrderNumber,
		OrderDate:   view.Order.OrderDate,
		Status:      string(view.Order.Status),
		TotalAmount: view.Order.TotalAmount,
		Notes:       view.Order.Notes,
		SentAt:      view.Order.SentAt,
		ReceivedAt:  view.Order.ReceivedAt,
		Items:       make([]dto.PurchaseOrderItemResponse, 0, len(view.Items)),
	}
	if view.Vendor != nil {
		out.Vendor = &dto.VendorResponse{ID: view.Vendor.ID, Name: view.Vendor.Name}
	}
	for _, it := range view.Items {
		out.Items = append(out.Items, dto.PurchaseOrderItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			Quantity:         it.Quantity,
			ReceivedQuantity: it.ReceivedQuantity,
			Pending:          it.Pending(),
			UnitCost:         it.UnitCost,
		})
	}
	return c.JSON(out)
}

// MarkOrdered godoc
// @Summary      Marcar orden de compra como enviada al proveedor
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/ordered [post]
func (h *PurchaseHandler) MarkOrdered(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.MarkOrdered(c.Context(), id); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden marcada como enviada"})
}

// ReceiveItem godoc
// @Summary      Recibir mercadería de una línea de orden de compra
// @Description  Crea o incrementa el lote del producto, registra el movimiento
//               PURCHASE_RECEIPT y avanza el estado de la orden. Rechaza
//               recepciones que excedan lo pendiente de la línea.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID de la orden"
// @Param        itemID  path  string  true  "ID de la línea"
// @Param        body    body  dto.ReceiveItemRequest  true  "cantidad recibida y vencimiento opcional"
// @Success      200  {object}  dto.ReceiveItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/items/{itemID}/receive [post]
func (h *PurchaseHandler) ReceiveItem(c *fiber.Ctx) error {
	var in dto.ReceiveItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	res, err := h.uc.ReceivePurchaseOrderItem(c.Context(), inventory.ReceiveItemInput{
		POItemID:         c.Params("itemID"),
		ReceivedQuantity: in.Quantity,
		ExpiryDate:       in.ExpiryDate,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.ReceiveItemResponse{
		PurchaseOrderID: res.PurchaseOrderID,
		Status:          string(res.Status),
		BatchID:         res.BatchID,
		NewStock:        res.NewStock,
	})
}
