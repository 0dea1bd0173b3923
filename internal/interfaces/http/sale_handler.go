package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/inventory"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// SaleHandler maneja las peticiones HTTP de ventas (protegido).
type SaleHandler struct {
	uc *inventory.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *inventory.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Confirmar una venta
// @Description  Descuenta stock de todas las líneas de forma atómica (FEFO por
//               lote) y registra los movimientos SALE. Si alguna línea no tiene
//               stock suficiente, nada se escribe.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "líneas de la venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	lines := make([]inventory.SaleLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, inventory.SaleLineInput{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}

	sale, items, err := h.uc.CommitSale(c.Context(), inventory.CommitSaleInput{
		UserID:     userID,
		CustomerID: in.CustomerID,
		Lines:      lines,
		Tax:        in.Tax,
		Discount:   in.Discount,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale, items))
}

func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:         sale.ID,
		SaleNumber: sale.SaleNumber,
		CustomerID: sale.CustomerID,
		Subtotal:   sale.Subtotal,
		Tax:        sale.Tax,
		Discount:   sale.Discount,
		Total:      sale.Total,
		Status:     sale.Status,
		CreatedAt:  sale.CreatedAt,
		Items:      make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return resp
}
