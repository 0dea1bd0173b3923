package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-ledger/internal/application/inventory"
	"github.com/tu-usuario/retail-ledger/internal/application/posmatch"
	"github.com/tu-usuario/retail-ledger/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SaleUC           *inventory.SaleUseCase
	ReceivingUC      *inventory.ReceivingUseCase
	ReconciliationUC *inventory.ReconciliationUseCase
	Projector        *inventory.Projector
	Resolver         *posmatch.Resolver
	SyncUC           *posmatch.SyncUseCase
	Tokens           *jwt.Manager
}

// Router registra las rutas de la API. Todo el motor requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.Tokens))

	// Ventas
	saleHandler := NewSaleHandler(deps.SaleUC)
	api.Post("/sales", saleHandler.Create)

	// Órdenes de compra (recepción)
	purchaseHandler := NewPurchaseHandler(deps.ReceivingUC)
	purchaseOrders := api.Group("/purchase-orders")
	purchaseOrders.Get("/:id", purchaseHandler.Get)
	purchaseOrders.Post("/:id/ordered", purchaseHandler.MarkOrdered)
	purchaseOrders.Post("/:id/items/:itemID/receive", purchaseHandler.ReceiveItem)

	// Reconciliación (conteo físico)
	reconciliationHandler := NewReconciliationHandler(deps.ReconciliationUC)
	reconciliations := api.Group("/reconciliations")
	reconciliations.Post("/", reconciliationHandler.Start)
	reconciliations.Get("/:id", reconciliationHandler.Get)
	reconciliations.Post("/:id/counts", reconciliationHandler.RecordCount)
	reconciliations.Post("/:id/close", reconciliationHandler.Close)

	// Consultas de inventario
	inventoryHandler := NewInventoryHandler(deps.Projector)
	products := api.Group("/products")
	products.Get("/:id/stock", inventoryHandler.GetStock)
	products.Get("/:id/stock/audit", inventoryHandler.GetStockAudit)
	products.Get("/:id/batches", inventoryHandler.GetBatches)
	products.Get("/:id/movements", inventoryHandler.GetMovements)
	api.Get("/inventory/low-stock", inventoryHandler.GetLowStock)

	// POS
	posHandler := NewPOSHandler(deps.Resolver, deps.SyncUC)
	pos := api.Group("/pos")
	pos.Post("/resolve", posHandler.Resolve)
	pos.Post("/sync", posHandler.Sync)
}
