package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	_ "github.com/tu-usuario/retail-ledger/docs"
	"github.com/tu-usuario/retail-ledger/internal/application/inventory"
	"github.com/tu-usuario/retail-ledger/internal/application/posmatch"
	"github.com/tu-usuario/retail-ledger/internal/cache"
	"github.com/tu-usuario/retail-ledger/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/retail-ledger/internal/interfaces/http"
	"github.com/tu-usuario/retail-ledger/pkg/config"
	"github.com/tu-usuario/retail-ledger/pkg/jwt"
	"github.com/tu-usuario/retail-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepo(pool)
	batchRepo := postgres.NewProductBatchRepo(pool)
	movementRepo := postgres.NewStockMovementRepo(pool)
	reconciliationRepo := postgres.NewReconciliationRepo(pool)
	posMappingRepo := postgres.NewPOSMappingRepo(pool)
	purchaseOrderRepo := postgres.NewPurchaseOrderRepo(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché del catálogo de candidatos POS: Redis si está configurado,
	// en memoria para desarrollo y despliegues de una sola réplica.
	var catalog cache.CatalogCache
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCatalogCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		catalog = redisCache
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de catálogo en Redis")
	} else {
		catalog = cache.NewMemoryCatalogCache()
		log.Info().Msg("caché de catálogo en memoria")
	}

	saleUC := inventory.NewSaleUseCase(txRunner)
	receivingUC := inventory.NewReceivingUseCase(txRunner, purchaseOrderRepo)
	reconciliationUC := inventory.NewReconciliationUseCase(txRunner, reconciliationRepo)
	projector := inventory.NewProjector(productRepo, movementRepo, batchRepo, txRunner, log)

	resolver := posmatch.NewResolver(posMappingRepo, productRepo, catalog, posmatch.Config{
		AcceptThreshold:    cfg.Matching.AcceptThreshold,
		PriceTolerancePct:  decimal.NewFromFloat(cfg.Matching.PriceTolerancePct),
		PriceDivergencePct: decimal.NewFromFloat(cfg.Matching.PriceDivergencePct),
		ConfidenceStep:     decimal.NewFromFloat(cfg.Matching.ConfidenceStep),
		ConfidencePenalty:  decimal.NewFromFloat(cfg.Matching.ConfidencePenalty),
		ReviewThreshold:    decimal.NewFromFloat(cfg.Matching.ReviewThreshold),
		CatalogTTL:         cfg.Matching.CatalogTTL,
	}, log)
	syncUC := posmatch.NewSyncUseCase(resolver, saleUC)

	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Retail Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SaleUC:           saleUC,
		ReceivingUC:      receivingUC,
		ReconciliationUC: reconciliationUC,
		Projector:        projector,
		Resolver:         resolver,
		SyncUC:           syncUC,
		Tokens:           tokens,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
