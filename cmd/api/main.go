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

	"github.com/jhoicas/stockledger/internal/application/analytics"
	"github.com/jhoicas/stockledger/internal/application/ledger"
	"github.com/jhoicas/stockledger/internal/application/usecase"
	"github.com/jhoicas/stockledger/internal/domain/repository"
	"github.com/jhoicas/stockledger/internal/infrastructure/memory"
	"github.com/jhoicas/stockledger/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stockledger/internal/interfaces/http"
	"github.com/jhoicas/stockledger/pkg/config"
	"github.com/jhoicas/stockledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Stores en memoria: la verdad autoritativa del ledger
	warehouseStore := memory.NewWarehouseStore()
	locationStore := memory.NewLocationStore()
	categoryStore := memory.NewCategoryStore()
	productStore := memory.NewProductStore()
	balanceStore := memory.NewBalanceStore(productStore)
	movementLog := memory.NewMovementLog()
	bucketStore := memory.NewBucketStore()

	// Frontera de persistencia: noop salvo que el archivo esté habilitado
	var archiver repository.MovementArchiver = memory.NewNoopArchiver()
	if cfg.Archive.Enabled {
		ctx := context.Background()
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL para el archivo")
		}
		defer pool.Close()
		archiver = postgres.NewArchiveRepository(pool)
		log.Info().Msg("archivo de movimientos en PostgreSQL habilitado")
	}

	directory := ledger.NewDirectory(warehouseStore, locationStore)
	validator := ledger.NewValidator(directory)
	engine := ledger.NewEngine(balanceStore, movementLog, bucketStore, productStore, archiver, log)
	ledgerSvc := ledger.NewService(validator, engine, movementLog, balanceStore)
	aggregator := analytics.NewAggregator(bucketStore)

	warehouseUC := usecase.NewWarehouseUseCase(warehouseStore, locationStore)
	productUC := usecase.NewProductUseCase(productStore)
	categoryUC := usecase.NewCategoryUseCase(categoryStore)

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
		Title:    "Stockledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:      ledgerSvc,
		Aggregator:  aggregator,
		WarehouseUC: warehouseUC,
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
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
