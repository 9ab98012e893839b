package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockledger/internal/application/analytics"
	"github.com/jhoicas/stockledger/internal/application/ledger"
	"github.com/jhoicas/stockledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger      *ledger.Service
	Aggregator  *analytics.Aggregator
	WarehouseUC *usecase.WarehouseUseCase
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Warehouses + locations (directorio)
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:code", warehouseHandler.GetByCode)
	warehouses.Put("/:code", warehouseHandler.Update)
	warehouses.Post("/:code/locations", warehouseHandler.AddLocation)
	warehouses.Get("/:code/locations", warehouseHandler.ListLocations)

	// Products (catálogo + proyección de inventario)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:sku", productHandler.GetBySKU)
	products.Put("/:sku", productHandler.Update)

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)

	// Inventory ledger
	inv := api.Group("/inventory")
	movementHandler := NewMovementHandler(deps.Ledger)
	inv.Post("/movements", movementHandler.Register)
	inv.Get("/movements", movementHandler.List)
	inv.Get("/balances", movementHandler.Balances)

	// Analytics (series para dashboards y forecasting)
	analyticsGroup := api.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.Aggregator)
	analyticsGroup.Get("/movements/daily", analyticsHandler.Daily)
	analyticsGroup.Get("/movements/weekly", analyticsHandler.Weekly)
}
