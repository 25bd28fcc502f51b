package app

import (
	"context"
	"fmt"
	"net/http"

	"vitrine-backoffice/app/controller"
	"vitrine-backoffice/app/router"
	"vitrine-backoffice/config"
	"vitrine-backoffice/db"
	"vitrine-backoffice/pricing"
	"vitrine-backoffice/repository"
	"vitrine-backoffice/service"
)

// Initialize connects the database, wires services and returns the HTTP handler
func Initialize(ctx context.Context, cfg *config.Config) (http.Handler, error) {
	logger := config.GetLogger()

	// Initialize database connection
	if err := db.InitDB(ctx, cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Channel fees are read once; a bad file stops startup
	catalog, err := pricing.LoadChannelCatalog(cfg.ChannelsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load channels: %w", err)
	}
	logger.Infof("✅ Loaded %d sales channels", len(catalog.All()))
	engine := pricing.NewEngine(catalog)

	// Initialize repositories
	productRepo := repository.NewProductRepository()
	kitRepo := repository.NewKitRepository()
	quoteRepo := repository.NewQuoteRepository()
	goalRepo := repository.NewGoalRepository()
	supplierRepo := repository.NewSupplierRepository()

	// Initialize services
	catalogService := service.NewCatalogService(productRepo, kitRepo, supplierRepo)
	pricingService := service.NewPricingService(engine, productRepo, kitRepo)
	quoteService := service.NewQuoteService(engine, productRepo, kitRepo, quoteRepo)
	reportService := service.NewReportService(quoteRepo, productRepo, goalRepo, cfg.Location)
	exportService := service.NewExportService(reportService, cfg.BaseURL, cfg.ChromePath, cfg.ExportDir)
	importService := service.NewImportService(engine, productRepo, kitRepo, quoteRepo, goalRepo, supplierRepo, cfg.Location)

	// Create controllers
	controllers := &router.Controllers{
		Catalog: controller.NewCatalogController(catalogService),
		Pricing: controller.NewPricingController(pricingService),
		Quote:   controller.NewQuoteController(quoteService, cfg.Location),
		Report:  controller.NewReportController(reportService, exportService),
		Import:  controller.NewImportController(importService),
	}

	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)

	return mux, nil
}
