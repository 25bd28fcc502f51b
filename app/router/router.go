package router

import (
	"net/http"
	"strings"

	"vitrine-backoffice/app/controller"
)

type Controllers struct {
	Catalog *controller.CatalogController
	Pricing *controller.PricingController
	Quote   *controller.QuoteController
	Report  *controller.ReportController
	Import  *controller.ImportController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Catalog routes
	mux.HandleFunc("/admin/products", controllers.Catalog.Products)
	mux.HandleFunc("/admin/products/", controllers.Catalog.Product)
	mux.HandleFunc("/admin/kits", controllers.Catalog.Kits)
	mux.HandleFunc("/admin/kits/", controllers.Catalog.Kit)
	mux.HandleFunc("/admin/suppliers", controllers.Catalog.Suppliers)
	mux.HandleFunc("/admin/suppliers/", controllers.Catalog.Supplier)

	// Pricing routes
	mux.HandleFunc("/admin/channels", controllers.Pricing.ListChannels)
	mux.HandleFunc("/admin/pricing/simulate", controllers.Pricing.Simulate)
	mux.HandleFunc("/admin/pricing/products/", controllers.Pricing.ProductPricing)
	mux.HandleFunc("/admin/pricing/kits/", controllers.Pricing.KitPricing)

	// Quotes routes
	// Checkout and list
	mux.HandleFunc("/admin/quotes", controllers.Quote.Quotes)
	// Get, status change and summary
	mux.HandleFunc("/admin/quotes/", controllers.Quote.Quote)

	// Finance routes
	mux.HandleFunc("/admin/dashboard", controllers.Report.Dashboard)
	mux.HandleFunc("/admin/finance/stats", controllers.Report.FinanceStats)
	mux.HandleFunc("/admin/goals", controllers.Report.Goals)

	// Reports routes (export and render must win over the generic /:kind route)
	mux.HandleFunc("/admin/reports/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/admin/reports/")

		if path == "monthly-close/export" {
			controllers.Report.MonthlyCloseExport(w, r)
			return
		}
		if path == "monthly-close/render" {
			controllers.Report.MonthlyCloseRender(w, r)
			return
		}
		controllers.Report.Report(w, r)
	})

	// Legacy import
	mux.HandleFunc("/admin/import/legacy", controllers.Import.Import)
}
