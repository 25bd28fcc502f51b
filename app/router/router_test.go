package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine-backoffice/app/controller"
	"vitrine-backoffice/pricing"
	"vitrine-backoffice/service"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	catalog, err := pricing.NewChannelCatalog(pricing.DefaultChannels()...)
	require.NoError(t, err)

	controllers := &Controllers{
		Catalog: controller.NewCatalogController(nil),
		Pricing: controller.NewPricingController(service.NewPricingService(pricing.NewEngine(catalog), nil, nil)),
		Quote:   controller.NewQuoteController(nil, nil),
		Report:  controller.NewReportController(nil, nil),
		Import:  controller.NewImportController(nil),
	}

	mux := http.NewServeMux()
	SetupRoutes(mux, controllers)
	return mux
}

func TestPing(t *testing.T) {
	mux := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSetupRoutes_Dispatch(t *testing.T) {
	mux := newTestMux(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"channels", http.MethodGet, "/admin/channels", "", http.StatusOK},
		{"simulate", http.MethodPost, "/admin/pricing/simulate", `{"costBasis": "10", "salePrice": "30", "channel": "whatsapp"}`, http.StatusOK},
		{"export routed before report kind", http.MethodGet, "/admin/reports/monthly-close/export?format=csv", "", http.StatusBadRequest},
		{"products rejects patch", http.MethodPatch, "/admin/products", "", http.StatusMethodNotAllowed},
		{"product put with bad id", http.MethodPut, "/admin/products/abc", `{}`, http.StatusBadRequest},
		{"kit delete with bad id", http.MethodDelete, "/admin/kits/0", "", http.StatusBadRequest},
		{"suppliers rejects delete", http.MethodDelete, "/admin/suppliers", "", http.StatusMethodNotAllowed},
		{"supplier rejects get", http.MethodGet, "/admin/suppliers/Pet%20Sul", "", http.StatusMethodNotAllowed},
		{"supplier delete without name", http.MethodDelete, "/admin/suppliers/", "", http.StatusBadRequest},
		{"quote rejects patch", http.MethodPatch, "/admin/quotes/Q1", "", http.StatusMethodNotAllowed},
		{"quote status rejects get", http.MethodGet, "/admin/quotes/Q1/status", "", http.StatusMethodNotAllowed},
		{"import rejects get", http.MethodGet, "/admin/import/legacy", "", http.StatusMethodNotAllowed},
		{"unknown path", http.MethodGet, "/admin/nothing", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body)))
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}
