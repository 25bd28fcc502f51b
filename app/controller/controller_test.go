package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine-backoffice/models"
	"vitrine-backoffice/pricing"
	"vitrine-backoffice/repository"
	"vitrine-backoffice/service"
)

func newPricingController(t *testing.T) *PricingController {
	t.Helper()
	catalog, err := pricing.NewChannelCatalog(pricing.DefaultChannels()...)
	require.NoError(t, err)
	return NewPricingController(service.NewPricingService(pricing.NewEngine(catalog), nil, nil))
}

func TestPathParam(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		prefix string
		suffix string
		want   string
		ok     bool
	}{
		{"plain id", "/admin/quotes/abc", "/admin/quotes/", "", "abc", true},
		{"trailing slash", "/admin/quotes/abc/", "/admin/quotes/", "", "abc", true},
		{"with suffix", "/admin/quotes/abc/status", "/admin/quotes/", "/status", "abc", true},
		{"missing suffix", "/admin/quotes/abc", "/admin/quotes/", "/status", "", false},
		{"empty segment", "/admin/quotes/", "/admin/quotes/", "", "", false},
		{"nested segment", "/admin/quotes/abc/def", "/admin/quotes/", "", "", false},
		{"wrong prefix", "/admin/kits/1", "/admin/quotes/", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pathParam(tt.path, tt.prefix, tt.suffix)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathID(t *testing.T) {
	id, err := pathID("/admin/products/42", "/admin/products/", "")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, path := range []string{"/admin/products/abc", "/admin/products/0", "/admin/products/-3", "/admin/products/"} {
		_, err := pathID(path, "/admin/products/", "")
		assert.ErrorIs(t, err, models.ErrInvalidInput, path)
	}
}

func TestWriteError_MapsDomainErrors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("quote x: %w", models.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: bad", models.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("%w: rate 1", models.ErrInvalidChannelConfig), http.StatusUnprocessableEntity},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		writeError(rec, "Test", tt.err)
		assert.Equal(t, tt.want, rec.Code, tt.err.Error())
	}

	rec := httptest.NewRecorder()
	writeError(rec, "Test", errors.New("pq: password authentication failed"))
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestWriteError_LogsInternalErrorsWithContext(t *testing.T) {
	hook := logtest.NewLocal(logger)
	defer hook.Reset()

	writeError(httptest.NewRecorder(), "ListQuotes", errors.New("connection refused"))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "connection refused", entry.Message)
	assert.Equal(t, "controller", entry.Data["module"])
	assert.Equal(t, "ListQuotes", entry.Data["funcName"])
}

func TestSimulate(t *testing.T) {
	c := newPricingController(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/pricing/simulate",
		strings.NewReader(`{"costBasis": "20", "salePrice": "49.90", "channel": "shopee"}`))
	rec := httptest.NewRecorder()
	c.Simulate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result models.PricingResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.CommissionAmount.Equal(decimal.RequireFromString("9.98")), result.CommissionAmount.String())
	assert.True(t, result.NetRevenue.Equal(decimal.RequireFromString("34.92")), result.NetRevenue.String())
	assert.True(t, result.RealizedProfit.Equal(decimal.RequireFromString("14.92")), result.RealizedProfit.String())
	assert.True(t, result.RealizedMarginPercent.Equal(decimal.RequireFromString("29.9")), result.RealizedMarginPercent.String())
}

func TestSimulate_Errors(t *testing.T) {
	c := newPricingController(t)

	tests := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"malformed body", http.MethodPost, `{"costBasis": `, http.StatusBadRequest},
		{"missing channel", http.MethodPost, `{"costBasis": "20", "salePrice": "40"}`, http.StatusBadRequest},
		{"unknown channel", http.MethodPost, `{"costBasis": "20", "salePrice": "40", "channel": "orkut"}`, http.StatusNotFound},
		{"negative cost", http.MethodPost, `{"costBasis": "-1", "salePrice": "40", "channel": "shopee"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/admin/pricing/simulate", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			c.Simulate(rec, req)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestListChannels(t *testing.T) {
	c := newPricingController(t)

	rec := httptest.NewRecorder()
	c.ListChannels(rec, httptest.NewRequest(http.MethodGet, "/admin/channels", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var channels []models.ChannelConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &channels))
	require.Len(t, channels, len(pricing.DefaultChannels()))
	assert.Equal(t, "shopee", channels[0].Key)
}

func TestProductPricing_RejectsBadID(t *testing.T) {
	c := newPricingController(t)

	rec := httptest.NewRecorder()
	c.ProductPricing(rec, httptest.NewRequest(http.MethodGet, "/admin/pricing/products/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuoteFilter_FromQuery(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	c := NewQuoteController(nil, loc)

	req := httptest.NewRequest(http.MethodGet, "/admin/quotes?from=2026-10-01&to=2026-10-31&status=converted", nil)
	filter, err := c.parseFilter(req)
	require.NoError(t, err)

	require.NotNil(t, filter.From)
	require.NotNil(t, filter.To)
	require.NotNil(t, filter.Status)
	assert.True(t, filter.From.Equal(time.Date(2026, 10, 1, 0, 0, 0, 0, loc)))
	assert.True(t, filter.To.Equal(time.Date(2026, 11, 1, 0, 0, 0, 0, loc)), "to date is inclusive")
	assert.Equal(t, models.QuoteStatusConverted, *filter.Status)
}

func TestQuoteFilter_Invalid(t *testing.T) {
	c := NewQuoteController(nil, time.UTC)

	for _, query := range []string{"from=01/10/2026", "to=yesterday", "status=shipped"} {
		req := httptest.NewRequest(http.MethodGet, "/admin/quotes?"+query, nil)
		_, err := c.parseFilter(req)
		assert.ErrorIs(t, err, models.ErrInvalidInput, query)
	}
}

func TestCheckout_ValidationFailure(t *testing.T) {
	c := NewQuoteController(nil, time.UTC)

	tests := []string{
		`{"customerName": "Maria", "lines": []}`,
		`{"lines": [{"itemKind": "service", "itemId": 1, "quantity": 1}]}`,
		`{"lines": [{"itemKind": "product", "itemId": 1, "quantity": 0}]}`,
	}
	for _, body := range tests {
		rec := httptest.NewRecorder()
		c.Quotes(rec, httptest.NewRequest(http.MethodPost, "/admin/quotes", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), "Validation failed")
	}
}

func TestMonthlyCloseExport_UnsupportedFormat(t *testing.T) {
	c := NewReportController(nil, nil)

	rec := httptest.NewRecorder()
	c.MonthlyCloseExport(rec, httptest.NewRequest(http.MethodGet, "/admin/reports/monthly-close/export?format=csv", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type stubProducts struct {
	repository.ProductRepositoryInterface
	products []models.Product
}

func (s stubProducts) List(context.Context) ([]models.Product, error) {
	return s.products, nil
}

type stubSuppliers struct {
	repository.SupplierRepositoryInterface
	removed *[]string
}

func (s stubSuppliers) Delete(_ context.Context, name string) error {
	*s.removed = append(*s.removed, name)
	return nil
}

func TestSupplier_Delete(t *testing.T) {
	var removed []string
	svc := service.NewCatalogService(
		stubProducts{products: []models.Product{{ID: 1, SKU: "COL-1", Supplier: "Pet Sul"}}},
		nil,
		stubSuppliers{removed: &removed},
	)
	c := NewCatalogController(svc)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"supplier with products", "/admin/suppliers/Pet%20Sul", http.StatusBadRequest},
		{"unused supplier", "/admin/suppliers/Aumigos", http.StatusNoContent},
		{"escaped name", "/admin/suppliers/Ra%C3%A7%C3%B5es%20%2F%20Cia", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c.Supplier(rec, httptest.NewRequest(http.MethodDelete, tt.target, nil))
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
	assert.Equal(t, []string{"Aumigos", "Rações / Cia"}, removed)
}
