package controller

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"vitrine-backoffice/models"
	"vitrine-backoffice/repository"
	"vitrine-backoffice/service"
)

const queryDateLayout = "2006-01-02"

// QuoteController handles HTTP requests for quotes
type QuoteController struct {
	service   *service.QuoteService
	validator *validator.Validate
	loc       *time.Location
}

// NewQuoteController creates a new QuoteController. Query dates are read in loc.
func NewQuoteController(svc *service.QuoteService, loc *time.Location) *QuoteController {
	if loc == nil {
		loc = time.UTC
	}
	return &QuoteController{
		service:   svc,
		validator: validator.New(),
		loc:       loc,
	}
}

// Quotes handles POST and GET /admin/quotes
// GET accepts ?from=2026-10-01&to=2026-10-31&status=pending; "to" is inclusive.
func (c *QuoteController) Quotes(w http.ResponseWriter, r *http.Request) {
	logger.Infof("📥 Quotes: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, "Quotes", http.MethodGet, http.MethodPost) {
		return
	}

	if r.Method == http.MethodPost {
		c.checkout(w, r)
		return
	}

	filter, err := c.parseFilter(r)
	if err != nil {
		writeError(w, "ListQuotes", err)
		return
	}

	quotes, err := c.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, "ListQuotes", err)
		return
	}
	if quotes == nil {
		quotes = []models.Quote{}
	}

	logger.Infof("✅ ListQuotes: Returning %d quotes", len(quotes))
	writeJSON(w, http.StatusOK, models.QuoteListResponse{Quotes: quotes})
}

func (c *QuoteController) checkout(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuoteRequest
	if !decodeBody(w, r, c.validator, "Checkout", &req) {
		return
	}

	quote, err := c.service.Checkout(r.Context(), &req)
	if err != nil {
		writeError(w, "Checkout", err)
		return
	}

	logger.Infof("✅ Checkout: quote %s created, total=%s", quote.ID, quote.GrandTotal.StringFixed(2))
	writeJSON(w, http.StatusCreated, quote)
}

func (c *QuoteController) parseFilter(r *http.Request) (repository.QuoteFilter, error) {
	var filter repository.QuoteFilter
	q := r.URL.Query()

	if raw := q.Get("from"); raw != "" {
		from, err := time.ParseInLocation(queryDateLayout, raw, c.loc)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid from date %q", models.ErrInvalidInput, raw)
		}
		filter.From = &from
	}
	if raw := q.Get("to"); raw != "" {
		to, err := time.ParseInLocation(queryDateLayout, raw, c.loc)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid to date %q", models.ErrInvalidInput, raw)
		}
		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}
	if raw := q.Get("status"); raw != "" {
		status, err := models.ParseQuoteStatus(raw)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	return filter, nil
}

// Quote handles the /admin/quotes/{id} subtree:
// GET /admin/quotes/{id}, PATCH /admin/quotes/{id}/status and GET /admin/quotes/{id}/summary
func (c *QuoteController) Quote(w http.ResponseWriter, r *http.Request) {
	logger.Infof("📥 Quote: Received %s request to %s", r.Method, r.URL.Path)

	switch {
	case strings.HasSuffix(r.URL.Path, "/status"):
		c.updateStatus(w, r)
	case strings.HasSuffix(r.URL.Path, "/summary"):
		c.summary(w, r)
	default:
		if !allowMethod(w, r, "Quote", http.MethodGet, http.MethodDelete) {
			return
		}
		id, ok := pathParam(r.URL.Path, "/admin/quotes/", "")
		if !ok {
			writeError(w, "Quote", fmt.Errorf("%w: quote id is required", models.ErrInvalidInput))
			return
		}
		if r.Method == http.MethodDelete {
			if err := c.service.Delete(r.Context(), id); err != nil {
				writeError(w, "DeleteQuote", err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
		quote, err := c.service.Get(r.Context(), id)
		if err != nil {
			writeError(w, "GetQuote", err)
			return
		}
		writeJSON(w, http.StatusOK, quote)
	}
}

func (c *QuoteController) updateStatus(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "UpdateQuoteStatus", http.MethodPatch, http.MethodPut) {
		return
	}
	id, ok := pathParam(r.URL.Path, "/admin/quotes/", "/status")
	if !ok {
		writeError(w, "UpdateQuoteStatus", fmt.Errorf("%w: quote id is required", models.ErrInvalidInput))
		return
	}

	var req models.UpdateQuoteStatusRequest
	if !decodeBody(w, r, c.validator, "UpdateQuoteStatus", &req) {
		return
	}

	quote, err := c.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, "UpdateQuoteStatus", err)
		return
	}

	logger.Infof("✅ UpdateQuoteStatus: quote %s is now %s", quote.ID, quote.Status)
	writeJSON(w, http.StatusOK, quote)
}

// summary returns the plain-text message the shop pastes into chat apps
func (c *QuoteController) summary(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "QuoteSummary", http.MethodGet) {
		return
	}
	id, ok := pathParam(r.URL.Path, "/admin/quotes/", "/summary")
	if !ok {
		writeError(w, "QuoteSummary", fmt.Errorf("%w: quote id is required", models.ErrInvalidInput))
		return
	}

	text, err := c.service.Summary(r.Context(), id)
	if err != nil {
		writeError(w, "QuoteSummary", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(text)); err != nil {
		logger.Errorf("❌ QuoteSummary: Error writing response: %v", err)
	}
}
