package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vitrine-backoffice/models"
	"vitrine-backoffice/pricing"
	"vitrine-backoffice/repository"
	"vitrine-backoffice/utils"
)

// QuoteService turns carts into quote snapshots and manages their status
type QuoteService struct {
	engine   *pricing.Engine
	products repository.ProductRepositoryInterface
	kits     repository.KitRepositoryInterface
	quotes   repository.QuoteRepositoryInterface
	now      func() time.Time
	newID    func() string
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(
	engine *pricing.Engine,
	products repository.ProductRepositoryInterface,
	kits repository.KitRepositoryInterface,
	quotes repository.QuoteRepositoryInterface,
) *QuoteService {
	return &QuoteService{
		engine:   engine,
		products: products,
		kits:     kits,
		quotes:   quotes,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// cartItem is what checkout needs to know about a product or kit
type cartItem struct {
	name    string
	sku     string
	cost    decimal.Decimal
	pricing models.PricingInput
}

// Checkout captures the cart into a pending quote. Each line records the item's current
// cost basis and its sale price (the explicit unit price, or the price the item is
// configured to sell at on the quote channel). The grand total is computed here once.
func (s *QuoteService) Checkout(ctx context.Context, req *models.CreateQuoteRequest) (*models.Quote, error) {
	logger.Infof("📥 Checkout: channel=%s, lines=%d", req.Channel, len(req.Lines))

	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", models.ErrInvalidInput)
	}
	if req.ShippingAmount.IsNegative() || req.DiscountAmount.IsNegative() {
		return nil, fmt.Errorf("%w: shipping and discount must not be negative", models.ErrInvalidInput)
	}

	channel := strings.TrimSpace(req.Channel)
	if channel != "" {
		if _, err := s.engine.Catalog().Get(channel); err != nil {
			return nil, fmt.Errorf("%w: unknown channel %q", models.ErrInvalidInput, channel)
		}
	}

	products, err := productIndex(ctx, s.products)
	if err != nil {
		return nil, err
	}

	lines := make([]models.LineItem, 0, len(req.Lines))
	for i, cl := range req.Lines {
		if cl.Quantity <= 0 {
			return nil, fmt.Errorf("%w: line %d has non-positive quantity", models.ErrInvalidInput, i+1)
		}

		item, err := s.resolve(ctx, cl, products)
		if err != nil {
			return nil, err
		}

		price, err := s.unitPrice(cl, item, channel)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		lines = append(lines, models.LineItem{
			ItemKind:               cl.ItemKind,
			ItemID:                 cl.ItemID,
			Description:            fmt.Sprintf("%s (%s)", item.name, item.sku),
			Quantity:               cl.Quantity,
			UnitCostAtCapture:      item.cost,
			UnitSalePriceAtCapture: price,
		})
	}

	quote := &models.Quote{
		ID:             s.newID(),
		CreatedAt:      s.now(),
		Status:         models.QuoteStatusPending,
		CustomerName:   strings.TrimSpace(req.CustomerName),
		CustomerPhone:  strings.TrimSpace(req.CustomerPhone),
		Channel:        channel,
		Lines:          lines,
		ShippingAmount: req.ShippingAmount.Round(2),
		DiscountAmount: req.DiscountAmount.Round(2),
		Notes:          strings.TrimSpace(req.Notes),
	}
	quote.GrandTotal = quote.ComputeGrandTotal()

	if quote.GrandTotal.IsNegative() {
		return nil, fmt.Errorf("%w: discount exceeds the quote total", models.ErrInvalidInput)
	}
	if err := quote.Validate(); err != nil {
		return nil, err
	}

	if err := s.quotes.Create(ctx, quote); err != nil {
		return nil, err
	}

	logger.Infof("✅ Checkout: quote id=%s created, grandTotal=%s", quote.ID, quote.GrandTotal.StringFixed(2))
	return quote, nil
}

func (s *QuoteService) resolve(ctx context.Context, cl models.CartLine, products map[int64]models.Product) (*cartItem, error) {
	switch cl.ItemKind {
	case models.ItemKindProduct:
		p, ok := products[cl.ItemID]
		if !ok {
			return nil, fmt.Errorf("%w: product %d", models.ErrNotFound, cl.ItemID)
		}
		return &cartItem{name: p.Name, sku: p.SKU, cost: p.CostBasis(), pricing: p.Pricing}, nil
	case models.ItemKindKit:
		kit, err := s.kits.GetByID(ctx, cl.ItemID)
		if err != nil {
			return nil, err
		}
		cost, err := kit.CostBasis(products)
		if err != nil {
			return nil, err
		}
		return &cartItem{name: kit.Name, sku: kit.SKU(), cost: cost, pricing: kit.Pricing}, nil
	}
	return nil, fmt.Errorf("%w: unknown item kind %q", models.ErrInvalidInput, cl.ItemKind)
}

// unitPrice picks the captured sale price, rounded to cents since that is the amount
// the customer is charged
func (s *QuoteService) unitPrice(cl models.CartLine, item *cartItem, channel string) (decimal.Decimal, error) {
	if cl.UnitPrice != nil {
		if cl.UnitPrice.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: unit price must not be negative", models.ErrInvalidInput)
		}
		return cl.UnitPrice.Round(2), nil
	}

	if channel == "" {
		return decimal.Zero, fmt.Errorf("%w: %s has no unit price and the quote has no channel", models.ErrInvalidInput, item.sku)
	}
	profit, ok := item.pricing.DesiredProfitFor(channel)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s has no price configured for %s", models.ErrInvalidInput, item.sku, channel)
	}

	result, err := s.engine.PriceOn(item.cost, profit, channel)
	if err != nil {
		return decimal.Zero, err
	}
	return result.SalePrice.Round(2), nil
}

// Get returns a single quote
func (s *QuoteService) Get(ctx context.Context, id string) (*models.Quote, error) {
	return s.quotes.GetByID(ctx, id)
}

// List returns quotes matching the filter
func (s *QuoteService) List(ctx context.Context, filter repository.QuoteFilter) ([]models.Quote, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", models.ErrInvalidInput)
	}
	return s.quotes.List(ctx, filter)
}

// UpdateStatus moves a quote to another status. Any transition is allowed, including
// back to pending; captured amounts never change.
func (s *QuoteService) UpdateStatus(ctx context.Context, id string, status string) (*models.Quote, error) {
	parsed, err := models.ParseQuoteStatus(status)
	if err != nil {
		return nil, err
	}
	return s.quotes.UpdateStatus(ctx, id, parsed)
}

// Delete removes a quote. Its captured lines go with it.
func (s *QuoteService) Delete(ctx context.Context, id string) error {
	return s.quotes.Delete(ctx, id)
}

// Summary renders a plain-text summary suitable for sending to the customer
func (s *QuoteService) Summary(ctx context.Context, id string) (string, error) {
	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return QuoteSummary(quote), nil
}

// QuoteSummary formats a quote as a WhatsApp-style message
func QuoteSummary(q *models.Quote) string {
	var b strings.Builder

	b.WriteString("*Orçamento*\n")
	if q.CustomerName != "" {
		fmt.Fprintf(&b, "Cliente: %s\n", q.CustomerName)
	}
	if !q.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "Data: %s\n", q.CreatedAt.Format("02/01/2006 15:04"))
	}
	b.WriteString("\n")

	for _, l := range q.Lines {
		fmt.Fprintf(&b, "%dx %s - %s = %s\n",
			l.Quantity,
			l.Description,
			utils.FormatBRL(l.UnitSalePriceAtCapture),
			utils.FormatBRL(l.Subtotal()),
		)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", utils.FormatBRL(q.LinesTotal()))
	if !q.ShippingAmount.IsZero() {
		fmt.Fprintf(&b, "Frete: %s\n", utils.FormatBRL(q.ShippingAmount))
	}
	if !q.DiscountAmount.IsZero() {
		fmt.Fprintf(&b, "Descontos: -%s\n", utils.FormatBRL(q.DiscountAmount))
	}
	fmt.Fprintf(&b, "*Total: %s*", utils.FormatBRL(q.GrandTotal))
	if q.Notes != "" {
		fmt.Fprintf(&b, "\n\nObs.: %s", q.Notes)
	}
	return b.String()
}
