package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus is the lifecycle state of a quote
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusConverted QuoteStatus = "converted"
	QuoteStatusCancelled QuoteStatus = "cancelled"
)

// ParseQuoteStatus normalizes a status string. The Portuguese labels used by the
// legacy export (Pendente, Convertida, Cancelada) are accepted as well.
func ParseQuoteStatus(s string) (QuoteStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "pendente":
		return QuoteStatusPending, nil
	case "converted", "convertida":
		return QuoteStatusConverted, nil
	case "cancelled", "canceled", "cancelada":
		return QuoteStatusCancelled, nil
	}
	return "", fmt.Errorf("%w: unknown quote status %q", ErrInvalidInput, s)
}

// Valid reports whether the status is one of the known values
func (s QuoteStatus) Valid() bool {
	return s == QuoteStatusPending || s == QuoteStatusConverted || s == QuoteStatusCancelled
}

// LineItem is one line of a quote. Both monetary fields are captured when the item
// enters the cart and are never recomputed from the live catalog.
type LineItem struct {
	ItemKind               ItemKind        `json:"itemKind"`
	ItemID                 int64           `json:"itemId"`
	Description            string          `json:"description"`
	Quantity               int             `json:"quantity"`
	UnitCostAtCapture      decimal.Decimal `json:"unitCostAtCapture"`
	UnitSalePriceAtCapture decimal.Decimal `json:"unitSalePriceAtCapture"`
}

// Subtotal is unit sale price times quantity
func (l LineItem) Subtotal() decimal.Decimal {
	return l.UnitSalePriceAtCapture.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Profit is (unit sale price - unit cost) times quantity
func (l LineItem) Profit() decimal.Decimal {
	return l.UnitSalePriceAtCapture.Sub(l.UnitCostAtCapture).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Quote represents a customer order or proposal. GrandTotal is a snapshot taken at
// creation; only Status changes afterwards.
type Quote struct {
	ID             string          `json:"id"`
	CreatedAt      time.Time       `json:"createdAt"`
	Status         QuoteStatus     `json:"status"`
	CustomerName   string          `json:"customerName,omitempty"`
	CustomerPhone  string          `json:"customerPhone,omitempty"`
	Channel        string          `json:"channel,omitempty"`
	Lines          []LineItem      `json:"lines"`
	ShippingAmount decimal.Decimal `json:"shippingAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
	Notes          string          `json:"notes,omitempty"`
	// Defects lists fields that could not be read from storage (e.g. a NULL or
	// unparseable monetary column). A quote with defects is excluded from totals.
	Defects []string `json:"defects,omitempty"`
}

// Column names used when a stored quote field holds no usable value
const (
	ColumnCreatedAt     = "created_at"
	ColumnShipping      = "shipping"
	ColumnDiscount      = "discount"
	ColumnGrandTotal    = "grand_total"
	ColumnQuantity      = "quantity"
	ColumnUnitCost      = "unit_cost"
	ColumnUnitSalePrice = "unit_sale_price"
)

// MissingField is the defect recorded for a column that holds no usable value
func MissingField(column string) string {
	return column + " is missing"
}

// LineColumn names a column of the i-th line (zero based) for defect reporting
func LineColumn(i int, column string) string {
	return fmt.Sprintf("line %d %s", i+1, column)
}

// HasMissing reports whether column was recorded as missing
func (q Quote) HasMissing(column string) bool {
	want := MissingField(column)
	for _, d := range q.Defects {
		if d == want {
			return true
		}
	}
	return false
}

// LinesTotal sums the captured line subtotals
func (q Quote) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range q.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// ComputeGrandTotal is lines + shipping - discount. It is used once, at capture time.
func (q Quote) ComputeGrandTotal() decimal.Decimal {
	return q.LinesTotal().Add(q.ShippingAmount).Sub(q.DiscountAmount)
}

// Profit is the sum of line profits plus shipping minus discount, from captured values only
func (q Quote) Profit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range q.Lines {
		total = total.Add(l.Profit())
	}
	return total.Add(q.ShippingAmount).Sub(q.DiscountAmount)
}

// Validate checks that every monetary and quantity field can take part in arithmetic
func (q Quote) Validate() error {
	if len(q.Defects) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(q.Defects, "; "))
	}
	if !q.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, q.Status)
	}
	if q.CreatedAt.IsZero() {
		return fmt.Errorf("%w: missing createdAt", ErrInvalidInput)
	}
	if q.ShippingAmount.IsNegative() {
		return fmt.Errorf("%w: negative shippingAmount", ErrInvalidInput)
	}
	if q.DiscountAmount.IsNegative() {
		return fmt.Errorf("%w: negative discountAmount", ErrInvalidInput)
	}
	if q.GrandTotal.IsNegative() {
		return fmt.Errorf("%w: negative grandTotal", ErrInvalidInput)
	}
	for i, l := range q.Lines {
		if l.Quantity <= 0 {
			return fmt.Errorf("%w: line %d has non-positive quantity %d", ErrInvalidInput, i+1, l.Quantity)
		}
		if l.UnitCostAtCapture.IsNegative() {
			return fmt.Errorf("%w: line %d has negative unit cost", ErrInvalidInput, i+1)
		}
		if l.UnitSalePriceAtCapture.IsNegative() {
			return fmt.Errorf("%w: line %d has negative unit sale price", ErrInvalidInput, i+1)
		}
	}
	return nil
}

// CartLine is one item the user put in the cart before checkout
type CartLine struct {
	ItemKind  ItemKind         `json:"itemKind" validate:"required,oneof=product kit"`
	ItemID    int64            `json:"itemId" validate:"required,gt=0"`
	Quantity  int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"` // overrides the channel price when set
}

// CreateQuoteRequest represents the request body for checking out a cart into a quote
// Example: {
//   "customerName": "Maria",
//   "customerPhone": "+55 11 99999-0000",
//   "channel": "whatsapp",
//   "lines": [{"itemKind": "product", "itemId": 1, "quantity": 2}],
//   "shippingAmount": "5.00",
//   "discountAmount": "2.00"
// }
type CreateQuoteRequest struct {
	CustomerName   string          `json:"customerName"`
	CustomerPhone  string          `json:"customerPhone"`
	Channel        string          `json:"channel"`
	Lines          []CartLine      `json:"lines" validate:"required,min=1,dive"`
	ShippingAmount decimal.Decimal `json:"shippingAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Notes          string          `json:"notes"`
}

// UpdateQuoteStatusRequest represents the request body for changing a quote status
// Example: {"status": "converted"}
type UpdateQuoteStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// QuoteListResponse represents the response for listing quotes
type QuoteListResponse struct {
	Quotes []Quote `json:"quotes"`
}
