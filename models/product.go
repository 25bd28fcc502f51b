package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ItemKind distinguishes products from kits wherever either can be sold or priced
type ItemKind string

const (
	ItemKindProduct ItemKind = "product"
	ItemKindKit     ItemKind = "kit"
)

// Product represents a catalog product in the database
type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Supplier  string          `json:"supplier,omitempty"`
	Cost      decimal.Decimal `json:"cost"`    // acquisition cost per unit
	Picking   decimal.Decimal `json:"picking"` // handling/picking cost per unit
	Pricing   PricingInput    `json:"pricing"`
	CreatedAt string          `json:"createdAt"`
}

// CostBasis is acquisition cost plus handling cost for one unit
func (p Product) CostBasis() decimal.Decimal {
	return p.Cost.Add(p.Picking)
}

// CreateProductRequest represents the request body for creating a product
// Example: {"name": "Coleira Couro", "sku": "COL-001", "supplier": "Fornecedor Exemplo", "cost": "18.50", "picking": "1.50"}
type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required"`
	SKU      string          `json:"sku" validate:"required"`
	Supplier string          `json:"supplier"`
	Cost     decimal.Decimal `json:"cost"`
	Picking  decimal.Decimal `json:"picking"`
}

// Validate checks the monetary fields the struct tags cannot express
func (r CreateProductRequest) Validate() error {
	if r.Cost.IsNegative() {
		return fmt.Errorf("%w: cost must not be negative", ErrInvalidInput)
	}
	if r.Picking.IsNegative() {
		return fmt.Errorf("%w: picking must not be negative", ErrInvalidInput)
	}
	if strings.TrimSpace(r.SKU) == "" {
		return fmt.Errorf("%w: sku is required", ErrInvalidInput)
	}
	return nil
}

// KitComponent is one product inside a kit
type KitComponent struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// Kit represents a bundle of products sold as one unit
type Kit struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	Components []KitComponent `json:"components"`
	Pricing    PricingInput   `json:"pricing"`
	CreatedAt  string         `json:"createdAt"`
}

// SKU returns the synthetic SKU kits are shown with
func (k Kit) SKU() string {
	return fmt.Sprintf("KIT-%d", k.ID)
}

// CostBasis sums the current cost basis of every component. Components whose product
// no longer exists are reported as ErrNotFound so a stale kit is never priced silently.
func (k Kit) CostBasis(products map[int64]Product) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, c := range k.Components {
		p, ok := products[c.ProductID]
		if !ok {
			return decimal.Zero, fmt.Errorf("%w: product %d in kit %d", ErrNotFound, c.ProductID, k.ID)
		}
		total = total.Add(p.CostBasis().Mul(decimal.NewFromInt(int64(c.Quantity))))
	}
	return total, nil
}

// CreateKitRequest represents the request body for creating a kit
// Example: {"name": "Kit Passeio", "components": [{"productId": 1, "quantity": 1}, {"productId": 2, "quantity": 2}]}
type CreateKitRequest struct {
	Name       string         `json:"name" validate:"required"`
	Components []KitComponent `json:"components" validate:"required,min=1,dive"`
}
