package models

import "github.com/shopspring/decimal"

// PricingInput holds the seller's desired profit per channel for one product or kit.
// A missing key means the channel was never configured, not a zero profit.
// Example: {"desiredProfit": {"shopee": "15.00", "amazon": "-2.50"}}
type PricingInput struct {
	DesiredProfit map[string]decimal.Decimal `json:"desiredProfit"`
}

// DesiredProfitFor returns the configured profit for a channel and whether it exists
func (p PricingInput) DesiredProfitFor(channelKey string) (decimal.Decimal, bool) {
	if p.DesiredProfit == nil {
		return decimal.Zero, false
	}
	v, ok := p.DesiredProfit[channelKey]
	return v, ok
}

// Clone returns a deep copy so callers can derive updated inputs without aliasing
func (p PricingInput) Clone() PricingInput {
	out := PricingInput{DesiredProfit: make(map[string]decimal.Decimal, len(p.DesiredProfit))}
	for k, v := range p.DesiredProfit {
		out.DesiredProfit[k] = v
	}
	return out
}

// PricingResult is the full fee decomposition of a sale price on one channel.
// It is derived data and never persisted.
type PricingResult struct {
	ChannelKey            string          `json:"channelKey"`
	CostBasis             decimal.Decimal `json:"costBasis"`
	SalePrice             decimal.Decimal `json:"salePrice"`
	CommissionAmount      decimal.Decimal `json:"commissionAmount"`
	FixedFeeAmount        decimal.Decimal `json:"fixedFeeAmount"`
	NetRevenue            decimal.Decimal `json:"netRevenue"`
	RealizedProfit        decimal.Decimal `json:"realizedProfit"`
	RealizedMarginPercent decimal.Decimal `json:"realizedMarginPercent"`
}

// Rounded returns a copy with every amount rounded to cents and the margin to one
// decimal place. Only the presentation boundary should call this.
func (r PricingResult) Rounded() PricingResult {
	return PricingResult{
		ChannelKey:            r.ChannelKey,
		CostBasis:             r.CostBasis.Round(2),
		SalePrice:             r.SalePrice.Round(2),
		CommissionAmount:      r.CommissionAmount.Round(2),
		FixedFeeAmount:        r.FixedFeeAmount.Round(2),
		NetRevenue:            r.NetRevenue.Round(2),
		RealizedProfit:        r.RealizedProfit.Round(2),
		RealizedMarginPercent: r.RealizedMarginPercent.Round(1),
	}
}

// ChannelPricing is one row of the pricing form: a channel and, when a desired profit
// is configured for it, the computed result.
// Example response item:
// {
//   "channel": {"key": "shopee", "displayName": "Shopee", "fixedFee": "5", "commissionRate": "0.2"},
//   "configured": true,
//   "desiredProfit": "10",
//   "result": {"salePrice": "43.75", "commissionAmount": "8.75", ...}
// }
type ChannelPricing struct {
	Channel       ChannelConfig    `json:"channel"`
	Configured    bool             `json:"configured"`
	DesiredProfit *decimal.Decimal `json:"desiredProfit,omitempty"`
	Result        *PricingResult   `json:"result,omitempty"`
}

// PricingSheet is the pricing view of a product or kit across all channels
type PricingSheet struct {
	ItemKind  ItemKind         `json:"itemKind"`
	ItemID    int64            `json:"itemId"`
	Name      string           `json:"name"`
	CostBasis decimal.Decimal  `json:"costBasis"`
	Channels  []ChannelPricing `json:"channels"`
}

// SavePricingRequest represents the request body for saving desired profits
// Example: {"desiredProfit": {"shopee": "15.00", "ml_premium": "12.5"}}
type SavePricingRequest struct {
	DesiredProfit map[string]decimal.Decimal `json:"desiredProfit" validate:"required,min=1"`
}

// SimulatePriceRequest represents a "what if I charge X" request
// Example: {"costBasis": "20.00", "salePrice": "49.90", "channel": "shopee"}
type SimulatePriceRequest struct {
	CostBasis decimal.Decimal `json:"costBasis"`
	SalePrice decimal.Decimal `json:"salePrice"`
	Channel   string          `json:"channel" validate:"required"`
}

// Rounded returns a copy of the sheet with every result rounded for display
func (s PricingSheet) Rounded() PricingSheet {
	out := s
	out.CostBasis = s.CostBasis.Round(2)
	out.Channels = make([]ChannelPricing, len(s.Channels))
	for i, row := range s.Channels {
		out.Channels[i] = row
		if row.Result != nil {
			r := row.Result.Rounded()
			out.Channels[i].Result = &r
		}
	}
	return out
}
