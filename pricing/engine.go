package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"vitrine-backoffice/models"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// PriceForDesiredProfit solves the fee inversion: the sale price S such that, after the
// channel keeps S*r as commission and its fixed fee F, what is left over the cost basis C
// is exactly the desired profit P.
//
//	S = (C + P + F) / (1 - r)
//
// P may be negative (an accepted loss). No rounding happens here.
func PriceForDesiredProfit(costBasis, desiredProfit decimal.Decimal, channel models.ChannelConfig) (models.PricingResult, error) {
	if err := checkInputs(costBasis, channel); err != nil {
		return models.PricingResult{}, err
	}
	subtotal := costBasis.Add(desiredProfit).Add(channel.FixedFee)
	salePrice := subtotal.Div(one.Sub(channel.CommissionRate))
	return decompose(costBasis, salePrice, channel), nil
}

// ResultForGivenPrice evaluates an arbitrary sale price on a channel without inverting.
// Any price PriceForDesiredProfit can produce is accepted, negative ones included.
func ResultForGivenPrice(costBasis, salePrice decimal.Decimal, channel models.ChannelConfig) (models.PricingResult, error) {
	if err := checkInputs(costBasis, channel); err != nil {
		return models.PricingResult{}, err
	}
	return decompose(costBasis, salePrice, channel), nil
}

func checkInputs(costBasis decimal.Decimal, channel models.ChannelConfig) error {
	if costBasis.IsNegative() {
		return fmt.Errorf("%w: cost basis must not be negative", models.ErrInvalidInput)
	}
	if channel.CommissionRate.GreaterThanOrEqual(one) || channel.CommissionRate.IsNegative() {
		return fmt.Errorf("%w: channel %q commission rate %s", models.ErrInvalidChannelConfig, channel.Key, channel.CommissionRate)
	}
	return nil
}

func decompose(costBasis, salePrice decimal.Decimal, channel models.ChannelConfig) models.PricingResult {
	commission := salePrice.Mul(channel.CommissionRate)
	netRevenue := salePrice.Sub(commission).Sub(channel.FixedFee)
	profit := netRevenue.Sub(costBasis)

	margin := decimal.Zero
	if !salePrice.IsZero() {
		margin = profit.Div(salePrice).Mul(hundred)
	}

	return models.PricingResult{
		ChannelKey:            channel.Key,
		CostBasis:             costBasis,
		SalePrice:             salePrice,
		CommissionAmount:      commission,
		FixedFeeAmount:        channel.FixedFee,
		NetRevenue:            netRevenue,
		RealizedProfit:        profit,
		RealizedMarginPercent: margin,
	}
}

// Engine prices items across every channel of a catalog
type Engine struct {
	catalog *ChannelCatalog
}

// NewEngine creates a pricing engine over a validated channel catalog
func NewEngine(catalog *ChannelCatalog) *Engine {
	return &Engine{catalog: catalog}
}

// Catalog returns the channel catalog the engine prices against
func (e *Engine) Catalog() *ChannelCatalog {
	return e.catalog
}

// Evaluate returns one row per channel in catalog order. Channels without a desired
// profit are returned unconfigured and carry no result.
func (e *Engine) Evaluate(costBasis decimal.Decimal, input models.PricingInput) ([]models.ChannelPricing, error) {
	if costBasis.IsNegative() {
		return nil, fmt.Errorf("%w: cost basis must not be negative", models.ErrInvalidInput)
	}

	channels := e.catalog.All()
	rows := make([]models.ChannelPricing, 0, len(channels))
	for _, ch := range channels {
		row := models.ChannelPricing{Channel: ch}
		if profit, ok := input.DesiredProfitFor(ch.Key); ok {
			result, err := PriceForDesiredProfit(costBasis, profit, ch)
			if err != nil {
				return nil, err
			}
			p := profit
			row.Configured = true
			row.DesiredProfit = &p
			row.Result = &result
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Simulate evaluates a what-if sale price on one channel
func (e *Engine) Simulate(costBasis, salePrice decimal.Decimal, channelKey string) (models.PricingResult, error) {
	ch, err := e.catalog.Get(channelKey)
	if err != nil {
		return models.PricingResult{}, err
	}
	return ResultForGivenPrice(costBasis, salePrice, ch)
}

// PriceOn computes the sale price for a desired profit on one channel
func (e *Engine) PriceOn(costBasis, desiredProfit decimal.Decimal, channelKey string) (models.PricingResult, error) {
	ch, err := e.catalog.Get(channelKey)
	if err != nil {
		return models.PricingResult{}, err
	}
	return PriceForDesiredProfit(costBasis, desiredProfit, ch)
}

// WithDesiredProfits returns a copy of input with the given channel profits set.
// Unknown channel keys fail with ErrNotFound and leave input untouched.
func (e *Engine) WithDesiredProfits(input models.PricingInput, profits map[string]decimal.Decimal) (models.PricingInput, error) {
	for key := range profits {
		if _, err := e.catalog.Get(key); err != nil {
			return models.PricingInput{}, err
		}
	}
	out := input.Clone()
	for key, profit := range profits {
		out.DesiredProfit[key] = profit
	}
	return out, nil
}
