package repository

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"vitrine-backoffice/config"
	"vitrine-backoffice/models"
)

var logger = config.GetLogger()

// decodePricing reads a JSONB pricing column; an empty value means nothing configured
func decodePricing(raw []byte) (models.PricingInput, error) {
	pricing := models.PricingInput{DesiredProfit: map[string]decimal.Decimal{}}
	if len(raw) == 0 {
		return pricing, nil
	}
	if err := json.Unmarshal(raw, &pricing); err != nil {
		return pricing, fmt.Errorf("failed to decode pricing: %w", err)
	}
	if pricing.DesiredProfit == nil {
		pricing.DesiredProfit = map[string]decimal.Decimal{}
	}
	return pricing, nil
}

func encodePricing(pricing models.PricingInput) ([]byte, error) {
	if pricing.DesiredProfit == nil {
		pricing.DesiredProfit = map[string]decimal.Decimal{}
	}
	raw, err := json.Marshal(pricing)
	if err != nil {
		return nil, fmt.Errorf("failed to encode pricing: %w", err)
	}
	return raw, nil
}

// nullableAmount writes NULL for a column the quote recorded as missing
func nullableAmount(q *models.Quote, column string, v decimal.Decimal) decimal.NullDecimal {
	if q.HasMissing(column) {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(v)
}

// readAmount returns the value of a nullable column, recording a defect when it is NULL
func readAmount(q *models.Quote, column string, v decimal.NullDecimal) decimal.Decimal {
	if !v.Valid {
		q.Defects = append(q.Defects, models.MissingField(column))
		return decimal.Zero
	}
	return v.Decimal
}
