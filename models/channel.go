package models

import "github.com/shopspring/decimal"

// ChannelConfig describes a sales marketplace: a fixed fee charged per sale plus a
// commission taken as a fraction of the sale price.
// Example: {"key": "shopee", "displayName": "Shopee", "fixedFee": "5", "commissionRate": "0.2"}
type ChannelConfig struct {
	Key            string          `json:"key"`
	DisplayName    string          `json:"displayName"`
	FixedFee       decimal.Decimal `json:"fixedFee"`
	CommissionRate decimal.Decimal `json:"commissionRate"` // fraction in [0,1)
}
