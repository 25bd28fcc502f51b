package pricing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"vitrine-backoffice/models"
)

// channelFile is the on-disk channel configuration
// Example:
// {
//   "channels": [
//     {"key": "shopee", "displayName": "Shopee", "fixedFee": "5.00", "commissionRate": "0.20"}
//   ]
// }
type channelFile struct {
	Channels []models.ChannelConfig `json:"channels"`
}

// ChannelCatalog is the read-only registry of sales channels, kept in registration order
type ChannelCatalog struct {
	order    []string
	channels map[string]models.ChannelConfig
}

// DefaultChannels returns the marketplaces the shop sells on, in display order
func DefaultChannels() []models.ChannelConfig {
	return []models.ChannelConfig{
		{Key: "shopee", DisplayName: "Shopee", FixedFee: decimal.RequireFromString("5.00"), CommissionRate: decimal.RequireFromString("0.20")},
		{Key: "ml_premium", DisplayName: "ML Premium", FixedFee: decimal.RequireFromString("6.00"), CommissionRate: decimal.RequireFromString("0.165")},
		{Key: "amazon", DisplayName: "Amazon", FixedFee: decimal.RequireFromString("2.00"), CommissionRate: decimal.RequireFromString("0.14")},
		{Key: "tiktok", DisplayName: "TikTok Shop", FixedFee: decimal.RequireFromString("2.00"), CommissionRate: decimal.RequireFromString("0.06")},
		{Key: "facebook", DisplayName: "Facebook", FixedFee: decimal.Zero, CommissionRate: decimal.Zero},
		{Key: "whatsapp", DisplayName: "WhatsApp", FixedFee: decimal.Zero, CommissionRate: decimal.Zero},
	}
}

// NewChannelCatalog registers the given channels. Every channel is validated here so a
// bad configuration fails at startup instead of inside a pricing call.
func NewChannelCatalog(configs ...models.ChannelConfig) (*ChannelCatalog, error) {
	c := &ChannelCatalog{
		order:    make([]string, 0, len(configs)),
		channels: make(map[string]models.ChannelConfig, len(configs)),
	}
	for _, cfg := range configs {
		if err := validateChannel(cfg); err != nil {
			return nil, err
		}
		if _, exists := c.channels[cfg.Key]; exists {
			return nil, fmt.Errorf("%w: duplicate channel key %q", models.ErrInvalidChannelConfig, cfg.Key)
		}
		c.order = append(c.order, cfg.Key)
		c.channels[cfg.Key] = cfg
	}
	return c, nil
}

// LoadChannelCatalog reads channels from a JSON file. An empty path yields the defaults.
func LoadChannelCatalog(configPath string) (*ChannelCatalog, error) {
	if configPath == "" {
		return NewChannelCatalog(DefaultChannels()...)
	}

	if !filepath.IsAbs(configPath) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		configPath = filepath.Join(wd, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read channel config: %w", err)
	}

	var file channelFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse channel config: %w", err)
	}
	if len(file.Channels) == 0 {
		return nil, fmt.Errorf("%w: channel config %s has no channels", models.ErrInvalidChannelConfig, configPath)
	}

	return NewChannelCatalog(file.Channels...)
}

func validateChannel(cfg models.ChannelConfig) error {
	if strings.TrimSpace(cfg.Key) == "" {
		return fmt.Errorf("%w: channel key is required", models.ErrInvalidChannelConfig)
	}
	if cfg.FixedFee.IsNegative() {
		return fmt.Errorf("%w: channel %q has a negative fixed fee", models.ErrInvalidChannelConfig, cfg.Key)
	}
	if cfg.CommissionRate.IsNegative() || cfg.CommissionRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: channel %q commission rate %s is outside [0,1)", models.ErrInvalidChannelConfig, cfg.Key, cfg.CommissionRate)
	}
	return nil
}

// Get returns the channel registered under key
func (c *ChannelCatalog) Get(key string) (models.ChannelConfig, error) {
	cfg, ok := c.channels[key]
	if !ok {
		return models.ChannelConfig{}, fmt.Errorf("%w: channel %q", models.ErrNotFound, key)
	}
	return cfg, nil
}

// All returns every channel in registration order
func (c *ChannelCatalog) All() []models.ChannelConfig {
	out := make([]models.ChannelConfig, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.channels[key])
	}
	return out
}
