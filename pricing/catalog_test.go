package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine-backoffice/models"
)

func TestNewChannelCatalog_KeepsRegistrationOrder(t *testing.T) {
	catalog, err := NewChannelCatalog(DefaultChannels()...)
	require.NoError(t, err)

	keys := []string{}
	for _, ch := range catalog.All() {
		keys = append(keys, ch.Key)
	}
	assert.Equal(t, []string{"shopee", "ml_premium", "amazon", "tiktok", "facebook", "whatsapp"}, keys)

	// All returns a copy
	all := catalog.All()
	all[0].DisplayName = "changed"
	first, err := catalog.Get("shopee")
	require.NoError(t, err)
	assert.Equal(t, "Shopee", first.DisplayName)
}

func TestNewChannelCatalog_RejectsBadChannels(t *testing.T) {
	tests := []struct {
		name string
		cfg  models.ChannelConfig
	}{
		{"full commission", models.ChannelConfig{Key: "a", CommissionRate: d("1")}},
		{"commission above one", models.ChannelConfig{Key: "a", CommissionRate: d("1.2")}},
		{"negative commission", models.ChannelConfig{Key: "a", CommissionRate: d("-0.1")}},
		{"negative fee", models.ChannelConfig{Key: "a", FixedFee: d("-1")}},
		{"empty key", models.ChannelConfig{Key: "  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChannelCatalog(tt.cfg)
			assert.ErrorIs(t, err, models.ErrInvalidChannelConfig)
		})
	}

	_, err := NewChannelCatalog(shopee(), shopee())
	assert.ErrorIs(t, err, models.ErrInvalidChannelConfig)
}

func TestChannelCatalogGet_Unknown(t *testing.T) {
	catalog, err := NewChannelCatalog(shopee())
	require.NoError(t, err)

	_, err = catalog.Get("amazon")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestLoadChannelCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "channels.json")
	content := `{"channels": [
		{"key": "loja", "displayName": "Loja Própria", "fixedFee": 0, "commissionRate": "0.05"},
		{"key": "shopee", "displayName": "Shopee", "fixedFee": "5.00", "commissionRate": 0.2}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	catalog, err := LoadChannelCatalog(path)
	require.NoError(t, err)
	all := catalog.All()
	require.Len(t, all, 2)
	assert.Equal(t, "loja", all[0].Key)
	assertDecimal(t, "0.05", all[0].CommissionRate)
	assertDecimal(t, "5", all[1].FixedFee)

	defaults, err := LoadChannelCatalog("")
	require.NoError(t, err)
	assert.Len(t, defaults.All(), 6)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"channels": [{"key": "x", "commissionRate": "1"}]}`), 0o644))
	_, err = LoadChannelCatalog(bad)
	assert.ErrorIs(t, err, models.ErrInvalidChannelConfig)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"channels": []}`), 0o644))
	_, err = LoadChannelCatalog(empty)
	assert.ErrorIs(t, err, models.ErrInvalidChannelConfig)

	_, err = LoadChannelCatalog(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
