package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

const sampleConfig = `
[server]
http_port = 8085

[database]
host = "db"
port = 5432
user = "booking"
password = "from-file"
dbname = "sessions"

[logs]
level = "debug"

[payments]
currency = "usd"
payment_method = "pm_card_visa"

[platform]
allow_free_calls = true
allow_translation = true
commission_rate = "0.15"
translation_price = "25"
free_call_duration = 15
admin_ids = [1, 2]

[booking]
flow_ttl_seconds = 900
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")

	cfg, err := Load(writeConfig(t, sampleConfig))

	require.NoError(t, err)
	assert.Equal(t, 8085, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout, "default kept")
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "sk_test_123", cfg.Payments.SecretKey)
	assert.Equal(t, []int64{1, 2}, cfg.Platform.AdminIDs)
	assert.Equal(t, 900, cfg.Booking.FlowTTLSeconds)
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
}

func TestConfig_PlatformDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	settings, err := cfg.PlatformDefaults()

	require.NoError(t, err)
	assert.True(t, settings.AllowFreeCalls)
	assert.True(t, settings.AllowTranslation)
	assert.False(t, settings.AllowRecording)
	assert.True(t, settings.CommissionRate.Equal(decimal.RequireFromString("0.15")))
	assert.True(t, settings.TaxRate.Equal(domain.DefaultTaxRate))
	assert.True(t, settings.AddOnPrices.Translation.Equal(decimal.NewFromInt(25)))
	assert.True(t, settings.AddOnPrices.Recording.IsZero())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "zero burst", content: sampleConfig + "\n[ratelimit]\nburst = 0\n"},
		{name: "bad log level", content: `
[database]
user = "u"
dbname = "d"
[logs]
level = "verbose"
`},
		{name: "missing database user", content: `
[database]
dbname = "d"
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))

			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfig_PlatformDefaults_BadValues(t *testing.T) {
	tests := []struct {
		name     string
		platform PlatformConfig
	}{
		{name: "commission above one", platform: PlatformConfig{CommissionRate: "1.5"}},
		{name: "negative tax", platform: PlatformConfig{TaxRate: "-0.1"}},
		{name: "price not a number", platform: PlatformConfig{RecordingPrice: "ten"}},
		{name: "negative price", platform: PlatformConfig{ScreenSharingPrice: "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Platform = tt.platform

			_, err := cfg.PlatformDefaults()

			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	assert.Error(t, err)
}
