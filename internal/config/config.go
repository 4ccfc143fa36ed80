package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

// ErrInvalidConfig возвращается, когда конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Payments  PaymentsConfig  `toml:"payments"`
	Notifier  NotifierConfig  `toml:"notifier"`
	Platform  PlatformConfig  `toml:"platform"`
	Booking   BookingConfig   `toml:"booking"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
}

// ServerConfig параметры HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" validate:"min=1,max=65535"`
	ReadTimeout     int `toml:"read_timeout" validate:"min=1"`
	WriteTimeout    int `toml:"write_timeout" validate:"min=1"`
	IdleTimeout     int `toml:"idle_timeout" validate:"min=1"`
	ShutdownTimeout int `toml:"shutdown_timeout" validate:"min=1"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" validate:"required"`
	Port            int    `toml:"port" validate:"min=1,max=65535"`
	User            string `toml:"user" validate:"required"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" validate:"required"`
	SSLMode         string `toml:"sslmode" validate:"oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int    `toml:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `toml:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" validate:"min=0"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

// MetricsConfig параметры prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name" validate:"required"`
	Path        string `toml:"path" validate:"startswith=/"`
}

// PaymentsConfig параметры платёжного провайдера
type PaymentsConfig struct {
	SecretKey     string `toml:"secret_key"`
	Currency      string `toml:"currency" validate:"len=3"`
	PaymentMethod string `toml:"payment_method"`
}

// NotifierConfig параметры сервиса уведомлений, пустой URL отключает уведомления
type NotifierConfig struct {
	URL     string `toml:"url" validate:"omitempty,url"`
	Timeout int    `toml:"timeout" validate:"min=1"`
}

// PlatformConfig настройки платформы по умолчанию (пока администратор не сохранил свои)
// Денежные значения и ставки задаются строками, чтобы не терять точность
type PlatformConfig struct {
	AllowFreeCalls     bool `toml:"allow_free_calls"`
	AllowScreenSharing bool `toml:"allow_screen_sharing"`
	AllowTranslation   bool `toml:"allow_translation"`
	AllowRecording     bool `toml:"allow_recording"`
	AllowTranscription bool `toml:"allow_transcription"`

	CommissionRate string `toml:"commission_rate"`
	TaxRate        string `toml:"tax_rate"`

	ScreenSharingPrice string `toml:"screen_sharing_price"`
	TranslationPrice   string `toml:"translation_price"`
	RecordingPrice     string `toml:"recording_price"`
	TranscriptionPrice string `toml:"transcription_price"`

	FreeCallDuration int     `toml:"free_call_duration" validate:"min=0,max=480"`
	TestAccountID    int64   `toml:"test_account_id" validate:"min=0"`
	AdminIDs         []int64 `toml:"admin_ids" validate:"dive,min=1"`
	HideBookedSlots  bool    `toml:"hide_booked_slots"`
}

// BookingConfig параметры процессов бронирования, в секундах
type BookingConfig struct {
	FlowTTLSeconds       int `toml:"flow_ttl_seconds" validate:"min=60"`
	SweepIntervalSeconds int `toml:"sweep_interval_seconds" validate:"min=1"`
}

// RateLimitConfig ограничение частоты запросов на пользователя
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second" validate:"gt=0"`
	Burst             int     `toml:"burst" validate:"min=1"`
}

// Load читает конфигурацию из TOML файла
// Переменные окружения (и .env, если есть) переопределяют секреты и адреса
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.PlatformDefaults(); err != nil {
		return err
	}
	return nil
}

// PlatformDefaults настройки платформы из конфигурации
func (c *Config) PlatformDefaults() (domain.PlatformSettings, error) {
	p := c.Platform
	settings := domain.DefaultPlatformSettings()
	settings.AllowFreeCalls = p.AllowFreeCalls
	settings.AllowScreenSharing = p.AllowScreenSharing
	settings.AllowTranslation = p.AllowTranslation
	settings.AllowRecording = p.AllowRecording
	settings.AllowTranscription = p.AllowTranscription

	var err error
	if settings.CommissionRate, err = parseRate("commission_rate", p.CommissionRate, domain.DefaultCommissionRate); err != nil {
		return domain.PlatformSettings{}, err
	}
	if settings.TaxRate, err = parseRate("tax_rate", p.TaxRate, domain.DefaultTaxRate); err != nil {
		return domain.PlatformSettings{}, err
	}

	prices := []struct {
		name  string
		value string
		dst   *decimal.Decimal
	}{
		{"screen_sharing_price", p.ScreenSharingPrice, &settings.AddOnPrices.ScreenSharing},
		{"translation_price", p.TranslationPrice, &settings.AddOnPrices.Translation},
		{"recording_price", p.RecordingPrice, &settings.AddOnPrices.Recording},
		{"transcription_price", p.TranscriptionPrice, &settings.AddOnPrices.Transcription},
	}
	for _, price := range prices {
		if *price.dst, err = parsePrice(price.name, price.value); err != nil {
			return domain.PlatformSettings{}, err
		}
	}

	return settings, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			ServiceName: "session-booking",
			Path:        "/metrics",
		},
		Payments: PaymentsConfig{Currency: "eur"},
		Notifier: NotifierConfig{Timeout: 5},
		Booking: BookingConfig{
			FlowTTLSeconds:       1800,
			SweepIntervalSeconds: 60,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 10,
			Burst:             20,
		},
	}
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("STRIPE_SECRET_KEY"); v != "" {
		cfg.Payments.SecretKey = v
	}
	if v := os.Getenv("NOTIFIER_URL"); v != "" {
		cfg.Notifier.URL = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT %q is not a number", ErrInvalidConfig, v)
		}
		cfg.Server.HTTPPort = port
	}
	if v := os.Getenv("ADMIN_IDS"); v != "" {
		ids, err := parseIDs(v)
		if err != nil {
			return err
		}
		cfg.Platform.AdminIDs = ids
	}
	return nil
}

func parseIDs(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: ADMIN_IDS contains %q", ErrInvalidConfig, part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseRate(name, value string, def decimal.Decimal) (decimal.Decimal, error) {
	if value == "" {
		return def, nil
	}
	rate, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: platform.%s %q is not a number", ErrInvalidConfig, name, value)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("%w: platform.%s must be within [0, 1]", ErrInvalidConfig, name)
	}
	return rate, nil
}

func parsePrice(name, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	price, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: platform.%s %q is not a number", ErrInvalidConfig, name, value)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: platform.%s must not be negative", ErrInvalidConfig, name)
	}
	return price, nil
}
