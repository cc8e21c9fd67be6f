package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/cron"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	RabbitMQ   RabbitMQConfig
	Commission CommissionConfig
	Payout     PayoutConfig
}

type DatabaseConfig struct {
	Host           string `mapstructure:"DB_HOST"`
	Port           int    `mapstructure:"DB_PORT"`
	User           string `mapstructure:"DB_USER"`
	Password       string `mapstructure:"DB_PASSWORD"`
	Name           string `mapstructure:"DB_NAME"`
	SSLMode        string `mapstructure:"DB_SSL_MODE"`
	MigrateOnStart bool   `mapstructure:"DB_MIGRATE_ON_START"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string `mapstructure:"JWT_SECRET_KEY"`
	AccessExpiration string `mapstructure:"JWT_ACCESS_EXPIRATION_TIME"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int      `mapstructure:"APP_PORT"`
	Env                string   `mapstructure:"APP_ENV"`
	LogLevel           string   `mapstructure:"LOG_LEVEL"`
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// RabbitMQConfig holds broker settings. An empty URL disables messaging.
type RabbitMQConfig struct {
	URL                string `mapstructure:"RABBITMQ_URL"`
	BidExchange        string `mapstructure:"RABBITMQ_BID_EXCHANGE"`
	BidQueue           string `mapstructure:"RABBITMQ_BID_QUEUE"`
	CommissionExchange string `mapstructure:"RABBITMQ_COMMISSION_EXCHANGE"`
}

// CommissionConfig holds the commission business rules
type CommissionConfig struct {
	AdjustmentPolicy string `mapstructure:"COMMISSION_ADJUSTMENT_POLICY"`
	StrictRates      bool   `mapstructure:"COMMISSION_STRICT_RATES"`
	CorpAccountID    string `mapstructure:"COMMISSION_CORP_ACCOUNT_ID"`
	SeedDefaultRates bool   `mapstructure:"COMMISSION_SEED_DEFAULT_RATES"`
}

// PayoutConfig holds payment batching settings
type PayoutConfig struct {
	AutoBatchEnabled  bool   `mapstructure:"PAYOUT_AUTO_BATCH_ENABLED"`
	AutoBatchSchedule string `mapstructure:"PAYOUT_AUTO_BATCH_SCHEDULE"`
	DefaultMethod     string `mapstructure:"PAYOUT_DEFAULT_METHOD"`
	WebhookToken      string `mapstructure:"PAYOUT_WEBHOOK_TOKEN"`
}

var defaults = map[string]interface{}{
	"APP_PORT":                      8080,
	"APP_ENV":                       "development",
	"LOG_LEVEL":                     "info",
	"CORS_ALLOWED_ORIGINS":          "http://localhost:3000",
	"DB_HOST":                       "localhost",
	"DB_PORT":                       5432,
	"DB_USER":                       "postgres",
	"DB_PASSWORD":                   "",
	"DB_NAME":                       "global_home_solutions",
	"DB_SSL_MODE":                   "disable",
	"DB_MIGRATE_ON_START":           true,
	"JWT_SECRET_KEY":                "",
	"JWT_ACCESS_EXPIRATION_TIME":    "1h",
	"RABBITMQ_URL":                  "",
	"RABBITMQ_BID_EXCHANGE":         "bid_request_events",
	"RABBITMQ_BID_QUEUE":            "commission.bid_request_events",
	"RABBITMQ_COMMISSION_EXCHANGE":  "commission_events",
	"COMMISSION_ADJUSTMENT_POLICY":  "corp",
	"COMMISSION_STRICT_RATES":       true,
	"COMMISSION_CORP_ACCOUNT_ID":    "corp",
	"COMMISSION_SEED_DEFAULT_RATES": true,
	"PAYOUT_AUTO_BATCH_ENABLED":     false,
	"PAYOUT_AUTO_BATCH_SCHEDULE":    "0 2 * * 1", // 02:00 every Monday
	"PAYOUT_DEFAULT_METHOD":         "ach",
	"PAYOUT_WEBHOOK_TOKEN":          "",
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		_ = v.BindEnv(key)
	}
	v.AutomaticEnv()

	config := &Config{}
	targets := []interface{}{&config.Database, &config.JWT, &config.App, &config.RabbitMQ, &config.Commission, &config.Payout}
	for _, target := range targets {
		if err := v.Unmarshal(target); err != nil {
			return nil, fmt.Errorf("decode configuration: %w", err)
		}
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return errors.New("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := commission.ParseAdjustmentPolicy(c.Commission.AdjustmentPolicy); err != nil {
		return fmt.Errorf("COMMISSION_ADJUSTMENT_POLICY: %w", err)
	}
	if c.Commission.CorpAccountID == "" {
		return errors.New("COMMISSION_CORP_ACCOUNT_ID is required")
	}
	if c.Payout.AutoBatchEnabled {
		if err := cron.ValidateSchedule(c.Payout.AutoBatchSchedule); err != nil {
			return fmt.Errorf("PAYOUT_AUTO_BATCH_SCHEDULE: %w", err)
		}
	}
	if c.Payout.WebhookToken == "" {
		return errors.New("PAYOUT_WEBHOOK_TOKEN is required")
	}
	return nil
}

// AdjustmentPolicy returns the parsed policy. Validate has already accepted it.
func (c *Config) AdjustmentPolicy() commission.AdjustmentPolicy {
	policy, _ := commission.ParseAdjustmentPolicy(c.Commission.AdjustmentPolicy)
	return policy
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
