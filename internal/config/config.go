package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Env         string `mapstructure:"ENV"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32  `mapstructure:"DB_MIN_CONNS"`

	AuthIssuer   string `mapstructure:"AUTH_ISSUER"`
	AuthJWKSURL  string `mapstructure:"AUTH_JWKS_URL"`
	AuthAudience string `mapstructure:"AUTH_AUDIENCE"`

	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Billing behaviour
	DefaultCurrency string `mapstructure:"DEFAULT_CURRENCY"`
	Locale          string `mapstructure:"LOCALE"`
	PageSize        int    `mapstructure:"PAGE_SIZE"`
	StatusPolicy    string `mapstructure:"STATUS_POLICY"`
	WaiverModeUUID  string `mapstructure:"WAIVER_PAYMENT_MODE_UUID"`

	// Auto-billing sweep
	AutoBillEnabled       bool   `mapstructure:"AUTOBILL_ENABLED"`
	AutoBillLookbackDays  int    `mapstructure:"AUTOBILL_LOOKBACK_DAYS"`
	AutoBillSchedule      string `mapstructure:"AUTOBILL_SCHEDULE"`
	AutoBillLabOrders     bool   `mapstructure:"AUTOBILL_LAB_ORDERS"`
	AutoBillDrugOrders    bool   `mapstructure:"AUTOBILL_DRUG_ORDERS"`
	AutoBillProcedures    bool   `mapstructure:"AUTOBILL_PROCEDURES"`
	AutoBillConsultations bool   `mapstructure:"AUTOBILL_CONSULTATIONS"`
	AutoBillCashPointUUID string `mapstructure:"AUTOBILL_CASH_POINT_UUID"`
	AutoBillCashierUUID   string `mapstructure:"AUTOBILL_CASHIER_UUID"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("DEFAULT_CURRENCY", "KES")
	v.SetDefault("LOCALE", "en-KE")
	v.SetDefault("PAGE_SIZE", 10)
	v.SetDefault("STATUS_POLICY", "aggregate")
	v.SetDefault("WAIVER_PAYMENT_MODE_UUID", "eb6173cb-9678-4614-bbe1-0ccf7ed9d1d4")
	v.SetDefault("AUTOBILL_ENABLED", false)
	v.SetDefault("AUTOBILL_LOOKBACK_DAYS", 7)
	v.SetDefault("AUTOBILL_SCHEDULE", "0 * * * *")
	v.SetDefault("AUTOBILL_LAB_ORDERS", true)
	v.SetDefault("AUTOBILL_DRUG_ORDERS", true)
	v.SetDefault("AUTOBILL_PROCEDURES", true)
	v.SetDefault("AUTOBILL_CONSULTATIONS", false)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("AUTH_ISSUER")
	v.BindEnv("AUTH_JWKS_URL")
	v.BindEnv("AUTH_AUDIENCE")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("DEFAULT_CURRENCY")
	v.BindEnv("LOCALE")
	v.BindEnv("PAGE_SIZE")
	v.BindEnv("STATUS_POLICY")
	v.BindEnv("WAIVER_PAYMENT_MODE_UUID")
	v.BindEnv("AUTOBILL_ENABLED")
	v.BindEnv("AUTOBILL_LOOKBACK_DAYS")
	v.BindEnv("AUTOBILL_SCHEDULE")
	v.BindEnv("AUTOBILL_LAB_ORDERS")
	v.BindEnv("AUTOBILL_DRUG_ORDERS")
	v.BindEnv("AUTOBILL_PROCEDURES")
	v.BindEnv("AUTOBILL_CONSULTATIONS")
	v.BindEnv("AUTOBILL_CASH_POINT_UUID")
	v.BindEnv("AUTOBILL_CASHIER_UUID")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() {
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: DevAuthMiddleware is active — all requests get admin access.")
		log.Println("WARNING: Set ENV=production and configure AUTH_ISSUER for production.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. In non-development
// modes AUTH_ISSUER must be set so that real JWT authentication is enforced.
func (c *Config) Validate() error {
	if !c.IsDev() && c.AuthIssuer == "" {
		return fmt.Errorf(
			"AUTH_ISSUER must be set when ENV is not \"development\" (current ENV=%q). "+
				"Refusing to start without authentication configuration", c.Env)
	}
	if c.StatusPolicy != "aggregate" && c.StatusPolicy != "trust-bill" {
		return fmt.Errorf("STATUS_POLICY must be \"aggregate\" or \"trust-bill\", got %q", c.StatusPolicy)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.WaiverModeUUID != "" {
		if _, err := uuid.Parse(c.WaiverModeUUID); err != nil {
			return fmt.Errorf("WAIVER_PAYMENT_MODE_UUID is not a valid UUID: %w", err)
		}
	}
	if c.AutoBillEnabled {
		if c.AutoBillLookbackDays <= 0 {
			return fmt.Errorf("AUTOBILL_LOOKBACK_DAYS must be positive when auto-billing is enabled, got %d", c.AutoBillLookbackDays)
		}
		if _, err := uuid.Parse(c.AutoBillCashPointUUID); err != nil {
			return fmt.Errorf("AUTOBILL_CASH_POINT_UUID is required when auto-billing is enabled: %w", err)
		}
		if _, err := uuid.Parse(c.AutoBillCashierUUID); err != nil {
			return fmt.Errorf("AUTOBILL_CASHIER_UUID is required when auto-billing is enabled: %w", err)
		}
	}
	return nil
}
