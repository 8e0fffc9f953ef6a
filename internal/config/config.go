package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

const envPrefix = "STOREFRONT_"

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		BaseURL  string `koanf:"base_url"`
		LogLevel string `koanf:"log_level"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	Backend struct {
		BaseURL string        `koanf:"base_url"`
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"backend"`

	Geo struct {
		BaseURL string        `koanf:"base_url"`
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"geo"`

	Session SessionConfig `koanf:"session"`

	MySQL struct {
		DSN             string        `koanf:"dsn"`
		MaxOpenConns    int           `koanf:"max_open_conns"`
		MaxIdleConns    int           `koanf:"max_idle_conns"`
		ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	} `koanf:"mysql"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
		DB       int    `koanf:"db"`
		Prefix   string `koanf:"prefix"`
	} `koanf:"redis"`

	Checkout struct {
		ShippingFee int64  `koanf:"shipping_fee"`
		Currency    string `koanf:"currency"`
	} `koanf:"checkout"`

	Storage StorageConfig `koanf:"storage"`

	SMTP SMTPConfig `koanf:"smtp"`

	Flash struct {
		CookieName string `koanf:"cookie_name"`
		Secret     string `koanf:"secret"`
	} `koanf:"flash"`
}

type SessionConfig struct {
	Driver     string        `koanf:"driver"` // db | redis | memory
	CookieName string        `koanf:"cookie_name"`
	Secret     string        `koanf:"secret"`
	Secure     bool          `koanf:"secure"`
	TTL        time.Duration `koanf:"ttl"`
	// TokenClaimFallback decodes the bearer token payload when no user record
	// was stored. Turn off once the backend always returns the full user.
	TokenClaimFallback bool `koanf:"token_claim_fallback"`
}

type StorageConfig struct {
	Driver         string `koanf:"driver"` // local | s3
	LocalDir       string `koanf:"local_dir"`
	LocalURLPrefix string `koanf:"local_url_prefix"`
	S3Region       string `koanf:"s3_region"`
	S3Bucket       string `koanf:"s3_bucket"`
	S3Prefix       string `koanf:"s3_prefix"`
	S3PublicBase   string `koanf:"s3_public_base_url"`
}

type SMTPConfig struct {
	Host          string `koanf:"host"`
	Port          string `koanf:"port"`
	User          string `koanf:"user"`
	Pass          string `koanf:"pass"`
	TLSMode       string `koanf:"tls_mode"` // none | starttls | tls
	SkipVerifyTLS bool   `koanf:"skip_verify_tls"`
	From          string `koanf:"from"`
	FromName      string `koanf:"from_name"`
	BackofficeTo  string `koanf:"backoffice_to"`
}

// ShippingFee returns the flat shipping fee as a decimal amount.
func (c Config) ShippingFee() decimal.Decimal {
	return decimal.NewFromInt(c.Checkout.ShippingFee)
}

// Load reads base.yaml, then <env>.yaml (optional), then STOREFRONT_* env vars.
// Nested keys use "__", e.g. STOREFRONT_SESSION__SECRET.
func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// env override is optional for local runs
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.HTTPAddr == "" {
		c.App.HTTPAddr = ":8080"
	}
	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = 10 * time.Second
	}
	if c.Geo.Timeout <= 0 {
		c.Geo.Timeout = 5 * time.Second
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "sf_session"
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = 7 * 24 * time.Hour
	}
	if c.Session.Driver == "" {
		c.Session.Driver = "memory"
	}
	if c.Checkout.Currency == "" {
		c.Checkout.Currency = "VND"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "local"
	}
	if c.Flash.CookieName == "" {
		c.Flash.CookieName = "sf_flash"
	}
	if c.Flash.Secret == "" {
		c.Flash.Secret = c.Session.Secret
	}
}

func (c Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url required")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("session.secret required")
	}
	switch c.Session.Driver {
	case "memory":
	case "db":
		if c.MySQL.DSN == "" {
			return fmt.Errorf("mysql.dsn required for session driver db")
		}
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr required for session driver redis")
		}
	default:
		return fmt.Errorf("unknown session.driver: %s", c.Session.Driver)
	}
	switch c.Storage.Driver {
	case "local", "s3":
	default:
		return fmt.Errorf("unknown storage.driver: %s", c.Storage.Driver)
	}
	if c.Checkout.ShippingFee < 0 {
		return fmt.Errorf("checkout.shipping_fee must not be negative")
	}
	return nil
}
