package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"mspwatch/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App     AppConfig      `mapstructure:"app"`
	Logging logging.Config `mapstructure:"logging"`
	DataGov DataGovConfig  `mapstructure:"datagov"`
	Gemini  GeminiConfig   `mapstructure:"gemini"`
	Cache   CacheConfig    `mapstructure:"cache"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// DataGovConfig captures Open Government Data platform connectivity. An empty
// api_key disables the tier entirely.
type DataGovConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	ResourceID     string        `mapstructure:"resource_id"`
	Limit          int           `mapstructure:"limit"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// GeminiConfig covers the generative provider. An empty api_key disables the
// tier entirely.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// CacheConfig governs the freshness window for fetched rates.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MSPWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Accept the providers' conventional variable names alongside the
	// prefixed form.
	_ = v.BindEnv("gemini.api_key", "MSPWATCH_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("datagov.api_key", "MSPWATCH_DATAGOV_API_KEY", "DATA_GOV_API_KEY")

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "mspwatch")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("datagov.base_url", "https://api.data.gov.in/resource")
	v.SetDefault("datagov.resource_id", "9ef84268-d588-465a-a308-a864a43d0070")
	v.SetDefault("datagov.limit", 100)
	v.SetDefault("datagov.request_timeout", "10s")
	v.SetDefault("datagov.user_agent", "mspwatch/1.0")

	v.SetDefault("gemini.model", "gemini-1.5-flash")

	v.SetDefault("cache.ttl", "1h")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be greater than zero")
	}
	if c.DataGov.Limit <= 0 {
		return fmt.Errorf("datagov.limit must be greater than zero")
	}
	if c.DataGov.RequestTimeout <= 0 {
		return fmt.Errorf("datagov.request_timeout must be greater than zero")
	}
	if c.DataGov.APIKey != "" && c.DataGov.ResourceID == "" {
		return fmt.Errorf("datagov.resource_id must be set when datagov.api_key is configured")
	}
	return nil
}
