package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CatalogConfig holds remote catalog service configuration
type CatalogConfig struct {
	BaseURL    string          `mapstructure:"base_url" validate:"required,url"`
	Country    string          `mapstructure:"country" validate:"required,iso3166_1_alpha2"` // Country listing, e.g. "US"
	Timeout    time.Duration   `mapstructure:"timeout" validate:"gt=0"`
	MaxRetries int             `mapstructure:"max_retries" validate:"min=0,max=10"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig bounds the client-side request rate
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gt=0"`
	Burst             int     `mapstructure:"burst" validate:"min=1"`
}

// UIConfig holds browser defaults
type UIConfig struct {
	DefaultGenre string   `mapstructure:"default_genre"`
	SortByRating bool     `mapstructure:"sort_by_rating"`
	Browser      string   `mapstructure:"browser"` // Command used to open show pages, empty for system default
	BrowserArgs  []string `mapstructure:"browser_args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file" validate:"required"`
	Level string `mapstructure:"level" validate:"oneof=DEBUG INFO WARN WARNING ERROR"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:    "https://api.tvmaze.com",
			Country:    "US",
			Timeout:    30 * time.Second,
			MaxRetries: 3,
			RateLimit: RateLimitConfig{
				// TVMaze allows 20 calls per 10 seconds
				RequestsPerSecond: 2,
				Burst:             5,
			},
		},
		UI: UIConfig{
			DefaultGenre: "all",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee", "marquee.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee", "marquee.log")
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// LoadDotEnv loads KEY=VALUE pairs from path (".env" when empty) into the
// process environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	return nil
}

// LoadConfig loads configuration from file and environment. configFile
// overrides the search path (config.yaml in the config dir, then ".").
// Environment variables use the MARQUEE_ prefix, e.g.
// MARQUEE_CATALOG_COUNTRY=GB.
func LoadConfig(configFile string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigDir())
		v.AddConfigPath(".")
	}

	// Environment variable overrides
	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	cfg.Catalog.Country = strings.ToUpper(cfg.Catalog.Country)
	cfg.Catalog.BaseURL = strings.TrimRight(cfg.Catalog.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("catalog.base_url", cfg.Catalog.BaseURL)
	v.SetDefault("catalog.country", cfg.Catalog.Country)
	v.SetDefault("catalog.timeout", cfg.Catalog.Timeout)
	v.SetDefault("catalog.max_retries", cfg.Catalog.MaxRetries)
	v.SetDefault("catalog.rate_limit.requests_per_second", cfg.Catalog.RateLimit.RequestsPerSecond)
	v.SetDefault("catalog.rate_limit.burst", cfg.Catalog.RateLimit.Burst)
	v.SetDefault("ui.default_genre", cfg.UI.DefaultGenre)
	v.SetDefault("ui.sort_by_rating", cfg.UI.SortByRating)
	v.SetDefault("ui.browser", cfg.UI.Browser)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report config keys rather than Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("mapstructure"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

// Validate checks the configuration and reports every invalid key
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		key := strings.TrimPrefix(e.Namespace(), "Config.")
		msgs = append(msgs, key+" "+friendlyMessage(e))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "iso3166_1_alpha2":
		return "must be a two-letter country code"
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	default:
		return fmt.Sprintf("failed %s validation", e.Tag())
	}
}

// SaveConfig writes cfg as YAML to path (config.yaml in the config dir when empty)
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = filepath.Join(DefaultConfigDir(), "config.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("catalog.base_url", cfg.Catalog.BaseURL)
	v.Set("catalog.country", cfg.Catalog.Country)
	v.Set("catalog.timeout", cfg.Catalog.Timeout.String())
	v.Set("catalog.max_retries", cfg.Catalog.MaxRetries)
	v.Set("catalog.rate_limit.requests_per_second", cfg.Catalog.RateLimit.RequestsPerSecond)
	v.Set("catalog.rate_limit.burst", cfg.Catalog.RateLimit.Burst)
	v.Set("ui.default_genre", cfg.UI.DefaultGenre)
	v.Set("ui.sort_by_rating", cfg.UI.SortByRating)
	v.Set("ui.browser", cfg.UI.Browser)
	if len(cfg.UI.BrowserArgs) > 0 {
		v.Set("ui.browser_args", cfg.UI.BrowserArgs)
	}
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	v.SetConfigType("yaml")
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
