package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/adapter/source/tvmaze"
	"github.com/mmcdole/marquee/internal/domain"
)

// CatalogSource is the full client surface used by the commands: the store's
// CatalogClient plus single-show lookup.
type CatalogSource interface {
	domain.CatalogClient
	GetShow(ctx context.Context, id string) (domain.Entry, error)
}

// NewClient creates a CatalogSource from catalog configuration
func NewClient(cfg *adapter.CatalogConfig, logger *slog.Logger) (CatalogSource, error) {
	if cfg == nil {
		return nil, fmt.Errorf("catalog config is nil")
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("catalog base URL is required")
	}

	return tvmaze.NewClient(cfg.BaseURL, tvmaze.Options{
		Country:           cfg.Country,
		Timeout:           cfg.Timeout,
		MaxRetries:        retries(cfg.MaxRetries),
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
	}, logger), nil
}

// NewClientFromConfig creates a CatalogSource from the application config
func NewClientFromConfig(cfg *adapter.Config, logger *slog.Logger) (CatalogSource, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	return NewClient(&cfg.Catalog, logger)
}

// retries maps the config's "0 means no retries" onto tvmaze.Options where
// 0 selects the default
func retries(n int) int {
	if n == 0 {
		return -1
	}
	return n
}
