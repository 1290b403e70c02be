package suggest

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Provider names accepted by New.
const (
	ProviderNone   = "none"
	ProviderGemini = "gemini"
	ProviderStatic = "static"
)

// Config selects and tunes a Suggester.
type Config struct {
	Provider     string
	Model        string
	APIKey       string
	CacheSize    int
	MaxRetries   int
	DefaultDelay time.Duration
	// Fields are always suggested when present, whatever the provider.
	Fields []string
}

// New builds the Suggester described by cfg. Model-backed providers are
// cached and wrapped in Resilient.
func New(ctx context.Context, cfg Config) (Suggester, error) {
	var base Suggester
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderNone:
		base = None{}
	case ProviderStatic:
		return Static{Fields: cfg.Fields}, nil
	case ProviderGemini:
		g, err := NewGemini(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		size := cfg.CacheSize
		if size <= 0 {
			size = DefaultCacheSize
		}
		cached, err := NewCached(g, size)
		if err != nil {
			return nil, err
		}
		r := NewResilient(cached)
		if cfg.MaxRetries >= 0 {
			r.MaxRetries = cfg.MaxRetries
		}
		if cfg.DefaultDelay > 0 {
			r.DefaultDelay = cfg.DefaultDelay
		}
		base = r
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}

	if len(cfg.Fields) == 0 {
		return base, nil
	}
	return Union{base, Static{Fields: cfg.Fields}}, nil
}

// Union merges the suggestions of several suggesters. The first error
// aborts.
type Union []Suggester

// Suggest implements Suggester.
func (u Union) Suggest(ctx context.Context, keys []string) ([]string, error) {
	var all []string
	for _, s := range u {
		fields, err := s.Suggest(ctx, keys)
		if err != nil {
			return nil, err
		}
		all = append(all, fields...)
	}
	return restrictTo(all, keys), nil
}
