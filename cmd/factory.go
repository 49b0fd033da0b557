package cmd

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/darmiel/vouch/internal/config"
	"github.com/darmiel/vouch/internal/trust"
	"github.com/darmiel/vouch/internal/voucher"
	"github.com/darmiel/vouch/pkg/client"
)

type Factory struct {
	// RemoteAddr is the address of the vouch server to connect to.
	// If empty, commands run locally.
	RemoteAddr string

	// TrustPath is the trust file. If empty, the built-in registry is used.
	TrustPath string

	// Leeway overrides the clock skew tolerance of the trust file
	// when LeewaySet is true, even if it is zero.
	Leeway    time.Duration
	LeewaySet bool
}

func NewFactory() *Factory {
	return &Factory{}
}

// GetClient returns an HTTP client for remote operations.
func (f *Factory) GetClient() (*client.Client, error) {
	if f.RemoteAddr == "" {
		return nil, fmt.Errorf("server address not configured (use --server or set VOUCH_ADDR)")
	}
	return client.New(f.RemoteAddr), nil
}

// LoadRegistry returns the trust registry and the leeway configured for it.
func (f *Factory) LoadRegistry() (*trust.Registry, time.Duration, error) {
	if f.LeewaySet && f.Leeway < 0 {
		return nil, 0, fmt.Errorf("leeway must not be negative, got %s", f.Leeway)
	}
	if f.TrustPath == "" {
		log.Debug().Msg("using built-in trust registry")
		registry, err := trust.Default()
		if err != nil {
			return nil, 0, fmt.Errorf("loading built-in trust registry: %w", err)
		}
		return registry, f.Leeway, nil
	}

	cfg, err := config.Load(f.TrustPath)
	if err != nil {
		return nil, 0, fmt.Errorf("loading trust file: %w", err)
	}
	registry, err := trust.BuildRegistry(cfg)
	if err != nil {
		return nil, 0, fmt.Errorf("building trust registry: %w", err)
	}

	leeway := cfg.Leeway
	if f.LeewaySet {
		leeway = f.Leeway
	}
	return registry, leeway, nil
}

// GetVerifier returns a verifier for local verification.
func (f *Factory) GetVerifier() (*voucher.Verifier, error) {
	registry, leeway, err := f.LoadRegistry()
	if err != nil {
		return nil, err
	}
	return voucher.NewVerifier(registry, voucher.WithLeeway(leeway)), nil
}

func (f *Factory) bindTrustFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&f.TrustPath, "trust", "f", "", "Trust file with issuers and audiences (default: built-in registry)")
	flags.DurationVar(&f.Leeway, "leeway", 0, "Tolerated clock skew for exp and nbf")
}
