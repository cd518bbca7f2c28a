package cmd

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/fatih/color"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/pflag"

	"github.com/lumina-home/lumina-console/internal/config"
	"github.com/lumina-home/lumina-console/internal/services"
	"github.com/lumina-home/lumina-console/pkg/lumina"
)

var flagSetTitle = color.New(color.FgBlue, color.Bold)

// registerRemoteFlags adds the flags every command talking to Lumina needs.
func registerRemoteFlags(nfs *cobrautil.NamedFlagSets, config *config.Configuration) {
	remoteFlagSet := nfs.FlagSet(flagSetTitle.Sprint("Remote"))
	remoteFlagSet.StringVar(&config.Remote.URL, "remote-url", config.Remote.URL, "Base URL of the Lumina server web plugin")
	remoteFlagSet.DurationVar(&config.Remote.Timeout, "remote-timeout", config.Remote.Timeout, "Timeout of a single command")
	remoteFlagSet.Float64Var(&config.Remote.RateLimit, "remote-rate-limit", config.Remote.RateLimit, "Maximum commands per second sent to the server (0 disables the limit)")
	remoteFlagSet.IntVar(&config.Remote.Burst, "remote-burst", config.Remote.Burst, "Burst size of the command rate limit")
}

func registerDiscoveryFlags(flagSet *pflag.FlagSet, config *config.Configuration) {
	flagSet.DurationVar(&config.Discovery.Interval, "discovery-interval", config.Discovery.Interval, "Interval between discovery passes")
	flagSet.IntVar(&config.Discovery.NumWorkers, "discovery-workers", config.Discovery.NumWorkers, "Number of concurrent host info fetches")
	flagSet.BoolVar(&config.Discovery.Disabled, "discovery-disabled", config.Discovery.Disabled, "Do not run periodic discovery")
}

func registerStoreFlags(flagSet *pflag.FlagSet, config *config.Configuration) {
	flagSet.StringVar(&config.Store.DataFolder, "data-folder", config.Store.DataFolder, "Path to the persistent data folder")
}

func validateRemote(cfg config.Remote) error {
	u, err := url.Parse(cfg.URL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid remote-url %q", cfg.URL)
	}
	if cfg.Timeout <= 0 {
		return errors.New("remote-timeout must be positive")
	}
	if cfg.RateLimit < 0 {
		return fmt.Errorf("invalid remote-rate-limit %v: must not be negative", cfg.RateLimit)
	}
	if cfg.RateLimit > 0 && cfg.Burst < 1 {
		return fmt.Errorf("invalid remote-burst %d: must be at least 1", cfg.Burst)
	}
	return nil
}

func validateDiscovery(cfg config.Discovery) error {
	if cfg.NumWorkers < 1 {
		return fmt.Errorf("invalid discovery-workers %d: must be at least 1", cfg.NumWorkers)
	}
	if !cfg.Disabled && cfg.Interval <= 0 {
		return errors.New("discovery-interval must be positive")
	}
	return nil
}

// newRouter builds the command router for the configured remote.
func newRouter(cfg config.Remote) (*services.Router, error) {
	opts := []lumina.Option{lumina.WithTimeout(cfg.Timeout)}
	if cfg.RateLimit > 0 {
		opts = append(opts, lumina.WithRateLimit(cfg.RateLimit, cfg.Burst))
	}

	client, err := lumina.NewClient(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create lumina client: %w", err)
	}

	return services.NewRouter(client, services.NewTrace()), nil
}
