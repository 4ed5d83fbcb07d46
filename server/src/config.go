// server/src/config.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config carries every tunable of the aggregator. Values come from
// solsys.yaml (working dir or /etc/solsys) overridden by SOLSYS_* env vars.
type Config struct {
	ListenAddr  string
	MetricsAddr string

	NASAAPIKey string

	CacheTTL        time.Duration
	HorizonsTimeout time.Duration
	UpstreamRPS     float64
	ClientRPM       int

	EnableTLS bool
	TLSHosts  []string

	LogLevel string
}

// LoadConfig reads configuration with sane defaults; a missing config file
// is not an error, only a malformed one is.
func LoadConfig() (Config, error) {
	v := viper.New()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("metrics_addr", ":9090")
	v.SetDefault("nasa_api_key", "DEMO_KEY")
	v.SetDefault("cache_ttl", "6h")
	v.SetDefault("horizons_timeout", "90s")
	v.SetDefault("upstream_rps", 3.0)
	v.SetDefault("client_rpm", 120)
	v.SetDefault("enable_tls", false)
	v.SetDefault("tls_hosts", []string{})
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("SOLSYS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("solsys")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/solsys")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, fmt.Errorf("config read: %w", err)
		}
	}

	cfg := Config{
		ListenAddr:      v.GetString("listen_addr"),
		MetricsAddr:     v.GetString("metrics_addr"),
		NASAAPIKey:      v.GetString("nasa_api_key"),
		CacheTTL:        v.GetDuration("cache_ttl"),
		HorizonsTimeout: v.GetDuration("horizons_timeout"),
		UpstreamRPS:     v.GetFloat64("upstream_rps"),
		ClientRPM:       v.GetInt("client_rpm"),
		EnableTLS:       v.GetBool("enable_tls"),
		TLSHosts:        v.GetStringSlice("tls_hosts"),
		LogLevel:        v.GetString("log_level"),
	}

	if cfg.CacheTTL <= 0 {
		return Config{}, fmt.Errorf("cache_ttl must be positive, got %v", cfg.CacheTTL)
	}
	if cfg.HorizonsTimeout <= 0 {
		return Config{}, fmt.Errorf("horizons_timeout must be positive, got %v", cfg.HorizonsTimeout)
	}
	if cfg.UpstreamRPS <= 0 {
		return Config{}, fmt.Errorf("upstream_rps must be positive, got %v", cfg.UpstreamRPS)
	}
	if cfg.EnableTLS && len(cfg.TLSHosts) == 0 {
		return Config{}, fmt.Errorf("enable_tls requires at least one tls_hosts entry")
	}

	return cfg, nil
}
