package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (SHOP_ prefix), flags, or YAML config files.
type Config struct {
	APIBaseURL string `usage:"Commerce API base URL (SHOP_API_BASE_URL)" flag:"api-base-url"`
	StateDir   string `usage:"Directory for persisted client state (default: user config dir)" flag:"state-dir"`
	Debug      bool   `default:"false" usage:"Enable debug logging"`
	HTTP       HTTPConfig
}

// HTTPConfig controls the outbound API client.
type HTTPConfig struct {
	Timeout   time.Duration `default:"10s" usage:"Request timeout for API calls"`
	UserAgent string        `default:"patioshop-storefront/1.0" usage:"User-Agent for API requests" flag:"user-agent"`
}

// LoadConfig loads configuration from environment variables, flags, and YAML
// config files, and fills in the state directory default.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "SHOP",
		Files:     []string{"config.yaml", "/etc/patioshop/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	if cfg.APIBaseURL == "" {
		return nil, errors.New("API base URL is required: set SHOP_API_BASE_URL or --api-base-url")
	}

	if cfg.StateDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = "."
		}
		cfg.StateDir = filepath.Join(base, "patioshop")
	}

	return &cfg, nil
}
