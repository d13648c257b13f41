// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	ReclameAqui ReclameAquiConfig `yaml:"reclameaqui" mapstructure:"reclameaqui"`
	Collect     CollectConfig     `yaml:"collect" mapstructure:"collect"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// ReclameAquiConfig configures the upstream client.
type ReclameAquiConfig struct {
	SiteURL       string `yaml:"site_url" mapstructure:"site_url"`
	SearchAPIURL  string `yaml:"search_api_url" mapstructure:"search_api_url"`
	CompanyAPIURL string `yaml:"company_api_url" mapstructure:"company_api_url"`
	TimeoutSecs   int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// CollectConfig configures the fetch orchestration.
type CollectConfig struct {
	FetchTimeoutSecs int `yaml:"fetch_timeout_secs" mapstructure:"fetch_timeout_secs"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("REPUTATION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("reclameaqui.site_url", "https://www.reclameaqui.com.br")
	v.SetDefault("reclameaqui.search_api_url", "https://iosearch.reclameaqui.com.br/raichu-io-site-search-v1")
	v.SetDefault("reclameaqui.company_api_url", "https://iosite.reclameaqui.com.br/raichu-io-site-v1")
	v.SetDefault("reclameaqui.timeout_secs", 30)
	v.SetDefault("collect.fetch_timeout_secs", 20)
	v.SetDefault("server.port", 8000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the configuration required by a command mode.
func (c *Config) Validate(mode string) error {
	var problems []string

	check := func() {
		if c.ReclameAqui.SiteURL == "" {
			problems = append(problems, "reclameaqui.site_url is required")
		}
		if c.ReclameAqui.SearchAPIURL == "" {
			problems = append(problems, "reclameaqui.search_api_url is required")
		}
		if c.ReclameAqui.CompanyAPIURL == "" {
			problems = append(problems, "reclameaqui.company_api_url is required")
		}
		if c.ReclameAqui.TimeoutSecs < 1 || c.ReclameAqui.TimeoutSecs > 300 {
			problems = append(problems, "reclameaqui.timeout_secs must be between 1 and 300")
		}
		if c.Collect.FetchTimeoutSecs < 1 || c.Collect.FetchTimeoutSecs > 300 {
			problems = append(problems, "collect.fetch_timeout_secs must be between 1 and 300")
		}
	}

	switch mode {
	case "serve":
		check()
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	case "search":
		check()
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
