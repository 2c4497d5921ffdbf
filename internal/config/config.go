package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"MarketMath/internal/calculator"
	"MarketMath/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Analysis struct {
		Symbols          []string `yaml:"symbols" default:"[\"SPX500\"]" validate:"min=1,max=2,dive,required"`
		Period           string   `yaml:"period" default:"1y" validate:"oneof=1mo 3mo 6mo 1y 2y 5y 10y ytd max"`
		Field            string   `yaml:"field" default:"Close" validate:"oneof=Open High Low Close"`
		VolatilityWindow int      `yaml:"volatility_window" default:"21" validate:"gte=3"`
		SMAWindow        int      `yaml:"sma_window" default:"30" validate:"gte=1"`
	} `yaml:"analysis"`
	DataSource struct {
		Type    string        `yaml:"type" default:"yahoo" validate:"oneof=yahoo mock"`
		Timeout time.Duration `yaml:"timeout" default:"30s" validate:"gt=0"`
		Proxy   string        `yaml:"proxy" validate:"omitempty,url"`
	} `yaml:"data_source"`
	Cache struct {
		SQLitePath string        `yaml:"sqlite_path"`
		TTL        time.Duration `yaml:"ttl" default:"6h" validate:"gt=0"`
	} `yaml:"cache"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Report struct {
		TailRows int `yaml:"tail_rows" default:"10" validate:"gte=0"`
	} `yaml:"report"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
		Format string `yaml:"format" default:"json" validate:"oneof=json console"`
	} `yaml:"log"`
	Metrics struct {
		Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
		Path string `yaml:"path" default:"/metrics" validate:"startswith=/"`
	} `yaml:"metrics"`
}

// Load reads config from a YAML file, then applies environment variable overrides
// and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MARKETMATH_SYMBOLS"); v != "" {
		cfg.Analysis.Symbols = SplitSymbols(v)
	}
	if v := os.Getenv("MARKETMATH_PERIOD"); v != "" {
		cfg.Analysis.Period = v
	}
	if v := os.Getenv("MARKETMATH_SOURCE"); v != "" {
		cfg.DataSource.Type = v
	}
	if v := os.Getenv("MARKETMATH_SCHEDULE"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.DataSource.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
}

// SplitSymbols parses a comma separated ticker list, e.g. "AAPL, MSFT".
func SplitSymbols(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.ToUpper(p))
		}
	}
	return out
}

var validate = validator.New()

// Validate checks that all fields are within range.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Period returns the configured analysis period.
func (c *Config) Period() model.Period { return model.Period(c.Analysis.Period) }

// PipelineOptions converts the analysis section into calculator options.
func (c *Config) PipelineOptions() calculator.Options {
	return calculator.Options{
		Field:            model.PriceField(c.Analysis.Field),
		VolatilityWindow: c.Analysis.VolatilityWindow,
		SMAWindow:        c.Analysis.SMAWindow,
	}
}
