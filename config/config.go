package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTX      HTXConfig      `mapstructure:"htx"`
	Symbols  []string       `mapstructure:"symbols"` // "BASE/QUOTE" pairs
	Synth    SynthConfig    `mapstructure:"synth"`
	FXRate   FXRateConfig   `mapstructure:"fxrate"`
	Monitor  MonitorConfig  `mapstructure:"monitor"`
	Log      LogConfig      `mapstructure:"log"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type HTXConfig struct {
	REST RESTConfig `mapstructure:"rest"`
	WS   WSConfig   `mapstructure:"ws"`
	// Window is the bootstrap fetch size; it also bounds the per-symbol
	// trade windows.
	Window int `mapstructure:"window"`
}

type RESTConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type WSConfig struct {
	URL      string `mapstructure:"url"`
	Interval string `mapstructure:"interval"` // kline period, e.g. "1min"
}

// SynthConfig drives derived pricing: symbols quoted in source_quote get a
// twin quoted in target_quote, priced through rate_pair.
type SynthConfig struct {
	SourceQuote string `mapstructure:"source_quote"` // e.g. "USDT"
	TargetQuote string `mapstructure:"target_quote"` // e.g. "KRW"
	RatePair    string `mapstructure:"rate_pair"`    // e.g. "KRW/USD"
}

type FXRateConfig struct {
	URL     string        `mapstructure:"url"`
	Refresh time.Duration `mapstructure:"refresh"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// MonitorConfig tunes the liveness supervisor.
type MonitorConfig struct {
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	StallThreshold int           `mapstructure:"stall_threshold"`
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

// Load loads application configuration using Viper.
// It reads from config.yaml and overrides with environment variables.
func Load() *Config {
	v := viper.New()

	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")

	ex, _ := os.Executable()
	if strings.Contains(ex, "go-build") {
		pwd, _ := os.Getwd()
		v.AddConfigPath(filepath.Join(pwd, "../../config"))
	} else {
		v.AddConfigPath(filepath.Join(filepath.Dir(ex), "../config"))
	}

	// Support environment variables with dot notation (e.g., HTX_WS_URL)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("failed to read config: %v", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("failed to unmarshal config: %v", err)
	}

	return &cfg
}
