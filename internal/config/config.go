// Package config provides configuration for the converter.
//
// Configuration can be loaded from:
//  1. YAML file (paypay.yaml)
//  2. Environment variables (fallback)
//
// Any field left empty in the file keeps its default value.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/insightdelivered/paypay-statement-converter/internal/parser"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "paypay.yaml"

// Config represents the entire application configuration
type Config struct {
	Extract ExtractConfig `yaml:"extract"`
	Input   InputConfig   `yaml:"input"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
}

// ExtractConfig holds the labels and class markers used to locate data in
// a statement page.
type ExtractConfig struct {
	PaymentDateLabel   string `yaml:"payment_date_label"`
	PaymentMethodLabel string `yaml:"payment_method_label"`
	EntryMarker        string `yaml:"entry_marker"`
	ItemNameMarker     string `yaml:"item_name_marker"`
	UsageDateMarker    string `yaml:"usage_date_marker"`
	AmountMarker       string `yaml:"amount_marker"`
}

// InputConfig holds input decoding settings
type InputConfig struct {
	Encoding string `yaml:"encoding"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Extract: ExtractConfig{
			PaymentDateLabel:   parser.DefaultPaymentDateLabel,
			PaymentMethodLabel: parser.DefaultPaymentMethodLabel,
			EntryMarker:        parser.DefaultEntryMarker,
			ItemNameMarker:     parser.DefaultItemNameMarker,
			UsageDateMarker:    parser.DefaultUsageDateMarker,
			AmountMarker:       parser.DefaultAmountMarker,
		},
		Input:  InputConfig{Encoding: "utf-8"},
		Log:    LogConfig{Level: "info", Format: "console"},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads and parses the config file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${PORT})
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	cfg := Default()
	cfg.Input.Encoding = getEnv("PAYPAY_INPUT_ENCODING", cfg.Input.Encoding)
	cfg.Log.Level = getEnv("PAYPAY_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("PAYPAY_LOG_FORMAT", cfg.Log.Format)
	cfg.Server.Addr = getEnv("PAYPAY_SERVER_ADDR", cfg.Server.Addr)
	return cfg
}

// LoadOrEnv loads path when it exists and falls back to the environment
// otherwise. A file that exists but cannot be parsed is an error.
func LoadOrEnv(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if os.IsNotExist(err) {
		return LoadFromEnv(), nil
	}
	return nil, err
}

// ParserOptions builds parser options from the extract section.
func (c *Config) ParserOptions() parser.Options {
	e := c.Extract
	return parser.Options{
		PaymentDateLabel:   e.PaymentDateLabel,
		PaymentMethodLabel: e.PaymentMethodLabel,
		EntryMarker:        parser.Contains(e.EntryMarker),
		ItemNameMarker:     parser.Contains(e.ItemNameMarker),
		UsageDateMarker:    parser.Contains(e.UsageDateMarker),
		AmountMarker:       parser.Contains(e.AmountMarker),
	}
}

// fillDefaults restores defaults for keys present in the file but left blank.
func (c *Config) fillDefaults() {
	def := Default()
	setDefault(&c.Extract.PaymentDateLabel, def.Extract.PaymentDateLabel)
	setDefault(&c.Extract.PaymentMethodLabel, def.Extract.PaymentMethodLabel)
	setDefault(&c.Extract.EntryMarker, def.Extract.EntryMarker)
	setDefault(&c.Extract.ItemNameMarker, def.Extract.ItemNameMarker)
	setDefault(&c.Extract.UsageDateMarker, def.Extract.UsageDateMarker)
	setDefault(&c.Extract.AmountMarker, def.Extract.AmountMarker)
	setDefault(&c.Input.Encoding, def.Input.Encoding)
	setDefault(&c.Log.Level, def.Log.Level)
	setDefault(&c.Log.Format, def.Log.Format)
	setDefault(&c.Server.Addr, def.Server.Addr)
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
