package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/stockfolio/stockfolio/market"
)

// Config is the complete runtime configuration.
type Config struct {
	Ledger   LedgerConfig  `json:"ledger" yaml:"ledger"`
	Account  AccountConfig `json:"account" yaml:"account"`
	Quotes   QuotesConfig  `json:"quotes" yaml:"quotes"`
	LogLevel string        `json:"log_level" yaml:"log_level"`
}

// LedgerConfig locates the SQLite ledger database.
type LedgerConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// AccountConfig contains account creation parameters.
type AccountConfig struct {
	SeedCash string `json:"seed_cash" yaml:"seed_cash"` // decimal string, e.g. "10000.00"
}

// SeedCash returns the parsed seed balance. Call Validate first.
func (a AccountConfig) Seed() decimal.Decimal {
	seed, err := decimal.NewFromString(a.SeedCash)
	if err != nil {
		panic(fmt.Sprintf("unvalidated seed_cash %q: %v", a.SeedCash, err))
	}
	return seed
}

// QuotesConfig selects the quote source: a static inline table or an
// HTTP quote service.
type QuotesConfig struct {
	Source  string        `json:"source" yaml:"source"` // "static" or "http"
	BaseURL string        `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Token   string        `json:"token,omitempty" yaml:"token,omitempty"`
	Static  []StaticQuote `json:"static,omitempty" yaml:"static,omitempty"`
}

// StaticQuote is one inline quote table entry.
type StaticQuote struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	Name   string `json:"name" yaml:"name"`
	Price  string `json:"price" yaml:"price"` // decimal string
}

// Provider builds the configured QuoteProvider. Call Validate first.
func (q QuotesConfig) Provider() (market.QuoteProvider, error) {
	switch q.Source {
	case "static":
		s := market.NewStatic()
		for _, sq := range q.Static {
			price, err := decimal.NewFromString(sq.Price)
			if err != nil {
				return nil, fmt.Errorf("quote %s: bad price %q: %w", sq.Symbol, sq.Price, err)
			}
			s.Set(market.Quote{Symbol: sq.Symbol, Name: sq.Name, Price: price})
		}
		return s, nil
	case "http":
		return market.NewClient(q.BaseURL, q.Token), nil
	default:
		return nil, fmt.Errorf("unknown quote source %q", q.Source)
	}
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Ledger.DBPath == "" {
		return fmt.Errorf("ledger.db_path is required")
	}
	seed, err := decimal.NewFromString(c.Account.SeedCash)
	if err != nil {
		return fmt.Errorf("account.seed_cash must be a decimal amount: %w", err)
	}
	if seed.IsNegative() {
		return fmt.Errorf("account.seed_cash must not be negative")
	}
	switch c.Quotes.Source {
	case "static":
		for _, sq := range c.Quotes.Static {
			if sq.Symbol == "" {
				return fmt.Errorf("quotes.static entries require a symbol")
			}
			price, err := decimal.NewFromString(sq.Price)
			if err != nil {
				return fmt.Errorf("quotes.static %s: bad price %q", sq.Symbol, sq.Price)
			}
			if !price.IsPositive() {
				return fmt.Errorf("quotes.static %s: price must be positive", sq.Symbol)
			}
		}
	case "http":
		if c.Quotes.BaseURL == "" {
			return fmt.Errorf("quotes.base_url required for http source")
		}
	default:
		return fmt.Errorf("quotes.source must be 'static' or 'http'")
	}
	if c.LogLevel == "" {
		return fmt.Errorf("log_level is required")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			DBPath: "./stockfolio.sqlite",
		},
		Account: AccountConfig{
			SeedCash: "10000.00",
		},
		Quotes: QuotesConfig{
			Source: "static",
		},
		LogLevel: "info",
	}
}
