// Package config loads exchange rates and tax schedules from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/govalues/decimal"
	"gopkg.in/yaml.v3"

	"github.com/govalues/moneytax/money"
	"github.com/govalues/moneytax/tax"
)

// Format is the encoding of a configuration file.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	default:
		return "toml"
	}
}

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

var errDuplicateSchedule = errors.New("duplicate schedule")

// Config holds the complete application configuration
type Config struct {
	Server    ServerConfig     `toml:"server" yaml:"server"`
	Rates     []RateConfig     `toml:"rates" yaml:"rates"`
	Schedules []ScheduleConfig `toml:"schedules" yaml:"schedules"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// RateConfig is one exchange rate: one unit of From is worth Rate units of To.
type RateConfig struct {
	From string `toml:"from" yaml:"from"`
	To   string `toml:"to" yaml:"to"`
	Rate string `toml:"rate" yaml:"rate"`
}

// ScheduleConfig is a named tax schedule
type ScheduleConfig struct {
	Name       string            `toml:"name" yaml:"name"`
	Currency   string            `toml:"currency" yaml:"currency"`
	Brackets   []BracketConfig   `toml:"brackets" yaml:"brackets"`
	Deductions []DeductionConfig `toml:"deductions" yaml:"deductions"`
}

// BracketConfig is a marginal bracket. An empty Max makes it a top bracket.
type BracketConfig struct {
	Min  string `toml:"min" yaml:"min"`
	Max  string `toml:"max" yaml:"max"`
	Rate string `toml:"rate" yaml:"rate"`
}

// DeductionConfig is a deduction rule. An empty Max leaves it uncapped.
type DeductionConfig struct {
	Category  string `toml:"category" yaml:"category"`
	Max       string `toml:"max" yaml:"max"`
	Inclusion string `toml:"inclusion" yaml:"inclusion"`
}

// Load reads the configuration file at path. The format is chosen by the
// file extension: .yaml and .yml are YAML, anything else is TOML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(content, DetectFormat(path))
}

// DetectFormat determines the configuration format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Parse decodes content in the given format and applies defaults.
func Parse(content []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %v config: %w", format, err)
		}
	default:
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return nil, fmt.Errorf("parsing %v config: %w", format, err)
		}
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
}

// Exchange builds the exchange rate table. Rates are registered in file
// order, so a later entry for the same pair replaces an earlier one.
func (c *Config) Exchange() (*money.Exchange, error) {
	x := money.NewExchange()
	for i, r := range c.Rates {
		from, err := money.ParseCurr(r.From)
		if err != nil {
			return nil, fmt.Errorf("rates[%d]: %w", i, err)
		}
		to, err := money.ParseCurr(r.To)
		if err != nil {
			return nil, fmt.Errorf("rates[%d]: %w", i, err)
		}
		rate, err := decimal.Parse(r.Rate)
		if err != nil {
			return nil, fmt.Errorf("rates[%d]: parsing rate %q: %w", i, r.Rate, err)
		}
		if err := x.SetRate(from, to, rate); err != nil {
			return nil, fmt.Errorf("rates[%d]: %w", i, err)
		}
	}
	return x, nil
}

// TaxSchedules builds the tax schedules, keyed by name.
func (c *Config) TaxSchedules() (map[string]*tax.Schedule, error) {
	schedules := make(map[string]*tax.Schedule, len(c.Schedules))
	for _, sc := range c.Schedules {
		if _, ok := schedules[sc.Name]; ok {
			return nil, fmt.Errorf("schedule %q: %w", sc.Name, errDuplicateSchedule)
		}
		s, err := sc.build()
		if err != nil {
			return nil, fmt.Errorf("schedule %q: %w", sc.Name, err)
		}
		schedules[sc.Name] = s
	}
	return schedules, nil
}

// Build returns the exchange rate table and the tax schedules.
func (c *Config) Build() (*money.Exchange, map[string]*tax.Schedule, error) {
	x, err := c.Exchange()
	if err != nil {
		return nil, nil, err
	}
	s, err := c.TaxSchedules()
	if err != nil {
		return nil, nil, err
	}
	return x, s, nil
}

func (sc ScheduleConfig) build() (*tax.Schedule, error) {
	if sc.Name == "" {
		return nil, errors.New("missing name")
	}
	curr, err := money.ParseCurr(sc.Currency)
	if err != nil {
		return nil, err
	}
	brackets := make([]tax.Bracket, 0, len(sc.Brackets))
	for i, bc := range sc.Brackets {
		b, err := bc.build(sc.Currency)
		if err != nil {
			return nil, fmt.Errorf("brackets[%d]: %w", i, err)
		}
		brackets = append(brackets, b)
	}
	s, err := tax.NewSchedule(curr, brackets...)
	if err != nil {
		return nil, err
	}
	for i, dc := range sc.Deductions {
		r, err := dc.build(sc.Currency)
		if err != nil {
			return nil, fmt.Errorf("deductions[%d]: %w", i, err)
		}
		s.SetDeduction(r.Category(), r)
	}
	return s, nil
}

func (bc BracketConfig) build(curr string) (tax.Bracket, error) {
	min, err := money.ParseAmount(curr, bc.Min)
	if err != nil {
		return tax.Bracket{}, err
	}
	rate, err := decimal.Parse(bc.Rate)
	if err != nil {
		return tax.Bracket{}, fmt.Errorf("parsing rate %q: %w", bc.Rate, err)
	}
	if bc.Max == "" {
		return tax.NewTopBracket(min, rate), nil
	}
	max, err := money.ParseAmount(curr, bc.Max)
	if err != nil {
		return tax.Bracket{}, err
	}
	return tax.NewBracket(min, max, rate)
}

func (dc DeductionConfig) build(curr string) (tax.DeductionRule, error) {
	cat, err := tax.ParseCategory(dc.Category)
	if err != nil {
		return tax.DeductionRule{}, err
	}
	inclusion, err := decimal.Parse(dc.Inclusion)
	if err != nil {
		return tax.DeductionRule{}, fmt.Errorf("parsing inclusion %q: %w", dc.Inclusion, err)
	}
	if dc.Max == "" {
		return tax.NewDeductionRule(cat, inclusion), nil
	}
	max, err := money.ParseAmount(curr, dc.Max)
	if err != nil {
		return tax.DeductionRule{}, err
	}
	return tax.NewCappedDeductionRule(cat, max, inclusion), nil
}
