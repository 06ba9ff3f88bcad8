package config

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/garethgeorge/radixsort/internal/gen"
	"github.com/garethgeorge/radixsort/internal/radix"
)

// Scenario describes one generated benchmark input and how to sort it.
type Scenario struct {
	Name         string `toml:"name"`
	Kind         string `toml:"kind"`
	Width        int    `toml:"width"`
	Count        int    `toml:"count"`
	Order        string `toml:"order"`
	Direction    string `toml:"direction"`
	BigEndian    bool   `toml:"bigEndian"`
	Seed         int64  `toml:"seed"`
	Distribution string `toml:"distribution"`
}

type Config struct {
	Scenarios []Scenario `toml:"scenario"`
}

// Resolved is a Scenario with its strings parsed.
type Resolved struct {
	Name         string
	Kind         radix.Kind
	Width        int
	Count        int
	Order        radix.Order
	Direction    radix.Direction
	BigEndian    bool
	Seed         int64
	Distribution gen.Distribution
}

func (r Resolved) SorterOptions() []radix.Option {
	opts := []radix.Option{
		radix.WithKind(r.Kind),
		radix.WithOrder(r.Order),
		radix.WithDirection(r.Direction),
	}
	if r.BigEndian {
		opts = append(opts, radix.WithByteOrder(binary.BigEndian))
	}
	return opts
}

// Default mirrors the demo data sets at benchmark scale.
func Default() *Config {
	return &Config{Scenarios: []Scenario{
		{Name: "int64-asc", Kind: "int", Width: 8, Count: 1_000_000, Direction: "asc"},
		{Name: "int64-desc", Kind: "int", Width: 8, Count: 1_000_000, Direction: "desc"},
		{Name: "int32-msb", Kind: "int", Width: 4, Count: 1_000_000, Order: "msb"},
		{Name: "float32", Kind: "float32", Width: 4, Count: 1_000_000},
		{Name: "float64-special", Kind: "float64", Width: 8, Count: 1_000_000, Distribution: "special"},
		{Name: "float64-desc", Kind: "float64", Width: 8, Count: 1_000_000, Direction: "desc"},
		{Name: "strings", Kind: "string", Width: 11, Count: 500_000, Order: "msb"},
		{Name: "strings-desc", Kind: "string", Width: 11, Count: 500_000, Order: "msb", Direction: "desc"},
		{Name: "int64-few-unique", Kind: "int", Width: 8, Count: 1_000_000, Distribution: "few-unique"},
	}}
}

func LoadConfig(configPath string) (*Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(string(configData))
}

func ParseConfig(data string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config keys: %v", undecoded)
	}
	if len(cfg.Scenarios) == 0 {
		return nil, errors.New("config defines no scenarios")
	}
	return &cfg, nil
}

// Resolve applies defaults and parses every scenario, reporting all invalid
// scenarios at once.
func (c *Config) Resolve() ([]Resolved, error) {
	var resolved []Resolved
	var errs []error
	seen := map[string]bool{}
	for i, s := range c.Scenarios {
		if s.Name == "" {
			s.Name = fmt.Sprintf("scenario-%d", i+1)
		}
		if seen[s.Name] {
			errs = append(errs, fmt.Errorf("scenario %q: duplicate name", s.Name))
			continue
		}
		seen[s.Name] = true

		r, err := s.resolve()
		if err != nil {
			errs = append(errs, fmt.Errorf("scenario %q: %w", s.Name, err))
			continue
		}
		resolved = append(resolved, r)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return resolved, nil
}

func (s Scenario) resolve() (Resolved, error) {
	r := Resolved{Name: s.Name, Width: s.Width, Count: s.Count, BigEndian: s.BigEndian, Seed: s.Seed}

	var err error
	kind := s.Kind
	if kind == "" {
		kind = "int"
	}
	if r.Kind, err = radix.ParseKind(kind); err != nil {
		return r, err
	}
	if s.Order != "" {
		if r.Order, err = radix.ParseOrder(s.Order); err != nil {
			return r, err
		}
	}
	if s.Direction != "" {
		if r.Direction, err = radix.ParseDirection(s.Direction); err != nil {
			return r, err
		}
	}
	if r.Distribution, err = gen.ParseDistribution(s.Distribution); err != nil {
		return r, err
	}

	if r.Width == 0 {
		r.Width = r.Kind.FixedWidth()
		if r.Kind == radix.SignedInteger {
			r.Width = 8
		}
	}
	if r.Width <= 0 {
		return r, fmt.Errorf("width is required for %v records", r.Kind)
	}
	if fixed := r.Kind.FixedWidth(); fixed != 0 && fixed != r.Width {
		return r, fmt.Errorf("width must be %d for %v records, got %d", fixed, r.Kind, r.Width)
	}
	if r.Count < 0 {
		return r, fmt.Errorf("count must not be negative, got %d", r.Count)
	}
	if r.Seed == 0 {
		r.Seed = 1
	}
	return r, nil
}
