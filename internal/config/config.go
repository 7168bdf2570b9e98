package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config selects and tunes the genetic operators. Zero Seed means a
// time-based seed.
type Config struct {
	Vehicles       int    `yaml:"vehicles" env:"VEHICLES" validate:"gte=1"`
	Seed           int64  `yaml:"seed" env:"SEED"`
	TournamentSize int    `yaml:"tournamentSize" env:"TOURNAMENT_SIZE" validate:"gte=1"`
	Crossover      string `yaml:"crossover" env:"CROSSOVER" validate:"required"`
	Mutation       string `yaml:"mutation" env:"MUTATION" validate:"required"`
	Selection      string `yaml:"selection" env:"SELECTION" validate:"required"`
}

// EnvPrefix prefixes every environment override, e.g. VRPGA_VEHICLES.
const EnvPrefix = "VRPGA_"

// Default returns the configuration the solver was tuned with.
func Default() Config {
	return Config{
		Vehicles:       5,
		TournamentSize: 9,
		Crossover:      "pmx_two_point",
		Mutation:       "swap_or_shuffle_reset",
		Selection:      "tournament",
	}
}

// Load starts from Default, overlays the YAML file at path (skipped when
// path is empty), then environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		aggErr := env.AggregateError{}
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			// first error keeps logs readable
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs the struct tag rules. Operator names are resolved later
// against the registry.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
