package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/gigamonkey/groups/internal/ga"
)

// EnvPrefix prefixes every environment override, e.g. GROUPS_GA_POPULATION.
const EnvPrefix = "GROUPS_"

// Config is the root configuration structure
type Config struct {
	Seed    int64        `yaml:"seed" env:"SEED"`
	Size    int          `yaml:"size" env:"SIZE" validate:"gte=2"`
	Greedy  GreedyConfig `yaml:"greedy" envPrefix:"GREEDY_"`
	GA      GAConfig     `yaml:"ga" envPrefix:"GA_"`
	Logging LogConfig    `yaml:"logging" envPrefix:"LOG_"`
}

// GreedyConfig bounds the greedy planner.
type GreedyConfig struct {
	// MaxGroups caps the planner; 0 means C(n,2).
	MaxGroups int `yaml:"max_groups" env:"MAX_GROUPS" validate:"gte=0"`
}

// GAConfig defines genetic algorithm parameters
type GAConfig struct {
	Population      int     `yaml:"population" env:"POPULATION" validate:"gte=1"`
	Generations     int     `yaml:"generations" env:"GENERATIONS" validate:"gte=1"`
	Multiple        int     `yaml:"multiple" env:"MULTIPLE" validate:"gte=1"`
	EliteFraction   float64 `yaml:"elite_fraction" env:"ELITE_FRACTION" validate:"gte=0,lte=1"`
	ChildrenPerPair int     `yaml:"children_per_pair" env:"CHILDREN_PER_PAIR" validate:"gte=1"`
	MutationRate    float64 `yaml:"mutation_rate" env:"MUTATION_RATE" validate:"gte=0,lte=1"`
	FragmentMin     float64 `yaml:"fragment_min" env:"FRAGMENT_MIN" validate:"gt=0,ltefield=FragmentMax"`
	FragmentMax     float64 `yaml:"fragment_max" env:"FRAGMENT_MAX" validate:"gt=0,lte=1"`
	StopRatio       float64 `yaml:"stop_ratio" env:"STOP_RATIO" validate:"gte=0"`
	Workers         int     `yaml:"workers" env:"WORKERS" validate:"gte=0"`
}

// LogConfig defines logging parameters
type LogConfig struct {
	Level    string `yaml:"level" env:"LEVEL" validate:"oneof=trace debug info warn warning error"`
	Format   string `yaml:"format" env:"FORMAT" validate:"oneof=text json"`
	Every    int    `yaml:"every" env:"EVERY" validate:"gte=1"`
	TopN     int    `yaml:"topn_debug" env:"TOPN" validate:"gte=0"`
	CSVPath  string `yaml:"csv_path" env:"CSV_PATH"`
	JSONPath string `yaml:"json_path" env:"JSON_PATH"`
	BestPath string `yaml:"best_path" env:"BEST_PATH"`
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load builds a config from defaults, the YAML file at path (skipped when
// path is empty) and GROUPS_* environment variables, in that order of
// precedence, and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "reading config")
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// the first error keeps the message readable
			return nil, errors.Wrap(aggErr.Errors[0], "environment")
		}
		return nil, errors.Wrap(err, "environment")
	}

	// Apply defaults
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// Params converts the GA section for the optimizer.
func (c *Config) Params() ga.Params {
	return ga.Params{
		PopulationSize:  c.GA.Population,
		Generations:     c.GA.Generations,
		Multiple:        c.GA.Multiple,
		EliteFraction:   c.GA.EliteFraction,
		ChildrenPerPair: c.GA.ChildrenPerPair,
		MutationRate:    c.GA.MutationRate,
		FragmentMin:     c.GA.FragmentMin,
		FragmentMax:     c.GA.FragmentMax,
		StopRatio:       c.GA.StopRatio,
	}
}

func applyDefaults(cfg *Config) {
	ref := ga.DefaultParams()

	if cfg.Seed == 0 {
		cfg.Seed = 1337
	}
	if cfg.Size == 0 {
		cfg.Size = 4
	}
	if cfg.GA.Population == 0 {
		cfg.GA.Population = ref.PopulationSize
	}
	if cfg.GA.Generations == 0 {
		cfg.GA.Generations = ref.Generations
	}
	if cfg.GA.Multiple == 0 {
		cfg.GA.Multiple = ref.Multiple
	}
	if cfg.GA.EliteFraction == 0 {
		cfg.GA.EliteFraction = ref.EliteFraction
	}
	if cfg.GA.ChildrenPerPair == 0 {
		cfg.GA.ChildrenPerPair = ref.ChildrenPerPair
	}
	if cfg.GA.MutationRate == 0 {
		cfg.GA.MutationRate = ref.MutationRate
	}
	if cfg.GA.FragmentMin == 0 {
		cfg.GA.FragmentMin = ref.FragmentMin
	}
	if cfg.GA.FragmentMax == 0 {
		cfg.GA.FragmentMax = ref.FragmentMax
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Every == 0 {
		cfg.Logging.Every = 10
	}
}
