// Package cli holds the flag handling shared by the groups and evolve
// commands.
package cli

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/gigamonkey/groups/internal/config"
	"github.com/gigamonkey/groups/internal/logging"
	"github.com/gigamonkey/groups/internal/roster"
)

// Common are the flags every command accepts. Flags only override the loaded
// config when they were set explicitly.
type Common struct {
	ConfigPath string
	Size       int
	Seed       int64
	Verbose    bool
	LogFormat  string
	BestPath   string
}

// Register adds the common flags to fs.
func (c *Common) Register(fs *pflag.FlagSet) {
	fs.StringVarP(&c.ConfigPath, "config", "c", "", "path to YAML config file")
	fs.IntVarP(&c.Size, "size", "s", 4, "group size")
	fs.Int64Var(&c.Seed, "seed", 0, "random seed (default from config)")
	fs.BoolVarP(&c.Verbose, "verbose", "v", false, "verbose output")
	fs.StringVar(&c.LogFormat, "log-format", "", "log format: text or json")
	fs.StringVar(&c.BestPath, "best", "", "write the resulting groups as JSON to this path")
}

// Load reads the config and applies explicitly set flags on top.
func (c *Common) Load(fs *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}

	if fs.Changed("size") {
		cfg.Size = c.Size
	}
	if fs.Changed("seed") {
		cfg.Seed = c.Seed
	}
	if c.Verbose {
		cfg.Logging.Level = "debug"
	}
	if fs.Changed("log-format") {
		cfg.Logging.Format = c.LogFormat
	}
	if fs.Changed("best") {
		cfg.Logging.BestPath = c.BestPath
	}

	if cfg.Size < 2 {
		return nil, &roster.ConfigError{Size: cfg.Size, Err: roster.ErrGroupSize}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Logger builds the process logger from cfg.
func Logger(out io.Writer, cfg *config.Config) (*logrus.Logger, error) {
	log, err := logging.New(out, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, errors.Wrap(err, "configuring logger")
	}
	return log, nil
}

// People loads the roster from the optional file argument or stdin and
// reports collapsed duplicates.
func People(args []string, stdin io.Reader, log logrus.FieldLogger) (*roster.Roster, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	r, err := roster.Load(path, stdin)
	if err != nil {
		return nil, err
	}
	if len(r.Duplicates) > 0 {
		log.WithField("names", r.Duplicates).Warn("duplicate names collapsed into one person each")
	}
	log.WithField("people", r.Len()).Debug("loaded roster")
	return r, nil
}
