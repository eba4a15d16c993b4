// Package config layers spamtop settings from flags, SPAMTOP_* environment
// variables, an optional YAML file and built-in defaults, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/srodi/spamtop/pkg/logging"
	"github.com/srodi/spamtop/pkg/report"
)

const (
	// EnvPrefix is prepended to every environment override.
	EnvPrefix = "SPAMTOP"
	// GlobalConfigDir is searched under $HOME when no --config is given.
	GlobalConfigDir = ".config/spamtop"
	// GlobalConfigFile is the file name inside GlobalConfigDir.
	GlobalConfigFile = "config.yaml"

	DefaultInterval = time.Second
)

// Output modes.
const (
	OutputText = "text"
	OutputYAML = "yaml"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the fully resolved runtime configuration.
type Config struct {
	Interval   time.Duration `mapstructure:"interval"`
	Count      int           `mapstructure:"count"`
	TopK       int           `mapstructure:"topk"`
	HideKernel bool          `mapstructure:"hide-kernel"`
	Filter     string        `mapstructure:"filter"`
	Sort       string        `mapstructure:"sort"`
	Output     string        `mapstructure:"output"`
	Banner     bool          `mapstructure:"banner"`
	ProcRoot   string        `mapstructure:"proc-root"`
	LogLevel   string        `mapstructure:"log-level"`
	LogFile    string        `mapstructure:"log-file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Interval: DefaultInterval,
		Sort:     string(report.SortByPID),
		Output:   OutputText,
		ProcRoot: "/proc",
		LogLevel: "warn",
	}
}

// RegisterFlags declares every setting on fs with the built-in defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Duration("interval", d.Interval, "sampling interval (e.g. 500ms, 2s)")
	fs.Int("count", d.Count, "stop after this many snapshots (0 runs until interrupted)")
	fs.Int("topk", d.TopK, "number of processes to display (0 shows all)")
	fs.Bool("hide-kernel", d.HideKernel, "hide kernel threads such as kworker, ksoftirqd, etc")
	fs.String("filter", d.Filter, "only show processes whose command contains this substring (case-insensitive)")
	fs.String("sort", d.Sort, "sort processes by pid, rss or vsize")
	fs.String("output", d.Output, "output format: text or yaml")
	fs.Bool("banner", d.Banner, "print the banner above each text snapshot")
	fs.String("proc-root", d.ProcRoot, "procfs mount to read from")
	fs.String("log-level", d.LogLevel, "log level: debug, info, warn or error")
	fs.String("log-file", d.LogFile, "write logs to this file instead of stderr")
}

// NewViper returns a viper instance with defaults and environment lookup wired.
func NewViper() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("interval", d.Interval)
	v.SetDefault("count", d.Count)
	v.SetDefault("topk", d.TopK)
	v.SetDefault("hide-kernel", d.HideKernel)
	v.SetDefault("filter", d.Filter)
	v.SetDefault("sort", d.Sort)
	v.SetDefault("output", d.Output)
	v.SetDefault("banner", d.Banner)
	v.SetDefault("proc-root", d.ProcRoot)
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("log-file", d.LogFile)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load resolves the configuration. path may be empty, in which case the
// global config file is used when it exists. fs may be nil.
func Load(v *viper.Viper, fs *pflag.FlagSet, path string) (*Config, error) {
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	if path == "" {
		path = globalConfigPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalises soft mistakes and rejects unknown values.
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.TopK < 0 {
		c.TopK = 0
	}
	if c.Count < 0 {
		c.Count = 0
	}
	c.Filter = strings.ToLower(strings.TrimSpace(c.Filter))
	if c.ProcRoot == "" {
		c.ProcRoot = "/proc"
	}

	sortKey, err := report.ParseSortKey(c.Sort)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	c.Sort = string(sortKey)

	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	switch c.Output {
	case OutputText, OutputYAML:
	default:
		return fmt.Errorf("%w: unknown output %q (want text or yaml)", ErrInvalid, c.Output)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q: %v", ErrInvalid, c.LogLevel, err)
	}
	return nil
}

// SortKey returns the validated sort column.
func (c *Config) SortKey() report.SortKey {
	return report.SortKey(c.Sort)
}

// FilterConfig returns the row filters derived from the config.
func (c *Config) FilterConfig() report.FilterConfig {
	return report.FilterConfig{HideKernel: c.HideKernel, CommandFilter: c.Filter}
}

func globalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	p := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}
