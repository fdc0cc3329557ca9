package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds runtime settings for a key search
type Config struct {
	Jobs             int           `mapstructure:"jobs"`
	ProgressInterval time.Duration `mapstructure:"progress_interval"`
	BatchSize        int           `mapstructure:"batch_size"`
	LogLevel         string        `mapstructure:"log_level"`
	Output           string        `mapstructure:"output"`
}

// flagKeys maps command-line flag names to config keys
var flagKeys = map[string]string{
	"jobs":              "jobs",
	"progress-interval": "progress_interval",
	"batch-size":        "batch_size",
	"log-level":         "log_level",
	"output":            "output",
}

// LoadConfig loads configuration using Viper. Values come from, in increasing order of
// precedence: defaults, the config file, PCKBRUTE_* environment variables and any flags
// that were set explicitly. An empty configFile searches the default locations.
func LoadConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("pckbrute-config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.pckbrute")
		v.AddConfigPath("/etc/pckbrute")
	}

	// Set defaults
	v.SetDefault("jobs", DefaultJobs())
	v.SetDefault("progress_interval", 500*time.Millisecond)
	v.SetDefault("batch_size", 10_000)
	v.SetDefault("log_level", "info")
	v.SetDefault("output", "table")

	// Allow environment variables
	v.SetEnvPrefix("PCKBRUTE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("jobs has to be greater than 0, got %d", c.Jobs)
	}
	if c.ProgressInterval <= 0 {
		return fmt.Errorf("progress interval must be positive, got %s", c.ProgressInterval)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	switch c.Output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format: %s", c.Output)
	}
	return nil
}

// DefaultJobs returns the number of logical CPUs, or 1 if it cannot be determined
func DefaultJobs() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
