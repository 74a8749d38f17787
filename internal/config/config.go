package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

const (
	defaultOutputDir  = "dump"
	defaultSampleRate = 11025
	defaultLogLevel   = "info"
)

// Config controls the dump tool. Every field may be left out of the file.
type Config struct {
	// OutputDir receives the raw, palette, screen and audio folders.
	OutputDir string `toml:"output_dir"`

	// Parallelism is the number of resources decoded at once.
	Parallelism int `toml:"parallelism"`

	// SampleRate is written to the header of dumped audio.
	SampleRate uint32 `toml:"sample_rate"`

	LogLevel string `toml:"log_level"`
}

func NewConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the TOML file at path. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file %q: %w", path, err)
		}
		defer f.Close()

		if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %q: %w", path, err)
		}
	}
	applyDefaults(cfg)

	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Level() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}
	return lvl, nil
}

func applyDefaults(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaultOutputDir
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = runtime.GOMAXPROCS(0)
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = defaultSampleRate
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
}
