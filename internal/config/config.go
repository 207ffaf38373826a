package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the resolved kiosk backend configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Recorder RecorderConfig `mapstructure:"recorder" yaml:"recorder"`
}

type ServerConfig struct {
	Port string `mapstructure:"port" yaml:"port"`
}

type RecorderConfig struct {
	// Directory recordings are written to. Empty means
	// $HOME/Music/honeybee-recordings.
	Directory string `mapstructure:"directory" yaml:"directory"`

	// FilePrefix is prepended to the timestamp in recording filenames.
	FilePrefix string `mapstructure:"file_prefix" yaml:"file_prefix"`

	// ProgressIntervalMs is the cadence of recording-status events.
	ProgressIntervalMs int `mapstructure:"progress_interval_ms" yaml:"progress_interval_ms"`

	// StopPollIntervalMs and StopPollAttempts bound how long Stop waits
	// for the capture goroutine to acknowledge termination.
	StopPollIntervalMs int `mapstructure:"stop_poll_interval_ms" yaml:"stop_poll_interval_ms"`
	StopPollAttempts   int `mapstructure:"stop_poll_attempts" yaml:"stop_poll_attempts"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return os.ExpandEnv("$HOME/.config/honeybee-kiosk.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8090")
	v.SetDefault("recorder.directory", "")
	v.SetDefault("recorder.file_prefix", "REC_")
	v.SetDefault("recorder.progress_interval_ms", 200)
	v.SetDefault("recorder.stop_poll_interval_ms", 50)
	v.SetDefault("recorder.stop_poll_attempts", 100)
}

// Load reads the configuration from the given file, falling back to
// defaults for anything unset. A missing file is not an error; the kiosk
// must boot with zero configuration.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for values the recorder cannot run with.
func (c *Config) Validate() error {
	if c.Recorder.ProgressIntervalMs <= 0 {
		return fmt.Errorf("recorder.progress_interval_ms must be positive, got %d", c.Recorder.ProgressIntervalMs)
	}
	if c.Recorder.StopPollIntervalMs <= 0 {
		return fmt.Errorf("recorder.stop_poll_interval_ms must be positive, got %d", c.Recorder.StopPollIntervalMs)
	}
	if c.Recorder.StopPollAttempts <= 0 {
		return fmt.Errorf("recorder.stop_poll_attempts must be positive, got %d", c.Recorder.StopPollAttempts)
	}
	if c.Recorder.FilePrefix == "" {
		return fmt.Errorf("recorder.file_prefix must not be empty")
	}
	return nil
}

// RecordingsDirectory resolves the directory recordings are stored in.
func (c *Config) RecordingsDirectory() string {
	if c.Recorder.Directory != "" {
		return c.Recorder.Directory
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "honeybee-recordings")
	}
	return filepath.Join(home, "Music", "honeybee-recordings")
}

// Write persists the configuration as YAML, creating parent directories
// as needed. Used by `config init` to scaffold a starting file.
func (c *Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// Pure defaults always unmarshal.
	_ = v.Unmarshal(&cfg)
	return &cfg
}
