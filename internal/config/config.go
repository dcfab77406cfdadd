// Package config loads tool configuration from an optional file and
// environment variables, with built-in defaults.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the batch parameters a config file or environment can set.
// Command-line flags take precedence over all of these.
type Config struct {
	OutputDir    string `mapstructure:"output_dir"`
	InputFormat  string `mapstructure:"input_format"`  // input extension filter
	OutputFormat string `mapstructure:"output_format"` // jpeg, png, webp
	Width        int    `mapstructure:"width"`
	Height       int    `mapstructure:"height"` // 0 = derive from aspect ratio
	Quality      int    `mapstructure:"quality"`
	Workers      int    `mapstructure:"workers"` // <=1 = sequential
}

// Load reads configuration from the given file path. An empty path means
// "imgnorm.yaml in the working directory, if present"; a missing file is
// only an error when it was named explicitly. Environment variables with
// the IMGNORM_ prefix override file values (e.g. IMGNORM_QUALITY=70).
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("output_dir", "processed")
	v.SetDefault("input_format", "png")
	v.SetDefault("output_format", "webp")
	v.SetDefault("width", 800)
	v.SetDefault("height", 0)
	v.SetDefault("quality", 50)
	v.SetDefault("workers", 1)

	v.SetEnvPrefix("IMGNORM")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("imgnorm")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
