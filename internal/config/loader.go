package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".gitpulse"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for gitpulse settings.
const envPrefix = "GITPULSE"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// Load reads configuration from file, env vars, and defaults. If configPath
// is non-empty it is used as the explicit config file path; otherwise the
// config file is searched in CWD and $HOME. A missing config file is not an
// error; defaults are used.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) && configPath == "" {
			return nil, fmt.Errorf("read config: %w", readErr)
		}

		if configPath != "" {
			return nil, fmt.Errorf("read config %s: %w", configPath, readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfig, unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, validateErr
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	defaults := Default()

	viperCfg.SetDefault("churn.window_days", defaults.Churn.WindowDays)
	viperCfg.SetDefault("churn.min_total", defaults.Churn.MinTotal)
	viperCfg.SetDefault("bus_factor.threshold", defaults.BusFactor.Threshold)
	viperCfg.SetDefault("bus_factor.min_total", defaults.BusFactor.MinTotal)
	viperCfg.SetDefault("bus_factor.max_commits", defaults.BusFactor.MaxCommits)
	viperCfg.SetDefault("log.level", defaults.Log.Level)
}
