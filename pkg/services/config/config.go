package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config carries the analytics thresholds and artifact locations. Every
// field has a working default so a config file is optional.
type Config struct {
	// ModelDir is the directory holding the trained classifier bundle.
	ModelDir string `mapstructure:"model_dir"`
	// DbPath is the sqlite database location.
	DbPath string `mapstructure:"db_path"`
	// ZThreshold flags statistical anomalies beyond this many standard deviations.
	ZThreshold float64 `mapstructure:"z_threshold"`
	// Contamination is the expected outlier fraction for multivariate detection.
	Contamination float64 `mapstructure:"contamination"`
	// ForecastDays is the default projection horizon.
	ForecastDays int `mapstructure:"forecast_days"`
}

func Default() Config {
	return Config{
		ModelDir:      "models/category",
		DbPath:        "spendsight.db",
		ZThreshold:    2.0,
		Contamination: 0.05,
		ForecastDays:  30,
	}
}

// LoadConfig reads a YAML config file and overlays it on the defaults.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	cfg := Default()
	v.SetDefault("model_dir", cfg.ModelDir)
	v.SetDefault("db_path", cfg.DbPath)
	v.SetDefault("z_threshold", cfg.ZThreshold)
	v.SetDefault("contamination", cfg.Contamination)
	v.SetDefault("forecast_days", cfg.ForecastDays)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
