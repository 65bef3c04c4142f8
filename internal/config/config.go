package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries every external setting the pipeline needs. It is built once in
// main and passed in explicitly; packages never read ambient state.
type Config struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Timezone  string  `yaml:"timezone"`

	InputDir     string `yaml:"input_dir"`
	OutputDir    string `yaml:"output_dir"`
	InputPattern string `yaml:"input_pattern"`

	WeatherBaseURL string        `yaml:"weather_base_url"`
	WeatherTimeout time.Duration `yaml:"weather_timeout"`

	MetricsListen string `yaml:"metrics_listen"`
}

// Load builds config from defaults, an optional YAML file named by
// WATTCHART_CONFIG, and env overrides, in that order.
func Load() (Config, error) {
	cfg := Config{
		// Brackendale, BC
		Latitude:       49.7833,
		Longitude:      -123.1333,
		Timezone:       "America/Vancouver",
		InputDir:       "input",
		OutputDir:      "output",
		InputPattern:   "bchydro.com-consumption-*.csv",
		WeatherBaseURL: "https://archive-api.open-meteo.com/v1/archive",
		WeatherTimeout: 10 * time.Second,
	}

	if path := os.Getenv("WATTCHART_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.Latitude = getenvFloatDefault("WATTCHART_LATITUDE", cfg.Latitude)
	cfg.Longitude = getenvFloatDefault("WATTCHART_LONGITUDE", cfg.Longitude)
	cfg.Timezone = getenvDefault("WATTCHART_TIMEZONE", cfg.Timezone)
	cfg.InputDir = getenvDefault("WATTCHART_INPUT_DIR", cfg.InputDir)
	cfg.OutputDir = getenvDefault("WATTCHART_OUTPUT_DIR", cfg.OutputDir)
	cfg.InputPattern = getenvDefault("WATTCHART_INPUT_PATTERN", cfg.InputPattern)
	cfg.WeatherBaseURL = getenvDefault("WATTCHART_WEATHER_URL", cfg.WeatherBaseURL)
	cfg.WeatherTimeout = getenvDurationDefault("WATTCHART_WEATHER_TIMEOUT", cfg.WeatherTimeout)
	cfg.MetricsListen = getenvDefault("WATTCHART_METRICS_LISTEN", cfg.MetricsListen)

	if cfg.InputDir == "" {
		return cfg, errors.New("config: input dir required")
	}
	if cfg.OutputDir == "" {
		return cfg, errors.New("config: output dir required")
	}
	if cfg.WeatherBaseURL == "" {
		return cfg, errors.New("config: weather base url required")
	}
	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvFloatDefault(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getenvDurationDefault(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
