package extraction

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config controls the AI document extractor.
type Config struct {
	Model             string  `yaml:"model"`
	MaxRetries        int     `yaml:"max_retries"`
	RetryBaseMS       int     `yaml:"retry_base_ms"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// LoadConfig loads extraction config from env, with an optional yaml
// override at COMPARE_CONFIG.
func LoadConfig() (Config, error) {
	cfg := Config{
		Model:             getenvDefault("OPENAI_MODEL", "gpt-4o-mini"),
		MaxRetries:        getenvIntDefault("EXTRACT_MAX_RETRIES", 3),
		RetryBaseMS:       getenvIntDefault("EXTRACT_RETRY_BASE_MS", 500),
		RequestsPerSecond: getenvFloatDefault("EXTRACT_REQUESTS_PER_SECOND", 1),
		Burst:             getenvIntDefault("EXTRACT_BURST", 2),
	}

	if path := os.Getenv("COMPARE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.Model == "" {
		return cfg, errors.New("extraction: model required")
	}
	if cfg.MaxRetries < 0 {
		return cfg, errors.New("extraction: max retries must not be negative")
	}
	if cfg.RequestsPerSecond <= 0 {
		return cfg, errors.New("extraction: requests per second must be positive")
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvFloatDefault(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
