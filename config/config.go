package config

import (
	"fmt"
	"os"
	"strconv"

	godotenv "github.com/joho/godotenv"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultQuality     = 40
	DefaultScaleFactor = 0.3
	DefaultFilter      = "lanczos"
)

// Config is the process-wide configuration, built once at startup.
// Invalid values reject the whole process before any event is accepted.
type Config struct {
	DestinationBucket string
	TargetQuality     int
	ScaleFactor       float64
	ResampleFilter    string

	// Set only for the queue-driven worker binary.
	RabbitMqURL   string
	RabbitMqQueue string
}

// Load reads .env (when present) and the environment, applies defaults and
// validates ranges.
func Load() (*Config, error) {
	// Missing .env is fine, the system environment still applies.
	_ = godotenv.Load()

	cfg := &Config{
		DestinationBucket: os.Getenv("DESTINATION_BUCKET"),
		TargetQuality:     DefaultQuality,
		ScaleFactor:       DefaultScaleFactor,
		ResampleFilter:    DefaultFilter,
		RabbitMqURL:       os.Getenv("RABBITMQ_URL"),
		RabbitMqQueue:     os.Getenv("RABBITMQ_QUEUE"),
	}

	if v := os.Getenv("TARGET_QUALITY"); v != "" {
		q, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("TARGET_QUALITY must be an integer, got %q", v)
		}
		cfg.TargetQuality = q
	}
	if v := os.Getenv("SCALE_FACTOR"); v != "" {
		s, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("SCALE_FACTOR must be a number, got %q", v)
		}
		cfg.ScaleFactor = s
	}
	if v := os.Getenv("RESAMPLE_FILTER"); v != "" {
		cfg.ResampleFilter = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces the startup invariants.
func (c *Config) Validate() error {
	if c.DestinationBucket == "" {
		return fmt.Errorf("DESTINATION_BUCKET is required")
	}
	if c.TargetQuality < 1 || c.TargetQuality > 100 {
		return fmt.Errorf("TARGET_QUALITY must be in [1,100], got %d", c.TargetQuality)
	}
	if c.ScaleFactor <= 0 || c.ScaleFactor > 1 {
		return fmt.Errorf("SCALE_FACTOR must be in (0,1], got %g", c.ScaleFactor)
	}
	if !ValidFilter(c.ResampleFilter) {
		return fmt.Errorf("RESAMPLE_FILTER %q is not supported", c.ResampleFilter)
	}
	return nil
}

// RequireQueue checks the worker-only settings.
func (c *Config) RequireQueue() error {
	if c.RabbitMqURL == "" || c.RabbitMqQueue == "" {
		return fmt.Errorf("RABBITMQ_URL and RABBITMQ_QUEUE are required for the queue worker")
	}
	return nil
}

// ValidFilter reports whether name maps to a known resample filter.
func ValidFilter(name string) bool {
	switch name {
	case "lanczos", "catmullrom", "linear", "box", "nearest":
		return true
	}
	return false
}
