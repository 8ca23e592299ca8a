package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config stores all configuration of the service.
// The values are read by viper from an app.env file or environment variables;
// environment variables win.
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	DBPath      string `mapstructure:"DB_PATH"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	SeedPath    string `mapstructure:"SEED_PATH"`

	DepotX float64 `mapstructure:"DEPOT_X"`
	DepotY float64 `mapstructure:"DEPOT_Y"`

	VehicleCount    int `mapstructure:"VEHICLE_COUNT"`
	VehicleCapacity int `mapstructure:"VEHICLE_CAPACITY"`

	InitialTemperature    float64 `mapstructure:"INITIAL_TEMPERATURE"`
	CoolingRate           float64 `mapstructure:"COOLING_RATE"`
	EnforceCapacityOnMove bool    `mapstructure:"ENFORCE_CAPACITY_ON_MOVE"`
	MaxBatchIterations    int     `mapstructure:"MAX_BATCH_ITERATIONS"`

	// Steps per second allowed on the step and stream endpoints.
	StepRateLimit float64 `mapstructure:"STEP_RATE_LIMIT"`
	StepRateBurst int     `mapstructure:"STEP_RATE_BURST"`
}

var defaults = map[string]any{
	"ENVIRONMENT":              "development",
	"PORT":                     "8080",
	"DB_PATH":                  "data/app.db",
	"DATABASE_URL":             "",
	"SEED_PATH":                "data/seeds/demands.json",
	"DEPOT_X":                  300.0,
	"DEPOT_Y":                  200.0,
	"VEHICLE_COUNT":            3,
	"VEHICLE_CAPACITY":         50,
	"INITIAL_TEMPERATURE":      1000.0,
	"COOLING_RATE":             0.995,
	"ENFORCE_CAPACITY_ON_MOVE": false,
	"MAX_BATCH_ITERATIONS":     10000,
	"STEP_RATE_LIMIT":          20.0,
	"STEP_RATE_BURST":          40,
}

// Load reads configuration from path/app.env (optional) and the environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Every key needs a default so AutomaticEnv can see it during Unmarshal.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("load config: read app.env: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: unmarshal: %w", err)
	}

	cfg.DatabaseURL = trimOptionalQuotes(cfg.DatabaseURL)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Port) == "":
		return errors.New("PORT cannot be empty")
	case c.VehicleCount <= 0:
		return fmt.Errorf("VEHICLE_COUNT must be positive (got %d)", c.VehicleCount)
	case c.VehicleCapacity <= 0:
		return fmt.Errorf("VEHICLE_CAPACITY must be positive (got %d)", c.VehicleCapacity)
	case c.InitialTemperature <= 0:
		return fmt.Errorf("INITIAL_TEMPERATURE must be positive (got %v)", c.InitialTemperature)
	case c.CoolingRate <= 0 || c.CoolingRate >= 1:
		return fmt.Errorf("COOLING_RATE must be strictly between 0 and 1 (got %v)", c.CoolingRate)
	case c.MaxBatchIterations <= 0:
		return fmt.Errorf("MAX_BATCH_ITERATIONS must be positive (got %d)", c.MaxBatchIterations)
	case c.StepRateLimit < 0 || c.StepRateBurst < 0:
		return errors.New("STEP_RATE_LIMIT and STEP_RATE_BURST cannot be negative")
	}
	return nil
}

// IsDevelopment reports whether human-readable console logging should be used.
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func trimOptionalQuotes(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\"")
	s = strings.TrimSuffix(s, "\"")
	s = strings.TrimPrefix(s, "'")
	s = strings.TrimSuffix(s, "'")
	return s
}
