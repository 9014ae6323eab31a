package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/radarmap/pkg/constants"
	"github.com/agentstation/radarmap/pkg/errors"
)

// envPrefix namespaces environment variables, e.g. RADARMAP_STATIONS_URL.
const envPrefix = "RADARMAP"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Update configuration
	StationsURL     string        `validate:"required,url"`
	AvailabilityURL string        `validate:"required,url"`
	LocationsPath   string        `validate:"required"`
	OutputPath      string        `validate:"omitempty"`
	Generator       string        `validate:"required"`
	Timeout         time.Duration `validate:"gt=0"`
	Retries         int           `validate:"gte=0,lte=10"`

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (path argument, or .radarmap.yaml in $HOME or the working directory)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	if configFile == "" {
		configFile = v.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".radarmap")
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing default config is fine, an explicit one must exist
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "failed to read config file", err)
		}
	}

	config := &Config{
		// Global flags (may be overridden by cobra flags later)
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		StationsURL:     v.GetString("stations_url"),
		AvailabilityURL: v.GetString("availability_url"),
		LocationsPath:   v.GetString("locations_path"),
		OutputPath:      v.GetString("output_path"),
		Generator:       v.GetString("generator"),
		Timeout:         v.GetDuration("timeout"),
		Retries:         v.GetInt("retries"),

		// Logging configuration
		LogLevel:  getEnvOrDefault("LOG_LEVEL", v.GetString("log_level")),
		LogFormat: getEnvOrDefault("LOG_FORMAT", v.GetString("log_format")),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", v.GetString("log_output")),
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("stations_url", constants.DefaultStationsURL)
	v.SetDefault("availability_url", constants.DefaultAvailabilityURL)
	v.SetDefault("locations_path", constants.DefaultLocationsPath)
	v.SetDefault("generator", constants.DefaultGenerator)
	v.SetDefault("timeout", constants.CommandTimeout)
	v.SetDefault("retries", constants.MaxRetries)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// Validate checks the update settings.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.NewConfigError("config", "validation failed", err)
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, errors.NewValidationError(fe.Field(), fe.Value(), describe(fe)))
	}
	return errors.Join(errs...)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a URL"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte", "lte":
		return fmt.Sprintf("must be between 0 and %d", constants.MaxRetriesLimit)
	default:
		return "failed " + fe.Tag()
	}
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
