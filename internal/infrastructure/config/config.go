// internal/infrastructure/config/config.go
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MissingKeyError reports a required setting that was neither flagged nor in the environment
type MissingKeyError string

func (k MissingKeyError) Error() string {
	return fmt.Sprintf("%s must be set", string(k))
}

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion   string
	LogLevel     string
	OutputFormat string

	// Flightradar24
	Mail         string
	Password     string
	FlightNumber string
	SiteURL      string
	LoginURL     string
	APIURL       string
	HTTPTimeout  time.Duration
	PageSize     int
	MaxPages     int

	// Metrics
	PushgatewayURL string
	MetricsJob     string
}

// LoadConfig loads configuration from environment variables, then applies
// command-line flags from args on top.
func LoadConfig(args []string) (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	password, err := getSecret("FR24_PASSWORD")
	if err != nil {
		return nil, err
	}

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		OutputFormat: getEnv("OUTPUT_FORMAT", "json"),

		Mail:         getEnv("FR24_MAIL", ""),
		Password:     password,
		FlightNumber: getEnv("FLIGHT_NUMBER", ""),
		SiteURL:      getEnv("FR24_SITE_URL", "https://www.flightradar24.com"),
		LoginURL:     getEnv("FR24_LOGIN_URL", "https://www.flightradar24.com/user/login"),
		APIURL:       getEnv("FR24_API_URL", "https://api.flightradar24.com"),
		HTTPTimeout:  time.Duration(getEnvAsInt("HTTP_TIMEOUT", 30)) * time.Second,
		PageSize:     getEnvAsInt("HISTORY_PAGE_SIZE", 25),
		MaxPages:     getEnvAsInt("HISTORY_MAX_PAGES", 1),

		PushgatewayURL: getEnv("PUSHGATEWAY_URL", ""),
		MetricsJob:     getEnv("METRICS_JOB", "flight_history"),
	}

	fs := flag.NewFlagSet("flighthistory", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	stringFlag(fs, &config.Mail, "mail", "m", "account e-mail [FR24_MAIL]")
	stringFlag(fs, &config.Password, "password", "p", "account password [FR24_PASSWORD]")
	stringFlag(fs, &config.FlightNumber, "flight-number", "f", "flight number to summarize [FLIGHT_NUMBER]")
	stringFlag(fs, &config.OutputFormat, "output", "o", "output format: json, json-pretty or text [OUTPUT_FORMAT]")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level [LOG_LEVEL]")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	config.FlightNumber = strings.TrimSpace(config.FlightNumber)
	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	switch {
	case c.Mail == "":
		return MissingKeyError("FR24_MAIL")
	case c.Password == "":
		return MissingKeyError("FR24_PASSWORD")
	}
	return nil
}

// RequireFlightNumber reports a MissingKeyError when no flight number was given
func (c *Config) RequireFlightNumber() error {
	if c.FlightNumber == "" {
		return MissingKeyError("FLIGHT_NUMBER")
	}
	return nil
}

func stringFlag(fs *flag.FlagSet, p *string, name, short, usage string) {
	fs.StringVar(p, name, *p, usage)
	fs.StringVar(p, short, *p, usage)
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getSecret reads key from the environment, falling back to the file named by key_FILE
func getSecret(key string) (string, error) {
	value := os.Getenv(key)
	if path := os.Getenv(key + "_FILE"); value == "" && path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s_FILE: %w", key, err)
		}
		value = string(content)
	}
	return strings.TrimSpace(value), nil
}
