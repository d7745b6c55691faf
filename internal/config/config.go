package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Provider endpoints.
	NASAAPIKey        string
	APODBaseURL       string
	LaunchesBaseURL   string
	BodiesBaseURL     string
	HTTPClientTimeout time.Duration

	DisplayLocation *time.Location

	// Refresh schedules in standard five-field cron syntax. Empty disables the job.
	LaunchRefreshCron string
	APODRefreshCron   string

	// Kafka publishing of normalized records.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where
// unset. When CONFIG_FILE names a YAML file, its keys (the same names as the
// environment variables) replace the built-in defaults; the environment still
// wins over the file.
func Load() (*Config, error) {
	file, err := readConfigFile(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parseShutdownTimeout(file)
	if err != nil {
		return nil, err
	}

	clientTimeout, err := time.ParseDuration(file.get("HTTP_CLIENT_TIMEOUT", "0s"))
	if err != nil || clientTimeout < 0 {
		return nil, errors.New("invalid HTTP_CLIENT_TIMEOUT")
	}

	loc, err := time.LoadLocation(file.get("DISPLAY_TIMEZONE", "UTC"))
	if err != nil {
		return nil, errors.New("invalid DISPLAY_TIMEZONE")
	}

	cfg := &Config{
		HTTPAddr:        file.get("HTTP_ADDR", ":8080"),
		LogLevel:        file.get("LOG_LEVEL", "info"),
		LogFormat:       file.get("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		NASAAPIKey:        file.get("NASA_API_KEY", "DEMO_KEY"),
		APODBaseURL:       file.get("APOD_BASE_URL", "https://api.nasa.gov/planetary/apod"),
		LaunchesBaseURL:   file.get("LAUNCHES_BASE_URL", "https://lldev.thespacedevs.com/2.2.0/launch/upcoming/"),
		BodiesBaseURL:     file.get("BODIES_BASE_URL", "https://api.le-systeme-solaire.net/rest/bodies/"),
		HTTPClientTimeout: clientTimeout,

		DisplayLocation: loc,

		LaunchRefreshCron: cronSpec(file.get("LAUNCH_REFRESH_CRON", "*/30 * * * *")),
		APODRefreshCron:   cronSpec(file.get("APOD_REFRESH_CRON", "5 0 * * *")),

		KafkaEnabled: file.get("KAFKA_ENABLED", "false") == "true",
		KafkaBrokers: sharedcfg.ParseBrokers(file.get("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   strings.TrimSpace(file.get("KAFKA_TOPIC", "space-dashboard-records")),
	}

	if cfg.NASAAPIKey == "" {
		return nil, errors.New("NASA_API_KEY is required")
	}
	if cfg.APODBaseURL == "" {
		return nil, errors.New("APOD_BASE_URL is required")
	}
	if cfg.LaunchesBaseURL == "" {
		return nil, errors.New("LAUNCHES_BASE_URL is required")
	}
	if cfg.BodiesBaseURL == "" {
		return nil, errors.New("BODIES_BASE_URL is required")
	}
	if err := validateCron("LAUNCH_REFRESH_CRON", cfg.LaunchRefreshCron); err != nil {
		return nil, err
	}
	if err := validateCron("APOD_REFRESH_CRON", cfg.APODRefreshCron); err != nil {
		return nil, err
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is empty")
		}
	}

	return cfg, nil
}

// fileValues holds the CONFIG_FILE overrides keyed by upper-case variable name.
type fileValues map[string]string

// get resolves key from the environment, then the config file, then fallback.
func (f fileValues) get(key, fallback string) string {
	if v, ok := f[key]; ok && v != "" {
		fallback = v
	}
	return sharedcfg.EnvOrDefault(key, fallback)
}

func readConfigFile(path string) (fileValues, error) {
	if path == "" {
		return fileValues{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read CONFIG_FILE: %w", err)
	}
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse CONFIG_FILE: %w", err)
	}
	values := make(fileValues, len(raw))
	for k, v := range raw {
		values[strings.ToUpper(k)] = v
	}
	return values, nil
}

// parseShutdownTimeout defers to the shared parser unless only the config file
// sets SHUTDOWN_TIMEOUT.
func parseShutdownTimeout(file fileValues) (time.Duration, error) {
	v, ok := file["SHUTDOWN_TIMEOUT"]
	if !ok || os.Getenv("SHUTDOWN_TIMEOUT") != "" {
		return sharedcfg.ParseShutdownTimeout()
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid SHUTDOWN_TIMEOUT")
	}
	return d, nil
}

// cronSpec maps the "off" sentinel to an empty, disabled schedule.
func cronSpec(v string) string {
	if strings.EqualFold(strings.TrimSpace(v), "off") {
		return ""
	}
	return v
}

func validateCron(name, spec string) error {
	if spec == "" {
		return nil
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	return nil
}
