package config

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap/zapcore"

	domainconfig "writecoach-backend/domain/config"
)

// Config holds all application configuration
type Config struct {
	Environment string
	LogLevel    string

	// Dictionary files: <DictionaryDir>/<DictionaryLocale>.aff and .dic,
	// optionally zstd-compressed with a .zst suffix
	DictionaryDir    string
	DictionaryLocale string

	// Redis; an empty address selects the in-memory repositories
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	// AWS; a DynamoDB table selects the DynamoDB repositories and an event
	// bus name selects EventBridge for domain events. DynamoDBEndpoint
	// points the client at a local DynamoDB.
	AWSRegion        string
	DynamoDBTable    string
	DynamoDBEndpoint string
	EventBusName     string

	// Feature flags
	EnableMetrics   bool
	MetricsFile     string
	EnableTracing   bool
	TracingEndpoint string

	// Optional config file overlay, watched for feedback threshold changes
	ConfigFile string

	Domain *domainconfig.DomainConfig

	// LoadedFrom lists the sources applied, lowest priority first
	LoadedFrom []string
}

// LoadConfig builds the configuration from defaults, the optional
// CONFIG_FILE overlay and environment variables, in that order.
func LoadConfig() (*Config, error) {
	cfg := defaultConfig(getEnv("ENVIRONMENT", "development"))

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		cfg.ConfigFile = path
		if err := NewLoader().LoadFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	applyEnvironment(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig(environment string) *Config {
	domain := domainconfig.LoadDomainConfig(environment)
	return &Config{
		Environment:      environment,
		LogLevel:         "info",
		DictionaryDir:    "dictionaries",
		DictionaryLocale: domain.DictionaryLocale,
		RedisKeyPrefix:   "writecoach",
		AWSRegion:        "us-east-1",
		MetricsFile:      "writecoach.prom",
		TracingEndpoint:  "localhost:4317",
		Domain:           domain,
		LoadedFrom:       []string{"defaults"},
	}
}

// applyEnvironment overlays environment variables; unset ones keep the
// current value.
func applyEnvironment(cfg *Config) {
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.DictionaryDir = getEnv("DICTIONARY_DIR", cfg.DictionaryDir)
	cfg.DictionaryLocale = getEnv("DICTIONARY_LOCALE", cfg.DictionaryLocale)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = getEnvInt("REDIS_DB", cfg.RedisDB)
	cfg.RedisKeyPrefix = getEnv("REDIS_KEY_PREFIX", cfg.RedisKeyPrefix)
	cfg.AWSRegion = getEnv("AWS_REGION", cfg.AWSRegion)
	cfg.DynamoDBTable = getEnv("DYNAMODB_TABLE", cfg.DynamoDBTable)
	cfg.DynamoDBEndpoint = getEnv("DYNAMODB_ENDPOINT", cfg.DynamoDBEndpoint)
	cfg.EventBusName = getEnv("EVENT_BUS_NAME", cfg.EventBusName)
	cfg.EnableMetrics = getEnvBool("ENABLE_METRICS", cfg.EnableMetrics)
	cfg.MetricsFile = getEnv("METRICS_FILE", cfg.MetricsFile)
	cfg.EnableTracing = getEnvBool("ENABLE_TRACING", cfg.EnableTracing)
	cfg.TracingEndpoint = getEnv("OTEL_EXPORTER_ENDPOINT", cfg.TracingEndpoint)

	cfg.Domain.DictionaryLocale = cfg.DictionaryLocale
	cfg.LoadedFrom = append(cfg.LoadedFrom, "environment")
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	switch c.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("unknown environment %q", c.Environment)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if c.DictionaryLocale == "" {
		return fmt.Errorf("DICTIONARY_LOCALE is required")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB cannot be negative")
	}
	if c.RedisAddr != "" && c.DynamoDBTable != "" {
		return fmt.Errorf("REDIS_ADDR and DYNAMODB_TABLE cannot both be set")
	}
	if (c.DynamoDBTable != "" || c.EventBusName != "") && c.AWSRegion == "" {
		return fmt.Errorf("AWS_REGION is required for DynamoDB and EventBridge")
	}
	if c.Domain == nil {
		return fmt.Errorf("domain configuration is missing")
	}
	if c.Domain.MaxSuggestions < 0 {
		return fmt.Errorf("max suggestions cannot be negative")
	}
	if !c.Domain.Feedback.Validate() {
		return fmt.Errorf("invalid feedback thresholds")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UseRedis reports whether repositories should be backed by Redis
func (c *Config) UseRedis() bool {
	return c.RedisAddr != ""
}

// UseDynamoDB reports whether repositories should be backed by DynamoDB
func (c *Config) UseDynamoDB() bool {
	return c.DynamoDBTable != ""
}

// UseEventBridge reports whether domain events go to an EventBridge bus
func (c *Config) UseEventBridge() bool {
	return c.EventBusName != ""
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
