package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Fetcher   FetcherConfig   `mapstructure:"fetcher"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
	Highlight HighlightConfig `mapstructure:"highlight"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	Debug       bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
}

// FetcherConfig controls the link-channel website fetcher.
type FetcherConfig struct {
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	UserAgent      string        `mapstructure:"user_agent"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	NewDomainDays  int           `mapstructure:"new_domain_days"`
}

// ScoringConfig calibrates the risk scorer. Category weights default to the
// catalog values; entries in WeightOverrides replace them by category name.
type ScoringConfig struct {
	HighThreshold   int            `mapstructure:"high_threshold"`
	MediumThreshold int            `mapstructure:"medium_threshold"`
	WeightOverrides map[string]int `mapstructure:"weight_overrides"`
}

// HighlightConfig controls the highlight projector's re-scan scheduling.
type HighlightConfig struct {
	DebounceDelay time.Duration `mapstructure:"debounce_delay"`
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/jobshield")
	}

	setDefaults(v)

	// Environment variables
	v.SetEnvPrefix("JOBSHIELD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind nested env vars explicitly (viper doesn't auto-bind nested struct fields)
	v.BindEnv("server.http_port", "JOBSHIELD_SERVER_HTTP_PORT")
	v.BindEnv("redis.enabled", "JOBSHIELD_REDIS_ENABLED")
	v.BindEnv("redis.host", "JOBSHIELD_REDIS_HOST")
	v.BindEnv("redis.port", "JOBSHIELD_REDIS_PORT")
	v.BindEnv("redis.password", "JOBSHIELD_REDIS_PASSWORD")
	v.BindEnv("app.environment", "JOBSHIELD_APP_ENVIRONMENT")
	v.BindEnv("logger.level", "JOBSHIELD_LOGGER_LEVEL")

	// Read config file; a missing file falls back to defaults + env
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadDefault loads configuration with default path
func LoadDefault() (*Config, error) {
	return Load("")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "jobshield")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.key_prefix", "jobshield:")

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Content-Type"})
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.requests_per_minute", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")

	v.SetDefault("fetcher.timeout", 5*time.Second)
	v.SetDefault("fetcher.max_body_bytes", int64(2<<20))
	v.SetDefault("fetcher.user_agent", "JobShield/1.0")
	v.SetDefault("fetcher.cache_ttl", 15*time.Minute)
	v.SetDefault("fetcher.new_domain_days", 90)

	v.SetDefault("scoring.high_threshold", 70)
	v.SetDefault("scoring.medium_threshold", 40)

	v.SetDefault("highlight.debounce_delay", 300*time.Millisecond)
}
