package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cypherlabdev/odds-ingestion-service/internal/models"
)

// Config holds all configuration for odds-ingestion-service
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Polling  PollingConfig  `mapstructure:"polling"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ProviderConfig holds odds provider configuration
type ProviderConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxRetries        int           `mapstructure:"max_retries"`
	BackoffBase       time.Duration `mapstructure:"backoff_base"`
	Regions           []string      `mapstructure:"regions"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"` // 0 disables the limiter
}

// PollingConfig holds polling job parameters
type PollingConfig struct {
	Leagues             []string `mapstructure:"leagues"`
	Markets             []string `mapstructure:"markets"` // empty means all
	IntervalSeconds     int      `mapstructure:"interval_seconds"`
	DedupeWindowMinutes int      `mapstructure:"dedupe_window_minutes"`
	LookaheadHours      int      `mapstructure:"lookahead_hours"`
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"` // Topic to publish stored snapshots to
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.base_url", "https://api.the-odds-api.com/v4")
	v.SetDefault("provider.timeout", 10*time.Second)
	v.SetDefault("provider.max_retries", 3)
	v.SetDefault("provider.backoff_base", time.Second)
	v.SetDefault("provider.regions", []string{"us"})
	v.SetDefault("provider.requests_per_second", 0)

	v.SetDefault("polling.leagues", []string{"NFL", "NBA"})
	v.SetDefault("polling.markets", []string{})
	v.SetDefault("polling.interval_seconds", 60)
	v.SetDefault("polling.dedupe_window_minutes", 10)
	v.SetDefault("polling.lookahead_hours", 24)

	v.SetDefault("database.dsn", "postgres://localhost:5432/odds?sslmode=disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 30*time.Minute)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "odds_snapshots")
	v.SetDefault("kafka.write_timeout", 5*time.Second)

	v.SetDefault("server.port", 8082)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix("ODDS_POLLER")
	v.AutomaticEnv()
	// Replace . with _ for environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Legacy variable names, the prefixed form wins
	bindings := map[string][]string{
		"provider.api_key":              {"ODDS_POLLER_PROVIDER_API_KEY", "ODDS_API_KEY"},
		"polling.interval_seconds":      {"ODDS_POLLER_POLLING_INTERVAL_SECONDS", "POLL_INTERVAL_SECONDS"},
		"polling.dedupe_window_minutes": {"ODDS_POLLER_POLLING_DEDUPE_WINDOW_MINUTES", "DEDUPE_INTERVAL_MINUTES"},
		"database.dsn":                  {"ODDS_POLLER_DATABASE_DSN", "DATABASE_URL"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	// Unmarshal to struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate checks value ranges and league/market codes
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.Polling.ParseLeagues(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Polling.ParseMarkets(); err != nil {
		errs = append(errs, err)
	}
	if c.Polling.IntervalSeconds <= 0 {
		errs = append(errs, fmt.Errorf("polling.interval_seconds must be positive, got %d", c.Polling.IntervalSeconds))
	}
	if c.Polling.DedupeWindowMinutes <= 0 {
		errs = append(errs, fmt.Errorf("polling.dedupe_window_minutes must be positive, got %d", c.Polling.DedupeWindowMinutes))
	}
	if c.Polling.LookaheadHours <= 0 {
		errs = append(errs, fmt.Errorf("polling.lookahead_hours must be positive, got %d", c.Polling.LookaheadHours))
	}
	if c.Provider.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("provider.max_retries must not be negative, got %d", c.Provider.MaxRetries))
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		errs = append(errs, errors.New("kafka.brokers and kafka.topic are required when kafka is enabled"))
	}

	return errors.Join(errs...)
}

// ParseLeagues converts the configured league codes
func (c *PollingConfig) ParseLeagues() ([]models.League, error) {
	if len(c.Leagues) == 0 {
		return nil, errors.New("polling.leagues must not be empty")
	}
	leagues := make([]models.League, 0, len(c.Leagues))
	for _, s := range c.Leagues {
		l, err := models.ParseLeague(s)
		if err != nil {
			return nil, err
		}
		leagues = append(leagues, l)
	}
	return leagues, nil
}

// ParseMarkets converts the configured market types; empty means all markets
func (c *PollingConfig) ParseMarkets() ([]models.MarketType, error) {
	markets := make([]models.MarketType, 0, len(c.Markets))
	for _, s := range c.Markets {
		m, err := models.ParseMarketType(s)
		if err != nil {
			return nil, err
		}
		markets = append(markets, m)
	}
	return markets, nil
}

// Interval returns the delay between polling runs
func (c *PollingConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// DedupeWindow returns the forced-write window of the dedup cache
func (c *PollingConfig) DedupeWindow() time.Duration {
	return time.Duration(c.DedupeWindowMinutes) * time.Minute
}

// Lookahead returns how far ahead scheduled games are polled
func (c *PollingConfig) Lookahead() time.Duration {
	return time.Duration(c.LookaheadHours) * time.Hour
}
