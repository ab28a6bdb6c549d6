package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	StoreRedis     = "redis"
	StorePostgres  = "postgres"
	StoreFirestore = "firestore"
	StoreMemory    = "memory"

	AuthModeJWT     = "jwt"
	AuthModeSession = "session"
)

type Config struct {
	Environment string `toml:"-"`

	Host string `toml:"host"`
	Port int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// redis: sessions, rate limiting, and the redis streak store
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// postgres: activity log, and the postgres streak store
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// streaks
	StreakStore           string `toml:"streak_store"`
	StreakCacheTTLSeconds int    `toml:"streak_cache_ttl_seconds"`
	StreakCacheSizeMB     int    `toml:"streak_cache_size_mb"`
	RequestsAllowedPerMin int    `toml:"requests_allowed_per_min"`
	ActivityLogEnabled    bool   `toml:"activity_log_enabled"`

	// auth
	AuthMode        string `toml:"auth_mode"`
	JWTIssuer       string `toml:"jwt_issuer"`
	SessionTTLHours int    `toml:"session_ttl_hours"`

	// firebase: firestore streak store, and FCM milestone notifications
	FirebaseCredentialsFile string `toml:"firebase_credentials_file"`
	NotificationsEnabled    bool   `toml:"notifications_enabled"`
}

type Toml struct {
	Development *Config `toml:"development"`
	Production  *Config `toml:"production"`
	DockerDev   *Config `toml:"dockerdev"`
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	case "ddev", "dockerdev":
		cfg = t.DockerDev
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path and returns the section for env, with defaults applied.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.Environment = strings.ToLower(env)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config for env [%s]: %w", env, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.StreakStore == "" {
		c.StreakStore = StoreRedis
	}
	if c.StreakCacheTTLSeconds == 0 {
		c.StreakCacheTTLSeconds = 30
	}
	if c.StreakCacheSizeMB == 0 {
		c.StreakCacheSizeMB = 16
	}
	if c.RequestsAllowedPerMin == 0 {
		c.RequestsAllowedPerMin = 60
	}
	if c.AuthMode == "" {
		c.AuthMode = AuthModeJWT
	}
	if c.SessionTTLHours == 0 {
		c.SessionTTLHours = 24 * 7
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
}

func (c *Config) Validate() error {
	switch c.StreakStore {
	case StoreRedis, StorePostgres, StoreFirestore, StoreMemory:
	default:
		return fmt.Errorf("unknown streak store: %s", c.StreakStore)
	}

	switch c.AuthMode {
	case AuthModeJWT, AuthModeSession:
	default:
		return fmt.Errorf("unknown auth mode: %s", c.AuthMode)
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.StreakCacheTTLSeconds < 0 {
		return errors.New("streak cache ttl cannot be negative")
	}
	if c.NeedsPostgres() && (c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDBName == "") {
		return errors.New("postgres host, port and db name are required")
	}
	if c.RedisHost == "" || c.RedisPort == "" {
		return errors.New("redis host and port are required")
	}
	return nil
}

func (c *Config) NeedsPostgres() bool {
	return c.StreakStore == StorePostgres || c.ActivityLogEnabled
}

func (c *Config) NeedsFirebase() bool {
	return c.StreakStore == StoreFirestore || c.NotificationsEnabled
}
