package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env         string      `mapstructure:"env"`         // current application environment (local, dev, production etc)
	LogLevel    string      `mapstructure:"log_level"`   // overrides the environment's default log level when set
	HTTP        HTTP        `mapstructure:"http"`        // REST API server section
	DB          DB          `mapstructure:"database"`    // database configuration section
	Telegram    Telegram    `mapstructure:"telegram"`    // optional telegram bot
	Streak      Streak      `mapstructure:"streak"`      // streak sweeper section
	Leaderboard Leaderboard `mapstructure:"leaderboard"` // leaderboard paging
}

// HTTP contains REST server parameters.
type HTTP struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DB contains database-related configuration parameters.
type DB struct {
	Driver          string        `mapstructure:"driver"`            // postgres or sqlite
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	SQLitePath      string        `mapstructure:"sqlite_path"`       // database file used by the sqlite driver
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Telegram contains bot parameters. The bot is disabled when Token is empty.
type Telegram struct {
	Token string `mapstructure:"-"`
	Debug bool   `mapstructure:"debug"`
}

// Streak contains streak sweeper parameters.
type Streak struct {
	SweepSchedule string `mapstructure:"sweep_schedule"` // cron spec evaluated in UTC
}

// Leaderboard contains leaderboard paging limits.
type Leaderboard struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Pick up a local .env file when present.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("log_level", "")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "10s")
	v.SetDefault("http.shutdown_timeout", "15s")
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.sqlite_path", "growth.db")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("telegram.debug", false)
	v.SetDefault("streak.sweep_schedule", "5 0 * * *")
	v.SetDefault("leaderboard.default_limit", 10)
	v.SetDefault("leaderboard.max_limit", 100)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("database.driver", "DATABASE_DRIVER")
	_ = v.BindEnv("http.addr", "HTTP_ADDR")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.Telegram.Token = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case DriverPostgres:
		if c.DB.URL == "" {
			return ErrMissingEnvironmentVariables
		}
	case DriverSQLite:
		if c.DB.SQLitePath == "" {
			return fmt.Errorf("database.sqlite_path is required for the %s driver", DriverSQLite)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.DB.Driver)
	}

	if c.Leaderboard.DefaultLimit <= 0 || c.Leaderboard.MaxLimit < c.Leaderboard.DefaultLimit {
		return fmt.Errorf("invalid leaderboard limits: default %d, max %d",
			c.Leaderboard.DefaultLimit, c.Leaderboard.MaxLimit)
	}

	return nil
}
