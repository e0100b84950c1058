package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything main needs to start the service. Values come from the
// environment, optionally seeded from a .env file.
type Config struct {
	HTTPPort string `mapstructure:"http_port"`

	DBHost        string `mapstructure:"db_host"`
	DBPort        string `mapstructure:"db_port"`
	DBUser        string `mapstructure:"db_user"`
	DBPassword    string `mapstructure:"db_password"`
	DBName        string `mapstructure:"db_name"`
	DBSslMode     string `mapstructure:"db_sslmode"`
	DBAutoMigrate bool   `mapstructure:"db_auto_migrate"`

	// RedisAddr empty means notifications are only logged.
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	NotifyChannel     string        `mapstructure:"notify_channel"`
	NotifyMaxInFlight int64         `mapstructure:"notify_max_in_flight"`
	NotifyTimeout     time.Duration `mapstructure:"notify_timeout"`

	LogLevel string `mapstructure:"log_level"`
}

var configDefaults = map[string]any{
	"http_port":            "8080",
	"db_host":              "localhost",
	"db_port":              "5432",
	"db_user":              "postgres",
	"db_password":          "",
	"db_name":              "waterdelivery",
	"db_sslmode":           "disable",
	"db_auto_migrate":      false,
	"redis_addr":           "",
	"redis_password":       "",
	"redis_db":             0,
	"notify_channel":       "order-events",
	"notify_max_in_flight": 64,
	"notify_timeout":       "5s",
	"log_level":            "info",
}

// LoadConfig reads envFile when it exists and then the process environment, which wins.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN builds the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// SlogLevel parses LogLevel, falling back to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c Config) validate() error {
	var errs []error
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("HTTP_PORT is empty"))
	}
	if c.DBHost == "" || c.DBName == "" {
		errs = append(errs, errors.New("DB_HOST and DB_NAME are required"))
	}
	if c.NotifyMaxInFlight <= 0 {
		errs = append(errs, fmt.Errorf("NOTIFY_MAX_IN_FLIGHT must be positive, got %d", c.NotifyMaxInFlight))
	}
	if c.NotifyTimeout <= 0 {
		errs = append(errs, fmt.Errorf("NOTIFY_TIMEOUT must be positive, got %s", c.NotifyTimeout))
	}
	return errors.Join(errs...)
}
