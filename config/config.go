package config

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"log"
	"strings"
	"time"
)

const (
	ProfileDev  = "dev"
	ProfileProd = "prod"
)

type HTTPConfig struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectAttempts uint
	AutoMigrate     bool
}

type Config struct {
	Profile       string
	Version       string
	LogsDirectory string
	LogLevel      string
	StatsSchedule string
	HTTP          *HTTPConfig
	Database      *DatabaseConfig
}

// IsDev reports whether the development profile is active.
func (c *Config) IsDev() bool {
	return c.Profile == ProfileDev
}

func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("DATABASE_DSN is required")
	}
	if c.Profile != ProfileDev && c.Profile != ProfileProd {
		return fmt.Errorf("unknown profile %q", c.Profile)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_profile", ProfileProd)
	v.SetDefault("app_version", "dev")
	v.SetDefault("log_level", "")
	v.SetDefault("logs_directory", "")
	v.SetDefault("stats_schedule", "*/5 * * * *")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("http_request_timeout", 10*time.Second)
	v.SetDefault("http_shutdown_timeout", 15*time.Second)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_max_open_conns", 20)
	v.SetDefault("database_max_idle_conns", 10)
	v.SetDefault("database_conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database_connect_attempts", 5)
	v.SetDefault("database_auto_migrate", false)
}

// LoadConfig reads .env (when present), application.yaml (when present) and the
// environment, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("application")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Profile:       strings.ToLower(v.GetString("app_profile")),
		Version:       v.GetString("app_version"),
		LogsDirectory: v.GetString("logs_directory"),
		LogLevel:      v.GetString("log_level"),
		StatsSchedule: v.GetString("stats_schedule"),
		HTTP: &HTTPConfig{
			Addr:            v.GetString("http_addr"),
			RequestTimeout:  v.GetDuration("http_request_timeout"),
			ShutdownTimeout: v.GetDuration("http_shutdown_timeout"),
		},
		Database: &DatabaseConfig{
			DSN:             v.GetString("database_dsn"),
			MaxOpenConns:    v.GetInt("database_max_open_conns"),
			MaxIdleConns:    v.GetInt("database_max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database_conn_max_lifetime"),
			ConnectAttempts: v.GetUint("database_connect_attempts"),
			AutoMigrate:     v.GetBool("database_auto_migrate"),
		},
	}

	return cfg, nil
}
