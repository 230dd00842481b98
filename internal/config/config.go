package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the settings as a GORM/pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Config holds all configuration for the campsite service.
type Config struct {
	HTTPAddr           string
	AppEnv             string
	Database           DatabaseConfig
	KafkaBrokers       []string
	BookingSuffixBound int
	ShutdownTimeout    time.Duration
}

// Load reads configuration from CAMPSITE_-prefixed environment variables
// with local-development defaults.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CAMPSITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "campsite")
	v.SetDefault("database.password", "campsite")
	v.SetDefault("database.name", "campsite")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("kafka.brokers", "")
	v.SetDefault("booking.suffix_bound", 10_000_000)
	v.SetDefault("shutdown.timeout", "10s")

	timeout, err := time.ParseDuration(v.GetString("shutdown.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	var brokers []string
	for _, b := range strings.Split(v.GetString("kafka.brokers"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	return Config{
		HTTPAddr: v.GetString("http.addr"),
		AppEnv:   v.GetString("app.env"),
		Database: DatabaseConfig{
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			DBName:   v.GetString("database.name"),
			SSLMode:  v.GetString("database.sslmode"),
		},
		KafkaBrokers:       brokers,
		BookingSuffixBound: v.GetInt("booking.suffix_bound"),
		ShutdownTimeout:    timeout,
	}, nil
}
