package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	MongoDB     MongoDBConfig
	JWT         JWTConfig
	Leaderboard LeaderboardConfig
	RateLimit   RateLimitConfig
	Log         LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// LeaderboardConfig holds leaderboard-specific configuration
type LeaderboardConfig struct {
	// WeekStart is the weekday the weekly window begins on: "sunday" or
	// "monday".
	WeekStart string
}

// RateLimitConfig holds rate-limiter configuration
type RateLimitConfig struct {
	PerMinute int
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level      string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// WeekStartDay maps the configured week-start name to a weekday. Sunday is the
// default, matching the mobile client's calendar convention.
func (c *Config) WeekStartDay() time.Weekday {
	if strings.EqualFold(c.Leaderboard.WeekStart, "monday") {
		return time.Monday
	}
	return time.Sunday
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "5000")
	viper.SetDefault("Server.AllowedOrigins", []string{"http://localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "wastewise")
	viper.SetDefault("JWT.ExpiresIn", 3*24*60*60) // 3 days
	viper.SetDefault("Leaderboard.WeekStart", "sunday")
	viper.SetDefault("RateLimit.PerMinute", 120)
	viper.SetDefault("Log.Level", "info")
	viper.SetDefault("Log.Path", "")
	viper.SetDefault("Log.MaxSizeMB", 100)
	viper.SetDefault("Log.MaxBackups", 3)
	viper.SetDefault("Log.MaxAgeDays", 7)
}
