package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Cloudinary CloudinaryConfig
	Display    DisplayConfig
	Logging    LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port        int
	CORSOrigins []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// AuthConfig holds token and registration policy configuration
type AuthConfig struct {
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	AdminInviteCode string
}

// CloudinaryConfig holds the image hosting credentials; the uploader is
// optional and reports ServiceUnavailable when these are missing.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// DisplayConfig holds the fixed display timezone for API responses
type DisplayConfig struct {
	Timezone string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load reads configuration from the environment, with .env preloaded
// when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	setDefaults()
	viper.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:        viper.GetInt("port"),
			CORSOrigins: viper.GetStringSlice("cors_origins"),
		},
		Database: DatabaseConfig{
			URL: viper.GetString("database_url"),
		},
		Auth: AuthConfig{
			JWTSecret:       viper.GetString("secret_key"),
			AccessTokenTTL:  time.Duration(viper.GetInt("access_token_expires_minutes")) * time.Minute,
			RefreshTokenTTL: time.Duration(viper.GetInt("refresh_token_expires_days")) * 24 * time.Hour,
			AdminInviteCode: viper.GetString("admin_invite_code"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: viper.GetString("cloudinary_cloud_name"),
			APIKey:    viper.GetString("cloudinary_api_key"),
			APISecret: viper.GetString("cloudinary_api_secret"),
		},
		Display: DisplayConfig{
			Timezone: viper.GetString("display_timezone"),
		},
		Logging: LoggingConfig{
			Level:  viper.GetString("log_level"),
			Format: viper.GetString("log_format"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("port", 8080)
	viper.SetDefault("cors_origins", []string{"http://localhost:5173"})
	viper.SetDefault("secret_key", "dev-secret-change")
	viper.SetDefault("access_token_expires_minutes", 30)
	viper.SetDefault("refresh_token_expires_days", 7)
	viper.SetDefault("admin_invite_code", "admin")
	viper.SetDefault("display_timezone", "Asia/Kolkata")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "json")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be a valid TCP port, got %d", c.Server.Port)
	}
	return nil
}
