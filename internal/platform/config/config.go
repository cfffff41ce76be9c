package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// RabbitMQ notification publishing. Empty URL disables publishing.
	RabbitMQURL        string
	NotificationsQueue string

	// Rate limiting for the public auth endpoints, e.g. "10-M" for 10 per minute.
	AuthRateLimit string

	// Default admin account ensured at startup. Empty password skips the bootstrap.
	AdminEmail    string
	AdminPassword string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "car-rental-backend")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("NOTIFICATIONS_QUEUE", "booking_notifications")
	viper.SetDefault("AUTH_RATE_LIMIT", "10-M")
	viper.SetDefault("ADMIN_EMAIL", "admin@driveluxe.local")
	viper.SetDefault("ADMIN_PASSWORD", "")

	// Environment variables override defaults and any values loaded from .env.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	// Load JWT Expiry Duration (e.g., "60m", "24h")
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 24
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.RabbitMQURL = viper.GetString("RABBITMQ_URL")
	cfg.NotificationsQueue = viper.GetString("NOTIFICATIONS_QUEUE")
	cfg.AuthRateLimit = viper.GetString("AUTH_RATE_LIMIT")
	cfg.AdminEmail = viper.GetString("ADMIN_EMAIL")
	cfg.AdminPassword = viper.GetString("ADMIN_PASSWORD")

	if cfg.RabbitMQURL == "" {
		log.Println("Warning: RABBITMQ_URL not set. Booking notifications will be logged only.")
	}
	if cfg.AdminPassword == "" {
		log.Println("Warning: ADMIN_PASSWORD not set. Default admin account will not be created.")
	}

	return cfg, nil
}
