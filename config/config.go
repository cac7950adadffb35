package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Stripe checkout.
	StripeSecretKey       string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret   string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	CheckoutSuccessURL    string `mapstructure:"CHECKOUT_SUCCESS_URL"`
	CheckoutCancelURL     string `mapstructure:"CHECKOUT_CANCEL_URL"`
	CheckoutExpiryMinutes int    `mapstructure:"CHECKOUT_EXPIRY_MINUTES"`
	Currency              string `mapstructure:"CURRENCY"`

	// Booking policy.
	BusinessTimezone        string `mapstructure:"BUSINESS_TIMEZONE"`
	CancellationNoticeHours int    `mapstructure:"CANCELLATION_NOTICE_HOURS"`
	ReminderLeadHours       int    `mapstructure:"REMINDER_LEAD_HOURS"`
	BookingLockTTLSeconds   int    `mapstructure:"BOOKING_LOCK_TTL_SECONDS"`
	BookingLockWaitMS       int    `mapstructure:"BOOKING_LOCK_WAIT_MS"`

	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()
	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// SetDefaults registers every default value with viper.
func SetDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "coachhub")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("STRIPE_SECRET_KEY", "")
	viper.SetDefault("STRIPE_WEBHOOK_SECRET", "")
	viper.SetDefault("CHECKOUT_SUCCESS_URL", "http://localhost:3000/booking/success")
	viper.SetDefault("CHECKOUT_CANCEL_URL", "http://localhost:3000/booking/cancelled")
	viper.SetDefault("CHECKOUT_EXPIRY_MINUTES", 60)
	viper.SetDefault("CURRENCY", "usd")
	viper.SetDefault("BUSINESS_TIMEZONE", "UTC")
	viper.SetDefault("CANCELLATION_NOTICE_HOURS", 24)
	viper.SetDefault("REMINDER_LEAD_HOURS", 24)
	viper.SetDefault("BOOKING_LOCK_TTL_SECONDS", 10)
	viper.SetDefault("BOOKING_LOCK_WAIT_MS", 2000)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location returns the business timezone, falling back to UTC when it cannot be loaded.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.BusinessTimezone)
	if err != nil || c.BusinessTimezone == "" {
		return time.UTC
	}
	return loc
}

func (c Config) CancellationNotice() time.Duration {
	return time.Duration(c.CancellationNoticeHours) * time.Hour
}

func (c Config) ReminderLead() time.Duration {
	return time.Duration(c.ReminderLeadHours) * time.Hour
}

func (c Config) CheckoutExpiry() time.Duration {
	return time.Duration(c.CheckoutExpiryMinutes) * time.Minute
}

func (c Config) BookingLockTTL() time.Duration {
	return time.Duration(c.BookingLockTTLSeconds) * time.Second
}

func (c Config) BookingLockWait() time.Duration {
	return time.Duration(c.BookingLockWaitMS) * time.Millisecond
}
