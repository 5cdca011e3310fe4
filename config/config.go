package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Voice cache tuning.
	CacheTTLSeconds    int  `mapstructure:"CACHE_TTL_SECONDS"`
	CacheSweepSeconds  int  `mapstructure:"CACHE_SWEEP_SECONDS"`
	CacheWarmupEnabled bool `mapstructure:"CACHE_WARMUP_ENABLED"`

	// Session store horizons.
	SearchContextTTLMinutes    int `mapstructure:"SEARCH_CONTEXT_TTL_MINUTES"`
	ValidatedBookingTTLMinutes int `mapstructure:"VALIDATED_BOOKING_TTL_MINUTES"`

	// Synthesizer selection and calendar window.
	DefaultPlatform    string `mapstructure:"DEFAULT_PLATFORM"`
	BusinessHoursStart int    `mapstructure:"BUSINESS_HOURS_START"`
	BusinessHoursEnd   int    `mapstructure:"BUSINESS_HOURS_END"`

	// Google Calendar collaborator credentials.
	GoogleCalendarID          string `mapstructure:"GOOGLE_CALENDAR_ID"`
	GoogleServiceAccountEmail string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_EMAIL"`
	GooglePrivateKey          string `mapstructure:"GOOGLE_PRIVATE_KEY"`

	// Payment handoff collaborator.
	HandoffURL       string `mapstructure:"HANDOFF_URL"`
	HandoffEndpoint  string `mapstructure:"HANDOFF_ENDPOINT"`
	HandoffTimeoutMs int    `mapstructure:"HANDOFF_TIMEOUT_MS"`

	// Observability.
	SlowOpThresholdMs int `mapstructure:"SLOW_OP_THRESHOLD_MS"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`
}

var AppConfig Config

// LoadConfig initializes Viper to load config values from env, file, or defaults.
func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CACHE_TTL_SECONDS", 600)
	viper.SetDefault("CACHE_SWEEP_SECONDS", 60)
	viper.SetDefault("CACHE_WARMUP_ENABLED", false)
	viper.SetDefault("SEARCH_CONTEXT_TTL_MINUTES", 30)
	viper.SetDefault("VALIDATED_BOOKING_TTL_MINUTES", 60)
	viper.SetDefault("DEFAULT_PLATFORM", "gcalendar")
	viper.SetDefault("BUSINESS_HOURS_START", 9)
	viper.SetDefault("BUSINESS_HOURS_END", 17)
	viper.SetDefault("GOOGLE_CALENDAR_ID", "primary")
	viper.SetDefault("GOOGLE_SERVICE_ACCOUNT_EMAIL", "")
	viper.SetDefault("GOOGLE_PRIVATE_KEY", "")
	viper.SetDefault("HANDOFF_URL", "http://localhost:3000")
	viper.SetDefault("HANDOFF_ENDPOINT", "/api/v1/elevenlabs/webhook/trigger-booking")
	viper.SetDefault("HANDOFF_TIMEOUT_MS", 30000)
	viper.SetDefault("SLOW_OP_THRESHOLD_MS", 100)
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
