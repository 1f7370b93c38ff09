package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Storage. DATABASE_URL is a postgres URL or a sqlite file path.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	RedisURL    string `mapstructure:"REDIS_URL"`

	// Weather
	WeatherProvider         string        `mapstructure:"WEATHER_PROVIDER"` // "openmeteo" or "openweather"
	OpenWeatherAPIKey       string        `mapstructure:"OPENWEATHER_API_KEY"`
	WeatherBaseURL          string        `mapstructure:"WEATHER_BASE_URL"` // empty uses the provider's public API
	WeatherCacheTTL         time.Duration `mapstructure:"WEATHER_CACHE_TTL"`
	WeatherRateLimitPerMin  int           `mapstructure:"WEATHER_RATE_LIMIT_PER_MIN"`
	ExternalAPITimeout      time.Duration `mapstructure:"EXTERNAL_API_TIMEOUT"`
	CircuitBreakerThreshold int           `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`

	// Course and player data
	CourseFile       string `mapstructure:"COURSE_FILE"`
	ProfileDir       string `mapstructure:"PROFILE_DIR"`
	DefaultProfile   string `mapstructure:"DEFAULT_PROFILE"`
	CoefficientsFile string `mapstructure:"COEFFICIENTS_FILE"`

	// Carry fallbacks used when neither the request, the profile nor the
	// saved preferences know a club. Zero disables the fallback.
	DefaultDriverCarry float64 `mapstructure:"DEFAULT_DRIVER_CARRY"`
	DefaultIronCarry   float64 `mapstructure:"DEFAULT_IRON_CARRY"`

	// Background jobs
	EnableBackgroundJobs bool   `mapstructure:"ENABLE_BACKGROUND_JOBS"`
	WeatherWarmSchedule  string `mapstructure:"WEATHER_WARM_SCHEDULE"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("DATABASE_URL", "caddie.db")
	v.SetDefault("REDIS_URL", "") // caching disabled unless configured
	v.SetDefault("WEATHER_PROVIDER", "openmeteo")
	v.SetDefault("OPENWEATHER_API_KEY", "")
	v.SetDefault("WEATHER_BASE_URL", "")
	v.SetDefault("WEATHER_CACHE_TTL", "5m")
	v.SetDefault("WEATHER_RATE_LIMIT_PER_MIN", 60)
	v.SetDefault("EXTERNAL_API_TIMEOUT", "10s")
	v.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5)
	v.SetDefault("COURSE_FILE", "data/course_brookridge.json")
	v.SetDefault("PROFILE_DIR", "data/player_profile")
	v.SetDefault("DEFAULT_PROFILE", "patrick")
	v.SetDefault("COEFFICIENTS_FILE", "")
	v.SetDefault("DEFAULT_DRIVER_CARRY", 0)
	v.SetDefault("DEFAULT_IRON_CARRY", 0)
	v.SetDefault("ENABLE_BACKGROUND_JOBS", false)
	v.SetDefault("WEATHER_WARM_SCHEDULE", "@every 15m")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects combinations the service cannot start with.
func (c *Config) Validate() error {
	switch c.WeatherProvider {
	case "openmeteo":
	case "openweather":
		if c.OpenWeatherAPIKey == "" {
			return fmt.Errorf("OPENWEATHER_API_KEY is required when WEATHER_PROVIDER=openweather")
		}
	default:
		return fmt.Errorf("unknown WEATHER_PROVIDER %q", c.WeatherProvider)
	}
	if c.DefaultDriverCarry < 0 || c.DefaultIronCarry < 0 {
		return fmt.Errorf("default carries must not be negative")
	}
	if c.WeatherRateLimitPerMin <= 0 {
		return fmt.Errorf("WEATHER_RATE_LIMIT_PER_MIN must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
