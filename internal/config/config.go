package config

import (
	"log"
	"strings"

	"product-management/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Rules     RulesConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Driver   string // "postgres" or "memory"
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host          string
	Port          string
	Password      string
	DB            int
	ListingTTLSec int
}

// RulesConfig carries the business-rule thresholds and keyword lists so they
// can be tuned per deployment without a rebuild.
type RulesConfig struct {
	DailyCreationCap    int
	ElectronicsMinPrice float64
	HomeMaxPrice        float64
	HighValuePrice      float64
	HighValueMaxStock   int

	InappropriateWords     string // comma-separated
	TechnologyKeywords     string
	HomeInappropriateWords string
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

// Keywords builds the validation keyword lists from configuration, falling
// back to the defaults for any list left empty.
func (r RulesConfig) Keywords() validation.Keywords {
	kw := validation.DefaultKeywords()
	if words := splitWords(r.InappropriateWords); len(words) > 0 {
		kw.Inappropriate = words
	}
	if words := splitWords(r.TechnologyKeywords); len(words) > 0 {
		kw.Technology = words
	}
	if words := splitWords(r.HomeInappropriateWords); len(words) > 0 {
		kw.HomeInappropriate = words
	}
	return kw
}

// Limits builds the business-rule thresholds from configuration.
func (r RulesConfig) Limits() validation.Limits {
	return validation.Limits{
		DailyCreationCap:    r.DailyCreationCap,
		ElectronicsMinPrice: decimal.NewFromFloat(r.ElectronicsMinPrice),
		HomeMaxPrice:        decimal.NewFromFloat(r.HomeMaxPrice),
		HighValuePrice:      decimal.NewFromFloat(r.HighValuePrice),
		HighValueMaxStock:   r.HighValueMaxStock,
	}
}

func splitWords(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if w := strings.TrimSpace(p); w != "" {
			words = append(words, w)
		}
	}
	return words
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_LISTING_TTL_SECONDS", 60)
	viper.SetDefault("RULES_DAILY_CREATION_CAP", 500)
	viper.SetDefault("RULES_ELECTRONICS_MIN_PRICE", 50.0)
	viper.SetDefault("RULES_HOME_MAX_PRICE", 200.0)
	viper.SetDefault("RULES_HIGH_VALUE_PRICE", 500.0)
	viper.SetDefault("RULES_HIGH_VALUE_MAX_STOCK", 10)
	viper.SetDefault("RATE_LIMIT_REQUESTS_PER_MINUTE", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:          viper.GetString("REDIS_HOST"),
			Port:          viper.GetString("REDIS_PORT"),
			Password:      viper.GetString("REDIS_PASSWORD"),
			DB:            viper.GetInt("REDIS_DB"),
			ListingTTLSec: viper.GetInt("REDIS_LISTING_TTL_SECONDS"),
		},
		Rules: RulesConfig{
			DailyCreationCap:       viper.GetInt("RULES_DAILY_CREATION_CAP"),
			ElectronicsMinPrice:    viper.GetFloat64("RULES_ELECTRONICS_MIN_PRICE"),
			HomeMaxPrice:           viper.GetFloat64("RULES_HOME_MAX_PRICE"),
			HighValuePrice:         viper.GetFloat64("RULES_HIGH_VALUE_PRICE"),
			HighValueMaxStock:      viper.GetInt("RULES_HIGH_VALUE_MAX_STOCK"),
			InappropriateWords:     viper.GetString("RULES_INAPPROPRIATE_WORDS"),
			TechnologyKeywords:     viper.GetString("RULES_TECHNOLOGY_KEYWORDS"),
			HomeInappropriateWords: viper.GetString("RULES_HOME_INAPPROPRIATE_WORDS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: viper.GetInt("RATE_LIMIT_REQUESTS_PER_MINUTE"),
		},
	}
}
