package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string
	RedisURL            string
	JWTSecret           string
	TokenExpiry         time.Duration
	CacheTTL            time.Duration
	PriceUpdateInterval time.Duration
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	tokenMinutes := viper.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")
	if tokenMinutes <= 0 {
		tokenMinutes = 1440
	}
	cacheTTL := viper.GetInt("CACHE_TTL")
	if cacheTTL <= 0 {
		cacheTTL = 300
	}
	priceInterval := viper.GetInt("PRICE_UPDATE_INTERVAL")
	if priceInterval <= 0 {
		priceInterval = 60
	}

	secret := viper.GetString("SECRET_KEY")
	if secret == "" {
		secret = "wealthwise"
	}

	redisURL := viper.GetString("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         viper.GetString("DATABASE_URL"),
		RedisURL:            redisURL,
		JWTSecret:           secret,
		TokenExpiry:         time.Duration(tokenMinutes) * time.Minute,
		CacheTTL:            time.Duration(cacheTTL) * time.Second,
		PriceUpdateInterval: time.Duration(priceInterval) * time.Second,
	}, nil
}
