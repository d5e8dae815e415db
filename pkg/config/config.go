package config

import (
	"log"
	"os"

	"guardian/pkg/logger"
	stores "guardian/pkg/storage"
	"guardian/pkg/util"
)

type Config struct {
	Addr          string `env:"ADDR"`
	Mode          string `env:"MODE"`
	DBDriver      string `env:"DB_DRIVER"`
	DSN           string `env:"DSN"`
	APIPrefix     string `env:"API_PREFIX"`
	AuthPrefix    string `env:"AUTH_PREFIX"`
	SessionSecret string `env:"SESSION_SECRET"`
	Log           logger.LogConfig
	Storage       stores.Config

	RateLimit     string `env:"RATE_LIMIT"` // e.g. "100-M", empty disables
	RedisAddr     string `env:"REDIS_ADDR"` // backs the rate limiter when set
	MetricsPrefix string `env:"METRICS_PREFIX"`

	SearchEnabled bool   `env:"SEARCH_ENABLED"`
	SearchPath    string `env:"SEARCH_PATH"`

	LLMApiKey  string `env:"LLM_API_KEY"`
	LLMBaseURL string `env:"LLM_BASE_URL"`
	LLMModel   string `env:"LLM_MODEL"`

	SweepEnabled  bool   `env:"SWEEP_ENABLED"`
	SweepSchedule string `env:"SWEEP_SCHEDULE"` // cron expression
	SweepGraceMin int64  `env:"SWEEP_GRACE_MINUTES"`

	PoliceNumber string `env:"POLICE_NUMBER"`
}

// Load reads the environment (optionally seeded from a .env file) into a
// Config. The result is constructed once in main and passed down; nothing
// reads the environment after startup.
func Load() (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	if err := util.LoadEnv(env); err != nil {
		log.Printf("Failed to load .env file: %v", err)
	}

	cfg := &Config{
		Addr:          util.GetEnvDefault("ADDR", ":8080"),
		Mode:          util.GetEnv("MODE"),
		DBDriver:      util.GetEnv("DB_DRIVER"),
		DSN:           util.GetEnv("DSN"),
		APIPrefix:     util.GetEnvDefault("API_PREFIX", "/api"),
		AuthPrefix:    util.GetEnvDefault("AUTH_PREFIX", "/auth"),
		SessionSecret: util.GetEnv("SESSION_SECRET"),
		Log: logger.LogConfig{
			Level:      util.GetEnv("LOG_LEVEL"),
			Filename:   util.GetEnv("LOG_FILENAME"),
			MaxSize:    int(util.GetIntEnv("LOG_MAX_SIZE")),
			MaxAge:     int(util.GetIntEnv("LOG_MAX_AGE")),
			MaxBackups: int(util.GetIntEnv("LOG_MAX_BACKUPS")),
		},
		Storage: stores.Config{
			Driver:    util.GetEnv("STORAGE_DRIVER"),
			Endpoint:  util.GetEnv("STORAGE_ENDPOINT"),
			AccessKey: util.GetEnv("STORAGE_ACCESS_KEY"),
			SecretKey: util.GetEnv("STORAGE_SECRET_KEY"),
			Bucket:    util.GetEnv("STORAGE_BUCKET"),
			UseSSL:    util.GetBoolEnv("STORAGE_USE_SSL"),
			BaseURL:   util.GetEnv("STORAGE_PUBLIC_BASE"),
		},
		RateLimit:     util.GetEnv("RATE_LIMIT"),
		RedisAddr:     util.GetEnv("REDIS_ADDR"),
		MetricsPrefix: util.GetEnvDefault("METRICS_PREFIX", "/metrics"),
		SearchEnabled: util.GetBoolEnv("SEARCH_ENABLED"),
		SearchPath:    util.GetEnv("SEARCH_PATH"),
		LLMApiKey:     util.GetEnv("LLM_API_KEY"),
		LLMBaseURL:    util.GetEnv("LLM_BASE_URL"),
		LLMModel:      util.GetEnv("LLM_MODEL"),
		SweepEnabled:  util.GetBoolEnv("SWEEP_ENABLED"),
		SweepSchedule: util.GetEnvDefault("SWEEP_SCHEDULE", "@every 1h"),
		SweepGraceMin: util.GetIntEnv("SWEEP_GRACE_MINUTES"),
		PoliceNumber:  util.GetEnvDefault("POLICE_NUMBER", "100"),
	}
	return cfg, nil
}
