package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN         string
	ServerPort    string
	SessionSecret string

	// адрес внешнего API (роли, права, заявки)
	BackendURL     string
	BackendTimeout time.Duration
	// новости живут на отдельном API, по умолчанию тот же хост
	NewsAPIURL string

	LogLevel  string
	LogFormat string

	AdminUsername string
	AdminPassword string
	AdminRoleID   int
}

func Load() *Config {
	_ = godotenv.Load()

	cfg, err := load()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func load() (*Config, error) {
	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		ServerPort:    os.Getenv("SERVER_PORT"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		BackendURL:    os.Getenv("BACKEND_URL"),
		NewsAPIURL:    os.Getenv("NEWS_API_URL"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogFormat:     os.Getenv("LOG_FORMAT"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.DBDSN == "" {
		return nil, errors.New("DB_DSN is not set")
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET is not set")
	}
	if cfg.BackendURL == "" {
		return nil, errors.New("BACKEND_URL is not set")
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.NewsAPIURL == "" {
		cfg.NewsAPIURL = cfg.BackendURL
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}

	cfg.BackendTimeout = 15 * time.Second
	if v := os.Getenv("BACKEND_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, errors.New("BACKEND_TIMEOUT must be a positive duration, e.g. 15s")
		}
		cfg.BackendTimeout = d
	}

	// сидируемый админ получает первую системную роль
	cfg.AdminRoleID = 1
	if v := os.Getenv("ADMIN_ROLE_ID"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id < 1 {
			return nil, errors.New("ADMIN_ROLE_ID must be a positive integer")
		}
		cfg.AdminRoleID = id
	}

	return cfg, nil
}
