package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Env string

const (
	EnvDevelopment Env = "development"
	EnvProduction  Env = "production"
)

type ServiceType string

const (
	ServiceServer ServiceType = "server"
	ServiceWorker ServiceType = "worker"
)

type DBConfig struct {
	URL string
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
	Environment    Env
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

type AuthConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
}

type MailQueueConfig struct {
	RedisURL    string
	Stream      string
	Group       string
	Consumer    string
	DLQStream   string
	MaxAttempts int
}

type ResendConfig struct {
	APIKey string
	From   string
}

type S3Config struct {
	Bucket     string
	Region     string
	PresignTTL time.Duration
}

type Config struct {
	Env          Env
	Port         string
	DashboardURL string
	DB           DBConfig
	OTel         OTelConfig
	Auth         AuthConfig
	MailQueue    MailQueueConfig
	Resend       ResendConfig
	S3           S3Config
}

func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c Config) IsDevelopment() bool {
	return !c.IsProduction()
}

// Load reads configuration from the environment, sourcing a local env
// file first when one exists. The server and the worker carry separate
// env files so they can run side by side in development.
func Load(service ServiceType) (Config, error) {
	envFile := fmt.Sprintf(".env.%s", service)
	if err := godotenv.Load(envFile); err != nil {
		if err := godotenv.Load(); err != nil {
			slog.Debug("no env file found, relying on process environment")
		}
	}

	env := Env(getEnv("TASKLANE_ENV", string(EnvDevelopment)))

	cfg := Config{
		Env:          env,
		Port:         getEnv("PORT", "8080"),
		DashboardURL: getEnv("DASHBOARD_URL", "http://localhost:5173"),
		DB: DBConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "tasklane-"+string(service)),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
			Environment:    env,
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", ""),
			SessionTTL: time.Duration(getEnvInt("SESSION_TTL_HOURS", 24*7)) * time.Hour,
		},
		MailQueue: MailQueueConfig{
			RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
			Stream:      getEnv("MAIL_STREAM", "tasklane:mail"),
			Group:       getEnv("MAIL_GROUP", "mailers"),
			Consumer:    getEnv("MAIL_CONSUMER", "mailer-1"),
			DLQStream:   getEnv("MAIL_DLQ_STREAM", "tasklane:mail:dlq"),
			MaxAttempts: getEnvInt("MAIL_MAX_ATTEMPTS", 3),
		},
		Resend: ResendConfig{
			APIKey: getEnv("RESEND_API_KEY", ""),
			From:   getEnv("MAIL_FROM", "Tasklane <noreply@tasklane.app>"),
		},
		S3: S3Config{
			Bucket:     getEnv("S3_BUCKET", ""),
			Region:     getEnv("AWS_REGION", "us-east-1"),
			PresignTTL: time.Duration(getEnvInt("S3_PRESIGN_TTL_MINUTES", 60)) * time.Minute,
		},
	}

	if cfg.DB.URL == "" && service == ServiceServer {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Auth.JWTSecret == "" && service == ServiceServer {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer env var, using fallback", "key", key, "value", v)
		return fallback
	}
	return n
}
