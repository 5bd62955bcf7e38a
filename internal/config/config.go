package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	// Low-stock alert job
	AlertSchedule string // cron spec, robfig/cron syntax
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	MailSender    string
}

func Load() *Config {
	// A missing .env is fine, configuration can come from the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=stocktrack port=5432 sslmode=disable"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		CORSOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		AlertSchedule: getEnv("ALERT_SCHEDULE", "@hourly"),
		SMTPHost:      getEnv("MAIL_SERVER", "smtp.gmail.com"),
		SMTPPort:      getEnvInt("MAIL_PORT", 587),
		SMTPUsername:  getEnv("MAIL_USERNAME", ""),
		SMTPPassword:  getEnv("MAIL_PASSWORD", ""),
		MailSender:    getEnv("MAIL_SENDER", "stocktrack <noreply@localhost>"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set, refusing to start")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if cfg.SMTPUsername == "" {
		log.Println("[WARN] MAIL_USERNAME is not set, low-stock alert mails cannot be sent")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
