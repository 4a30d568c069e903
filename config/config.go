package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DBPath      string
	CORSOrigins string
}

var AppConfig *Config

func Load() {
	_ = godotenv.Load()

	AppConfig = &Config{
		Port:        GetEnv("PORT", "8080"),
		Env:         GetEnv("ENV", "development"),
		DBPath:      GetEnv("DB_PATH", "./data/notes-sync.db"),
		CORSOrigins: GetEnv("CORS_ORIGINS", "*"),
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
