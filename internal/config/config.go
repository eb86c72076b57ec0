package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type EnvConfig struct {
	ServerAddr              string
	LogLevel                string
	AccessTokenSecret       string
	AccessTokenExpiryInSecs int64
}

// Env holds the process configuration, resolved once at startup from the
// environment with an optional .env file for local development.
var Env = load()

func load() EnvConfig {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Println("no .env file loaded:", err)
	}

	return EnvConfig{
		ServerAddr:              getEnv("SERVER_ADDR", "8080"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		AccessTokenSecret:       getEnv("ACCESS_TOKEN_SECRET", "dev-only-access-token-secret"),
		AccessTokenExpiryInSecs: getEnvInt64("ACCESS_TOKEN_EXPIRY_IN_SECS", 3600),
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultValue
	}

	return n
}
