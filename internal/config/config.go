package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port            string
	CORSOrigins     string
	RunnerURL       string
	RunnerTimeoutMS int
	LogDev          bool
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		CORSOrigins:     getEnv("CORS_ALLOWED_ORIGINS", "*"),
		RunnerURL:       getEnv("RUNNER_URL", ""),
		RunnerTimeoutMS: getEnvInt("RUNNER_TIMEOUT_MS", 5000),
		LogDev:          getEnv("LOG_DEV", "") == "true",
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
