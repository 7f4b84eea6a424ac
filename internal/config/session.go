package config

import (
	"os"
	"strconv"
	"time"
)

// SessionConfig holds the tunables of an interactive ATM session.
type SessionConfig struct {
	LoginMaxAttempts   int
	LoginLockoutWindow time.Duration
	LoginKeyPrefix     string
	Color              bool
}

func LoadSessionConfig() *SessionConfig {
	return &SessionConfig{
		LoginMaxAttempts:   getEnvAsInt("ATM_LOGIN_MAX_ATTEMPTS", 5),
		LoginLockoutWindow: getEnvAsDuration("ATM_LOGIN_LOCKOUT_WINDOW", 15*time.Minute),
		LoginKeyPrefix:     getEnv("ATM_LOGIN_KEY_PREFIX", "atm:login_failures"),
		Color:              os.Getenv("NO_COLOR") == "" && getEnvAsBool("ATM_COLOR", true),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}
