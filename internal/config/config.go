package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/spf13/viper"
)

// envBindings maps viper keys to the environment variables that override them.
var envBindings = map[string]string{
	"db.driver":            "DATABASE_DRIVER",
	"db.url":               "DATABASE_URL",
	"db.host":              "DATABASE_HOST",
	"db.port":              "DATABASE_PORT",
	"db.user":              "DATABASE_USER",
	"db.password":          "DATABASE_PASSWORD",
	"db.name":              "DATABASE_NAME",
	"db.ssl_mode":          "DATABASE_SSL_MODE",
	"db.path":              "DATABASE_PATH",
	"redis.host":           "REDIS_HOST",
	"redis.port":           "REDIS_PORT",
	"redis.password":       "REDIS_PASSWORD",
	"redis.db":             "REDIS_DB",
	"password.algorithm":   "PASSWORD_ALGORITHM",
	"password.bcrypt_cost": "PASSWORD_BCRYPT_COST",
	"argon2.time":          "ARGON2_TIME",
	"argon2.memory":        "ARGON2_MEMORY",
	"argon2.threads":       "ARGON2_THREADS",
	"argon2.key_length":    "ARGON2_KEY_LENGTH",
	"argon2.salt_length":   "ARGON2_SALT_LENGTH",
	"log.file":             "ATM_LOG_FILE",
}

// Load binds environment variables, registers defaults and reads the config
// file at path. A missing file is not an error; the ATM falls back to
// environment and defaults.
func Load(path string) error {
	viper.AutomaticEnv()
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s: %w", env, err)
		}
	}
	setDefaults()

	if path == "" {
		return nil
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			log.Printf("Config file not found, using defaults: %v", err)
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("password.algorithm", "bcrypt")
	viper.SetDefault("password.bcrypt_cost", 10)
	viper.SetDefault("argon2.time", 1)
	viper.SetDefault("argon2.memory", 64*1024)
	viper.SetDefault("argon2.threads", 4)
	viper.SetDefault("argon2.key_length", 32)
	viper.SetDefault("argon2.salt_length", 16)
	viper.SetDefault("log.file", "atm.log")
}
