package database

import (
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/viper"
)

// Driver names the ledger backend.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
	DriverMemory   Driver = "memory"
)

// DBConfig holds database configuration
type DBConfig struct {
	Driver          Driver
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// GetConfig returns database configuration with defaults
func GetConfig() *DBConfig {
	viper.SetDefault("db.driver", string(DriverPostgres))
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.user", "postgres")
	viper.SetDefault("db.password", "password")
	viper.SetDefault("db.name", "bank_of_ray")
	viper.SetDefault("db.ssl_mode", "disable")
	viper.SetDefault("db.path", "atm.db")
	viper.SetDefault("db.max_open_conns", 5)
	viper.SetDefault("db.max_idle_conns", 2)
	viper.SetDefault("db.conn_max_lifetime", time.Minute*5)

	return &DBConfig{
		Driver:          Driver(strings.ToLower(viper.GetString("db.driver"))),
		URL:             viper.GetString("db.url"),
		Host:            viper.GetString("db.host"),
		Port:            viper.GetString("db.port"),
		User:            viper.GetString("db.user"),
		Password:        viper.GetString("db.password"),
		Name:            viper.GetString("db.name"),
		SSLMode:         viper.GetString("db.ssl_mode"),
		Path:            viper.GetString("db.path"),
		MaxOpenConns:    viper.GetInt("db.max_open_conns"),
		MaxIdleConns:    viper.GetInt("db.max_idle_conns"),
		ConnMaxLifetime: viper.GetDuration("db.conn_max_lifetime"),
	}
}

// PostgresDSN builds the lib/pq connection string. A configured db.url wins
// over the discrete host/port fields; db.user and db.password are applied to
// it only when the URL carries no credentials of its own.
func (c *DBConfig) PostgresDSN() string {
	if c.URL != "" {
		u, err := url.Parse(c.URL)
		if err != nil || u.Scheme == "" {
			return c.URL
		}
		if u.User == nil && c.User != "" {
			u.User = url.UserPassword(c.User, c.Password)
		}
		return u.String()
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// InitDB opens and pings the database selected by db.driver.
func InitDB() (*sql.DB, *DBConfig, error) {
	config := GetConfig()

	var (
		db  *sql.DB
		err error
	)
	switch config.Driver {
	case DriverPostgres:
		db, err = sql.Open("postgres", config.PostgresDSN())
	case DriverSQLite:
		db, err = openSQLite(config.Path)
	default:
		return nil, config, fmt.Errorf("driver %q has no SQL database", config.Driver)
	}
	if err != nil {
		return nil, config, fmt.Errorf("error opening database: %w", err)
	}

	// Test connection
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, config, fmt.Errorf("error connecting to database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)
	if config.Driver == DriverSQLite {
		// One writer; avoids SQLITE_BUSY between pooled connections.
		db.SetMaxOpenConns(1)
	}

	log.Printf("[DB] %s connection established", config.Driver)
	return db, config, nil
}

// InitDatabase initializes database with error handling
func InitDatabase() (*sql.DB, *DBConfig) {
	db, config, err := InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	return db, config
}
