package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/mailforge/mailforge/config"
)

// GetConnectionPoolSettings returns the pool settings, falling back to defaults for unset values
func GetConnectionPoolSettings(cfg *config.DatabaseConfig) (maxOpen, maxIdle int, maxLifetime time.Duration) {
	maxOpen, maxIdle, maxLifetime = 25, 25, 20*time.Minute

	if cfg.MaxOpenConns > 0 {
		maxOpen = cfg.MaxOpenConns
	}
	if cfg.MaxIdleConns > 0 {
		maxIdle = cfg.MaxIdleConns
	}
	if maxIdle > maxOpen {
		maxIdle = maxOpen
	}
	if cfg.ConnMaxLifetime > 0 {
		maxLifetime = cfg.ConnMaxLifetime
	}
	return maxOpen, maxIdle, maxLifetime
}

// GetSystemDSN returns the DSN for the application database
func GetSystemDSN(cfg *config.DatabaseConfig) string {
	return buildDSN(cfg, cfg.DBName)
}

// GetPostgresDSN returns the DSN for connecting to PostgreSQL server without specifying a database
func GetPostgresDSN(cfg *config.DatabaseConfig) string {
	return buildDSN(cfg, "postgres")
}

func buildDSN(cfg *config.DatabaseConfig, dbName string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(cfg.User),
		url.QueryEscape(cfg.Password),
		cfg.Host,
		cfg.Port,
		dbName,
		cfg.SSLMode,
	)
}

// ConfigurePool applies the pool settings to an open connection
func ConfigurePool(db *sql.DB, cfg *config.DatabaseConfig) {
	maxOpen, maxIdle, maxLifetime := GetConnectionPoolSettings(cfg)
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)
	db.SetConnMaxIdleTime(maxLifetime / 2)
}

// EnsureSystemDatabaseExists creates the application database if it doesn't exist
func EnsureSystemDatabaseExists(dsn string, dbName string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL server: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL server: %w", err)
	}

	return ensureDatabase(db, dbName)
}

func ensureDatabase(db *sql.DB, dbName string) error {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)"
	if err := db.QueryRow(query, dbName).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}

	if !exists {
		createDBQuery := fmt.Sprintf(`CREATE DATABASE "%s"`, strings.ReplaceAll(dbName, `"`, `""`))
		if _, err := db.Exec(createDBQuery); err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
	}

	return nil
}
