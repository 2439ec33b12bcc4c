package db

import (
	"fmt"
	"log"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Options selects the database backend. A non-empty RemoteURL switches to Turso/libSQL.
type Options struct {
	Path        string
	RemoteURL   string
	AuthToken   string
	Environment string
}

// Initialize sets up the database connection with WAL mode for concurrency
func Initialize(opts Options) error {
	var err error

	logLevel := logger.Info
	if opts.Environment == "production" {
		logLevel = logger.Warn
	}
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	if opts.RemoteURL != "" {
		DB, err = gorm.Open(sqlite.New(sqlite.Config{
			DriverName: "libsql",
			DSN:        RemoteDSN(opts.RemoteURL, opts.AuthToken),
		}), gormCfg)
		if err != nil {
			return fmt.Errorf("failed to connect to remote database: %w", err)
		}
		log.Println("Database connection established (Turso/libSQL)")
		return nil
	}

	DB, err = gorm.Open(sqlite.Open(LocalDSN(opts.Path)), gormCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established (WAL mode enabled)")
	return nil
}

// LocalDSN builds the sqlite DSN with WAL journaling
func LocalDSN(path string) string {
	return path + "?_journal_mode=WAL&_busy_timeout=5000"
}

// RemoteDSN appends the auth token to a libSQL URL
func RemoteDSN(url, token string) string {
	if token == "" {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "authToken=" + token
}

// AutoMigrate runs database migrations for the provided models
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
