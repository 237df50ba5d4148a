// database/connection.go
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"github.com/ndelgado/flight-delay-api/config"
)

var DB *sql.DB

// InitDB initializes the database connection pool.
func InitDB(cfg config.DatabaseConfig) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
	)

	var err error
	DB, err = sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	if err := DB.Ping(); err != nil {
		DB.Close()
		DB = nil
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Str("db", cfg.DBName).Msg("connected to the database")
	return nil
}

// CloseDB closes the database connection pool. Called on shutdown.
func CloseDB() {
	if DB != nil {
		DB.Close()
		log.Info().Msg("database connection closed")
	}
}
