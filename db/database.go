package db

import (
	"database/sql"
	"fmt"
	"log"

	"SadaaFM/config"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

var DB *sql.DB

// ConnectDB establishes a connection to the database.
func ConnectDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var err error
	DB, err = sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = DB.Ping(); err != nil {
		DB.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to the database.")
	return nil
}

// InitDB initializes the database schema, creating tables if they don't exist.
func InitDB() error {
	if err := createInstrumentalsTable(); err != nil {
		return err
	}
	log.Println("Database initialization completed.")
	return nil
}

func createInstrumentalsTable() error {
	// preview_start/preview_end predate the ringtone feature; kept nullable
	// so older rows and clients keep working.
	query := `
	CREATE TABLE IF NOT EXISTS instrumentals (
		id VARCHAR(36) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		mood VARCHAR(100),
		duration FLOAT,
		duration_formatted VARCHAR(20),
		is_premium BOOLEAN NOT NULL DEFAULT FALSE,
		is_featured BOOLEAN NOT NULL DEFAULT FALSE,
		audio_url VARCHAR(767),
		ringtone VARCHAR(767),
		thumbnail_color VARCHAR(20),
		file_size VARCHAR(20),
		play_count BIGINT NOT NULL DEFAULT 0,
		preview_start INT NULL,
		preview_end INT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_is_featured (is_featured),
		INDEX idx_is_premium (is_premium)
	);
	`
	_, err := DB.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create instrumentals table: %w", err)
	}
	log.Println("Instrumentals table initialized successfully (or already exists).")
	return nil
}
