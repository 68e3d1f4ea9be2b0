package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Type returns the configured database backend, defaulting to sqlite.
func Type() string {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}
	return dbType
}

// Connect establishes a connection to the database and initializes the schema
func Connect() error {
	if Type() == "postgres" {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		DB = db
		return initializeSchema()
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = filepath.Join("data", "tenkanji.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	DB = db
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	// Create users table
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			initials TEXT PRIMARY KEY,
			chunk_size INTEGER DEFAULT 10,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	// Create word_status table
	// status: 0 = new, 1 = seen, 2 = mastered
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS word_status (
			user_initials TEXT NOT NULL,
			word TEXT NOT NULL,
			status INTEGER DEFAULT 0,
			correct_count INTEGER DEFAULT 0,
			wrong_count INTEGER DEFAULT 0,
			last_reviewed TIMESTAMP,
			PRIMARY KEY (user_initials, word),
			FOREIGN KEY (user_initials) REFERENCES users(initials)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create word_status table: %w", err)
	}

	// Create activity_events table (append-only; readers deduplicate by date)
	var idColumn string
	if Type() == "postgres" {
		idColumn = "id SERIAL PRIMARY KEY"
	} else {
		idColumn = "id INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	_, err = DB.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS activity_events (
			%s,
			user_initials TEXT NOT NULL,
			activity_date TEXT NOT NULL,
			kind TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, idColumn))
	if err != nil {
		return fmt.Errorf("failed to create activity_events table: %w", err)
	}

	// Create daily_challenges table
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS daily_challenges (
			user_initials TEXT NOT NULL,
			challenge_date TEXT NOT NULL,
			score INTEGER NOT NULL,
			results TEXT NOT NULL,
			completed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_initials, challenge_date)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create daily_challenges table: %w", err)
	}

	return nil
}
