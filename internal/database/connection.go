package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the progress database. DB_TYPE selects
// the driver ("sqlite" by default, "postgres" with DATABASE_URL).
func Connect() error {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	var db *sqlx.DB
	var err error

	if dbType == "postgres" {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL must be set when DB_TYPE=postgres")
		}
		db, err = sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
	} else {
		dataDir := os.Getenv("DATA_DIR")
		if dataDir == "" {
			dataDir = "data"
		}
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %v", err)
		}

		dbPath := filepath.Join(dataDir, "hamstudy.db")
		db, err = sqlx.Connect("sqlite3", dbPath)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}

		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	DB = db
	logrus.WithField("db_type", dbType).Debug("database connected")

	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist. Each table
// is its own progress namespace and can be cleared independently.
func initializeSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS question_progress (
			question_id TEXT PRIMARY KEY,
			attempts INTEGER NOT NULL DEFAULT 0,
			correct_count INTEGER NOT NULL DEFAULT 0,
			last_attempt TIMESTAMP NOT NULL,
			next_review TIMESTAMP NOT NULL,
			ease_factor REAL NOT NULL DEFAULT 2.5,
			interval INTEGER NOT NULL DEFAULT 1,
			status TEXT NOT NULL DEFAULT 'learning'
		)`,
		`CREATE TABLE IF NOT EXISTS card_progress (
			card_id TEXT PRIMARY KEY,
			card_type TEXT NOT NULL,
			subelement TEXT NOT NULL,
			group_code TEXT NOT NULL,
			box INTEGER NOT NULL DEFAULT 1,
			attempts INTEGER NOT NULL DEFAULT 0,
			correct_count INTEGER NOT NULL DEFAULT 0,
			streak INTEGER NOT NULL DEFAULT 0,
			mastery_score INTEGER NOT NULL DEFAULT 0,
			last_seen TIMESTAMP NOT NULL,
			next_review TIMESTAMP NOT NULL,
			timed_attempts INTEGER NOT NULL DEFAULT 0,
			total_time_ms INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS category_progress (
			kind TEXT NOT NULL,
			code TEXT NOT NULL,
			total_attempts INTEGER NOT NULL DEFAULT 0,
			total_correct INTEGER NOT NULL DEFAULT 0,
			recent_outcomes TEXT NOT NULL DEFAULT '[]',
			last_studied TIMESTAMP NOT NULL,
			trend TEXT NOT NULL DEFAULT 'stable',
			PRIMARY KEY (kind, code)
		)`,
		`CREATE TABLE IF NOT EXISTS skill_mastery (
			skill TEXT PRIMARY KEY,
			attempts INTEGER NOT NULL DEFAULT 0,
			correct INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			last_practiced TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS streak_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			current_streak INTEGER NOT NULL DEFAULT 0,
			longest_streak INTEGER NOT NULL DEFAULT 0,
			last_session_date TEXT NOT NULL DEFAULT '',
			freeze_tokens INTEGER NOT NULL DEFAULT 0,
			freeze_tokens_earned INTEGER NOT NULL DEFAULT 0,
			last_freeze_used TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS session_results (
			session_id TEXT PRIMARY KEY,
			completed_at TIMESTAMP NOT NULL,
			total_cards INTEGER NOT NULL,
			learning_count INTEGER NOT NULL DEFAULT 0,
			question_count INTEGER NOT NULL DEFAULT 0,
			learning_accuracy REAL NOT NULL,
			question_accuracy REAL NOT NULL,
			time_spent_ms INTEGER NOT NULL,
			average_time_per_card INTEGER NOT NULL,
			category_performance TEXT NOT NULL DEFAULT '[]',
			weakest_category TEXT NOT NULL DEFAULT '',
			strongest_category TEXT NOT NULL DEFAULT '',
			improvement REAL NOT NULL DEFAULT 0
		)`,
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %v", err)
		}
	}
	return nil
}
