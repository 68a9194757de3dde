package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements Repository using SQLite via the pure-Go
// modernc driver.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) a SQLite-backed user repository.
func NewSQLite(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL mode so that concurrent registrations don't trip over the
	// single-writer lock.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return repo, nil
}

func (r *SQLiteRepository) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		api_key TEXT NOT NULL UNIQUE,
		verification_score INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_users_api_key ON users(api_key);
	`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Create(ctx context.Context, username, apiKey string, verificationScore int) (*User, error) {
	now := time.Now().UTC()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, api_key, verification_score, created_at) VALUES (?, ?, ?, ?)`,
		username, apiKey, verificationScore, now.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err, "users.username") {
			return nil, fmt.Errorf("%w: %q", ErrUsernameTaken, username)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read inserted user id: %w", err)
	}

	return &User{
		ID:                id,
		Username:          username,
		APIKey:            apiKey,
		VerificationScore: verificationScore,
		CreatedAt:         now.Truncate(time.Second),
	}, nil
}

func (r *SQLiteRepository) ByAPIKey(ctx context.Context, apiKey string) (*User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, username, api_key, verification_score, created_at FROM users WHERE api_key = ?`,
		apiKey,
	))
}

func (r *SQLiteRepository) ByID(ctx context.Context, id int64) (*User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, username, api_key, verification_score, created_at FROM users WHERE id = ?`,
		id,
	))
}

func (r *SQLiteRepository) scanOne(row *sql.Row) (*User, error) {
	var user User
	var createdAt int64

	err := row.Scan(&user.ID, &user.Username, &user.APIKey, &user.VerificationScore, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user row: %w", err)
	}

	user.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &user, nil
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure on the given column. The modernc driver only exposes this
// through the error text.
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}
