package sqlite

import (
	"database/sql"
	"net/http"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	_ "modernc.org/sqlite"                               // Local SQLite driver

	"github.com/warakornp/go-shortlink/pkg/core/domain"
)

// Open connects to a local sqlite file or a remote Turso database
// depending on the URL scheme, and runs the schema migration.
func Open(dbURL string) (*sql.DB, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS accounts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'standard',
		secret TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_accounts_username ON accounts(username);

	CREATE TABLE IF NOT EXISTS links (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		slug TEXT NOT NULL UNIQUE,
		destination TEXT NOT NULL,
		author INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_links_slug ON links(slug);
	`
	_, err := db.Exec(query)
	return err
}

// mapConstraintError turns sqlite UNIQUE violations into the intentional
// validation errors the services pass through; everything else stays an
// unexpected error.
func mapConstraintError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return err
	}
	switch {
	case strings.Contains(msg, "accounts.email"):
		return domain.NewErrorWithDetails(http.StatusBadRequest, "Email is already in use", map[string]string{"email": "already in use"})
	case strings.Contains(msg, "accounts.username"):
		return domain.NewErrorWithDetails(http.StatusBadRequest, "Username is already in use", map[string]string{"username": "already in use"})
	case strings.Contains(msg, "links.slug"):
		return domain.NewErrorWithDetails(http.StatusBadRequest, "Slug is already in use", map[string]string{"slug": "already in use"})
	}
	return domain.NewError(http.StatusBadRequest, "Duplicate value for a unique field")
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
