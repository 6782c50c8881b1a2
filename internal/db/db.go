package db

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const pingTimeout = 5 * time.Second

// Init opens the content database: a SQLite file by default, Postgres with DB_DRIVER=pgx
func Init(driver, connection string) (*sqlx.DB, error) {
	if driver == "sqlite" {
		path := sqlitePath(connection)
		if path != ":memory:" {
			err := os.MkdirAll(filepath.Dir(path), 0755)
			if err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
	}

	db, err := sqlx.Open(driver, connection)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	switch driver {
	case "sqlite":
		// SQLite has a single writer; all statements share one connection
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	slog.Info("database connected", "driver", driver, "target", describeTarget(driver, connection))
	return db, nil
}

// sqlitePath strips the query string of a SQLite DSN such as
// "./data/pixelplaque.db?_pragma=foreign_keys(1)"
func sqlitePath(connection string) string {
	path, _, _ := strings.Cut(connection, "?")
	return strings.TrimPrefix(path, "file:")
}

// describeTarget names the database for logs without credentials
func describeTarget(driver, connection string) string {
	if driver == "sqlite" {
		return sqlitePath(connection)
	}

	u, err := url.Parse(connection)
	if err == nil && u.Host != "" {
		return u.Host + u.Path
	}

	// key=value DSN: keep only host and dbname
	var parts []string
	for _, field := range strings.Fields(connection) {
		if strings.HasPrefix(field, "host=") || strings.HasPrefix(field, "dbname=") {
			parts = append(parts, field)
		}
	}
	return strings.Join(parts, " ")
}
