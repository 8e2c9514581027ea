package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/lib/pq"
)

// DSN builds a lib/pq connection URL.
func DSN(host string, port int, user, password, name, sslmode string) string {
	if sslmode == "" {
		sslmode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     fmt.Sprintf("%s:%d", host, port),
		Path:     "/" + name,
		RawQuery: url.Values{"sslmode": {sslmode}}.Encode(),
	}
	return u.String()
}

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS scam_scans (
  id           VARCHAR(64)  PRIMARY KEY,
  user_id      VARCHAR(255) NOT NULL,
  content_type VARCHAR(32)  NOT NULL,
  snippet      VARCHAR(512) NOT NULL,
  risk_level   VARCHAR(16)  NOT NULL,
  risk_score   INTEGER      NOT NULL,
  explanation  TEXT         NOT NULL,
  indicators   TEXT[]       NOT NULL DEFAULT '{}',
  source       VARCHAR(16)  NOT NULL,
  offline      BOOLEAN      NOT NULL DEFAULT FALSE,
  created_at   TIMESTAMPTZ  NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_scam_scans_user_created ON scam_scans (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS scam_scan_errors (
  id           BIGSERIAL    PRIMARY KEY,
  user_id      VARCHAR(255) NOT NULL,
  scan_id      VARCHAR(64)  NOT NULL,
  backend      VARCHAR(128) NOT NULL,
  phase        VARCHAR(32)  NOT NULL,
  message      TEXT         NOT NULL,
  details_json JSONB        NOT NULL DEFAULT '{}',
  created_at   TIMESTAMPTZ  NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_scam_scan_errors_scan ON scam_scan_errors (user_id, scan_id)`,
	`CREATE TABLE IF NOT EXISTS scam_reports (
  id           VARCHAR(64)   PRIMARY KEY,
  user_id      VARCHAR(255)  NOT NULL,
  scam_type    VARCHAR(128)  NOT NULL,
  channel      VARCHAR(32)   NOT NULL,
  description  TEXT          NOT NULL,
  contact      VARCHAR(255)  NOT NULL DEFAULT '',
  evidence_url VARCHAR(1024) NOT NULL DEFAULT '',
  created_at   TIMESTAMPTZ   NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_scam_reports_user_created ON scam_reports (user_id, created_at DESC)`,
}
