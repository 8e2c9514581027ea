package mysql

import (
	"context"
	"database/sql"
	"net"
	"strconv"
	"time"

	driver "github.com/go-sql-driver/mysql"
)

// DSN builds a driver DSN with parseTime and UTC, which the repositories rely on.
func DSN(host string, port int, user, password, name string) string {
	cfg := driver.NewConfig()
	cfg.User = user
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = host
	if port > 0 {
		cfg.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	}
	cfg.DBName = name
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	// test ping
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
  id              VARCHAR(64)  NOT NULL PRIMARY KEY,
  user_id         VARCHAR(255) NOT NULL,
  content_type    VARCHAR(32)  NOT NULL,
  snippet         VARCHAR(512) NOT NULL,
  risk_level      VARCHAR(16)  NOT NULL,
  risk_score      INT          NOT NULL,
  explanation     TEXT         NOT NULL,
  indicators_json JSON         NOT NULL,
  source          VARCHAR(16)  NOT NULL,
  offline         TINYINT(1)   NOT NULL DEFAULT 0,
  created_at      DATETIME(3)  NOT NULL,
  KEY idx_scam_scans_user_created (user_id, created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS scam_scan_errors (
  id           BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
  user_id      VARCHAR(255) NOT NULL,
  scan_id      VARCHAR(64)  NOT NULL,
  backend      VARCHAR(128) NOT NULL,
  phase        VARCHAR(32)  NOT NULL,
  message      TEXT         NOT NULL,
  details_json JSON         NOT NULL,
  created_at   DATETIME(3)  NOT NULL,
  KEY idx_scam_scan_errors_scan (user_id, scan_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS scam_reports (
  id           VARCHAR(64)   NOT NULL PRIMARY KEY,
  user_id      VARCHAR(255)  NOT NULL,
  scam_type    VARCHAR(128)  NOT NULL,
  channel      VARCHAR(32)   NOT NULL,
  description  TEXT          NOT NULL,
  contact      VARCHAR(255)  NOT NULL DEFAULT '',
  evidence_url VARCHAR(1024) NOT NULL DEFAULT '',
  created_at   DATETIME(3)   NOT NULL,
  KEY idx_scam_reports_user_created (user_id, created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}
