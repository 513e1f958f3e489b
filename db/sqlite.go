package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS cases (
	user_id     TEXT    NOT NULL,
	case_id     TEXT    NOT NULL,
	title       TEXT    NOT NULL,
	events      TEXT    NOT NULL,
	text_length INTEGER NOT NULL,
	file_count  INTEGER,
	file_names  TEXT,
	uploaded_at INTEGER NOT NULL,
	PRIMARY KEY (user_id, case_id)
);

CREATE TABLE IF NOT EXISTS recent_cases (
	seq              INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id          TEXT    NOT NULL,
	case_id          TEXT    NOT NULL,
	title            TEXT    NOT NULL,
	uploaded_at      INTEGER NOT NULL,
	event_count      INTEGER NOT NULL,
	first_event_date TEXT    NOT NULL,
	file_count       INTEGER,
	UNIQUE (user_id, case_id)
);

CREATE INDEX IF NOT EXISTS idx_recent_cases_user_uploaded
	ON recent_cases (user_id, uploaded_at DESC, seq DESC);
`

// OpenSQLite 는 임베디드 SQLite 저장소를 열고 스키마를 보장한다.
// 단일 writer 인 SQLite 특성상 커넥션을 하나로 제한한다 (":memory:" 도 이 덕분에 공유된다).
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite open %s: %w", path, err)
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite pragma: %w", err)
	}
	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	return conn, nil
}
