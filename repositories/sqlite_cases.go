package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"legal-timeline/models"
)

type txKey struct{}

type sqlConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteCaseRepository 는 단일 프로세스 배포용 임베디드 저장소다.
// uploaded_at 은 쓰기 시점의 저장소 시각(UnixNano)으로 채운다.
type SQLiteCaseRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteCaseRepository(db *sql.DB) *SQLiteCaseRepository {
	return &SQLiteCaseRepository{db: db, now: time.Now}
}

func (r *SQLiteCaseRepository) conn(ctx context.Context) sqlConn {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return r.db
}

func (r *SQLiteCaseRepository) UpsertCase(ctx context.Context, c *models.Case) error {
	events, err := json.Marshal(c.Events)
	if err != nil {
		return fmt.Errorf("marshal events: %w", err)
	}

	var fileCount sql.NullInt64
	var fileNames sql.NullString
	if c.FileCount != nil {
		fileCount = sql.NullInt64{Int64: int64(*c.FileCount), Valid: true}
		names, err := json.Marshal(c.FileNames)
		if err != nil {
			return fmt.Errorf("marshal file names: %w", err)
		}
		fileNames = sql.NullString{String: string(names), Valid: true}
	}

	_, err = r.conn(ctx).ExecContext(ctx, `
		INSERT OR REPLACE INTO cases
			(user_id, case_id, title, events, text_length, file_count, file_names, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.UserID, c.CaseID, c.Title, string(events), c.TextLength, fileCount, fileNames, r.now().UTC().UnixNano(),
	)
	return err
}

// UpsertRecent 는 REPLACE 로 행을 새로 넣어 seq 가 증가하므로, 같은 시각에 쓰인 요약도
// 나중에 쓴 것이 먼저 정렬된다.
func (r *SQLiteCaseRepository) UpsertRecent(ctx context.Context, s *models.RecentCaseSummary) error {
	var fileCount sql.NullInt64
	if s.FileCount != nil {
		fileCount = sql.NullInt64{Int64: int64(*s.FileCount), Valid: true}
	}

	_, err := r.conn(ctx).ExecContext(ctx, `
		INSERT OR REPLACE INTO recent_cases
			(user_id, case_id, title, uploaded_at, event_count, first_event_date, file_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.UserID, s.CaseID, s.Title, r.now().UTC().UnixNano(), s.EventCount, s.FirstEventDate, fileCount,
	)
	return err
}

func (r *SQLiteCaseRepository) FindCase(ctx context.Context, userID, caseID string) (*models.Case, error) {
	var (
		c          models.Case
		events     string
		fileCount  sql.NullInt64
		fileNames  sql.NullString
		uploadedAt int64
	)
	err := r.conn(ctx).QueryRowContext(ctx, `
		SELECT user_id, case_id, title, events, text_length, file_count, file_names, uploaded_at
		FROM cases WHERE user_id = ? AND case_id = ?`,
		userID, caseID,
	).Scan(&c.UserID, &c.CaseID, &c.Title, &events, &c.TextLength, &fileCount, &fileNames, &uploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(events), &c.Events); err != nil {
		return nil, fmt.Errorf("unmarshal events: %w", err)
	}
	if fileCount.Valid {
		n := int(fileCount.Int64)
		c.FileCount = &n
	}
	if fileNames.Valid {
		if err := json.Unmarshal([]byte(fileNames.String), &c.FileNames); err != nil {
			return nil, fmt.Errorf("unmarshal file names: %w", err)
		}
	}
	c.UploadedAt = time.Unix(0, uploadedAt).UTC()
	return &c, nil
}

func (r *SQLiteCaseRepository) ListRecent(ctx context.Context, userID string, limit int) ([]models.RecentCaseSummary, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, `
		SELECT user_id, case_id, title, uploaded_at, event_count, first_event_date, file_count
		FROM recent_cases
		WHERE user_id = ?
		ORDER BY uploaded_at DESC, seq DESC
		LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.RecentCaseSummary, 0, limit)
	for rows.Next() {
		var (
			s          models.RecentCaseSummary
			uploadedAt int64
			fileCount  sql.NullInt64
		)
		if err := rows.Scan(&s.UserID, &s.CaseID, &s.Title, &uploadedAt, &s.EventCount, &s.FirstEventDate, &fileCount); err != nil {
			return nil, err
		}
		s.UploadedAt = time.Unix(0, uploadedAt).UTC()
		if fileCount.Valid {
			n := int(fileCount.Int64)
			s.FileCount = &n
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *SQLiteCaseRepository) DeleteCase(ctx context.Context, userID, caseID string) error {
	_, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM cases WHERE user_id = ? AND case_id = ?`, userID, caseID)
	return err
}

func (r *SQLiteCaseRepository) DeleteRecent(ctx context.Context, userID, caseID string) error {
	_, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM recent_cases WHERE user_id = ? AND case_id = ?`, userID, caseID)
	return err
}

// WithTransaction 은 항상 트랜잭션으로 실행한다. 이미 트랜잭션 안이면 그대로 참여한다.
func (r *SQLiteCaseRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *SQLiteCaseRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
