package repositories

import (
	"context"
	"errors"

	"legal-timeline/models"
)

// ErrNotFound 는 (user_id, case_id) 조합에 해당하는 문서가 없을 때 반환된다.
var ErrNotFound = errors.New("case not found")

// CaseRepository 는 사용자 네임스페이스 안에서 Case 와 RecentCaseSummary 를 다룬다.
// 모든 키는 (userID, caseID) 2단계이며, uploaded_at 은 저장소가 쓰기 시점에 채운다.
type CaseRepository interface {
	UpsertCase(ctx context.Context, c *models.Case) error
	UpsertRecent(ctx context.Context, s *models.RecentCaseSummary) error
	FindCase(ctx context.Context, userID, caseID string) (*models.Case, error)
	// ListRecent returns at most limit summaries, newest uploaded_at first.
	ListRecent(ctx context.Context, userID string, limit int) ([]models.RecentCaseSummary, error)
	// DeleteCase / DeleteRecent succeed even when nothing matched.
	DeleteCase(ctx context.Context, userID, caseID string) error
	DeleteRecent(ctx context.Context, userID, caseID string) error
	// WithTransaction runs fn atomically when the backend supports it,
	// otherwise it simply calls fn.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	Ping(ctx context.Context) error
}
