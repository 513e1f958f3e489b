package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legal-timeline/db"
	"legal-timeline/models"
)

func newTestSQLiteRepo(t *testing.T) *SQLiteCaseRepository {
	t.Helper()

	conn, err := db.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	repo := NewSQLiteCaseRepository(conn)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return repo
}

func sampleCase(userID, caseID string) *models.Case {
	return &models.Case{
		CaseID: caseID,
		UserID: userID,
		Title:  "FIR filed",
		Events: []models.Event{
			{Title: "FIR filed", Date: "2023-02-10", Description: "Complaint registered"},
			{Title: "Charge sheet", Date: "2023-06-01", Description: ""},
		},
		TextLength: 42,
	}
}

func TestSQLiteCaseRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLiteRepo(t)

	c := sampleCase("u1", "case_1")
	require.NoError(t, repo.UpsertCase(ctx, c))

	got, err := repo.FindCase(ctx, "u1", "case_1")
	require.NoError(t, err)
	assert.Equal(t, c.Events, got.Events)
	assert.Equal(t, "FIR filed", got.Title)
	assert.Equal(t, 42, got.TextLength)
	assert.Nil(t, got.FileCount)
	assert.Nil(t, got.FileNames)
	assert.False(t, got.UploadedAt.IsZero())
}

func TestSQLiteCaseFileMetadata(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLiteRepo(t)

	c := sampleCase("u1", "case_1")
	n := 2
	c.FileCount = &n
	c.FileNames = []string{"a.pdf", "b.txt"}
	require.NoError(t, repo.UpsertCase(ctx, c))

	got, err := repo.FindCase(ctx, "u1", "case_1")
	require.NoError(t, err)
	require.NotNil(t, got.FileCount)
	assert.Equal(t, 2, *got.FileCount)
	assert.Equal(t, []string{"a.pdf", "b.txt"}, got.FileNames)

	// 텍스트로 다시 제출하면 파일 메타데이터가 사라진다.
	require.NoError(t, repo.UpsertCase(ctx, sampleCase("u1", "case_1")))
	got, err = repo.FindCase(ctx, "u1", "case_1")
	require.NoError(t, err)
	assert.Nil(t, got.FileCount)
	assert.Nil(t, got.FileNames)
}

func TestSQLiteFindCaseNotFound(t *testing.T) {
	repo := newTestSQLiteRepo(t)

	_, err := repo.FindCase(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteUserNamespaceIsolation(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLiteRepo(t)

	require.NoError(t, repo.UpsertCase(ctx, sampleCase("alice", "case_1")))
	require.NoError(t, repo.UpsertRecent(ctx, sampleCase("alice", "case_1").Summary("Unknown")))

	_, err := repo.FindCase(ctx, "bob", "case_1")
	assert.ErrorIs(t, err, ErrNotFound)

	items, err := repo.ListRecent(ctx, "bob", 5)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSQLiteListRecentNewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLiteRepo(t)

	for i := 1; i <= 6; i++ {
		c := sampleCase("u1", fmt.Sprintf("case_%d", i))
		require.NoError(t, repo.UpsertRecent(ctx, c.Summary("Unknown")))
	}

	items, err := repo.ListRecent(ctx, "u1", 5)
	require.NoError(t, err)
	require.Len(t, items, 5)
	for i, item := range items {
		assert.Equal(t, fmt.Sprintf("case_%d", 6-i), item.CaseID)
		assert.Equal(t, 2, item.EventCount)
		assert.Equal(t, "2023-02-10", item.FirstEventDate)
		assert.Equal(t, "u1", item.UserID)
	}
}

func TestSQLiteListRecentSameInstantUsesWriteOrder(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLiteRepo(t)
	fixed := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	require.NoError(t, repo.UpsertRecent(ctx, sampleCase("u1", "first").Summary("Unknown")))
	require.NoError(t, repo.UpsertRecent(ctx, sampleCase("u1", "second").Summary("Unknown")))

	items, err := repo.ListRecent(ctx, "u1", 5)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].CaseID)
}

func TestSQLiteOverwriteMovesCaseToTop(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLiteRepo(t)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.UpsertRecent(ctx, sampleCase("u1", id).Summary("Unknown")))
	}
	updated := sampleCase("u1", "a")
	updated.Title = "Rewritten"
	require.NoError(t, repo.UpsertRecent(ctx, updated.Summary("Unknown")))

	items, err := repo.ListRecent(ctx, "u1", 5)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].CaseID)
	assert.Equal(t, "Rewritten", items[0].Title)
}

func TestSQLiteDeleteIsUnconditional(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLiteRepo(t)

	require.NoError(t, repo.UpsertCase(ctx, sampleCase("u1", "case_1")))
	require.NoError(t, repo.UpsertRecent(ctx, sampleCase("u1", "case_1").Summary("Unknown")))

	require.NoError(t, repo.DeleteCase(ctx, "u1", "case_1"))
	require.NoError(t, repo.DeleteRecent(ctx, "u1", "case_1"))

	_, err := repo.FindCase(ctx, "u1", "case_1")
	assert.ErrorIs(t, err, ErrNotFound)
	items, err := repo.ListRecent(ctx, "u1", 5)
	require.NoError(t, err)
	assert.Empty(t, items)

	// 존재하지 않는 케이스 삭제도 성공한다.
	assert.NoError(t, repo.DeleteCase(ctx, "u1", "never-existed"))
	assert.NoError(t, repo.DeleteRecent(ctx, "u1", "never-existed"))
}

func TestSQLiteWithTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLiteRepo(t)
	boom := errors.New("boom")

	err := repo.WithTransaction(ctx, func(ctx context.Context) error {
		if err := repo.UpsertCase(ctx, sampleCase("u1", "case_1")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = repo.FindCase(ctx, "u1", "case_1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteWithTransactionCommits(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLiteRepo(t)

	err := repo.WithTransaction(ctx, func(ctx context.Context) error {
		c := sampleCase("u1", "case_1")
		if err := repo.UpsertCase(ctx, c); err != nil {
			return err
		}
		// 중첩 호출은 바깥 트랜잭션에 참여한다.
		return repo.WithTransaction(ctx, func(ctx context.Context) error {
			return repo.UpsertRecent(ctx, c.Summary("Unknown"))
		})
	})
	require.NoError(t, err)

	_, err = repo.FindCase(ctx, "u1", "case_1")
	require.NoError(t, err)
	items, err := repo.ListRecent(ctx, "u1", 5)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSQLitePing(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	assert.NoError(t, repo.Ping(context.Background()))
}
