package repositories

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MONGO_URI 가 설정된 경우에만 실제 Mongo 에 대해 실행된다.
func newTestMongoRepo(t *testing.T) *MongoCaseRepository {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set; skipping mongo integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	database := client.Database("legal_timeline_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = database.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return NewMongoCaseRepository(database, false)
}

func TestMongoCaseRoundTrip(t *testing.T) {
	repo := newTestMongoRepo(t)
	ctx := context.Background()

	n := 1
	c := sampleCase("u1", "case_1")
	c.FileCount = &n
	c.FileNames = []string{"a.txt"}
	require.NoError(t, repo.UpsertCase(ctx, c))

	got, err := repo.FindCase(ctx, "u1", "case_1")
	require.NoError(t, err)
	assert.Equal(t, c.Events, got.Events)
	assert.False(t, got.UploadedAt.IsZero())
	require.NotNil(t, got.FileCount)

	// 텍스트로 다시 쓰면 파일 메타데이터가 지워진다.
	require.NoError(t, repo.UpsertCase(ctx, sampleCase("u1", "case_1")))
	got, err = repo.FindCase(ctx, "u1", "case_1")
	require.NoError(t, err)
	assert.Nil(t, got.FileCount)
	assert.Empty(t, got.FileNames)

	_, err = repo.FindCase(ctx, "u2", "case_1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMongoListRecentAndDelete(t *testing.T) {
	repo := newTestMongoRepo(t)
	ctx := context.Background()

	for i := 1; i <= 6; i++ {
		s := sampleCase("u1", fmt.Sprintf("case_%d", i)).Summary("Unknown")
		require.NoError(t, repo.UpsertRecent(ctx, s))
		// $currentDate 는 밀리초 단위이므로 순서가 구분되도록 간격을 둔다.
		time.Sleep(5 * time.Millisecond)
	}

	items, err := repo.ListRecent(ctx, "u1", 5)
	require.NoError(t, err)
	require.Len(t, items, 5)
	assert.Equal(t, "case_6", items[0].CaseID)
	assert.Equal(t, "case_2", items[4].CaseID)

	require.NoError(t, repo.DeleteRecent(ctx, "u1", "case_6"))
	require.NoError(t, repo.DeleteCase(ctx, "u1", "never-existed"))

	items, err = repo.ListRecent(ctx, "u1", 5)
	require.NoError(t, err)
	assert.Equal(t, "case_5", items[0].CaseID)
}

func TestMongoWithTransactionPassThrough(t *testing.T) {
	repo := newTestMongoRepo(t)
	ctx := context.Background()

	err := repo.WithTransaction(ctx, func(ctx context.Context) error {
		return repo.UpsertCase(ctx, sampleCase("u1", "case_tx"))
	})
	require.NoError(t, err)
	assert.NoError(t, repo.Ping(ctx))
}
