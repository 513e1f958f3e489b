package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legal-timeline/config"
)

func TestInitFailureIsSticky(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cfg := config.StoreConfig{
		MongoURI:    "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200",
		MongoDBName: "legal_timeline_test",
	}

	err := Init(ctx, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo ping")
	assert.Nil(t, Client())
	assert.Nil(t, Database())

	again := Init(context.Background(), cfg)
	assert.Equal(t, err, again)
	assert.NoError(t, Close(context.Background()))
}
