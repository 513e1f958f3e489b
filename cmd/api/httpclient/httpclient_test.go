package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legal-timeline/cmd/api/trace"
)

func TestRedactURL(t *testing.T) {
	u, err := url.Parse("https://generativelanguage.googleapis.com/v1beta/models/x:generateContent?key=secret&alt=json")
	require.NoError(t, err)

	got := redactURL(u)
	assert.NotContains(t, got, "secret")
	assert.Contains(t, got, "key=REDACTED")
	assert.Contains(t, got, "alt=json")
}

func TestClientPropagatesRequestID(t *testing.T) {
	var gotRequestID, gotSpanID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-Id")
		gotSpanID = r.Header.Get("X-Span-Id")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := New(Config{Timeout: 2 * time.Second})
	ctx := trace.Begin(context.Background(), "req-123")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "req-123", gotRequestID)
	assert.Equal(t, "1", gotSpanID)
}

func TestNewUsesDefaultTimeout(t *testing.T) {
	assert.Equal(t, 60*time.Second, New(Config{}).Timeout)
}
