package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legal-timeline/cmd/api/services"
	"legal-timeline/db"
	"legal-timeline/models"
	"legal-timeline/repositories"
)

type stubExtractor struct{}

func (stubExtractor) Extract(ctx context.Context, text string) ([]models.Event, error) {
	return []models.Event{{Title: "A", Date: "2024-01-01", Description: "d"}}, nil
}

func newTestHandler(t *testing.T, maxBody int64) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	svc := services.NewCaseService(repositories.NewSQLiteCaseRepository(conn), stubExtractor{}, nil, "")
	return Handler(New(svc), maxBody)
}

func TestWrongMethodReturns405(t *testing.T) {
	h := newTestHandler(t, 0)

	testCases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/extractTimeline"},
		{http.MethodPut, "/processFiles"},
		{http.MethodPost, "/getRecentCases"},
		{http.MethodDelete, "/getCase"},
		{http.MethodPost, "/deleteCase"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.method+" "+testCase.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(testCase.method, testCase.path, nil))

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.JSONEq(t, `{"error":"Method not allowed"}`, rec.Body.String())
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	testCases := []struct {
		name   string
		method string
		path   string
	}{
		{name: "extract timeline", method: http.MethodPost, path: "/extractTimeline"},
		{name: "delete case", method: http.MethodDelete, path: "/deleteCase"},
	}

	h := newTestHandler(t, 0)
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, testCase.path, nil)
			req.Header.Set("Origin", "https://app.example.com")
			req.Header.Set("Access-Control-Request-Method", testCase.method)
			// 브라우저는 요청 헤더 이름을 소문자로 보낸다.
			req.Header.Set("Access-Control-Request-Headers", "content-type")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Empty(t, rec.Body.String())
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), testCase.method)
		})
	}
}

func TestPlainOptionsReturns200(t *testing.T) {
	h := newTestHandler(t, 0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/getCase", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestCORSHeadersOnActualRequest(t *testing.T) {
	h := newTestHandler(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/getRecentCases?userId=u1", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRequestIDIsPropagated(t *testing.T) {
	h := newTestHandler(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-Id"))
}

func TestBodyLimit(t *testing.T) {
	h := newTestHandler(t, 64)

	body := `{"userId":"u1","files":[{"fileName":"a.txt","fileContent":"` + strings.Repeat("QUFB", 64) + `"}]}`
	req := httptest.NewRequest(http.MethodPost, "/processFiles", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestEndToEndTextSubmission(t *testing.T) {
	h := newTestHandler(t, 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/extractTimeline", strings.NewReader(`{"text":"some case","userId":"u1","caseId":"c1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/getCase?userId=u1&caseId=c1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"A"`)
}
