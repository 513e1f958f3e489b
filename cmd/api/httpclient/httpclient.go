package httpclient

import (
	"net/http"
	"net/url"
	"time"

	"legal-timeline/cmd/api/trace"
	"legal-timeline/cmd/internal/logger"
)

// Config는 HTTP 클라이언트 공통 설정을 캡슐화한다.
type Config struct {
	Timeout time.Duration
}

// 자격 증명이 쿼리로 실리는 API 가 있으므로 로그에 남기기 전에 가린다.
var redactedQueryKeys = []string{"key", "api_key", "apikey"}

// loggingRoundTripper는 모든 아웃바운드 HTTP 호출에 대해 공통 로깅과
// X-Request-Id 헤더 트레이싱을 수행한다. 요청 바디는 사건 본문을 담고 있으므로
// 내용 대신 크기만 기록한다.
type loggingRoundTripper struct {
	inner http.RoundTripper
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	requestID, spanID := trace.NextSpan(req.Context())
	req = req.Clone(req.Context())
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("X-Span-Id", spanID)

	resp, err := l.inner.RoundTrip(req)
	duration := time.Since(start)

	fields := trace.Fields(req.Context()).With(logger.Fields{
		"method":         req.Method,
		"url":            redactURL(req.URL),
		"content_length": req.ContentLength,
		"duration":       duration.String(),
		"request_id":     requestID,
		"span_id":        spanID,
	})
	if err != nil {
		fields["error"] = err.Error()
		logger.ErrorWithFields("httpclient request failed", fields)
		return nil, err
	}

	fields["status"] = resp.StatusCode
	logger.DebugWithFields("httpclient request success", fields)
	return resp, nil
}

func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	clone := *u
	q := clone.Query()
	changed := false
	for _, k := range redactedQueryKeys {
		if q.Has(k) {
			q.Set(k, "REDACTED")
			changed = true
		}
	}
	if changed {
		clone.RawQuery = q.Encode()
	}
	return clone.String()
}

// New는 주어진 설정으로 http.Client를 생성한다.
// Timeout이 0이면 기본값 60초를 사용한다.
func New(cfg Config) *http.Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: &loggingRoundTripper{inner: http.DefaultTransport},
	}
}
