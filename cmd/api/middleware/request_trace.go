package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"legal-timeline/cmd/api/trace"
	"legal-timeline/cmd/internal/logger"
)

const (
	headerRequestID = "X-Request-Id"
	headerSpanID    = "X-Span-Id"
)

// RequestTrace는 모든 inbound HTTP 요청에 대해 Request ID와 Span ID를 보장하고,
// 이를 컨텍스트/헤더에 저장한 뒤 완료 로그에 포함시킨다.
// 본문은 base64 파일을 담을 수 있으므로 크기만 기록한다.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		requestID := req.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = trace.NewRequestID()
		}

		ctxWithTrace := trace.Begin(req.Context(), requestID)
		c.Request = req.WithContext(ctxWithTrace)
		req = c.Request

		currentSpan := trace.SpanID(ctxWithTrace)
		c.Request.Header.Set(headerRequestID, requestID)
		c.Request.Header.Set(headerSpanID, currentSpan)
		c.Writer.Header().Set(headerRequestID, requestID)
		c.Writer.Header().Set(headerSpanID, currentSpan)

		// query_params 는 멀티 값 쿼리도 모두 보존하기 위해 map[string][]string 으로 기록한다.
		queryParams := map[string][]string{}
		for key, values := range req.URL.Query() {
			if len(values) > 0 {
				queryParams[key] = values
			}
		}

		c.Next()

		// span_id 는 요청 동안 나간 outbound 호출 수, user_id / case_id 는 서비스가 기록한 값이다.
		logger.InfoWithFields("completed request", trace.Fields(c.Request.Context()).With(logger.Fields{
			"method":         req.Method,
			"path":           req.URL.Path,
			"query_params":   queryParams,
			"content_length": req.ContentLength,
			"status":         c.Writer.Status(),
			"duration":       time.Since(start).String(),
		}))
	}
}
