package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"legal-timeline/cmd/api/trace"
	"legal-timeline/cmd/internal/logger"
)

// RequestErrorLogging 은 핸들러가 c.Error 로 남긴 실패를 요청 단위로 로깅한다.
// 5xx 는 error, 그 외는 warn 레벨이다. Meta 가 logger.Fields 이면 함께 기록한다.
func RequestErrorLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		status := c.Writer.Status()
		for _, ginErr := range c.Errors {
			fields := trace.Fields(c.Request.Context())
			if meta, ok := ginErr.Meta.(logger.Fields); ok {
				fields = fields.With(meta)
			}
			fields["method"] = c.Request.Method
			fields["path"] = c.Request.URL.Path
			fields["status"] = status
			fields["error"] = ginErr.Error()

			if status >= http.StatusInternalServerError {
				logger.ErrorWithFields("request failed", fields)
			} else {
				logger.WarnWithFields("request rejected", fields)
			}
		}
	}
}
