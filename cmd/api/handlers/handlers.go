package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"legal-timeline/cmd/api/dto"
	"legal-timeline/cmd/api/services"
	"legal-timeline/cmd/internal/logger"
)

// respondCaseError 는 CaseError 를 {error, message} 응답으로 옮기고,
// 로깅은 RequestErrorLogging 미들웨어에 맡긴다.
func respondCaseError(c *gin.Context, operation, userID, caseID string, caseErr *services.CaseError) {
	c.Error(caseErr).SetMeta(logger.Fields{
		"operation": operation,
		"user_id":   userID,
		"case_id":   caseID,
	})
	c.JSON(caseErr.StatusCode, dto.ErrorResponseDTO{Error: caseErr.ErrorCode, Message: caseErr.Message})
}

func abortBadRequest(c *gin.Context, operation, message string, cause error) {
	c.Error(cause).SetMeta(logger.Fields{"operation": operation})
	c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: message})
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// MethodNotAllowedHandler 는 등록된 경로에 다른 메서드로 들어온 요청에 405 를 돌려준다.
func MethodNotAllowedHandler(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, dto.ErrorResponseDTO{Error: services.MethodNotAllowed})
}

// HealthHandler godoc
// @Summary      헬스 체크
// @Description  저장소 연결을 확인한다.
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponseDTO
// @Failure      503  {object}  dto.HealthResponseDTO
// @Router       /health [get]
func HealthHandler(caseSvc *services.CaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := caseSvc.Ping(ctx); err != nil {
			c.Error(err).SetMeta(logger.Fields{"operation": "health"})
			c.JSON(http.StatusServiceUnavailable, dto.HealthResponseDTO{Status: "degraded", Store: "down"})
			return
		}
		c.JSON(http.StatusOK, dto.HealthResponseDTO{Status: "ok", Store: "ok"})
	}
}
