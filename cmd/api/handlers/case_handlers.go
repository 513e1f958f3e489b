package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"legal-timeline/cmd/api/dto"
	"legal-timeline/cmd/api/services"
	"legal-timeline/cmd/internal/logger"
)

// 요청 본문 JSON 자체가 깨진 경우에도 필수 필드 누락과 같은 400 메시지를 돌려준다.
const (
	errMissingTextFields   = "Missing required fields: text, userId"
	errMissingFilesFields  = "Missing required fields: files array, userId"
	errMissingDeleteFields = "Missing required fields: userId, caseId"
)

// ExtractTimelineHandler godoc
// @Summary      텍스트에서 타임라인 추출
// @Description  사건 본문 텍스트를 LLM 으로 분석해 시간순 법률 이벤트를 추출하고 저장한다. caseId 를 주면 같은 케이스를 덮어쓴다.
// @Tags         cases
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SubmitTextRequestDTO  true  "case text"
// @Success      200   {object}  dto.TimelineResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      405   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /extractTimeline [post]
func ExtractTimelineHandler(caseSvc *services.CaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.SubmitTextRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, "extractTimeline", errMissingTextFields, err)
			return
		}

		resp, caseErr := caseSvc.SubmitText(c.Request.Context(), req)
		if caseErr != nil {
			respondCaseError(c, "extractTimeline", req.UserID, req.CaseID, caseErr)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// ProcessFilesHandler godoc
// @Summary      업로드 파일에서 타임라인 추출
// @Description  base64 로 인코딩된 txt/pdf/docx 파일들을 텍스트로 합쳐 타임라인을 추출한다. 읽을 수 없는 파일은 건너뛴다.
// @Tags         cases
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SubmitFilesRequestDTO  true  "files"
// @Success      200   {object}  dto.TimelineResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      405   {object}  dto.ErrorResponseDTO
// @Failure      413   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /processFiles [post]
func ProcessFilesHandler(caseSvc *services.CaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.SubmitFilesRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			if isBodyTooLarge(err) {
				c.Error(err).SetMeta(logger.Fields{"operation": "processFiles"})
				c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponseDTO{Error: "Request body too large"})
				return
			}
			abortBadRequest(c, "processFiles", errMissingFilesFields, err)
			return
		}

		resp, caseErr := caseSvc.SubmitFiles(c.Request.Context(), req)
		if caseErr != nil {
			respondCaseError(c, "processFiles", req.UserID, req.CaseID, caseErr)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// GetRecentCasesHandler godoc
// @Summary      최근 케이스 목록
// @Description  사용자의 케이스 요약을 업로드 시각 내림차순으로 최대 5건 반환한다.
// @Tags         cases
// @Produce      json
// @Param        userId  query     string  true  "user id"
// @Success      200     {object}  dto.RecentCasesResponseDTO
// @Failure      400     {object}  dto.ErrorResponseDTO
// @Failure      405     {object}  dto.ErrorResponseDTO
// @Failure      500     {object}  dto.ErrorResponseDTO
// @Router       /getRecentCases [get]
func GetRecentCasesHandler(caseSvc *services.CaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("userId")

		resp, caseErr := caseSvc.ListRecent(c.Request.Context(), userID)
		if caseErr != nil {
			respondCaseError(c, "getRecentCases", userID, "", caseErr)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// GetCaseHandler godoc
// @Summary      케이스 단건 조회
// @Tags         cases
// @Produce      json
// @Param        userId  query     string  true  "user id"
// @Param        caseId  query     string  true  "case id"
// @Success      200     {object}  dto.CaseResponseDTO
// @Failure      400     {object}  dto.ErrorResponseDTO
// @Failure      404     {object}  dto.ErrorResponseDTO
// @Failure      405     {object}  dto.ErrorResponseDTO
// @Failure      500     {object}  dto.ErrorResponseDTO
// @Router       /getCase [get]
func GetCaseHandler(caseSvc *services.CaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("userId")
		caseID := c.Query("caseId")

		resp, caseErr := caseSvc.GetCase(c.Request.Context(), userID, caseID)
		if caseErr != nil {
			respondCaseError(c, "getCase", userID, caseID, caseErr)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// DeleteCaseHandler godoc
// @Summary      케이스 삭제
// @Description  케이스와 요약을 삭제한다. 존재하지 않는 케이스도 성공으로 응답한다.
// @Tags         cases
// @Accept       json
// @Produce      json
// @Param        body  body      dto.DeleteCaseRequestDTO  true  "case key"
// @Success      200   {object}  dto.MessageResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      405   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /deleteCase [delete]
func DeleteCaseHandler(caseSvc *services.CaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.DeleteCaseRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, "deleteCase", errMissingDeleteFields, err)
			return
		}

		resp, caseErr := caseSvc.DeleteCase(c.Request.Context(), req)
		if caseErr != nil {
			respondCaseError(c, "deleteCase", req.UserID, req.CaseID, caseErr)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
