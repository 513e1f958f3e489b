package services

import (
	"errors"
	"net/http"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNoText     = errors.New("no text extracted from files")
	ErrNoEvents   = errors.New("no events extracted")
	ErrNotFound   = errors.New("case not found")
	ErrStorage    = errors.New("storage failure")
)

// 응답 본문의 error 필드에 그대로 쓰이는 문자열이다.
const (
	msgMissingTextFields   = "Missing required fields: text, userId"
	msgEmptyText           = "Text content cannot be empty"
	msgMissingFilesFields  = "Missing required fields: files array, userId"
	msgMissingUserID       = "Missing required parameter: userId"
	msgMissingCaseParams   = "Missing required parameters: userId, caseId"
	msgMissingDeleteFields = "Missing required fields: userId, caseId"
	msgNoTextFromFiles     = "No text could be extracted from files"
	msgNoEvents            = "No events extracted"
	msgCaseNotFound        = "Case not found"
	msgInternal            = "Internal server error"

	msgTimelineExtracted = "Timeline extracted successfully"
	msgCaseDeleted       = "Case deleted successfully"
)

// CaseError 는 핸들러가 그대로 {error, message} 응답으로 옮길 수 있는 실패다.
type CaseError struct {
	StatusCode int
	ErrorCode  string
	Message    string
	Cause      error
}

func (e *CaseError) Error() string {
	if e == nil {
		return msgInternal
	}
	if e.Cause != nil {
		return e.ErrorCode + ": " + e.Cause.Error()
	}
	return e.ErrorCode
}

func (e *CaseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func badRequest(code string, cause error) *CaseError {
	return &CaseError{StatusCode: http.StatusBadRequest, ErrorCode: code, Cause: cause}
}

func notFound() *CaseError {
	return &CaseError{StatusCode: http.StatusNotFound, ErrorCode: msgCaseNotFound, Cause: ErrNotFound}
}

// internalError 는 원인 메시지를 Message 로 노출한다.
func internalError(cause error) *CaseError {
	return &CaseError{
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  msgInternal,
		Message:    cause.Error(),
		Cause:      cause,
	}
}

// MethodNotAllowed 는 라우터의 405 응답에 쓰는 문자열이다.
const MethodNotAllowed = "Method not allowed"
