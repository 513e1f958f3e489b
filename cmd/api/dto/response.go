package dto

// ErrorResponseDTO는 공통 에러 응답 형식을 통일하기 위한 DTO이다.
// 500 응답에서는 Message 에 원인 에러 메시지가 담긴다.
type ErrorResponseDTO struct {
	Error   string `json:"error" example:"Missing required fields: text, userId"`
	Message string `json:"message,omitempty" example:"upstream generation failed"`
}

// MessageResponseDTO는 단순 메시지 응답 형식을 통일하기 위한 DTO이다.
type MessageResponseDTO struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Case deleted successfully"`
}

// HealthResponseDTO 는 /health 응답이다.
type HealthResponseDTO struct {
	Status string `json:"status" example:"ok"`
	Store  string `json:"store" example:"ok"`
}
