// Package llm 은 생성형 텍스트 API 제공자(google, openai, claude)를 하나의
// Generator 인터페이스 뒤로 숨긴다.
package llm

import (
	"context"
	"errors"
)

var (
	// ErrMissingAPIKey 는 제공자 API 키가 설정되지 않았을 때 반환된다.
	ErrMissingAPIKey = errors.New("llm api key not configured")
	// ErrEmptyResponse 는 응답에 첫 번째 후보/텍스트 파트가 없을 때 반환된다.
	ErrEmptyResponse = errors.New("llm response has no text candidate")
)

// Generator sends a single prompt and returns the model's raw text reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
