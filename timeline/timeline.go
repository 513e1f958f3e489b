// Package timeline 은 사건 본문을 생성형 텍스트 API 에 보내고, 응답에 포함된
// JSON 배열을 찾아 정규화된 이벤트 목록으로 바꾼다.
package timeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"legal-timeline/llm"
	"legal-timeline/models"
)

var (
	ErrConfiguration     = errors.New("generative-text api key not configured")
	ErrUpstream          = errors.New("generative-text api call failed")
	ErrMalformedResponse = errors.New("no valid JSON array found in model response")
)

const (
	DefaultMaxInputChars = 12000

	PlaceholderTitle       = "Untitled"
	PlaceholderDate        = "Unknown"
	PlaceholderDescription = ""
)

const promptTemplate = `Extract chronological legal events from the given case text.
Return ONLY valid JSON in the format:
[
  {
    "title": "Filed FIR against the accused",
    "date": "YYYY-MM-DD",
    "description": "Formal complaint was registered..."
  }
]

Case text:
%s

Ensure no extra text, comments, or explanations. Reply with only a valid JSON array.`

type Engine struct {
	gen           llm.Generator
	maxInputChars int
}

// New 는 gen 이 nil 이면 (API 키 미설정) 모든 호출에서 ErrConfiguration 을 반환하는 엔진을 만든다.
func New(gen llm.Generator, maxInputChars int) *Engine {
	if maxInputChars <= 0 {
		maxInputChars = DefaultMaxInputChars
	}
	return &Engine{gen: gen, maxInputChars: maxInputChars}
}

// Extract 는 text 를 잘라 프롬프트를 만들고 모델을 한 번 호출한 뒤 이벤트를 파싱한다.
// 빈 목록도 정상 반환이며, 0건을 에러로 볼지는 호출자가 결정한다.
func (e *Engine) Extract(ctx context.Context, text string) ([]models.Event, error) {
	if e.gen == nil {
		return nil, ErrConfiguration
	}

	raw, err := e.gen.Generate(ctx, BuildPrompt(Truncate(text, e.maxInputChars)))
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return ParseEvents(raw)
}

// BuildPrompt embeds the case text into the fixed extraction instruction.
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}

// Truncate returns s truncated to max runes.
func Truncate(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max])
}

// ParseEvents 는 응답의 첫 '[' 부터 마지막 ']' 까지를 JSON 배열로 파싱한다.
// 객체가 아닌 원소는 빈 객체로 취급해 placeholder 로 채운다.
func ParseEvents(raw string) ([]models.Event, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end < start {
		return nil, ErrMalformedResponse
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw[start:end+1]), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	events := make([]models.Event, 0, len(items))
	for _, item := range items {
		var obj map[string]any
		if err := json.Unmarshal(item, &obj); err != nil {
			obj = nil
		}
		events = append(events, models.Event{
			Title:       field(obj, "title", PlaceholderTitle),
			Date:        field(obj, "date", PlaceholderDate),
			Description: field(obj, "description", PlaceholderDescription),
		})
	}
	return events, nil
}

func field(obj map[string]any, key, placeholder string) string {
	switch v := obj[key].(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		if v != 0 {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	case bool:
		if v {
			return strconv.FormatBool(v)
		}
	}
	return placeholder
}
