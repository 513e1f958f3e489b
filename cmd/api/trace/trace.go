package trace

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"legal-timeline/cmd/internal/logger"
)

type scopeKey struct{}

// Scope 는 inbound 요청 하나의 추적 정보다.
// span 0 은 inbound 요청 자체이고 LLM 같은 outbound 호출마다 1, 2, 3 ... 으로 증가한다.
// 서비스가 처리 중인 케이스를 BindCase 로 기록하면 완료 로그와 outbound 로그에 같이 남는다.
type Scope struct {
	RequestID string
	spans     atomic.Int64

	mu     sync.RWMutex
	userID string
	caseID string
}

func NewRequestID() string {
	return uuid.NewString()
}

// Begin 은 requestID 로 새 Scope 를 만들어 ctx 에 넣는다.
func Begin(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, scopeKey{}, &Scope{RequestID: requestID})
}

func scopeFrom(ctx context.Context) *Scope {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(scopeKey{}).(*Scope)
	return s
}

func RequestID(ctx context.Context) string {
	if s := scopeFrom(ctx); s != nil {
		return s.RequestID
	}
	return ""
}

// SpanID 는 현재 span 번호다. 증가시키지 않는다.
func SpanID(ctx context.Context) string {
	s := scopeFrom(ctx)
	if s == nil {
		return "0"
	}
	return strconv.FormatInt(s.spans.Load(), 10)
}

// NextSpan 은 span 을 하나 올리고 (requestID, spanID) 를 돌려준다.
// 요청 밖(배치, 테스트)에서 호출되면 새 Request ID 와 span 1 이다.
func NextSpan(ctx context.Context) (string, string) {
	s := scopeFrom(ctx)
	if s == nil {
		return NewRequestID(), "1"
	}
	return s.RequestID, strconv.FormatInt(s.spans.Add(1), 10)
}

// BindCase 는 현재 요청이 다루는 사용자와 케이스를 기록한다. caseID 는 비어 있을 수 있다.
func BindCase(ctx context.Context, userID, caseID string) {
	s := scopeFrom(ctx)
	if s == nil {
		return
	}
	s.mu.Lock()
	s.userID, s.caseID = userID, caseID
	s.mu.Unlock()
}

// Fields 는 로그에 붙일 추적 필드다. 값이 없는 키는 넣지 않는다.
func Fields(ctx context.Context) logger.Fields {
	s := scopeFrom(ctx)
	if s == nil {
		return logger.Fields{}
	}
	fields := logger.Fields{
		"request_id": s.RequestID,
		"span_id":    strconv.FormatInt(s.spans.Load(), 10),
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.userID != "" {
		fields["user_id"] = s.userID
	}
	if s.caseID != "" {
		fields["case_id"] = s.caseID
	}
	return fields
}
