package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType 이벤트 타입 정의
type EventType string

const (
	CaseCreated EventType = "case.created"
	CaseDeleted EventType = "case.deleted"
)

const (
	sourceAPI     = "api"
	schemaVersion = "1"
)

// BaseEvent 모든 이벤트의 기본 구조
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// Identified 는 envelope ID 로 쓸 이벤트 ID 를 노출한다.
type Identified interface {
	EventID() string
}

func (b BaseEvent) EventID() string { return b.ID }

func newBase(t EventType) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now().UTC(),
		Source:    sourceAPI,
		Version:   schemaVersion,
	}
}

// CaseCreatedEvent 타임라인 추출 결과가 저장된 뒤 발행된다.
// 같은 caseId 로 덮어쓴 경우에도 다시 발행된다.
type CaseCreatedEvent struct {
	BaseEvent
	UserID     string `json:"user_id"`
	CaseID     string `json:"case_id"`
	Title      string `json:"title"`
	EventCount int    `json:"event_count"`
	FileCount  *int   `json:"file_count,omitempty"`
}

// CaseDeletedEvent 케이스 삭제 요청이 처리된 뒤 발행된다.
type CaseDeletedEvent struct {
	BaseEvent
	UserID string `json:"user_id"`
	CaseID string `json:"case_id"`
}

func NewCaseCreated(userID, caseID, title string, eventCount int, fileCount *int) CaseCreatedEvent {
	return CaseCreatedEvent{
		BaseEvent:  newBase(CaseCreated),
		UserID:     userID,
		CaseID:     caseID,
		Title:      title,
		EventCount: eventCount,
		FileCount:  fileCount,
	}
}

func NewCaseDeleted(userID, caseID string) CaseDeletedEvent {
	return CaseDeletedEvent{
		BaseEvent: newBase(CaseDeleted),
		UserID:    userID,
		CaseID:    caseID,
	}
}
