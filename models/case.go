package models

import (
	"time"
)

// Event 는 사건 본문에서 추출된 하나의 시간순 법률 이벤트다.
// Date 는 모델이 지시를 따르면 YYYY-MM-DD 형식이지만 검증하지 않는다.
type Event struct {
	Title       string `bson:"title" json:"title"`
	Date        string `bson:"date" json:"date"`
	Description string `bson:"description" json:"description"`
}

// Case represents one persisted timeline analysis
// Collection: cases (keyed by user_id + case_id)
type Case struct {
	CaseID     string    `bson:"case_id" json:"caseId"`
	UserID     string    `bson:"user_id" json:"userId"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploadedAt"`
	Title      string    `bson:"title" json:"title"`
	Events     []Event   `bson:"events" json:"events"`
	TextLength int       `bson:"text_length" json:"textLength"`

	// 파일 업로드 경로에서만 채워진다.
	FileCount *int     `bson:"file_count,omitempty" json:"fileCount,omitempty"`
	FileNames []string `bson:"file_names,omitempty" json:"fileNames,omitempty"`
}

// RecentCaseSummary 는 목록 조회용으로 Case 를 비정규화한 스냅샷이다.
// Collection: recent_cases
type RecentCaseSummary struct {
	CaseID         string    `bson:"case_id" json:"caseId"`
	UserID         string    `bson:"user_id" json:"-"`
	Title          string    `bson:"title" json:"title"`
	UploadedAt     time.Time `bson:"uploaded_at" json:"uploadedAt"`
	EventCount     int       `bson:"event_count" json:"eventCount"`
	FirstEventDate string    `bson:"first_event_date" json:"firstEventDate"`
	FileCount      *int      `bson:"file_count,omitempty" json:"fileCount,omitempty"`
}

// Summary projects the case into its listing snapshot.
func (c *Case) Summary(fallbackDate string) *RecentCaseSummary {
	firstDate := fallbackDate
	if len(c.Events) > 0 && c.Events[0].Date != "" {
		firstDate = c.Events[0].Date
	}
	return &RecentCaseSummary{
		CaseID:         c.CaseID,
		UserID:         c.UserID,
		Title:          c.Title,
		UploadedAt:     c.UploadedAt,
		EventCount:     len(c.Events),
		FirstEventDate: firstDate,
		FileCount:      c.FileCount,
	}
}
