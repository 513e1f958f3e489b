package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"legal-timeline/models"
	"legal-timeline/timeline"
)

// UntitledCase 는 이벤트가 없을 때 쓰는 케이스 제목이다.
const UntitledCase = "Untitled Case"

const (
	caseIDSuffixLen = 9
	base36Alphabet  = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// GenerateCaseID 는 case_<unix millis>_<base36 9자리> 형식의 ID 를 만든다.
// 저장소에 중복 여부를 확인하지 않는다.
func GenerateCaseID() string {
	var sb strings.Builder
	sb.WriteString("case_")
	sb.WriteString(strconv.FormatInt(time.Now().UnixMilli(), 10))
	sb.WriteByte('_')
	for range caseIDSuffixLen {
		sb.WriteByte(base36Alphabet[rand.IntN(len(base36Alphabet))])
	}
	return sb.String()
}

func caseTitle(events []models.Event) string {
	if len(events) == 0 || events[0].Title == "" {
		return UntitledCase
	}
	return events[0].Title
}

// saveCase 는 Case 를 먼저, 요약을 나중에 쓴다. 저장소가 지원하면 두 쓰기는 하나의
// 트랜잭션으로 묶인다. 반환값은 실제로 사용된 caseId 다.
func (s *CaseService) saveCase(ctx context.Context, c *models.Case) (string, error) {
	if c.CaseID == "" {
		c.CaseID = s.newCaseID()
	}
	if c.Title == "" {
		c.Title = caseTitle(c.Events)
	}

	err := s.repo.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.UpsertCase(ctx, c); err != nil {
			return fmt.Errorf("write case: %w", err)
		}
		if err := s.repo.UpsertRecent(ctx, c.Summary(timeline.PlaceholderDate)); err != nil {
			return fmt.Errorf("write recent summary: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return c.CaseID, nil
}
