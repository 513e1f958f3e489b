package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"legal-timeline/cmd/api/dto"
	"legal-timeline/cmd/api/trace"
	"legal-timeline/cmd/internal/logger"
	"legal-timeline/eventbus"
	"legal-timeline/events"
	"legal-timeline/models"
	"legal-timeline/parser"
	"legal-timeline/repositories"
)

// RecentCasesLimit 은 getRecentCases 가 돌려주는 최대 요약 개수다.
const RecentCasesLimit = 5

const publishTimeout = 5 * time.Second

// TimelineExtractor 는 본문 텍스트에서 이벤트 목록을 뽑아낸다 (timeline.Engine).
type TimelineExtractor interface {
	Extract(ctx context.Context, text string) ([]models.Event, error)
}

type CaseService struct {
	repo      repositories.CaseRepository
	extractor TimelineExtractor
	publisher eventbus.Publisher
	topic     string
	newCaseID func() string
}

func NewCaseService(repo repositories.CaseRepository, extractor TimelineExtractor, publisher eventbus.Publisher, topic string) *CaseService {
	if publisher == nil {
		publisher = eventbus.NopPublisher{}
	}
	if topic == "" {
		topic = eventbus.DefaultCaseTopic.Base()
	}
	return &CaseService{
		repo:      repo,
		extractor: extractor,
		publisher: publisher,
		topic:     topic,
		newCaseID: GenerateCaseID,
	}
}

// SubmitText 는 본문 텍스트에서 타임라인을 추출해 저장한다.
func (s *CaseService) SubmitText(ctx context.Context, req dto.SubmitTextRequestDTO) (dto.TimelineResponseDTO, *CaseError) {
	if req.Text == "" || req.UserID == "" {
		return dto.TimelineResponseDTO{}, badRequest(msgMissingTextFields, ErrValidation)
	}
	if strings.TrimSpace(req.Text) == "" {
		return dto.TimelineResponseDTO{}, badRequest(msgEmptyText, ErrValidation)
	}

	return s.analyze(ctx, analysis{
		userID: req.UserID,
		caseID: req.CaseID,
		text:   req.Text,
	})
}

// SubmitFiles 는 업로드된 파일들을 순서대로 텍스트로 바꿔 합친 뒤 타임라인을 추출한다.
// 이름이나 내용이 없는 항목, 디코딩/추출에 실패한 파일은 경고 로그만 남기고 건너뛴다.
func (s *CaseService) SubmitFiles(ctx context.Context, req dto.SubmitFilesRequestDTO) (dto.TimelineResponseDTO, *CaseError) {
	if len(req.Files) == 0 || req.UserID == "" {
		return dto.TimelineResponseDTO{}, badRequest(msgMissingFilesFields, ErrValidation)
	}

	var merged strings.Builder
	fileNames := make([]string, 0, len(req.Files))
	for i, f := range req.Files {
		fileNames = append(fileNames, f.FileName)
		if f.FileName == "" || f.FileContent == "" {
			logger.WarnWithFields("skipping incomplete file entry", trace.Fields(ctx).With(logger.Fields{
				"user_id": req.UserID,
				"index":   i,
			}))
			continue
		}

		text, err := extractFile(f)
		if err != nil {
			logger.WarnWithFields("skipping unreadable file", trace.Fields(ctx).With(logger.Fields{
				"user_id":   req.UserID,
				"file_name": f.FileName,
				"error":     err.Error(),
			}))
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		fmt.Fprintf(&merged, "\n\n--- File: %s ---\n\n%s", f.FileName, text)
	}

	if strings.TrimSpace(merged.String()) == "" {
		return dto.TimelineResponseDTO{}, badRequest(msgNoTextFromFiles, ErrNoText)
	}

	fileCount := len(req.Files)
	return s.analyze(ctx, analysis{
		userID:    req.UserID,
		caseID:    req.CaseID,
		text:      merged.String(),
		fileCount: &fileCount,
		fileNames: fileNames,
	})
}

func extractFile(f dto.FileUploadDTO) (string, error) {
	data, err := decodeBase64(f.FileContent)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", f.FileName, err)
	}
	return parser.ParseFile(data, f.FileName)
}

// decodeBase64 는 패딩 유무와 URL-safe 알파벳을 모두 허용한다.
func decodeBase64(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	var firstErr error
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		data, err := enc.DecodeString(s)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

type analysis struct {
	userID    string
	caseID    string
	text      string
	fileCount *int
	fileNames []string
}

func (s *CaseService) analyze(ctx context.Context, a analysis) (dto.TimelineResponseDTO, *CaseError) {
	trace.BindCase(ctx, a.userID, a.caseID)
	extracted, err := s.extractor.Extract(ctx, a.text)
	if err != nil {
		return dto.TimelineResponseDTO{}, internalError(err)
	}
	if len(extracted) == 0 {
		return dto.TimelineResponseDTO{}, badRequest(msgNoEvents, ErrNoEvents)
	}

	c := &models.Case{
		CaseID:     a.caseID,
		UserID:     a.userID,
		Title:      caseTitle(extracted),
		Events:     extracted,
		TextLength: utf8.RuneCountInString(a.text),
		FileCount:  a.fileCount,
		FileNames:  a.fileNames,
	}
	caseID, err := s.saveCase(ctx, c)
	if err != nil {
		return dto.TimelineResponseDTO{}, internalError(err)
	}
	trace.BindCase(ctx, c.UserID, caseID)

	s.publish(ctx, caseID, events.NewCaseCreated(c.UserID, caseID, c.Title, len(c.Events), c.FileCount))

	return dto.TimelineResponseDTO{
		Success: true,
		CaseID:  caseID,
		Events:  toEventDTOs(extracted),
		Message: msgTimelineExtracted,
	}, nil
}

// ListRecent 는 사용자의 최근 케이스 요약을 최신순으로 최대 RecentCasesLimit 건 돌려준다.
func (s *CaseService) ListRecent(ctx context.Context, userID string) (dto.RecentCasesResponseDTO, *CaseError) {
	if userID == "" {
		return dto.RecentCasesResponseDTO{}, badRequest(msgMissingUserID, ErrValidation)
	}
	trace.BindCase(ctx, userID, "")

	items, err := s.repo.ListRecent(ctx, userID, RecentCasesLimit)
	if err != nil {
		return dto.RecentCasesResponseDTO{}, internalError(fmt.Errorf("%w: list recent: %w", ErrStorage, err))
	}

	cases := make([]dto.RecentCaseDTO, 0, len(items))
	for _, it := range items {
		cases = append(cases, dto.RecentCaseDTO{
			ID:             it.CaseID,
			CaseID:         it.CaseID,
			Title:          it.Title,
			UploadedAt:     it.UploadedAt,
			EventCount:     it.EventCount,
			FirstEventDate: it.FirstEventDate,
			FileCount:      it.FileCount,
		})
	}
	return dto.RecentCasesResponseDTO{Success: true, Cases: cases}, nil
}

func (s *CaseService) GetCase(ctx context.Context, userID, caseID string) (dto.CaseResponseDTO, *CaseError) {
	if userID == "" || caseID == "" {
		return dto.CaseResponseDTO{}, badRequest(msgMissingCaseParams, ErrValidation)
	}
	trace.BindCase(ctx, userID, caseID)

	c, err := s.repo.FindCase(ctx, userID, caseID)
	if errors.Is(err, repositories.ErrNotFound) {
		return dto.CaseResponseDTO{}, notFound()
	}
	if err != nil {
		return dto.CaseResponseDTO{}, internalError(fmt.Errorf("%w: find case: %w", ErrStorage, err))
	}

	return dto.CaseResponseDTO{
		Success: true,
		Case: dto.CaseDTO{
			ID:         c.CaseID,
			CaseID:     c.CaseID,
			UserID:     c.UserID,
			Title:      c.Title,
			UploadedAt: c.UploadedAt,
			Events:     toEventDTOs(c.Events),
			TextLength: c.TextLength,
			FileCount:  c.FileCount,
			FileNames:  c.FileNames,
		},
	}, nil
}

// DeleteCase 는 존재 여부를 확인하지 않고 케이스와 요약을 함께 지운다.
func (s *CaseService) DeleteCase(ctx context.Context, req dto.DeleteCaseRequestDTO) (dto.MessageResponseDTO, *CaseError) {
	if req.UserID == "" || req.CaseID == "" {
		return dto.MessageResponseDTO{}, badRequest(msgMissingDeleteFields, ErrValidation)
	}
	trace.BindCase(ctx, req.UserID, req.CaseID)

	err := s.repo.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteCase(ctx, req.UserID, req.CaseID); err != nil {
			return err
		}
		return s.repo.DeleteRecent(ctx, req.UserID, req.CaseID)
	})
	if err != nil {
		return dto.MessageResponseDTO{}, internalError(fmt.Errorf("%w: delete case: %w", ErrStorage, err))
	}

	s.publish(ctx, req.CaseID, events.NewCaseDeleted(req.UserID, req.CaseID))

	return dto.MessageResponseDTO{Success: true, Message: msgCaseDeleted}, nil
}

// Ping 은 헬스 체크용으로 저장소 연결을 확인한다.
func (s *CaseService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// publish 는 실패해도 요청을 실패시키지 않는다.
// envelope ID 는 payload 의 이벤트 ID 와 같다.
func (s *CaseService) publish(ctx context.Context, caseID string, payload events.Identified) {
	evt, err := eventbus.NewJSONEvent(payload.EventID(), payload)
	if err != nil {
		logger.WarnWithFields("case event encode failed", trace.Fields(ctx).With(logger.Fields{"case_id": caseID, "error": err.Error()}))
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(pubCtx, s.topic, evt); err != nil {
		logger.WarnWithFields("case event publish failed", trace.Fields(ctx).With(logger.Fields{
			"case_id":  caseID,
			"event_id": evt.ID,
			"topic":    s.topic,
			"error":    err.Error(),
		}))
	}
}

func toEventDTOs(in []models.Event) []dto.EventDTO {
	out := make([]dto.EventDTO, 0, len(in))
	for _, e := range in {
		out = append(out, dto.EventDTO{Title: e.Title, Date: e.Date, Description: e.Description})
	}
	return out
}
