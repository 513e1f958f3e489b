package dto

import "time"

// SubmitTextRequestDTO 는 POST /extractTimeline 요청 본문이다.
type SubmitTextRequestDTO struct {
	Text   string `json:"text" example:"On 2023-02-10 an FIR was filed..."`
	UserID string `json:"userId" example:"user-123"`
	CaseID string `json:"caseId,omitempty" example:"case_1700000000000_k3j9x0a1b"`
}

// FileUploadDTO 는 base64 로 인코딩된 업로드 파일 하나다.
type FileUploadDTO struct {
	FileName    string `json:"fileName" example:"petition.pdf"`
	FileContent string `json:"fileContent" example:"JVBERi0xLjQK..."`
	FileType    string `json:"fileType,omitempty" example:"application/pdf"`
}

// SubmitFilesRequestDTO 는 POST /processFiles 요청 본문이다.
type SubmitFilesRequestDTO struct {
	Files  []FileUploadDTO `json:"files"`
	UserID string          `json:"userId" example:"user-123"`
	CaseID string          `json:"caseId,omitempty"`
}

// DeleteCaseRequestDTO 는 DELETE /deleteCase 요청 본문이다.
type DeleteCaseRequestDTO struct {
	UserID string `json:"userId" example:"user-123"`
	CaseID string `json:"caseId" example:"case_1700000000000_k3j9x0a1b"`
}

type EventDTO struct {
	Title       string `json:"title" example:"FIR filed"`
	Date        string `json:"date" example:"2023-02-10"`
	Description string `json:"description" example:"Complaint registered at the local police station"`
}

// TimelineResponseDTO 는 submit-text / submit-files 의 성공 응답이다.
type TimelineResponseDTO struct {
	Success bool       `json:"success" example:"true"`
	CaseID  string     `json:"caseId" example:"case_1700000000000_k3j9x0a1b"`
	Events  []EventDTO `json:"events"`
	Message string     `json:"message" example:"Timeline extracted successfully"`
}

type RecentCaseDTO struct {
	ID             string    `json:"id"`
	CaseID         string    `json:"caseId"`
	Title          string    `json:"title"`
	UploadedAt     time.Time `json:"uploadedAt"`
	EventCount     int       `json:"eventCount"`
	FirstEventDate string    `json:"firstEventDate"`
	FileCount      *int      `json:"fileCount,omitempty"`
}

// RecentCasesResponseDTO 는 최신순 최대 5건의 요약 목록이다.
type RecentCasesResponseDTO struct {
	Success bool            `json:"success" example:"true"`
	Cases   []RecentCaseDTO `json:"cases"`
}

type CaseDTO struct {
	ID         string     `json:"id"`
	CaseID     string     `json:"caseId"`
	UserID     string     `json:"userId"`
	Title      string     `json:"title"`
	UploadedAt time.Time  `json:"uploadedAt"`
	Events     []EventDTO `json:"events"`
	TextLength int        `json:"textLength"`
	FileCount  *int       `json:"fileCount,omitempty"`
	FileNames  []string   `json:"fileNames,omitempty"`
}

type CaseResponseDTO struct {
	Success bool    `json:"success" example:"true"`
	Case    CaseDTO `json:"case"`
}
