// Package parser 는 업로드된 파일 바이트를 평문 텍스트로 변환한다.
// 확장자(소문자)로만 포맷을 판별한다: txt, pdf, docx.
package parser

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrExtractionFailed  = errors.New("failed to extract text")
)

type Format string

const (
	FormatTXT  Format = "txt"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Extension returns the lower-cased text after the last dot of the file name.
// A name without a dot is treated as its own extension.
func Extension(fileName string) string {
	if idx := strings.LastIndex(fileName, "."); idx >= 0 {
		return strings.ToLower(fileName[idx+1:])
	}
	return strings.ToLower(fileName)
}

// Detect returns the document format based on file extension.
func Detect(fileName string) (Format, error) {
	ext := Extension(fileName)
	switch Format(ext) {
	case FormatTXT, FormatPDF, FormatDOCX:
		return Format(ext), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// ParseFile 은 파일 이름의 확장자에 따라 알맞은 추출기를 호출한다.
//   - 지원하지 않는 확장자: ErrUnsupportedFormat
//   - 라이브러리 오류: ErrExtractionFailed (파일 이름과 원인 포함)
func ParseFile(data []byte, fileName string) (string, error) {
	format, err := Detect(fileName)
	if err != nil {
		return "", err
	}

	var text string
	switch format {
	case FormatTXT:
		text = ParseText(data)
	case FormatPDF:
		text, err = ParsePDF(data)
	case FormatDOCX:
		text, err = ParseDOCX(data)
	}
	if err != nil {
		return "", fmt.Errorf("%w from %s: %w", ErrExtractionFailed, fileName, err)
	}
	return text, nil
}

// ParseText decodes the buffer as UTF-8; invalid sequences become U+FFFD.
func ParseText(data []byte) string {
	return strings.ToValidUTF8(string(data), "�")
}
