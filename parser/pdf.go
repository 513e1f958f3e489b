package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// kerning 값이 이보다 작으면(천분율, 음수일수록 간격이 넓다) TJ 안에서 단어 경계로 본다.
const tjWordGap = -250

// ParsePDF 는 페이지별 텍스트 아이템을 공백으로, 페이지들을 개행으로 이어 붙인다.
// 텍스트 아이템은 Tj / TJ / ' / " 연산자 하나가 그리는 문자열 단위다.
func ParsePDF(data []byte) (text string, err error) {
	pages, err := pdfPageItems(data)
	if err != nil {
		return "", err
	}
	return joinPDFPages(pages), nil
}

func pdfPageItems(data []byte) (pages [][]string, err error) {
	// ledongthuc/pdf 는 손상된 스트림에서 panic 을 낸다.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	total := r.NumPage()
	pages = make([][]string, 0, total)
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, nil)
			continue
		}
		pages = append(pages, pageTextRuns(p))
	}
	return pages, nil
}

// pageTextRuns 는 content stream 을 순서대로 해석해서 텍스트 표시 연산자마다 아이템 하나를 만든다.
// Page.Content() 는 글리프 단위로 쪼개 주기 때문에 그대로 쓰면 글자 사이에 공백이 끼게 된다.
func pageTextRuns(p pdf.Page) []string {
	encoders := make(map[string]pdf.TextEncoding)
	for _, name := range p.Fonts() {
		encoders[name] = p.Font(name).Encoder()
	}

	var (
		items []string
		enc   pdf.TextEncoding
	)
	decode := func(raw string) string {
		if enc == nil {
			return raw
		}
		return enc.Decode(raw)
	}
	emit := func(s string) {
		if strings.TrimSpace(s) != "" {
			items = append(items, s)
		}
	}

	walk := func(stk *pdf.Stack, op string) {
		args := make([]pdf.Value, stk.Len())
		for i := len(args) - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}

		switch op {
		case "Tf":
			if len(args) != 2 {
				return
			}
			enc = encoders[args[0].Name()]
		case "Tj", "'":
			if len(args) != 1 {
				return
			}
			emit(decode(args[0].RawString()))
		case "\"":
			if len(args) != 3 {
				return
			}
			emit(decode(args[2].RawString()))
		case "TJ":
			if len(args) != 1 {
				return
			}
			var b strings.Builder
			arr := args[0]
			for j := 0; j < arr.Len(); j++ {
				x := arr.Index(j)
				switch x.Kind() {
				case pdf.String:
					b.WriteString(decode(x.RawString()))
				case pdf.Integer, pdf.Real:
					if x.Float64() < tjWordGap {
						b.WriteByte(' ')
					}
				}
			}
			emit(b.String())
		}
	}

	contents := p.V.Key("Contents")
	switch contents.Kind() {
	case pdf.Null:
		return nil
	case pdf.Array:
		for j := 0; j < contents.Len(); j++ {
			pdf.Interpret(contents.Index(j), walk)
		}
	default:
		pdf.Interpret(contents, walk)
	}
	return items
}

func joinPDFPages(pages [][]string) string {
	lines := make([]string, len(pages))
	for i, items := range pages {
		lines[i] = strings.Join(items, " ")
	}
	return strings.Join(lines, "\n")
}
