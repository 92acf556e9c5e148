package services

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

type DocumentParserService interface {
	ExtractText(data []byte, filename string) (*DocumentContent, error)
	ExtractTextFromFile(filePath string) (*DocumentContent, error)
	SupportedExtension(filename string) bool
}

type DocumentContent struct {
	Text      string
	PageCount int
	Format    string
}

type documentParserService struct{}

func NewDocumentParserService() DocumentParserService {
	return &documentParserService{}
}

func (p *documentParserService) SupportedExtension(filename string) bool {
	return documentFormat(filename) != ""
}

func (p *documentParserService) ExtractTextFromFile(filePath string) (*DocumentContent, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read file: %w", ErrExtractionFailed, err)
	}

	return p.ExtractText(data, filepath.Base(filePath))
}

// ExtractText reads every page of the document in order and returns the
// concatenated text. An empty result is always reported as an error.
func (p *documentParserService) ExtractText(data []byte, filename string) (*DocumentContent, error) {
	var (
		content *DocumentContent
		err     error
	)

	switch documentFormat(filename) {
	case FormatPDF:
		content, err = extractPDF(data)
	case FormatDOCX:
		content, err = extractDOCX(data)
	default:
		return nil, fmt.Errorf("%w: %w: %q", ErrExtractionFailed, ErrUnsupportedDocument, filepath.Ext(filename))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	if strings.TrimSpace(content.Text) == "" {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, ErrNoExtractableText)
	}

	return content, nil
}

func documentFormat(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	default:
		return ""
	}
}

func extractPDF(data []byte) (content *DocumentContent, err error) {
	// The decoder panics on some corrupt inputs.
	defer func() {
		if r := recover(); r != nil {
			content, err = nil, fmt.Errorf("corrupt PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", pageIndex, err)
		}

		textBuilder.WriteString(text)
	}

	return &DocumentContent{
		Text:      textBuilder.String(),
		PageCount: totalPage,
		Format:    FormatPDF,
	}, nil
}

func extractDOCX(data []byte) (*DocumentContent, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	text, err := wordMLText(doc.Editable().GetContent())
	if err != nil {
		return nil, fmt.Errorf("failed to read docx body: %w", err)
	}

	return &DocumentContent{
		Text:      text,
		PageCount: 1,
		Format:    FormatDOCX,
	}, nil
}

// wordMLText flattens WordprocessingML into plain text: runs of w:t are
// joined and every paragraph ends with a newline.
func wordMLText(body string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(body))

	var (
		sb     strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteString("\t")
			case "br":
				sb.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return sb.String(), nil
}

// CleanText collapses runs of spaces and tabs, trims every line and drops
// blank lines.
func CleanText(text string) string {
	var sb strings.Builder
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Join(fields, " "))
	}
	return sb.String()
}
