package services

import (
	"bytes"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// FileInput is a tagged variant over the two ways a document reaches the
// extractor: a path on disk or an in-memory upload. Construct one with
// FilePath or ByteStream.
type FileInput struct {
	path   string
	data   []byte
	isPath bool
}

func FilePath(path string) FileInput {
	return FileInput{path: path, isPath: true}
}

func ByteStream(data []byte) FileInput {
	return FileInput{data: data}
}

type TextExtractorService interface {
	ExtractText(input FileInput, extension string) string
}

type textExtractorService struct{}

func NewTextExtractorService() TextExtractorService {
	return &textExtractorService{}
}

// ExtractText converts document content into plain text. All failure is
// signaled by an empty return value; callers treat empty text as "no
// content". Unsupported extensions are a no-op.
func (t *textExtractorService) ExtractText(input FileInput, extension string) string {
	data := input.data
	if input.isPath {
		var err error
		data, err = os.ReadFile(input.path)
		if err != nil {
			log.Printf("⚠️  Failed to read file %s: %v\n", input.path, err)
			return ""
		}
	}

	switch strings.ToLower(extension) {
	case ".pdf":
		return extractPDFText(data)
	case ".txt":
		if !utf8.Valid(data) {
			log.Println("⚠️  Text file is not valid UTF-8")
			return ""
		}
		return string(data)
	case ".docx":
		return extractDocxText(data)
	default:
		return ""
	}
}

func extractPDFText(data []byte) (text string) {
	// The pdf reader panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️  PDF extraction panicked: %v\n", r)
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.Printf("⚠️  Failed to open PDF: %v\n", err)
		return ""
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Log error but continue with other pages
			continue
		}

		if textBuilder.Len() > 0 {
			textBuilder.WriteString(" ")
		}
		textBuilder.WriteString(pageText)
	}

	return textBuilder.String()
}

func extractDocxText(data []byte) string {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.Printf("⚠️  Failed to parse docx: %v\n", err)
		return ""
	}
	defer doc.Close()

	return doc.Editable().GetContent()
}
