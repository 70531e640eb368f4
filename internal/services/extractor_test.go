package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextTxtPassthrough(t *testing.T) {
	extractor := NewTextExtractorService()

	content := "Jane Doe\nSenior Engineer at Acme\nSkills: Go, SQL"
	got := extractor.ExtractText(ByteStream([]byte(content)), ".txt")
	assert.Equal(t, content, got)
}

func TestExtractTextTxtInvalidUTF8(t *testing.T) {
	extractor := NewTextExtractorService()

	got := extractor.ExtractText(ByteStream([]byte{0xff, 0xfe, 0xfd}), ".txt")
	assert.Equal(t, "", got)
}

func TestExtractTextUnsupportedExtension(t *testing.T) {
	extractor := NewTextExtractorService()

	assert.Equal(t, "", extractor.ExtractText(ByteStream([]byte("anything")), ".jpg"))
	assert.Equal(t, "", extractor.ExtractText(ByteStream([]byte("anything")), ""))
}

func TestExtractTextExtensionCaseInsensitive(t *testing.T) {
	extractor := NewTextExtractorService()

	got := extractor.ExtractText(ByteStream([]byte("plain content")), ".TXT")
	assert.Equal(t, "plain content", got)
}

func TestExtractTextFromFilePath(t *testing.T) {
	extractor := NewTextExtractorService()

	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("file based content"), 0644))

	got := extractor.ExtractText(FilePath(path), ".txt")
	assert.Equal(t, "file based content", got)
}

func TestExtractTextMissingFile(t *testing.T) {
	extractor := NewTextExtractorService()

	got := extractor.ExtractText(FilePath("/nonexistent/resume.txt"), ".txt")
	assert.Equal(t, "", got)
}

func TestExtractTextCorruptPDF(t *testing.T) {
	extractor := NewTextExtractorService()

	got := extractor.ExtractText(ByteStream([]byte("not a pdf at all")), ".pdf")
	assert.Equal(t, "", got)
}

func TestExtractTextCorruptDocx(t *testing.T) {
	extractor := NewTextExtractorService()

	got := extractor.ExtractText(ByteStream([]byte("not a docx")), ".docx")
	assert.Equal(t, "", got)
}
