package source

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/ManojPokuru/course-creator-plugin/internal/domain"
)

// DefaultMaxBytes bounds uploaded reference material.
const DefaultMaxBytes = 10 * 1024 * 1024

// minExtractedChars is the shortest text accepted from a PDF; anything less
// usually means a scanned document without a text layer.
const minExtractedChars = 50

// Extractor turns uploaded reference material into plain text for the
// structure prompt.
type Extractor struct {
	maxBytes int64
	logger   *zap.Logger
}

func NewExtractor(maxBytes int64, logger *zap.Logger) *Extractor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{maxBytes: maxBytes, logger: logger}
}

// FromPDF reads a whole PDF document and returns its text, page by page.
func (e *Extractor) FromPDF(r io.Reader) (string, error) {
	content, err := io.ReadAll(io.LimitReader(r, e.maxBytes+1))
	if err != nil {
		return "", domain.NewSourceMaterialError("failed to read source PDF", err)
	}
	if int64(len(content)) > e.maxBytes {
		return "", domain.NewSourceMaterialError(fmt.Sprintf("source PDF exceeds %d bytes", e.maxBytes), nil)
	}
	return e.extract(content)
}

// FromText normalizes pasted reference text.
func (e *Extractor) FromText(text string) (string, error) {
	if int64(len(text)) > e.maxBytes {
		return "", domain.NewSourceMaterialError(fmt.Sprintf("source text exceeds %d bytes", e.maxBytes), nil)
	}
	return strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n")), nil
}

func (e *Extractor) extract(content []byte) (text string, err error) {
	// The PDF parser panics on some malformed object streams.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = domain.NewSourceMaterialError("failed to parse source PDF", fmt.Errorf("%v", r))
		}
	}()

	if len(content) == 0 {
		return "", domain.NewSourceMaterialError("source PDF is empty", nil)
	}
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		return "", domain.NewSourceMaterialError("source file is not a PDF", nil)
	}
	content = trimTrailingGarbage(content)

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", domain.NewSourceMaterialError("failed to parse source PDF", err)
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return "", domain.NewSourceMaterialError("source PDF has no pages", nil)
	}

	var sb strings.Builder
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			text, plainErr := page.GetPlainText(nil)
			if plainErr != nil {
				e.logger.Debug("Skipping unreadable PDF page", zap.Int("page", i), zap.Error(plainErr))
				continue
			}
			sb.WriteString(text)
			sb.WriteString("\n\n")
			continue
		}
		for _, row := range rows {
			var line strings.Builder
			for _, word := range row.Content {
				line.WriteString(word.S)
			}
			if s := strings.TrimSpace(line.String()); s != "" {
				sb.WriteString(s)
				sb.WriteString("\n")
			}
		}
		sb.WriteString("\n")
	}

	text = strings.TrimSpace(sb.String())
	if len(text) < minExtractedChars {
		return "", domain.NewSourceMaterialError(
			fmt.Sprintf("insufficient text extracted from PDF (%d characters); scanned documents are not supported", len(text)), nil)
	}

	e.logger.Info("Extracted reference material", zap.Int("pages", numPages), zap.Int("chars", len(text)))
	return text, nil
}

// trimTrailingGarbage cuts data appended after the last %%EOF marker, which
// is common for PDFs saved from web pages.
func trimTrailingGarbage(content []byte) []byte {
	marker := []byte("%%EOF")
	last := bytes.LastIndex(content, marker)
	if last == -1 {
		return content
	}
	end := last + len(marker)
	for end < len(content) && (content[end] == '\n' || content[end] == '\r') {
		end++
	}
	return content[:end]
}
