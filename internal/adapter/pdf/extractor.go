package pdf

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"cvrank/internal/domain"
)

// Extractor reads the plain text of PDF files.
type Extractor struct {
	logger *zap.Logger
}

func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Extract returns the text of every page joined by a single space. Pages
// without extractable text contribute an empty string.
func (e *Extractor) Extract(path string) (text string, err error) {
	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = domain.NewExtractionError(path, fmt.Errorf("pdf parser: %v", r))
		}
	}()

	f, r, err := pdf.Open(path)
	if f != nil {
		defer f.Close()
	}
	if err != nil {
		return "", domain.NewExtractionError(path, err)
	}

	total := r.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", domain.NewExtractionError(path, fmt.Errorf("page %d: %w", i, err))
		}
		pages = append(pages, content)
	}

	text = strings.Join(pages, " ")
	e.logger.Debug("extracted text",
		zap.String("path", path),
		zap.Int("pages", total),
		zap.Int("bytes", len(text)),
	)

	return text, nil
}
