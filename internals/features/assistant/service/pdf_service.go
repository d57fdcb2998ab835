// file: internals/features/assistant/service/pdf_service.go
package service

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/ledongthuc/pdf"
)

const maxPDFSize = 20 << 20 // 20 MiB

// ExtractTextFromPDF reads an uploaded PDF and returns its plain text plus
// the page count. Pages that fail to decode are skipped.
func ExtractTextFromPDF(fh *multipart.FileHeader) (string, int, error) {
	if fh.Size > maxPDFSize {
		return "", 0, fmt.Errorf("pdf exceeds the %d MiB limit", maxPDFSize>>20)
	}

	f, err := fh.Open()
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxPDFSize+1))
	if err != nil {
		return "", 0, err
	}

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", 0, fmt.Errorf("pdf open: %w", err)
	}

	pages := reader.NumPage()
	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteByte('\n')
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", pages, fmt.Errorf("pdf contains no extractable text")
	}
	return out, pages, nil
}
