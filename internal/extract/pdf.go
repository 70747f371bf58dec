package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDF extracts the embedded text layer and, when enabled, falls back to
// rasterizing and OCR for documents without one.
type PDF struct {
	rasterizer Rasterizer
	ocr        OCR
	textLayer  func(path string) (string, error)
	fallback   bool
}

// NewPDF creates a PDF extractor. The rasterizer and OCR are only used when
// fallback is true.
func NewPDF(rasterizer Rasterizer, ocr OCR, fallback bool) *PDF {
	return &PDF{
		rasterizer: rasterizer,
		ocr:        ocr,
		textLayer:  readTextLayer,
		fallback:   fallback,
	}
}

// Extract implements Extractor.
func (p *PDF) Extract(ctx context.Context, path string) (string, error) {
	text, err := p.textLayer(path)
	if err != nil {
		return "", newError(FormatPDF, path, ReasonDecode, err)
	}

	// A whitespace-only layer counts as empty.
	if strings.TrimSpace(text) != "" || !p.fallback {
		return text, nil
	}

	if p.rasterizer == nil || p.ocr == nil {
		return "", newError(FormatPDF, path, ReasonUnavailable, fmt.Errorf("OCR fallback is not configured"))
	}
	return p.recognize(ctx, path)
}

func (p *PDF) recognize(ctx context.Context, path string) (string, error) {
	dir, err := os.MkdirTemp("", "certsort-pdf-*")
	if err != nil {
		return "", newError(FormatPDF, path, ReasonOCR, err)
	}
	defer os.RemoveAll(dir) //nolint:errcheck // best-effort cleanup of rendered pages

	pages, err := p.rasterizer.Rasterize(ctx, path, dir)
	if err != nil {
		return "", newError(FormatPDF, path, ReasonOCR, err)
	}

	var sb strings.Builder
	for _, page := range pages {
		text, err := p.ocr.Recognize(ctx, page)
		if err != nil {
			return "", newError(FormatPDF, path, ReasonOCR, err)
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func readTextLayer(path string) (text string, err error) {
	// The pdf reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close() //nolint:errcheck // read-only file

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
