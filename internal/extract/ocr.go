package extract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// OCR recognises the text in an image file.
type OCR interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// Rasterizer renders every page of a PDF as an image inside outDir and
// returns the image paths in page order.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdfPath, outDir string) ([]string, error)
}

// Tesseract runs the tesseract command line tool.
type Tesseract struct {
	Binary   string
	Language string
}

// NewTesseract creates a tesseract runner. An empty binary means "tesseract" on PATH.
func NewTesseract(binary, language string) *Tesseract {
	if binary == "" {
		binary = "tesseract"
	}
	return &Tesseract{Binary: binary, Language: language}
}

// Recognize returns the text tesseract prints for imagePath.
func (t *Tesseract) Recognize(ctx context.Context, imagePath string) (string, error) {
	args := []string{imagePath, "stdout"}
	if t.Language != "" {
		args = append(args, "-l", t.Language)
	}

	out, err := run(ctx, t.Binary, args...)
	if err != nil {
		return "", err
	}
	return out, nil
}

// Poppler rasterizes PDFs with pdftoppm.
type Poppler struct {
	Binary string
	DPI    int
}

// NewPoppler creates a pdftoppm runner. An empty binary means "pdftoppm" on PATH.
func NewPoppler(binary string, dpi int) *Poppler {
	if binary == "" {
		binary = "pdftoppm"
	}
	if dpi <= 0 {
		dpi = 200
	}
	return &Poppler{Binary: binary, DPI: dpi}
}

// Rasterize writes one PNG per page into outDir.
func (p *Poppler) Rasterize(ctx context.Context, pdfPath, outDir string) ([]string, error) {
	prefix := filepath.Join(outDir, "page")
	if _, err := run(ctx, p.Binary, "-r", strconv.Itoa(p.DPI), "-png", pdfPath, prefix); err != nil {
		return nil, err
	}

	pages, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to list rendered pages: %w", err)
	}
	if len(pages) == 0 {
		return nil, ErrNoPages
	}

	// pdftoppm zero-pads page numbers to a common width.
	sort.Strings(pages)
	return pages, nil
}

func run(ctx context.Context, binary string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s failed: %w: %s", binary, err, msg)
		}
		return "", fmt.Errorf("%s failed: %w", binary, err)
	}
	return stdout.String(), nil
}
