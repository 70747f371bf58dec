package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingExtractor struct {
	err   error
	text  string
	calls []string
}

func (c *countingExtractor) Extract(_ context.Context, path string) (string, error) {
	c.calls = append(c.calls, path)
	return c.text, c.err
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"cert.pdf", FormatPDF},
		{"cert.PDF", FormatPDF},
		{"cert.Pdf", FormatPDF},
		{"dir/cert.docx", FormatDOCX},
		{"scan.JPG", FormatImage},
		{"scan.jpeg", FormatImage},
		{"scan.png", FormatImage},
		{"report.xlsx", FormatUnsupported},
		{"notes.txt", FormatUnsupported},
		{"legacy.doc", FormatUnsupported},
		{"noext", FormatUnsupported},
		{"archive.pdf.zip", FormatUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFor(tt.path))
		})
	}
}

func TestDispatcher_RoutesCaseInsensitively(t *testing.T) {
	pdf := &countingExtractor{text: "pdf text"}
	d := NewDispatcher(false)
	d.Register(FormatPDF, pdf)

	for _, path := range []string{"a.PDF", "b.Pdf", "c.pdf"} {
		res := d.Extract(context.Background(), path)
		assert.Equal(t, FormatPDF, res.Format)
		assert.Equal(t, "pdf text", res.Text)
		assert.NoError(t, res.Err)
	}
	assert.Equal(t, []string{"a.PDF", "b.Pdf", "c.pdf"}, pdf.calls)
}

func TestDispatcher_UnsupportedSkipsExtractors(t *testing.T) {
	all := &countingExtractor{text: "x"}
	d := NewDispatcher(true)
	d.Register(FormatPDF, all)
	d.Register(FormatDOCX, all)
	d.Register(FormatImage, all)

	for _, path := range []string{"notes.txt", "sheet.xls", "report.xlsx", "/does/not/exist.bin"} {
		res := d.Extract(context.Background(), path)
		assert.Equal(t, FormatUnsupported, res.Format)
		assert.Empty(t, res.Text)
		assert.NoError(t, res.Err)
	}
	assert.Empty(t, all.calls)
}

func TestDispatcher_FailureDegradesToEmptyText(t *testing.T) {
	d := NewDispatcher(false)
	d.Register(FormatDOCX, &countingExtractor{text: "partial", err: errors.New("bad zip")})

	res := d.Extract(context.Background(), "cv.docx")
	assert.Equal(t, FormatDOCX, res.Format)
	assert.Empty(t, res.Text)
	require.Error(t, res.Err)
	assert.Equal(t, ReasonDecode, ReasonOf(res.Err))
	assert.Contains(t, res.Err.Error(), "bad zip")
}

func TestDispatcher_KeepsTypedReason(t *testing.T) {
	d := NewDispatcher(false)
	d.Register(FormatImage, ExtractorFunc(func(_ context.Context, path string) (string, error) {
		return "", newError(FormatImage, path, ReasonOCR, errors.New("tesseract missing"))
	}))

	res := d.Extract(context.Background(), "scan.png")
	assert.Equal(t, ReasonOCR, ReasonOf(res.Err))
}

func TestDispatcher_RecoversPanics(t *testing.T) {
	d := NewDispatcher(false)
	d.Register(FormatPDF, ExtractorFunc(func(context.Context, string) (string, error) {
		panic("xref table corrupt")
	}))

	res := d.Extract(context.Background(), "broken.pdf")
	assert.Empty(t, res.Text)
	assert.Equal(t, ReasonPanic, ReasonOf(res.Err))
}

func TestDispatcher_MissingExtractor(t *testing.T) {
	d := NewDispatcher(false)

	res := d.Extract(context.Background(), "cert.pdf")
	assert.Equal(t, ReasonUnavailable, ReasonOf(res.Err))
	assert.ErrorIs(t, res.Err, ErrNoExtractor)
}

func TestDispatcher_VerifiesContent(t *testing.T) {
	dir := t.TempDir()
	fake := writeFile(t, dir, "fake.pdf", []byte("<html><body>not a pdf</body></html>"))

	pdf := &countingExtractor{text: "never"}
	d := NewDispatcher(true)
	d.Register(FormatPDF, pdf)

	res := d.Extract(context.Background(), fake)
	assert.Empty(t, res.Text)
	assert.Equal(t, ReasonContentMismatch, ReasonOf(res.Err))
	assert.ErrorIs(t, res.Err, ErrContentMismatch)
	assert.Empty(t, pdf.calls)
}

func TestDispatcher_RegisterIgnoresUnsupported(t *testing.T) {
	d := NewDispatcher(false)
	d.Register(FormatUnsupported, &countingExtractor{})
	assert.Empty(t, d.extractors)
}
