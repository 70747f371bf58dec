// Package extract turns certificate documents into plain text.
//
// Documents are routed by extension to one extractor per Format. The
// Dispatcher never fails: a broken document yields empty text and a typed
// *Error so classification can carry on with the rest of the batch.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// Format is the closed set of document kinds the dispatcher knows about.
type Format int

// Supported formats.
const (
	FormatUnsupported Format = iota
	FormatPDF
	FormatDOCX
	FormatImage
)

func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatDOCX:
		return "docx"
	case FormatImage:
		return "image"
	}
	return "unsupported"
}

// Supported reports whether documents of this format can be extracted.
func (f Format) Supported() bool {
	return f != FormatUnsupported
}

var extensions = map[string]Format{
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
	".jpg":  FormatImage,
	".jpeg": FormatImage,
	".png":  FormatImage,
}

// FormatFor maps a path's extension, case-insensitively, to a Format.
func FormatFor(path string) Format {
	if f, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return FormatUnsupported
}

// Extractor produces the text of a single document.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, path string) (string, error)

// Extract calls f.
func (f ExtractorFunc) Extract(ctx context.Context, path string) (string, error) {
	return f(ctx, path)
}

// Result is the outcome of dispatching one document.
// Err is informational; Text is already "" when Err is set.
type Result struct {
	Err    error
	Text   string
	Format Format
}

// Dispatcher routes documents to the extractor registered for their format.
type Dispatcher struct {
	extractors    map[Format]Extractor
	verifyContent bool
}

// NewDispatcher creates an empty dispatcher.
// With verifyContent set, file contents are sniffed before extraction.
func NewDispatcher(verifyContent bool) *Dispatcher {
	return &Dispatcher{
		extractors:    make(map[Format]Extractor),
		verifyContent: verifyContent,
	}
}

// Register sets the extractor for a format.
func (d *Dispatcher) Register(format Format, e Extractor) {
	if !format.Supported() {
		return
	}
	d.extractors[format] = e
}

// Extract dispatches path to its extractor. Unsupported files are returned
// without touching the file. Failures are logged and degrade to empty text.
func (d *Dispatcher) Extract(ctx context.Context, path string) Result {
	format := FormatFor(path)
	if !format.Supported() {
		return Result{Format: format}
	}

	text, err := d.extract(ctx, format, path)
	if err != nil {
		slog.Warn("Failed to extract text",
			"path", path,
			"format", format.String(),
			"reason", string(ReasonOf(err)),
			"error", err)
		return Result{Format: format, Err: err}
	}

	return Result{Format: format, Text: text}
}

func (d *Dispatcher) extract(ctx context.Context, format Format, path string) (text string, err error) {
	extractor, ok := d.extractors[format]
	if !ok {
		return "", newError(format, path, ReasonUnavailable, ErrNoExtractor)
	}

	if d.verifyContent {
		if err := VerifyContent(path, format); err != nil {
			return "", err
		}
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = newError(format, path, ReasonPanic, fmt.Errorf("%v", r))
		}
	}()

	text, err = extractor.Extract(ctx, path)
	if err != nil {
		var extractErr *Error
		if !errors.As(err, &extractErr) {
			err = newError(format, path, ReasonDecode, err)
		}
		return "", err
	}
	return text, nil
}
