package extract

import (
	"errors"
	"fmt"
)

// Reason classifies why an extraction failed.
type Reason string

// Failure reasons.
const (
	ReasonOpen            Reason = "open"
	ReasonDecode          Reason = "decode"
	ReasonOCR             Reason = "ocr"
	ReasonContentMismatch Reason = "content_mismatch"
	ReasonUnavailable     Reason = "unavailable"
	ReasonPanic           Reason = "panic"
)

var (
	// ErrContentMismatch indicates the file's bytes do not match its extension.
	ErrContentMismatch = errors.New("content does not match extension")
	// ErrNoExtractor indicates no extractor is registered for a supported format.
	ErrNoExtractor = errors.New("no extractor registered")
	// ErrNoPages indicates rasterization produced no page images.
	ErrNoPages = errors.New("no pages rendered")
)

// Error is a typed extraction failure.
type Error struct {
	Err    error
	Path   string
	Format Format
	Reason Reason
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract %s %s: %s: %v", e.Format, e.Path, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(format Format, path string, reason Reason, err error) *Error {
	return &Error{Format: format, Path: path, Reason: reason, Err: err}
}

// ReasonOf returns the failure reason carried by err, or "" if err is not an extraction error.
func ReasonOf(err error) Reason {
	var extractErr *Error
	if errors.As(err, &extractErr) {
		return extractErr.Reason
	}
	return ""
}
