package extract

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// VerifyContent sniffs the file's magic bytes and fails with
// ReasonContentMismatch when they do not fit the format.
func VerifyContent(path string, format Format) error {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return newError(format, path, ReasonOpen, err)
	}

	if !accepts(format, mt) {
		return newError(format, path, ReasonContentMismatch,
			fmt.Errorf("%w: detected %s", ErrContentMismatch, mt.String()))
	}
	return nil
}

func accepts(format Format, mt *mimetype.MIME) bool {
	switch format {
	case FormatPDF:
		return mt.Is("application/pdf")
	case FormatDOCX:
		// Word files that are not recognised as docx are still zip containers.
		for m := mt; m != nil; m = m.Parent() {
			if m.Is(docxMIME) || m.Is("application/zip") {
				return true
			}
		}
		return false
	case FormatImage:
		return strings.HasPrefix(mt.String(), "image/")
	}
	return false
}
