package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	documentPart = "word/document.xml"
	wordNS       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

// DOCX extracts paragraph text from Word documents, one line per paragraph.
type DOCX struct{}

// NewDOCX creates a DOCX extractor.
func NewDOCX() *DOCX {
	return &DOCX{}
}

// Extract implements Extractor.
func (d *DOCX) Extract(_ context.Context, path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", newError(FormatDOCX, path, ReasonOpen, err)
	}
	defer zr.Close() //nolint:errcheck // read-only archive

	for _, f := range zr.File {
		if f.Name != documentPart {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", newError(FormatDOCX, path, ReasonOpen, err)
		}
		defer rc.Close() //nolint:errcheck // read-only entry

		text, err := paragraphs(rc)
		if err != nil {
			return "", newError(FormatDOCX, path, ReasonDecode, err)
		}
		return text, nil
	}

	return "", newError(FormatDOCX, path, ReasonDecode, fmt.Errorf("missing %s", documentPart))
}

// paragraphs joins the text of the body's top-level w:p elements with newlines.
// Paragraphs inside tables, text boxes and other containers are not read.
func paragraphs(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		out    []string
		stack  []xml.Name
		sb     strings.Builder
		top    = -1 // stack index of the open top-level paragraph
		nested int
		inText bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			parentIsBody := len(stack) > 0 && stack[len(stack)-1] == xml.Name{Space: wordNS, Local: "body"}
			stack = append(stack, t.Name)
			if t.Name.Space != wordNS {
				continue
			}

			if t.Name.Local == "p" {
				switch {
				case top < 0 && parentIsBody:
					top = len(stack) - 1
					sb.Reset()
				case top >= 0:
					nested++
				}
				continue
			}
			if top < 0 || nested > 0 {
				continue
			}

			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if t.Name.Space != wordNS {
				continue
			}

			switch t.Name.Local {
			case "p":
				switch {
				case nested > 0:
					nested--
				case top >= 0 && top == len(stack):
					out = append(out, sb.String())
					top = -1
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText && top >= 0 && nested == 0 {
				sb.Write(t)
			}
		}
	}

	return strings.Join(out, "\n"), nil
}
