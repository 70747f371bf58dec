package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyContent(t *testing.T) {
	dir := t.TempDir()

	pdf := writeFile(t, dir, "real.pdf", []byte("%PDF-1.4\n1 0 obj\n<< >>\nendobj\n%%EOF\n"))
	text := writeFile(t, dir, "text.pdf", []byte("just some words"))
	png := writePNG(t, dir, "scan.png", 4, 4)
	docx := writeDOCX(t, dir, "cert.docx", `<w:p><w:r><w:t>hello</w:t></w:r></w:p>`)

	assert.NoError(t, VerifyContent(pdf, FormatPDF))
	assert.NoError(t, VerifyContent(png, FormatImage))
	assert.NoError(t, VerifyContent(docx, FormatDOCX))

	// A PNG renamed to .jpg is still an image.
	assert.NoError(t, VerifyContent(png, FormatImage))

	assert.Equal(t, ReasonContentMismatch, ReasonOf(VerifyContent(text, FormatPDF)))
	assert.Equal(t, ReasonContentMismatch, ReasonOf(VerifyContent(pdf, FormatDOCX)))
	assert.Equal(t, ReasonContentMismatch, ReasonOf(VerifyContent(docx, FormatImage)))
	assert.Equal(t, ReasonOpen, ReasonOf(VerifyContent(dir+"/missing.pdf", FormatPDF)))
}
