package engine

import (
	"context"

	"github.com/Veraticus/certificate-sorter/internal/extract"
)

// Extractor turns a document into text. Failures are reported in the
// result and never stop processing.
type Extractor interface {
	Extract(ctx context.Context, path string) extract.Result
}

// Progress receives batch progress notifications.
type Progress interface {
	Start(total int)
	Advance()
	Finish()
}

type noopProgress struct{}

func (noopProgress) Start(int) {}
func (noopProgress) Advance()  {}
func (noopProgress) Finish()   {}
