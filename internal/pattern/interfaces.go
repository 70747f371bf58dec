// Package pattern classifies extracted document text by keyword matching.
package pattern

import "github.com/Veraticus/certificate-sorter/internal/model"

// Classifier decides the kind of a document from its text.
type Classifier interface {
	// Classify returns the verdict for text. It never fails.
	Classify(text string) Verdict
}

// Verdict is the outcome of classifying a document's text.
// Vendor is set only when Kind is model.KindClassified.
type Verdict struct {
	Kind    model.Kind
	Vendor  string
	Keyword string
}
