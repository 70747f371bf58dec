// Package model defines the core domain models used throughout the application.
package model

import "time"

// Kind indicates the outcome of processing a single document.
type Kind string

// Classification kinds.
const (
	KindClassified   Kind = "CLASSIFIED"
	KindExcluded     Kind = "EXCLUDED"
	KindUnclassified Kind = "UNCLASSIFIED"
	KindUnsupported  Kind = "UNSUPPORTED"
)

// Kinds lists every classification kind in report order.
var Kinds = []Kind{KindClassified, KindExcluded, KindUnclassified, KindUnsupported}

// Label returns the label written to the report's Tipo column.
func (k Kind) Label() string {
	switch k {
	case KindClassified:
		return "Classificado"
	case KindExcluded:
		return "Exclusão"
	case KindUnclassified:
		return "Não Classificado"
	case KindUnsupported:
		return "Não Suportado"
	}
	return string(k)
}

// IsValid reports whether k is one of the known kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindClassified, KindExcluded, KindUnclassified, KindUnsupported:
		return true
	}
	return false
}

// Record is the outcome of processing one document.
// Vendor and Text are only set when Kind is KindClassified.
type Record struct {
	Kind     Kind
	Employee string
	FileName string
	Path     string
	Vendor   string
	Text     string
}

// Document is a candidate file found while walking the input tree.
type Document struct {
	Path     string
	Employee string
}

// BatchResult is everything produced by one scan.
type BatchResult struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Stats      *BatchStats
	Records    []Record
}

// Run is a persisted scan summary.
type Run struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Stats      *BatchStats
	ID         string
	Root       string
	OutputDir  string
	ReportPath string
}
