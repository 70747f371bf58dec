package pattern

import (
	"strings"

	"github.com/Veraticus/certificate-sorter/internal/model"
)

// Matcher implements Classifier with case-insensitive substring matching.
type Matcher struct {
	table *model.KeywordTable
}

// NewMatcher validates the table and creates a matcher that shares it.
func NewMatcher(table *model.KeywordTable) (*Matcher, error) {
	if err := Validate(table); err != nil {
		return nil, err
	}
	return &Matcher{table: table}, nil
}

// Table returns the keyword table the matcher evaluates.
func (m *Matcher) Table() *model.KeywordTable {
	return m.table
}

// Classify checks exclusions first, then vendors in table order.
func (m *Matcher) Classify(text string) Verdict {
	lowered := strings.ToLower(text)

	if kw, ok := containsAny(lowered, m.table.Exclusions); ok {
		return Verdict{Kind: model.KindExcluded, Keyword: kw}
	}

	for _, vendor := range m.table.Vendors {
		if kw, ok := containsAny(lowered, vendor.Keywords); ok {
			return Verdict{Kind: model.KindClassified, Vendor: vendor.Name, Keyword: kw}
		}
	}

	return Verdict{Kind: model.KindUnclassified}
}

func containsAny(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}
