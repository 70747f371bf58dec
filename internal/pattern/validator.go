package pattern

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/certificate-sorter/internal/model"
)

// Validation errors.
var (
	ErrNilTable        = errors.New("keyword table cannot be nil")
	ErrEmptyVendorName = errors.New("vendor name cannot be empty")
	ErrDuplicateVendor = errors.New("duplicate vendor")
	ErrNoKeywords      = errors.New("vendor has no keywords")
	ErrInvalidKeyword  = errors.New("invalid keyword")
)

// Validate ensures the table can be matched deterministically: vendor names
// are unique and every keyword is non-empty and already lowercase.
func Validate(table *model.KeywordTable) error {
	if table == nil {
		return ErrNilTable
	}

	seen := make(map[string]bool, len(table.Vendors))
	for i, vendor := range table.Vendors {
		if strings.TrimSpace(vendor.Name) == "" {
			return fmt.Errorf("%w: vendor at index %d", ErrEmptyVendorName, i)
		}
		if seen[vendor.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateVendor, vendor.Name)
		}
		seen[vendor.Name] = true

		if len(vendor.Keywords) == 0 {
			return fmt.Errorf("%w: %s", ErrNoKeywords, vendor.Name)
		}
		if err := validateKeywords(vendor.Keywords); err != nil {
			return fmt.Errorf("vendor %s: %w", vendor.Name, err)
		}
	}

	if err := validateKeywords(table.Exclusions); err != nil {
		return fmt.Errorf("exclusions: %w", err)
	}
	return nil
}

func validateKeywords(keywords []string) error {
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("%w: empty keyword would match every document", ErrInvalidKeyword)
		}
		if kw != strings.ToLower(kw) {
			return fmt.Errorf("%w: %q must be lowercase", ErrInvalidKeyword, kw)
		}
	}
	return nil
}
