// Package archive files classified documents under <employee>/<vendor>/<file>.
package archive

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Archiver copies a classified document to its per-employee, per-vendor location.
type Archiver interface {
	// Archive copies src and returns where it was stored. Archiving the same
	// file twice overwrites the earlier copy.
	Archive(ctx context.Context, src, employee, vendor string) (string, error)
}

// Destination returns <root>/<employee>/<vendor>/<base name of src>.
func Destination(root, src, employee, vendor string) (string, error) {
	if err := validateSegment("employee", employee); err != nil {
		return "", err
	}
	if err := validateSegment("vendor", vendor); err != nil {
		return "", err
	}
	return filepath.Join(root, employee, vendor, filepath.Base(src)), nil
}

// validateSegment keeps folder and vendor names from escaping the output root.
func validateSegment(field, value string) error {
	if value == "" || value == "." || value == ".." || strings.ContainsAny(value, `/\`) {
		return fmt.Errorf("invalid %s folder name %q", field, value)
	}
	return nil
}
