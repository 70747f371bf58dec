package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local copies documents into a directory tree on disk.
type Local struct {
	root string
}

// NewLocal creates an archiver rooted at root.
func NewLocal(root string) *Local {
	return &Local{root: root}
}

// Archive implements Archiver. Missing directories are created; an existing
// copy is replaced. Permissions and modification time are preserved.
func (l *Local) Archive(_ context.Context, src, employee, vendor string) (string, error) {
	dest, err := Destination(l.root, src, employee, vendor)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := copyFile(src, dest); err != nil {
		return "", err
	}
	return dest, nil
}

func copyFile(src, dest string) (err error) {
	in, err := os.Open(src) //nolint:gosec // src comes from the scanned tree
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close() //nolint:errcheck // read-only file

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()) //nolint:gosec // dest is built by Destination
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close destination: %w", closeErr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", filepath.Base(src), err)
	}

	if err := out.Chmod(info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Chtimes(dest, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("failed to set modification time: %w", err)
	}
	return nil
}
