package engine

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/certificate-sorter/internal/model"
)

// Walk lists every file below root in lexical order. A file's employee is
// the name of the directory that directly contains it. Paths in skip (and
// everything below them) are left out; unreadable directories are logged
// and skipped.
func Walk(root string, skip ...string) ([]model.Document, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input %s is not a directory", root)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve input directory: %w", err)
	}
	rootDir := filepath.Clean(root)
	rootName := filepath.Base(absRoot)

	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		if s == "" {
			continue
		}
		if abs, err := filepath.Abs(s); err == nil {
			skipped[abs] = true
		}
	}

	var docs []model.Document
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			slog.Warn("Skipping unreadable path", "path", path, "error", walkErr)
			return nil
		}

		if len(skipped) > 0 {
			if abs, err := filepath.Abs(path); err == nil && skipped[abs] {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() || !isFile(path, d) {
			return nil
		}

		dir := filepath.Dir(path)
		employee := filepath.Base(dir)
		if dir == rootDir {
			employee = rootName
		}

		docs = append(docs, model.Document{Path: path, Employee: employee})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return docs, nil
}

// isFile accepts regular files and symlinks that resolve to one.
func isFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
