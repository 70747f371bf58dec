package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Veraticus/certificate-sorter/internal/extract"
	"github.com/Veraticus/certificate-sorter/internal/model"
	"github.com/Veraticus/certificate-sorter/internal/pattern"
	"github.com/stretchr/testify/require"
)

// fakeExtractor returns canned text keyed by file name.
type fakeExtractor struct {
	texts     map[string]string
	onExtract func(path string)
	calls     []string
	mu        sync.Mutex
}

func (f *fakeExtractor) Extract(_ context.Context, path string) extract.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, path)
	if f.onExtract != nil {
		f.onExtract(path)
	}
	return extract.Result{
		Format: extract.FormatFor(path),
		Text:   f.texts[filepath.Base(path)],
	}
}

type archiveCall struct {
	src      string
	employee string
	vendor   string
}

type fakeArchiver struct {
	err   error
	calls []archiveCall
}

func (f *fakeArchiver) Archive(_ context.Context, src, employee, vendor string) (string, error) {
	f.calls = append(f.calls, archiveCall{src: src, employee: employee, vendor: vendor})
	if f.err != nil {
		return "", f.err
	}
	return filepath.Join("out", employee, vendor, filepath.Base(src)), nil
}

type fakeProgress struct {
	total    int
	advanced int
	finished bool
}

func (f *fakeProgress) Start(total int) { f.total = total }
func (f *fakeProgress) Advance()        { f.advanced++ }
func (f *fakeProgress) Finish()         { f.finished = true }

var errDiskFull = errors.New("disk full")

func newMatcher(t *testing.T) *pattern.Matcher {
	t.Helper()
	m, err := pattern.NewMatcher(model.DefaultKeywordTable())
	require.NoError(t, err)
	return m
}

// writeTree creates files below root. Keys are slash separated relative paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}
