package main

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/certificate-sorter/internal/config"
	"github.com/Veraticus/certificate-sorter/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	settings *config.Settings
	table    *model.KeywordTable
	root     string
	out      string
	report   string
	db       string
}

func newTestEnv(t *testing.T, overrides map[string]any) *testEnv {
	t.Helper()

	root := t.TempDir()
	work := t.TempDir()
	env := &testEnv{
		root:   root,
		out:    filepath.Join(work, "sorted"),
		report: filepath.Join(work, "reports", "certificados.csv"),
		db:     filepath.Join(work, "history.db"),
	}

	v := viper.New()
	config.SetDefaults(v)
	v.Set("scan.root", env.root)
	v.Set("output.dir", env.out)
	v.Set("report.path", env.report)
	v.Set("database.path", env.db)
	v.Set("progress.enabled", false)
	for k, val := range overrides {
		v.Set(k, val)
	}

	settings, table, err := loadSettings(v)
	require.NoError(t, err)
	env.settings = settings
	env.table = table
	return env
}

// writeDOCX writes a minimal Word document with one paragraph of text.
func writeDOCX(t *testing.T, path, text string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))

	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	parts := []struct{ name, body string }{
		{
			name: "[Content_Types].xml",
			body: `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`,
		},
		{
			name: "word/document.xml",
			body: `<?xml version="1.0" encoding="UTF-8"?>` +
				`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
				`<w:p><w:r><w:t>` + text + `</w:t></w:r></w:p>` +
				`</w:body></w:document>`,
		},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(part.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func writePlain(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
