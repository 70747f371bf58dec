package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/certificate-sorter/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []model.Record {
	return []model.Record{
		{
			Kind:     model.KindClassified,
			Employee: "João Souza",
			FileName: "aws.pdf",
			Path:     "colaboradores/João Souza/aws.pdf",
			Vendor:   "AWS",
			Text:     "AWS Certified, \"Solutions\" Architect\nAssociate",
		},
		{
			Kind:     model.KindExcluded,
			Employee: "João Souza",
			FileName: "udemy.png",
			Path:     "colaboradores/João Souza/udemy.png",
		},
		{
			Kind:     model.KindUnsupported,
			Employee: "Ana",
			FileName: "report.xlsx",
			Path:     "colaboradores/Ana/report.xlsx",
		},
	}
}

func TestCSV_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "certificados_encontrados.csv")
	require.NoError(t, NewCSV().Write(path, sampleRecords()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{
		"Classificado", "João Souza", "aws.pdf", "colaboradores/João Souza/aws.pdf", "AWS",
		"AWS Certified, \"Solutions\" Architect\nAssociate",
	}, rows[1])
	assert.Equal(t, []string{"Exclusão", "João Souza", "udemy.png", "colaboradores/João Souza/udemy.png", "", ""}, rows[2])
	assert.Equal(t, "Não Suportado", rows[3][0])
}

func TestCSV_EmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSV().Encode(&buf, nil))
	assert.Equal(t, "Tipo,Funcionario,Arquivo,Caminho,Fabricante,Texto\n", buf.String())
}

func TestCSV_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, NewCSV().Write(path, sampleRecords()))
	require.NoError(t, NewCSV().Write(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Tipo,Funcionario,Arquivo,Caminho,Fabricante,Texto\n", string(data))
}

func TestCSV_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := NewCSV().Write(filepath.Join(blocker, "report.csv"), nil)
	assert.Error(t, err)
}
