package archive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "colaboradores", "Maria Silva")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	path := filepath.Join(dir, "aws-saa.pdf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
	return path
}

func TestLocal_Archive(t *testing.T) {
	src := writeSource(t, "%PDF-1.4 aws")
	modTime := time.Date(2023, 5, 17, 10, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, modTime, modTime))

	root := filepath.Join(t.TempDir(), "certificados_por_fabricante")
	dest, err := NewLocal(root).Archive(context.Background(), src, "Maria Silva", "AWS")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "Maria Silva", "AWS", "aws-saa.pdf"), dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 aws", string(data))

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(modTime))
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestLocal_ArchiveIsIdempotent(t *testing.T) {
	src := writeSource(t, "first")
	root := t.TempDir()
	archiver := NewLocal(root)

	first, err := archiver.Archive(context.Background(), src, "Maria Silva", "AWS")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(src, []byte("second"), 0o640))
	second, err := archiver.Archive(context.Background(), src, "Maria Silva", "AWS")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	data, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestLocal_ArchiveErrors(t *testing.T) {
	root := t.TempDir()
	archiver := NewLocal(root)

	_, err := archiver.Archive(context.Background(), filepath.Join(root, "missing.pdf"), "Ana", "IBM")
	assert.Error(t, err)

	src := writeSource(t, "x")
	_, err = archiver.Archive(context.Background(), src, "..", "IBM")
	assert.Error(t, err)
	_, err = archiver.Archive(context.Background(), src, "Ana", "Red/Hat")
	assert.Error(t, err)
}

func TestDestination(t *testing.T) {
	dest, err := Destination("out", "/in/João/cert.PNG", "João", "Red Hat")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "João", "Red Hat", "cert.PNG"), dest)

	for _, bad := range []string{"", ".", "..", `a\b`, "a/b"} {
		_, err := Destination("out", "x.pdf", bad, "AWS")
		assert.Error(t, err, bad)
	}
}

func TestDryRun_Archive(t *testing.T) {
	src := writeSource(t, "x")
	root := filepath.Join(t.TempDir(), "out")

	dest, err := NewDryRun(root).Archive(context.Background(), src, "Maria Silva", "Oracle")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Maria Silva", "Oracle", "aws-saa.pdf"), dest)

	_, statErr := os.Stat(root)
	assert.True(t, os.IsNotExist(statErr))
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{name: "no prefix", prefix: "", want: "Maria/AWS/cert.pdf"},
		{name: "prefix", prefix: "sorted", want: "sorted/Maria/AWS/cert.pdf"},
		{name: "slashes trimmed", prefix: "/2024/sorted/", want: "2024/sorted/Maria/AWS/cert.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ObjectKey(tt.prefix, filepath.Join("in", "Maria", "cert.pdf"), "Maria", "AWS")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type fakePutter struct {
	err     error
	bucket  string
	object  string
	file    string
	content string
}

func (f *fakePutter) FPutObject(_ context.Context, bucket, object, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	f.bucket, f.object, f.file, f.content = bucket, object, filePath, opts.ContentType
	if f.err != nil {
		return minio.UploadInfo{}, f.err
	}
	return minio.UploadInfo{Bucket: bucket, Key: object}, nil
}

func TestS3_Archive(t *testing.T) {
	src := writeSource(t, "%PDF-1.7\n%%EOF\n")
	putter := &fakePutter{}
	s := &S3{api: putter, bucket: "certs", prefix: "sorted"}

	dest, err := s.Archive(context.Background(), src, "Maria Silva", "AWS")
	require.NoError(t, err)

	assert.Equal(t, "s3://certs/sorted/Maria Silva/AWS/aws-saa.pdf", dest)
	assert.Equal(t, "certs", putter.bucket)
	assert.Equal(t, src, putter.file)
	assert.Equal(t, "application/pdf", putter.content)
}

func TestS3_ArchiveError(t *testing.T) {
	src := writeSource(t, "x")
	s := &S3{api: &fakePutter{err: errors.New("access denied")}, bucket: "certs"}

	_, err := s.Archive(context.Background(), src, "Maria Silva", "AWS")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestNewS3(t *testing.T) {
	s, err := NewS3(S3Config{Endpoint: "localhost:9000", Bucket: "certs", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)
	assert.Equal(t, "certs", s.bucket)
}
