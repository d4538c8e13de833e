package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["file"][0]
}

func TestSaveUploadAndRemove(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageService(dir, 1024)
	require.NoError(t, storage.EnsureUploadDir())

	stored, err := storage.SaveUpload(newFileHeader(t, "자기소개서.PDF", []byte("%PDF-1.4 test")))
	require.NoError(t, err)

	assert.Equal(t, "자기소개서.PDF", stored.OriginalName)
	assert.Equal(t, dir, filepath.Dir(stored.Path))
	data, err := os.ReadFile(stored.Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(data))

	require.NoError(t, storage.Remove(stored.Path))
	_, err = os.Stat(stored.Path)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, storage.Remove(stored.Path), "removing twice is not an error")
}

func TestSaveUploadRejectsNonPDF(t *testing.T) {
	storage := NewStorageService(t.TempDir(), 1024)

	_, err := storage.SaveUpload(newFileHeader(t, "intro.docx", []byte("doc")))

	assert.ErrorIs(t, err, ErrNotPDF)
}

func TestSaveUploadRejectsLargeFile(t *testing.T) {
	storage := NewStorageService(t.TempDir(), 4)

	_, err := storage.SaveUpload(newFileHeader(t, "intro.pdf", []byte("%PDF-1.4 too big")))

	assert.ErrorIs(t, err, ErrFileTooLarge)
}
