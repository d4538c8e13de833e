package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextMissingFile(t *testing.T) {
	parser := NewPDFParserService()

	_, err := parser.ExtractText(filepath.Join(t.TempDir(), "missing.pdf"))

	assert.ErrorContains(t, err, "file does not exist")
}

func TestExtractTextNotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not a pdf"), 0o644))

	_, err := NewPDFParserService().ExtractText(path)

	assert.ErrorContains(t, err, "failed to open PDF")
}
