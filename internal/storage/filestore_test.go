package storage

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SaveAndOpen(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ref, err := fs.Save("báo cáo.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	assert.Equal(t, ".pdf", filepath.Ext(ref), "extension survives the rename")
	assert.NotContains(t, ref, "báo cáo", "reference is opaque")

	r, err := fs.Open(ref)
	require.NoError(t, err)
	defer r.Close()

	content, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(content))
}

func TestFileStore_OpenMissing(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = fs.Open("nope.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_Delete(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ref, err := fs.Save("x.docx", strings.NewReader("doc"))
	require.NoError(t, err)

	require.NoError(t, fs.Delete(ref))
	_, err = fs.Open(ref)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, fs.Delete(ref), "deleting twice is a no-op")
}

func TestFileStore_RefsConfinedToDir(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "passwd"), fs.Path("../../etc/passwd"))
}
