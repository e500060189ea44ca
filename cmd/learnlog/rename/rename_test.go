package renamecmder

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnlog/internal/usecase/rename"
)

func TestRenameCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.jpg"), []byte("b"), 0o644))

	out := &bytes.Buffer{}
	cmd := NewRenameCmd()
	cmd.SetOut(out)
	cmd.SetArgs([]string{dir})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "a.jpg -> image_0.jpg")
	assert.Contains(t, out.String(), "Renamed 2 files successfully.")
	assert.FileExists(t, filepath.Join(dir, "image_1.jpg"))
}

func TestRenameCommandDryRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("a"), 0o644))

	out := &bytes.Buffer{}
	cmd := NewRenameCmd()
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--dry-run", dir})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Would rename 1 files.")
	assert.FileExists(t, filepath.Join(dir, "a.jpg"))
}

func TestRenameCommandMissingDir(t *testing.T) {
	cmd := NewRenameCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "nope")})

	assert.ErrorIs(t, cmd.Execute(), rename.ErrDirNotExist)
}
