package shaderwatch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReloadOnWrite(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "a.vert")
	frag := filepath.Join(dir, "a.frag")
	require.NoError(t, os.WriteFile(vert, []byte("v1"), 0o644))
	require.NoError(t, os.WriteFile(frag, []byte("f1"), 0o644))

	w, err := New(vert, frag)
	require.NoError(t, err)
	defer w.Close()

	assert.False(t, w.Pending())

	require.NoError(t, os.WriteFile(frag, []byte("f2"), 0o644))
	assert.Eventually(t, w.Pending, 5*time.Second, 10*time.Millisecond)
}

func TestReloadOnRenameOver(t *testing.T) {
	dir := t.TempDir()
	frag := filepath.Join(dir, "a.frag")
	require.NoError(t, os.WriteFile(frag, []byte("f1"), 0o644))

	w, err := New(frag)
	require.NoError(t, err)
	defer w.Close()

	swap := filepath.Join(dir, ".a.frag.swp")
	require.NoError(t, os.WriteFile(swap, []byte("f2"), 0o644))
	require.NoError(t, os.Rename(swap, frag))
	assert.Eventually(t, w.Pending, 5*time.Second, 10*time.Millisecond)

	// the watch must survive the replaced inode
	require.NoError(t, os.WriteFile(frag, []byte("f3"), 0o644))
	assert.Eventually(t, w.Pending, 5*time.Second, 10*time.Millisecond)
}

func TestIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	frag := filepath.Join(dir, "a.frag")
	require.NoError(t, os.WriteFile(frag, []byte("f1"), 0o644))

	w, err := New(frag)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.frag"), []byte("x"), 0o644))
	assert.Never(t, w.Pending, 300*time.Millisecond, 10*time.Millisecond)
}

func TestReloadsCoalesce(t *testing.T) {
	p := filepath.Join(t.TempDir(), "x.frag")
	require.NoError(t, os.WriteFile(p, nil, 0o644))
	w, err := newWatcher([]string{p})
	require.NoError(t, err)
	w.notify(p)
	w.notify(p)
	w.notify(p)

	assert.True(t, w.Pending())
	assert.False(t, w.Pending())
}

func TestMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.vert"))
	assert.Error(t, err)
}

func TestCloseTwice(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.vert")
	require.NoError(t, os.WriteFile(p, []byte("v1"), 0o644))

	w, err := New(p)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
