package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/myblog/djscaffold/internal/errors"
	"github.com/myblog/djscaffold/internal/prompt"
)

// recordingConfirmer answers with a fixed value and records questions.
type recordingConfirmer struct {
	answer    bool
	questions []string
}

func (r *recordingConfirmer) Confirm(q string) (bool, error) {
	r.questions = append(r.questions, q)
	return r.answer, nil
}

func TestPrepare_CreatesMissingDirectory(t *testing.T) {
	base := NewBase("/work", memfs.New())
	confirm := &recordingConfirmer{}

	ws, err := base.Prepare("myblog_backend", confirm)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/work", "myblog_backend"), ws.Root)
	assert.Empty(t, confirm.questions, "no prompt when the directory is absent")

	exists, err := base.Exists("myblog_backend")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPrepare_DeclineLeavesTreeUntouched(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "myblog_backend/keep.txt", []byte("precious"), 0o644))
	base := NewBase("/work", fsys)

	ws, err := base.Prepare("myblog_backend", &recordingConfirmer{answer: false})

	require.Error(t, err)
	assert.Nil(t, ws)
	assert.True(t, errors.Is(err, oerrors.ErrDeclined))

	data, err := util.ReadFile(fsys, "myblog_backend/keep.txt")
	require.NoError(t, err)
	assert.Equal(t, "precious", string(data))
}

func TestPrepare_ConfirmRemovesOldTree(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "myblog_backend/old/stale.txt", []byte("x"), 0o644))
	base := NewBase("/work", fsys)
	confirm := &recordingConfirmer{answer: true}

	ws, err := base.Prepare("myblog_backend", confirm)
	require.NoError(t, err)
	require.Len(t, confirm.questions, 1)
	assert.Contains(t, confirm.questions[0], "myblog_backend")

	entries, err := ws.FS.ReadDir("/")
	require.NoError(t, err)
	assert.Empty(t, entries, "no leftover files from the old tree")
}

func TestPrepare_OnDisk(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "myblog_backend")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "blog"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "blog", "models.py"), []byte("old"), 0o644))

	base, name, err := OpenOS(target)
	require.NoError(t, err)
	assert.Equal(t, "myblog_backend", name)

	ws, err := base.Prepare(name, prompt.Always(true))
	require.NoError(t, err)
	assert.Equal(t, target, ws.Root)

	_, err = os.Stat(filepath.Join(target, "blog"))
	assert.True(t, os.IsNotExist(err))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsure_IsIdempotent(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "proj/existing.txt", []byte("kept"), 0o644))
	base := NewBase("/work", fsys)

	ws, err := base.Ensure("proj")
	require.NoError(t, err)

	data, err := util.ReadFile(ws.FS, "existing.txt")
	require.NoError(t, err)
	assert.Equal(t, "kept", string(data))
}
