package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile_CreatesParents(t *testing.T) {
	fs := memfs.New()

	require.NoError(t, WriteFile(fs, "myblog/wsgi.py", []byte("application = None\n"), 0o644))

	data, err := util.ReadFile(fs, "myblog/wsgi.py")
	require.NoError(t, err)
	assert.Equal(t, "application = None\n", string(data))
}

func TestWriteFile_Truncates(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, WriteFile(fs, "manage.py", []byte("a much longer previous body\n"), 0o755))

	require.NoError(t, WriteFile(fs, "manage.py", []byte("short\n"), 0o755))

	data, err := util.ReadFile(fs, "manage.py")
	require.NoError(t, err)
	assert.Equal(t, "short\n", string(data))
}

func TestWriteFile_OnDiskMode(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, WriteFile(osfs.New(dir), "start.sh", []byte("#!/bin/sh\n"), 0o755))

	info, err := os.Stat(filepath.Join(dir, "start.sh"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o100)
}
