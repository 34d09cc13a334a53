// Package workspace resolves and prepares the target project directory.
//
// Every pipeline receives a Workspace explicitly instead of changing the
// process working directory, so a run never has to restore it.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	oerrors "github.com/myblog/djscaffold/internal/errors"
	"github.com/myblog/djscaffold/internal/output"
	"github.com/myblog/djscaffold/internal/prompt"
)

// Workspace is a project directory with a filesystem rooted at it.
type Workspace struct {
	// Root is the host path of the project directory. External commands run here.
	Root string

	// FS is rooted at Root.
	FS billy.Filesystem
}

// Base is the parent directory target project directories are created in.
type Base struct {
	// Path is the host path of the base directory.
	Path string

	// FS is rooted at Path.
	FS billy.Filesystem
}

// NewBase wraps an existing filesystem rooted at path.
func NewBase(path string, fsys billy.Filesystem) *Base {
	return &Base{Path: path, FS: fsys}
}

// OpenOS returns the base directory and relative name for a host target path.
func OpenOS(target string) (*Base, string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, "", fmt.Errorf("resolving %s: %w", target, err)
	}

	parent := filepath.Dir(abs)
	return NewBase(parent, osfs.New(parent)), filepath.Base(abs), nil
}

// Exists reports whether name exists in the base directory.
func (b *Base) Exists(name string) (bool, error) {
	_, err := b.FS.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Ensure creates name if needed and returns it as a workspace.
// Existing content is left untouched.
func (b *Base) Ensure(name string) (*Workspace, error) {
	if err := b.FS.MkdirAll(name, 0o755); err != nil {
		return nil, oerrors.WrapFS(err, fmt.Sprintf("creating %s", name))
	}
	return b.open(name)
}

// Prepare creates name as a fresh directory. When name already exists the
// operator is asked whether to remove it; a decline returns ErrDeclined and
// leaves the filesystem untouched.
func (b *Base) Prepare(name string, confirm prompt.Confirmer) (*Workspace, error) {
	exists, err := b.Exists(name)
	if err != nil {
		return nil, oerrors.WrapFS(err, fmt.Sprintf("checking %s", name))
	}

	if exists {
		ok, err := confirm.Confirm(fmt.Sprintf("Directory %s already exists. Remove it?", name))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &oerrors.DetailError{
				Type:     "declined",
				Message:  "existing project directory kept; nothing was changed",
				Location: filepath.Join(b.Path, name),
				Hint:     "Remove the directory, choose another project.targetDir, or pass --yes.",
				Cause:    oerrors.ErrDeclined,
			}
		}

		output.Debug("removing existing project directory", "path", filepath.Join(b.Path, name))
		if err := util.RemoveAll(b.FS, name); err != nil {
			return nil, oerrors.WrapFS(err, fmt.Sprintf("removing %s", name))
		}
	}

	if err := b.FS.MkdirAll(name, 0o755); err != nil {
		return nil, oerrors.WrapFS(err, fmt.Sprintf("creating %s", name))
	}

	output.Info("created project directory", "path", filepath.Join(b.Path, name))
	return b.open(name)
}

func (b *Base) open(name string) (*Workspace, error) {
	chrooted, err := b.FS.Chroot(name)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	return &Workspace{Root: filepath.Join(b.Path, name), FS: chrooted}, nil
}
