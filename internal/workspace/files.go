package workspace

import (
	"fmt"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"

	oerrors "github.com/myblog/djscaffold/internal/errors"
)

// WriteFile writes content to name, creating parent directories and
// applying mode even when the file already exists.
func WriteFile(fsys billy.Filesystem, name string, content []byte, mode os.FileMode) error {
	if dir := path.Dir(name); dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return oerrors.WrapFS(err, fmt.Sprintf("creating directory for %s", name))
		}
	}

	f, err := fsys.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return oerrors.WrapFS(err, fmt.Sprintf("creating file %s", name))
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return fmt.Errorf("writing file %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing file %s: %w", name, err)
	}

	// O_CREATE honors mode only for new files.
	if ch, ok := fsys.(billy.Change); ok {
		if err := ch.Chmod(name, mode); err != nil {
			return oerrors.WrapFS(err, fmt.Sprintf("setting mode on %s", name))
		}
	}
	return nil
}
