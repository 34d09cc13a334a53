// Package propagate copies the container template set and the optional
// application files from a template source directory into a workspace.
//
// Missing individual files are reported, never fatal: the operator may
// supply a partial template set on purpose.
package propagate

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	oerrors "github.com/myblog/djscaffold/internal/errors"
	"github.com/myblog/djscaffold/internal/output"
	"github.com/myblog/djscaffold/internal/workspace"
)

// Mapping copies From (relative to the source) to To (relative to the
// destination). To may reference {{.Project}}.
type Mapping struct {
	From string
	To   string
}

// Report lists the outcome of a copy.
type Report struct {
	// Copied holds destination paths written.
	Copied []string

	// Missing holds source paths that did not exist.
	Missing []string

	// Warnings are human-readable notes about skipped work.
	Warnings []string
}

func (r *Report) missing(name, msg string) {
	r.Missing = append(r.Missing, name)
	r.Warnings = append(r.Warnings, msg)
	output.Warn(msg)
}

// OpenSource opens a template source directory on the host. A missing
// directory is an ErrNotFound error.
func OpenSource(dir string) (billy.Filesystem, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, oerrors.NewNotFoundError(
			"template source directory not found",
			abs,
			"Set templates.dir in the config file or run from the directory containing it.",
		)
	}
	return osfs.New(abs), nil
}

// CopyTemplates copies each named file verbatim, keeping its permission
// bits. When envTemplate was copied it is also written to envFile.
func CopyTemplates(src, dst billy.Filesystem, names []string, envTemplate, envFile string) (*Report, error) {
	report := &Report{}
	envCopied := false

	for _, name := range names {
		ok, err := copyFile(src, dst, name, name)
		if err != nil {
			return report, err
		}
		if !ok {
			report.missing(name, fmt.Sprintf("template file %s not found, skipping", name))
			continue
		}
		output.Debug("copied template", "file", name)
		report.Copied = append(report.Copied, name)
		if name == envTemplate {
			envCopied = true
		}
	}

	if envTemplate == "" || envFile == "" {
		return report, nil
	}
	if !envCopied {
		report.Warnings = append(report.Warnings, fmt.Sprintf("%s not created: %s is missing", envFile, envTemplate))
		output.Warn("environment file not created", "file", envFile, "template", envTemplate)
		return report, nil
	}

	// Derived from the copy so the two files start out identical.
	if _, err := copyFile(dst, dst, envTemplate, envFile); err != nil {
		return report, err
	}
	output.Debug("created environment file", "file", envFile, "from", envTemplate)
	report.Copied = append(report.Copied, envFile)
	return report, nil
}

// CopyAppFiles copies application sources from subdir of src. A missing
// subdir is reported as a warning and is not an error.
func CopyAppFiles(src, dst billy.Filesystem, subdir string, mappings []Mapping, project string) (*Report, error) {
	report := &Report{}

	info, err := src.Stat(subdir)
	if err != nil || !info.IsDir() {
		report.Warnings = append(report.Warnings, fmt.Sprintf("application files directory %s not found, skipping", subdir))
		output.Warn("application files directory not found, skipping", "dir", subdir)
		return report, nil
	}

	appFS, err := src.Chroot(subdir)
	if err != nil {
		return report, fmt.Errorf("opening %s: %w", subdir, err)
	}

	for _, m := range mappings {
		to, err := expand(m.To, project)
		if err != nil {
			return report, err
		}

		ok, err := copyFile(appFS, dst, m.From, to)
		if err != nil {
			return report, err
		}
		if !ok {
			report.missing(m.From, fmt.Sprintf("application file %s not found, skipping", m.From))
			continue
		}
		output.Debug("copied application file", "from", m.From, "to", to)
		report.Copied = append(report.Copied, to)
	}

	return report, nil
}

// copyFile copies from to to. It returns false when from does not exist.
func copyFile(src, dst billy.Filesystem, from, to string) (bool, error) {
	info, err := src.Stat(from)
	if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", from, err)
	}
	if info.IsDir() {
		return false, nil
	}

	content, err := util.ReadFile(src, from)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", from, err)
	}
	if err := workspace.WriteFile(dst, to, content, info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}

func expand(dest, project string) (string, error) {
	tmpl, err := template.New("dest").Option("missingkey=error").Parse(dest)
	if err != nil {
		return "", fmt.Errorf("parsing destination %q: %w", dest, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Project string }{project}); err != nil {
		return "", fmt.Errorf("expanding destination %q: %w", dest, err)
	}
	return buf.String(), nil
}
