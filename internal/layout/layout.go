// Package layout defines the Django project tree and builds it in a workspace.
package layout

import (
	"fmt"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"

	"github.com/myblog/djscaffold/internal/output"
	"github.com/myblog/djscaffold/internal/templates"
	"github.com/myblog/djscaffold/internal/workspace"
)

// Fixed top-level directories every project gets.
var sharedDirs = []string{"static", "media", "templates", "locale", "logs"}

// Layout names the Django project package and application.
type Layout struct {
	Project string
	App     string
}

// New creates a Layout.
func New(project, app string) Layout {
	return Layout{Project: project, App: app}
}

// Directories returns the directories to create, parents first.
func (l Layout) Directories() []string {
	dirs := []string{
		l.Project,
		l.App,
		path.Join(l.App, "migrations"),
	}
	return append(dirs, sharedDirs...)
}

// InitFiles returns the package marker files.
func (l Layout) InitFiles() []string {
	return []string{
		path.Join(l.Project, "__init__.py"),
		path.Join(l.App, "__init__.py"),
		path.Join(l.App, "migrations", "__init__.py"),
	}
}

// Report lists what Build or WriteBootstrap touched.
type Report struct {
	Directories []string
	Files       []string
}

// Build creates the directory tree, the package markers and manage.py.
// It is idempotent: existing directories are kept and markers are not
// truncated.
func (l Layout) Build(fsys billy.Filesystem) (*Report, error) {
	report := &Report{}

	for _, dir := range l.Directories() {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return report, fmt.Errorf("creating directory %s: %w", dir, err)
		}
		output.Debug("directory ready", "path", dir)
		report.Directories = append(report.Directories, dir)
	}

	manage, err := templates.RenderFile(l.data(), templates.ManagePy)
	if err != nil {
		return report, err
	}
	if err := workspace.WriteFile(fsys, manage.Path, manage.Content, manage.Mode); err != nil {
		return report, err
	}
	report.Files = append(report.Files, manage.Path)

	for _, name := range l.InitFiles() {
		if err := touch(fsys, name); err != nil {
			return report, err
		}
		report.Files = append(report.Files, name)
	}

	return report, nil
}

// WriteBootstrap writes manage.py and the project's wsgi.py, replacing
// whatever is there.
func (l Layout) WriteBootstrap(fsys billy.Filesystem) (*Report, error) {
	created, err := templates.Render(fsys, l.data())
	return &Report{Files: created}, err
}

// Tree returns the paths Build and WriteBootstrap produce with short
// descriptions, keyed for output.RenderFileTree.
func (l Layout) Tree() map[string]string {
	tree := map[string]string{
		l.Project + "/":                      "project package",
		path.Join(l.Project, "wsgi.py"):      "WSGI entry point",
		l.App + "/":                          "application",
		path.Join(l.App, "migrations") + "/": "",
		templates.ManagePy:                   "management script",
	}
	for _, dir := range sharedDirs {
		tree[dir+"/"] = ""
	}
	for _, name := range l.InitFiles() {
		tree[name] = ""
	}
	return tree
}

func (l Layout) data() templates.TemplateData {
	return templates.TemplateData{Project: l.Project}
}

// touch creates name if it does not exist without truncating it.
func touch(fsys billy.Filesystem, name string) error {
	f, err := fsys.OpenFile(name, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	return f.Close()
}
