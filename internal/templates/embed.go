// Package templates provides the embedded bootstrap files and renders them
// into a workspace.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"text/template"

	"github.com/go-git/go-billy/v5"

	"github.com/myblog/djscaffold/internal/workspace"
)

//go:embed bootstrap
var bootstrapFS embed.FS

const (
	rootDir = "bootstrap"

	// projectDir is replaced by the project name in target paths.
	projectDir = "project"
)

// ManagePy is the entry script path, relative to the workspace root.
const ManagePy = "manage.py"

// executables are written with mode 0755.
var executables = map[string]bool{
	ManagePy: true,
}

// TemplateData contains data for template rendering.
type TemplateData struct {
	// Project is the Django project package name (e.g., "myblog").
	Project string
}

// File is a rendered bootstrap file.
type File struct {
	// Path is relative to the workspace root, slash-separated.
	Path    string
	Content []byte
	Mode    os.FileMode
}

// RenderFiles renders every bootstrap template in memory.
func RenderFiles(data TemplateData) ([]File, error) {
	if data.Project == "" {
		return nil, fmt.Errorf("project name is required")
	}

	var files []File
	err := fs.WalkDir(bootstrapFS, rootDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		content, err := fs.ReadFile(bootstrapFS, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}

		tmpl, err := template.New(path.Base(p)).Option("missingkey=error").Parse(string(content))
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", p, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("executing template %s: %w", p, err)
		}

		target := targetPath(p, data)
		mode := os.FileMode(0o644)
		if executables[target] {
			mode = 0o755
		}
		files = append(files, File{Path: target, Content: buf.Bytes(), Mode: mode})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// Render writes the bootstrap files into fsys, overwriting existing ones,
// and returns their paths.
func Render(fsys billy.Filesystem, data TemplateData) ([]string, error) {
	files, err := RenderFiles(data)
	if err != nil {
		return nil, err
	}

	created := make([]string, 0, len(files))
	for _, f := range files {
		if err := workspace.WriteFile(fsys, f.Path, f.Content, f.Mode); err != nil {
			return created, err
		}
		created = append(created, f.Path)
	}
	return created, nil
}

// RenderFile renders a single bootstrap file by its target path.
func RenderFile(data TemplateData, target string) (File, error) {
	files, err := RenderFiles(data)
	if err != nil {
		return File{}, err
	}
	for _, f := range files {
		if f.Path == target {
			return f, nil
		}
	}
	return File{}, fmt.Errorf("unknown bootstrap file: %s", target)
}

// targetPath maps an embedded template path to its workspace path.
func targetPath(p string, data TemplateData) string {
	rel := strings.TrimPrefix(p, rootDir+"/")
	rel = strings.TrimSuffix(rel, ".tmpl")
	parts := strings.Split(rel, "/")
	for i, part := range parts {
		if part == projectDir {
			parts[i] = data.Project
		}
	}
	return strings.Join(parts, "/")
}
