// Package testutil provides test helpers for filesystem fixtures.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ComposeManifest is a docker-compose.yml declaring both datastores and the
// backend service.
const ComposeManifest = `services:
  postgres:
    image: postgres:15
  redis:
    image: redis:7
  backend:
    build: .
    depends_on: [postgres, redis]
`

// DockerTemplates returns a complete template source tree, including the
// django_files subdirectory.
func DockerTemplates() map[string]string {
	return map[string]string{
		"Dockerfile":               "FROM python:3.11\n",
		"docker-compose.yml":       ComposeManifest,
		"docker-compose.prod.yml":  ComposeManifest,
		"requirements.txt":         "Django>=4.2\n",
		"nginx.conf":               "server {}\n",
		".env.template":            "DEBUG=1\n",
		"start.sh":                 "#!/bin/sh\n",
		"django_files/settings.py": "DEBUG = True\n",
		"django_files/urls.py":     "urlpatterns = []\n",
	}
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WriteTree creates dir and writes every file of tree below it.
func WriteTree(t *testing.T, dir string, tree map[string]string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	for name, content := range tree {
		WriteFile(t, dir, name, content)
	}
	return dir
}
