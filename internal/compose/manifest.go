// Package compose reads compose manifests and builds compose command lines.
package compose

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"

	oerrors "github.com/myblog/djscaffold/internal/errors"
	"github.com/myblog/djscaffold/internal/runner"
)

// DefaultFile is the manifest name compose picks up without -f.
const DefaultFile = "docker-compose.yml"

// Manifest is the subset of a compose file the orchestrator inspects:
// which services exist and how they declare their health.
type Manifest struct {
	Services map[string]Service `yaml:"services"`
}

// Service is a single compose service.
type Service struct {
	Healthcheck *Healthcheck `yaml:"healthcheck,omitempty"`
}

// Healthcheck is a service healthcheck definition.
type Healthcheck struct {
	Test HealthTest `yaml:"test,omitempty"`
}

// HealthTest is the healthcheck test in list form, e.g.
// ["CMD", "redis-cli", "ping"] or ["CMD-SHELL", "pg_isready -U postgres"].
// The plain string form decodes as CMD-SHELL.
type HealthTest []string

// UnmarshalYAML accepts both the string and the sequence form.
func (h *HealthTest) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*h = HealthTest{"CMD-SHELL", node.Value}
	case yaml.SequenceNode:
		var test []string
		if err := node.Decode(&test); err != nil {
			return err
		}
		*h = test
	default:
		return fmt.Errorf("line %d: healthcheck test must be a string or a list", node.Line)
	}
	return nil
}

// Argv returns the command the test runs inside the container, or nil for
// NONE and empty tests.
func (h HealthTest) Argv() []string {
	if len(h) == 0 {
		return nil
	}
	switch h[0] {
	case "NONE":
		return nil
	case "CMD":
		return h[1:]
	case "CMD-SHELL":
		if len(h) < 2 {
			return nil
		}
		return runner.Shell(strings.Join(h[1:], " ")).Argv()
	default:
		return h
	}
}

// Parse decodes a compose manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, oerrors.NewValidationError(fmt.Sprintf("invalid compose manifest: %v", err), "", "")
	}
	if m.Services == nil {
		m.Services = map[string]Service{}
	}
	return &m, nil
}

// Load reads and parses the manifest name from fsys.
func Load(fsys billy.Filesystem, name string) (*Manifest, error) {
	data, err := util.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
		return nil, oerrors.NewNotFoundError("compose manifest not found", name,
			"Make sure the template source directory contains "+name+".")
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	m, err := Parse(data)
	if err != nil {
		var detail *oerrors.DetailError
		if errors.As(err, &detail) {
			detail.Location = name
		}
		return nil, err
	}
	return m, nil
}

// HealthProbe returns the healthcheck command declared for service, or nil.
func (m *Manifest) HealthProbe(service string) []string {
	svc, ok := m.Services[service]
	if !ok || svc.Healthcheck == nil {
		return nil
	}
	return svc.Healthcheck.Test.Argv()
}

// HasService reports whether the manifest defines name.
func (m *Manifest) HasService(name string) bool {
	_, ok := m.Services[name]
	return ok
}

// CheckDatastores returns the names not defined as services, in input order.
func CheckDatastores(m *Manifest, names []string) []string {
	var missing []string
	for _, name := range names {
		if !m.HasService(name) {
			missing = append(missing, name)
		}
	}
	return missing
}
