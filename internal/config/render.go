package config

import (
	"fmt"

	"sigs.k8s.io/yaml"
)

// configHeader prefixes files written by `djscaffold config init`.
const configHeader = `# djscaffold configuration
# Values may be overridden with DJSCAFFOLD_* environment variables,
# e.g. DJSCAFFOLD_PROJECT_TARGETDIR=shop_backend.

`

// Marshal renders a configuration as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// DefaultConfigFile returns the contents written by `djscaffold config init`.
func DefaultConfigFile() ([]byte, error) {
	data, err := Marshal(DefaultConfig())
	if err != nil {
		return nil, err
	}
	return append([]byte(configHeader), data...), nil
}
