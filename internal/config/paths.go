package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// EnvConfigFile overrides the config file location.
	EnvConfigFile = envPrefix + "_CONFIG"

	homeDirName    = ".djscaffold"
	configFileName = "config.yaml"
)

// Paths are the per-user djscaffold locations.
type Paths struct {
	// HomeDir is ~/.djscaffold.
	HomeDir string

	// ConfigFile is ~/.djscaffold/config.yaml.
	ConfigFile string
}

// DefaultPaths derives Paths from the user's home directory.
func DefaultPaths() (*Paths, error) {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(userHome, homeDirName)
	return &Paths{HomeDir: dir, ConfigFile: filepath.Join(dir, configFileName)}, nil
}

// GetConfigFile returns DJSCAFFOLD_CONFIG when set, else the default
// config file.
func GetConfigFile() (string, error) {
	resolved, err := ResolveConfigPath("")
	if err != nil {
		return "", err
	}
	return resolved.Path, nil
}

// ExpandPath replaces a leading "~" or "~/" with the home directory.
// "~user" forms are returned unchanged.
func ExpandPath(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok {
		return path, nil
	}
	if rest != "" && rest[0] != '/' && rest[0] != filepath.Separator {
		return path, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if rest == "" {
		return userHome, nil
	}
	return filepath.Join(userHome, rest[1:]), nil
}
