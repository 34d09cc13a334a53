package config

import "os"

// ConfigSource records which input selected the config file.
type ConfigSource string

const (
	SourceFlag    ConfigSource = "flag"
	SourceEnv     ConfigSource = "env"
	SourceDefault ConfigSource = "default"
)

// ResolvedPath is the selected config file and the candidates it overrode.
type ResolvedPath struct {
	// Path is not yet ~-expanded.
	Path   string
	Source ConfigSource

	// Shadowed maps each lower-precedence source that was set to its path.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath picks the config file: the --config flag, then
// DJSCAFFOLD_CONFIG, then ~/.djscaffold/config.yaml.
func ResolveConfigPath(flagValue string) (ResolvedPath, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedPath{Shadowed: map[ConfigSource]string{}}, err
	}

	candidates := []struct {
		source ConfigSource
		path   string
	}{
		{SourceFlag, flagValue},
		{SourceEnv, os.Getenv(EnvConfigFile)},
		{SourceDefault, paths.ConfigFile},
	}

	result := ResolvedPath{Shadowed: map[ConfigSource]string{}}
	for _, c := range candidates {
		if c.path == "" {
			continue
		}
		if result.Path == "" {
			result.Path, result.Source = c.path, c.source
			continue
		}
		result.Shadowed[c.source] = c.path
	}
	return result, nil
}
