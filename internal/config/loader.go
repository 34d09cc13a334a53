package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "DJSCAFFOLD"

// Loader reads a config file through viper and overlays DJSCAFFOLD_*
// environment variables on top of it.
type Loader struct {
	v *viper.Viper
}

func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only reaches keys viper already knows about.
	d := DefaultConfig()
	for key, val := range map[string]any{
		"project.targetDir":     d.Project.TargetDir,
		"project.name":          d.Project.Name,
		"project.app":           d.Project.App,
		"templates.dir":         d.Templates.Dir,
		"templates.envTemplate": d.Templates.EnvTemplate,
		"templates.envFile":     d.Templates.EnvFile,
		"templates.appDir":      d.Templates.AppDir,
		"python.binary":         d.Python.Binary,
		"python.venvDir":        d.Python.VenvDir,
		"compose.backend":       d.Compose.Backend,
		"compose.file":          d.Compose.File,
		"readiness.interval":    d.Readiness.Interval,
		"readiness.timeout":     d.Readiness.Timeout,
		"commandTimeout":        "",
	} {
		v.SetDefault(key, val)
	}

	return &Loader{v: v}
}

// Load reads configFile, or the default config path when it is empty.
// A missing file is not an error.
func (l *Loader) Load(configFile string) (*Config, error) {
	path, err := configPath(configFile)
	if err != nil {
		return nil, err
	}

	l.v.SetConfigFile(path)
	l.v.SetConfigType("yaml")
	if err := l.v.ReadInConfig(); err != nil && !isMissing(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// LoadWithDefaults is Load followed by WithDefaults and Validate.
func (l *Loader) LoadWithDefaults(configFile string) (*Config, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigFileExists reports whether the config file is present on disk.
func ConfigFileExists(configFile string) (bool, error) {
	path, err := configPath(configFile)
	if err != nil {
		return false, err
	}
	switch _, err := os.Stat(path); {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

func configPath(configFile string) (string, error) {
	if configFile == "" {
		def, err := GetConfigFile()
		if err != nil {
			return "", fmt.Errorf("getting config file path: %w", err)
		}
		configFile = def
	}
	path, err := ExpandPath(configFile)
	if err != nil {
		return "", fmt.Errorf("expanding config path: %w", err)
	}
	return path, nil
}

func isMissing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
