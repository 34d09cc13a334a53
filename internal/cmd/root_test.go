package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myblog/djscaffold/internal/cmdtypes"
	"github.com/myblog/djscaffold/internal/config"
	"github.com/myblog/djscaffold/internal/runner"
)

func executeRoot(t *testing.T, gc *cmdtypes.GlobalConfig, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DJSCAFFOLD_CONFIG", "")

	root := newRootCmd(gc)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	assert.Equal(t, "djscaffold", root.Use)
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, root.PersistentFlags().Lookup("timestamps"))

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"provision", "structure", "setup", "config", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRoot_LoadsConfigFromFlag(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("project:\n  name: shop\n  app: catalog\n"), 0o644))

	gc := &cmdtypes.GlobalConfig{Runner: runner.NewFake()}
	out, err := executeRoot(t, gc, "--config", cfgPath, "config", "show")
	require.NoError(t, err)

	assert.Equal(t, cfgPath, gc.ConfigPath)
	assert.Equal(t, config.SourceFlag, gc.ConfigSource)
	require.NotNil(t, gc.Config)
	assert.Equal(t, "shop", gc.Config.Project.Name)
	assert.Equal(t, "catalog", gc.Config.Project.App)
	assert.Contains(t, out, "name: shop")
	assert.Contains(t, out, "# source: "+cfgPath)
}

func TestRoot_MissingConfigUsesDefaults(t *testing.T) {
	gc := &cmdtypes.GlobalConfig{Runner: runner.NewFake()}
	_, err := executeRoot(t, gc, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "config", "show")
	require.NoError(t, err)

	require.NotNil(t, gc.Config)
	assert.Equal(t, "myblog", gc.Config.Project.Name)
	assert.NoError(t, gc.ConfigErr)
}

func TestRoot_BrokenConfigDoesNotBreakVersion(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("project: [unclosed\n"), 0o644))

	gc := &cmdtypes.GlobalConfig{Runner: runner.NewFake()}
	out, err := executeRoot(t, gc, "--config", cfgPath, "version")
	require.NoError(t, err)

	assert.Error(t, gc.ConfigErr)
	assert.Contains(t, out, "djscaffold")
}
