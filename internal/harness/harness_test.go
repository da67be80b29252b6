package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths, "no scenario files found")

	for _, path := range paths {
		name := filepath.Base(path)
		t.Run(name, func(t *testing.T) {
			Run(t, path)
		})
	}
}

func TestLoadScenario_MissingName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, "description: no name\ncatalog: c.cue\ntable: t\n")

	_, err := LoadScenario(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "name is required")
}

func TestLoadScenario_MissingCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, "name: bad\ntable: t\n")

	_, err := LoadScenario(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "catalog and table are required")
}
