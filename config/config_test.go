package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matheuscscp/udp-inject/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name  string `yaml:"name"`
	Ports []int  `yaml:"ports"`
}

func writeFile(t *testing.T, content string) string {
	file := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	return file
}

func TestReadYAMLFileAndUnmarshal(t *testing.T) {
	file := writeFile(t, "name: eth0\nports: [53, 1234]\n")

	var conf testConfig
	require.NoError(t, config.ReadYAMLFileAndUnmarshal(file, &conf))
	assert.Equal(t, testConfig{Name: "eth0", Ports: []int{53, 1234}}, conf)
}

func TestReadYAMLFileAndUnmarshalUnknownField(t *testing.T) {
	file := writeFile(t, "name: eth0\nport: 53\n")

	var conf testConfig
	assert.Error(t, config.ReadYAMLFileAndUnmarshal(file, &conf))
}

func TestReadYAMLFileAndUnmarshalMissingFile(t *testing.T) {
	var conf testConfig
	err := config.ReadYAMLFileAndUnmarshal(filepath.Join(t.TempDir(), "missing.yml"), &conf)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadYAMLFileAndUnmarshalEmptyFile(t *testing.T) {
	file := writeFile(t, "")

	conf := testConfig{Name: "default"}
	require.NoError(t, config.ReadYAMLFileAndUnmarshal(file, &conf))
	assert.Equal(t, "default", conf.Name)
}
