package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	assert.NotEmpty(t, cfg.Whitelist)
	assert.NotEmpty(t, cfg.Blacklist)
	assert.Equal(t, "Binding", cfg.Namespace)
	assert.Equal(t, "BINDING", cfg.GuardPrefix)
	assert.Equal(t, []string{"Win32"}, cfg.Platforms)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdkgen.yaml")
	data := `
namespace: GothicSDK
guard_prefix: GOTHIC_SDK
platforms:
  - Win32
  - Win98
whitelist:
  - Create
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "GothicSDK", cfg.Namespace)
	assert.Equal(t, "GOTHIC_SDK", cfg.GuardPrefix)
	assert.Equal(t, []string{"Win32", "Win98"}, cfg.Platforms)
	assert.Equal(t, []string{"Create"}, cfg.Whitelist)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, Default().Blacklist, cfg.Blacklist)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
