package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "fsrv.toml")
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
	return name
}

func TestLoadConfig(t *testing.T) {
	name := writeConfig(t, `
log-level = "debug"
log-format = "json"

[server]
port = 9999
root = "/srv/www"
proxy-proto = true
status-addr = "127.0.0.1:9090"
`)

	cfg, err := loadConfig(name)
	require.NoError(t, err)

	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, 9999, cfg.Server.Port)
	require.Equal(t, "/srv/www", cfg.Server.Root)
	require.True(t, cfg.Server.ProxyProto)
	require.Equal(t, "127.0.0.1:9090", cfg.Server.StatusAddr)
}

func TestLoadConfigEmpty(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	require.Equal(t, Config{}, cfg)
}

func TestLoadConfigUnknownKeys(t *testing.T) {
	name := writeConfig(t, `
[server]
prot = 9999
`)

	_, err := loadConfig(name)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown config keys")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestMergeFlagsOverrideFile(t *testing.T) {
	cfg := Config{
		LogLevel: "info",
		Server: ServerConfig{
			Port: 8888,
			Root: "/srv/www",
		},
	}

	cfg.merge(Config{
		LogLevel: "debug",
		Server: ServerConfig{
			Port:       9999,
			StatusAddr: "127.0.0.1:9090",
		},
	})

	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 9999, cfg.Server.Port)
	require.Equal(t, "/srv/www", cfg.Server.Root)
	require.Equal(t, "127.0.0.1:9090", cfg.Server.StatusAddr)
}

func TestMergeKeepsFileValues(t *testing.T) {
	cfg := Config{
		Server: ServerConfig{
			Port:       8888,
			ProxyProto: true,
		},
	}

	cfg.merge(Config{})

	require.Equal(t, 8888, cfg.Server.Port)
	require.True(t, cfg.Server.ProxyProto)
}
