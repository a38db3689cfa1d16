package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "./data/grocer.db", cfg.Storage.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grocer.yaml")
	content := `
server:
  address: ":9090"
storage:
  driver: sqlite
  path: /tmp/lists.db
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("GROCER_LOG_FORMAT", "json")
	t.Setenv("GROCER_STORAGE_PATH", "/var/lib/grocer/grocer.db")

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "/var/lib/grocer/grocer.db", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"sqlite", Config{Server: ServerConfig{":8080"}, Storage: StorageConfig{DriverSQLite, "x.db"}}, false},
		{"memory", Config{Server: ServerConfig{":8080"}, Storage: StorageConfig{Driver: DriverMemory}}, false},
		{"sqlite without path", Config{Server: ServerConfig{":8080"}, Storage: StorageConfig{Driver: DriverSQLite}}, true},
		{"unknown driver", Config{Server: ServerConfig{":8080"}, Storage: StorageConfig{Driver: "postgres"}}, true},
		{"no address", Config{Storage: StorageConfig{Driver: DriverMemory}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
