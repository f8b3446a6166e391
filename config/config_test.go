package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults when file missing", func(t *testing.T) {
		workdir := t.TempDir()
		t.Setenv("BEATSTORE_SYSTEM_WORKER_DIR", workdir)

		cfg, err := LoadConfig(filepath.Join(workdir, "nope.yml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultAppConfig.Web.Port, cfg.Web.Port)
		assert.Equal(t, "sqlite", cfg.Database.Type)
		assert.DirExists(t, cfg.GetDataDir())
	})

	t.Run("yaml then env overrides", func(t *testing.T) {
		workdir := t.TempDir()
		file := filepath.Join(workdir, "beatstore.yml")
		content := "system:\n  workdir: " + workdir + "\nweb:\n  port: 9090\n  max_upload_mb: 4\ndatabase:\n  type: postgres\n"
		require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

		t.Setenv("BEATSTORE_WEB_PORT", "7070")
		t.Setenv("BEATSTORE_LOGGER_FILE_ENABLE", "false")

		cfg, err := LoadConfig(file)
		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.Web.Port)
		assert.Equal(t, "postgres", cfg.Database.Type)
		assert.False(t, cfg.Logger.FileEnable)
		assert.Equal(t, int64(4<<20), cfg.MaxUploadBytes())
		assert.Equal(t, "32M", cfg.BodyLimit())
		assert.Equal(t, filepath.Join(workdir, "data", "profiles.db"), cfg.GetStoragePath())
	})

	t.Run("invalid yaml", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "bad.yml")
		require.NoError(t, os.WriteFile(file, []byte("web: [1, 2"), 0o600))
		_, err := LoadConfig(file)
		assert.Error(t, err)
	})

	t.Run("default config is not mutated", func(t *testing.T) {
		t.Setenv("BEATSTORE_SYSTEM_WORKER_DIR", t.TempDir())
		t.Setenv("BEATSTORE_WEB_HOST", "127.0.0.9")
		_, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0", DefaultAppConfig.Web.Host)
	})
}

func TestBodyLimit(t *testing.T) {
	tests := []struct {
		name string
		mb   int64
		want string
	}{
		{"unset uses default upload size", 0, "256M"},
		{"negative uses default upload size", -3, "256M"},
		{"one megabyte", 1, "8M"},
		{"large", 100, "800M"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &AppConfig{Web: WebConfig{MaxUploadMB: tt.mb}}
			assert.Equal(t, tt.want, cfg.BodyLimit())
		})
	}
}
