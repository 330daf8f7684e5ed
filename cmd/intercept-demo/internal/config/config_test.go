package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptional(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields empty config", func(t *testing.T) {
		cfg, err := LoadOptional(filepath.Join(t.TempDir(), "none.yaml"))
		require.NoError(t, err)
		assert.Equal(t, &Config{}, cfg)
	})

	t.Run("file values are read", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "demo.yaml")
		content := "backend: starlark\nscript: delegate.star\nvalue: hello\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadOptional(path)
		require.NoError(t, err)
		assert.Equal(t, BackendStarlark, cfg.Backend)
		assert.Equal(t, "delegate.star", cfg.Script)
		assert.Equal(t, "hello", cfg.Value)
	})

	t.Run("invalid yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "demo.yaml")
		require.NoError(t, os.WriteFile(path, []byte(":\n\t:"), 0o644))

		_, err := LoadOptional(path)
		assert.Error(t, err)
	})
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    Config
		backend string
		value   string
		want    Config
		wantErr bool
	}{
		{
			name: "defaults",
			want: Config{Backend: BackendRecording, Value: "placeholder string"},
		},
		{
			name:    "flags win over file",
			file:    Config{Backend: BackendRisor, Value: "from-file"},
			backend: BackendStarlark,
			value:   "from-flag",
			want:    Config{Backend: BackendStarlark, Value: "from-flag"},
		},
		{
			name: "file values used when flags are empty",
			file: Config{Backend: BackendRisor, Value: "from-file"},
			want: Config{Backend: BackendRisor, Value: "from-file"},
		},
		{
			name:    "unknown backend",
			backend: "lua",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.file.Resolve(tt.backend, "", tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, &tt.want, got)
		})
	}
}
