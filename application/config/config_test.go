package config

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xrerrors "github.com/xrizer/xrizer-go/domain/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvConfigFile,
		"XRIZER_LOG_LEVEL", "XRIZER_LOG_FILE", "XRIZER_LOG_STDOUT",
		"XRIZER_LOG_MAX_SIZE_MB", "XRIZER_LOG_MAX_BACKUPS",
		"XRIZER_RUNTIME_LIBRARY", "XRIZER_APPLICATION_NAME", "XRIZER_DISABLED_EXTENSIONS",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xrizer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig, *cfg)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
log_level: debug
log_stdout: false
runtime_library: /opt/openxr/libopenxr_loader.so.1
disabled_extensions:
  - XR_MNDX_xdev_space
`)

	cfg, err := Load(WithFile(path))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.LogStdout)
	assert.Equal(t, "/opt/openxr/libopenxr_loader.so.1", cfg.RuntimeLibrary)
	assert.Equal(t, []string{"XR_MNDX_xdev_space"}, cfg.DisabledExtensions)
	assert.Equal(t, DefaultConfig.LogFile, cfg.LogFile)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "log_level: debug\napplication_name: from file\n")
	t.Setenv(EnvConfigFile, path)
	t.Setenv("XRIZER_LOG_LEVEL", "warn")
	t.Setenv("XRIZER_LOG_STDOUT", "false")
	t.Setenv("XRIZER_LOG_MAX_BACKUPS", "4")
	t.Setenv("XRIZER_DISABLED_EXTENSIONS", "XR_MNDX_xdev_space, XR_EXT_other")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "from file", cfg.ApplicationName)
	assert.False(t, cfg.LogStdout)
	assert.Equal(t, 4, cfg.LogMaxBackups)
	assert.Equal(t, []string{"XR_MNDX_xdev_space", "XR_EXT_other"}, cfg.DisabledExtensions)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(WithFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)

	var cfgErr *xrerrors.ConfigError
	_, err = Load(WithFile(writeFile(t, "log_level: [")))
	assert.ErrorAs(t, err, &cfgErr)

	_, err = Load(WithFile(writeFile(t, "log_level: loud\n")))
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "LogLevel", cfgErr.Field)

	_, err = Load(WithFile(writeFile(t, "log_max_size_mb: -1\n")))
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "LogMaxSizeMB", cfgErr.Field)
}

type failingParser struct{}

func (failingParser) Parse([]byte) (map[string]any, error) {
	return nil, errors.New("unsupported format")
}

func TestLoad_WithParser(t *testing.T) {
	clearEnv(t)

	_, err := Load(WithFile(writeFile(t, "log_level: info\n")), WithParser(failingParser{}))
	var cfgErr *xrerrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestConfig_Conversions(t *testing.T) {
	cfg := DefaultConfig
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())

	cfg.LogLevel = "debug"
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	cfg.LogLevel = "nonsense"
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())

	sink := cfg.LogSink()
	assert.Equal(t, cfg.LogFile, sink.File)
	assert.Equal(t, cfg.LogStdout, sink.Stdout)
	assert.Equal(t, cfg.LogMaxSizeMB, sink.MaxSizeMB)
	assert.Equal(t, cfg.LogMaxBackups, sink.MaxBackups)
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	properties, ok := decoded["properties"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"log_level", "log_file", "log_stdout", "runtime_library", "application_name", "disabled_extensions"} {
		assert.Contains(t, properties, key)
	}
}
