package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenModelica/modelica-language-server/pkg/obs"
)

func writeConfig(t *testing.T, dir, yaml string) {
	t.Helper()
	confDir := filepath.Join(dir, ".modelica-ls")
	require.NoError(t, os.MkdirAll(confDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(confDir, "config.yaml"), []byte(yaml), 0o644))
}

func TestLoadProjectConfigMissingFileReturnsNil(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := loadProjectConfig()
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadProjectConfigParsesYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "version: \"1\"\nlibrary_paths:\n  - /libs/MSL\nlog_level: debug\nlog_format: text\ncall_log_path: /tmp/calls.jsonl\n")
	t.Chdir(dir)

	cfg, err := loadProjectConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, []string{"/libs/MSL"}, cfg.LibraryPaths)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "/tmp/calls.jsonl", cfg.CallLogPath)
}

func TestResolveLibraryPathsFlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "library_paths:\n  - /libs/MSL\n")
	t.Chdir(dir)

	assert.Equal(t, []string{"/flag/path"}, resolveLibraryPaths([]string{"/flag/path"}))
	assert.Equal(t, []string{"/libs/MSL"}, resolveLibraryPaths(nil))
}

func TestResolveLibraryPathsNoConfigNoFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.Nil(t, resolveLibraryPaths(nil))
}

func TestResolveLoggerConfigAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "log_level: warn\nlog_format: text\n")
	t.Chdir(dir)

	cfg := resolveLoggerConfig()
	assert.Equal(t, obs.LevelWarn, cfg.Level)
	assert.Equal(t, obs.FormatText, cfg.Format)
}

func TestResolveLoggerConfigFallsBackToDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg := resolveLoggerConfig()
	assert.Equal(t, obs.DefaultConfig().Level, cfg.Level)
	assert.Equal(t, obs.DefaultConfig().Format, cfg.Format)
}

func TestResolveCallLogPathFlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "call_log_path: /tmp/from-config.jsonl\n")
	t.Chdir(dir)

	assert.Equal(t, "/tmp/from-flag.jsonl", resolveCallLogPath("/tmp/from-flag.jsonl"))
	assert.Equal(t, "/tmp/from-config.jsonl", resolveCallLogPath(""))
}
