package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/OpenModelica/modelica-language-server/pkg/obs"
)

// ProjectConfig holds the contents of .modelica-ls/config.yaml.
type ProjectConfig struct {
	Version      string   `yaml:"version"`
	LibraryPaths []string `yaml:"library_paths"`
	LogLevel     string   `yaml:"log_level"`
	LogFormat    string   `yaml:"log_format"`
	CallLogPath  string   `yaml:"call_log_path"`
}

// loadProjectConfig reads .modelica-ls/config.yaml from the current
// directory. Returns nil (no error) if the file does not exist.
func loadProjectConfig() (*ProjectConfig, error) {
	data, err := os.ReadFile(".modelica-ls/config.yaml")
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveLibraryPaths applies the fallback chain: explicit --lib flags
// override config.yaml's library_paths, which override an empty list
// (declaration and outline then exit with an error; serve starts with
// no libraries). The index command takes its roots as positional
// arguments and does not use this chain.
func resolveLibraryPaths(flagValues []string) []string {
	if len(flagValues) > 0 {
		return flagValues
	}
	if cfg, err := loadProjectConfig(); err == nil && cfg != nil && len(cfg.LibraryPaths) > 0 {
		return cfg.LibraryPaths
	}
	return nil
}

// resolveLoggerConfig builds an obs.Config from config.yaml, falling
// back to obs.DefaultConfig() for any field left unset.
func resolveLoggerConfig() obs.Config {
	config := obs.DefaultConfig()
	cfg, err := loadProjectConfig()
	if err != nil || cfg == nil {
		return config
	}
	if cfg.LogLevel != "" {
		config.Level = obs.Level(cfg.LogLevel)
	}
	if cfg.LogFormat != "" {
		config.Format = obs.Format(cfg.LogFormat)
	}
	return config
}

// resolveCallLogPath applies the same override chain as
// resolveLibraryPaths for the MCP call-log file.
func resolveCallLogPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg, err := loadProjectConfig(); err == nil && cfg != nil {
		return cfg.CallLogPath
	}
	return ""
}
