// Package paths resolves configuration and data directory locations.
// Both directories default to hidden directories under the working
// directory, so each project keeps its own roster.
package paths

import (
	"os"
	"path/filepath"
)

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".roster"
	DefaultDataDirName   = ".roster-db"
)

// ConfigFileName is the configuration file inside the config directory.
const ConfigFileName = "config.yaml"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "ROSTER_CONFIG_DIR"
	EnvDataDir   = "ROSTER_DATA_DIR"
)

// getwd is overridden in tests.
var getwd = os.Getwd

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > ROSTER_CONFIG_DIR env > $(CWD)/.roster.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return cwdJoin(DefaultConfigDirName)
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > ROSTER_DATA_DIR env > $(CWD)/.roster-db.
//
// A relative configYAMLValue is taken relative to configDir, so a config
// file can point at a data directory next to itself.
func ResolveDataDir(flag, configYAMLValue, configDir string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		if !filepath.IsAbs(configYAMLValue) && configDir != "" {
			return filepath.Join(configDir, configYAMLValue), nil
		}
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return cwdJoin(DefaultDataDirName)
}

// ConfigFile returns the path of the configuration file in configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

func cwdJoin(name string) (string, error) {
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, name), nil
}
