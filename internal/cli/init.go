package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/roster/internal/paths"
	"github.com/mesh-intelligence/roster/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend   string `yaml:"backend"`
	DataDir   string `yaml:"data_dir,omitempty"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize roster storage",
		Long:  "Create the configuration and data directories, then initialize the storage backend.",
		Args:  cobra.NoArgs,
		RunE:  a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return sysErr("create config directory", err)
	}
	configPath := paths.ConfigFile(a.configDir)
	written, err := writeConfigIfMissing(configPath, a.flagDataDir)
	if err != nil {
		return sysErr("write config", err)
	}
	if written {
		// Reload so a data_dir just written is honoured.
		if a.config, err = loadConfig(a.configDir); err != nil {
			return sysErr("load config", err)
		}
	}

	cfg, err := a.backendConfig()
	if err != nil {
		return err
	}
	backend, err := a.newBackend(cfg)
	if err != nil {
		return err
	}
	if err := backend.Attach(cfg); err != nil {
		return sysErr("initialize storage", err)
	}
	if err := backend.Detach(); err != nil {
		return sysErr("finalize storage", err)
	}

	msg := fmt.Sprintf("Roster initialized in %s", cfg.DataDir)
	if a.flagJSON {
		return writeJSON(cmd.OutOrStdout(), output{Message: msg})
	}
	a.printer(cmd).Success("%s", msg)
	return nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist and reports whether it wrote one. An existing file is left
// alone.
func writeConfigIfMissing(path, dataDir string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := configFile{
		Backend:   types.BackendSQLite,
		DataDir:   dataDir,
		LogLevel:  defaultLogLevel,
		LogFormat: "text",
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
