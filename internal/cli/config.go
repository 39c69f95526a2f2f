package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/roster/internal/logging"
	"github.com/mesh-intelligence/roster/internal/paths"
	"github.com/mesh-intelligence/roster/pkg/sqlite"
	"github.com/mesh-intelligence/roster/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// Config keys.
	cfgKeyBackend   = "backend"
	cfgKeyDataDir   = "data_dir"
	cfgKeyLogLevel  = "log_level"
	cfgKeyLogFormat = "log_format"
	cfgKeyLogOutput = "log_output"

	defaultBackend  = types.BackendSQLite
	defaultLogLevel = "warn"
)

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error: every key has a default. The log keys can be
// overridden by ROSTER_LOG_* environment variables.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyLogFormat, logging.FormatText)
	v.SetDefault(cfgKeyLogOutput, logging.OutputStderr)

	for key, env := range map[string]string{
		cfgKeyLogLevel:  logging.EnvLevel,
		cfgKeyLogFormat: logging.EnvFormat,
		cfgKeyLogOutput: logging.EnvOutput,
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// setup resolves the config directory, loads the config, and builds the
// logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flagConfigDir)
	if err != nil {
		return sysErr("resolve config dir", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysErr("load config", err)
	}

	logger, closer, err := logging.New(logging.Config{
		Level:  cfg.GetString(cfgKeyLogLevel),
		Format: cfg.GetString(cfgKeyLogFormat),
		Output: cfg.GetString(cfgKeyLogOutput),
	})
	if err != nil {
		return sysErr("configure logging", err)
	}

	a.configDir = configDir
	a.config = cfg
	a.logger = logger
	a.logCloser = closer
	a.logger.Debug("config loaded", "config_dir", configDir, "file", cfg.ConfigFileUsed())
	return nil
}

func (a *app) closeLog() {
	if a.logCloser != nil {
		a.logCloser.Close()
		a.logCloser = nil
	}
}

// backendConfig builds the backend Config from flags and config.yaml.
func (a *app) backendConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flagDataDir, a.config.GetString(cfgKeyDataDir), a.configDir)
	if err != nil {
		return types.Config{}, sysErr("resolve data dir", err)
	}
	cfg := types.Config{
		Backend: a.config.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, sysErr("config", fmt.Errorf("%w: %q", err, cfg.Backend))
	}
	return cfg, nil
}

// newBackend returns an unattached backend for cfg.Backend.
func (a *app) newBackend(cfg types.Config) (types.Backend, error) {
	switch cfg.Backend {
	case types.BackendSQLite:
		return sqlite.NewBackend(logging.Component(a.logger, "sqlite")), nil
	}
	return nil, sysErr("config", fmt.Errorf("%w: %q", types.ErrBackendUnknown, cfg.Backend))
}
