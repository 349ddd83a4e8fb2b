package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/shelf/internal/paths"
	"github.com/mesh-intelligence/shelf/pkg/shelf"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// Config keys in config.yaml.
	cfgKeyBackend  = "backend"
	cfgKeyDataDir  = "data_dir"
	cfgKeyDSN      = "dsn"
	cfgKeyLogLevel = "log_level"

	// envPrefix lets SHELF_BACKEND, SHELF_DSN and SHELF_LOG_LEVEL override
	// the file.
	envPrefix = "SHELF"

	defaultBackend  = types.BackendFile
	defaultLogLevel = "warn"
)

// loadSettings reads config.yaml from the resolved config directory and
// builds the logger. A missing config.yaml is not an error.
func (a *app) loadSettings(cmd *cobra.Command, _ []string) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError("resolve config dir: %s", err)
	}

	v, err := readConfig(configDir)
	if err != nil {
		return sysError("%s", err)
	}
	a.settings = v

	logger, err := newLogger(v.GetString(cfgKeyLogLevel), cmd.ErrOrStderr())
	if err != nil {
		return userError("%s", err)
	}
	a.logger = logger
	return nil
}

// readConfig loads config.yaml from configDir with defaults applied.
func readConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyBackend, cfgKeyDSN, cfgKeyLogLevel} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// newLogger builds a text logger on w at the named level
// (debug, info, warn or error).
func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parse log_level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// storeConfig assembles the blob store config from flags, environment, and
// config.yaml.
func (a *app) storeConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.settings.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	cfg := types.Config{
		Backend: a.settings.GetString(cfgKeyBackend),
		DataDir: dataDir,
		DSN:     a.settings.GetString(cfgKeyDSN),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openLibrary opens the configured ledger. The caller must Close it.
func (a *app) openLibrary(cmd *cobra.Command) (types.Library, error) {
	cfg, err := a.storeConfig()
	if err != nil {
		return nil, sysError("%s", err)
	}
	lib, err := shelf.Open(cmd.Context(), cfg, shelf.WithClock(a.now), shelf.WithLogger(a.logger))
	if err != nil {
		return nil, sysError("open ledger: %s", err)
	}
	return lib, nil
}

// withLibrary opens the ledger, runs fn, and closes the ledger.
func (a *app) withLibrary(cmd *cobra.Command, fn func(types.Library) error) error {
	lib, err := a.openLibrary(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := lib.Close(); cerr != nil {
			a.logger.Warn("closing ledger", "error", cerr)
		}
	}()
	return fn(lib)
}
