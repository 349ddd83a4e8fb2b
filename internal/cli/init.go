package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/shelf/internal/paths"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend  string `yaml:"backend"`
	DataDir  string `yaml:"data_dir,omitempty"`
	DSN      string `yaml:"dsn,omitempty"`
	LogLevel string `yaml:"log_level"`
}

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize shelf configuration and storage",
		Long: `Create the configuration directory and a default config.yaml, then
open the configured storage. An empty store is seeded with sample data.`,
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, _ []string) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError("resolve config dir: %s", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return sysError("create config directory: %s", err)
	}

	configPath := paths.ConfigFile(configDir)
	if err := a.writeConfigIfMissing(configPath); err != nil {
		return sysError("write config: %s", err)
	}

	cfg, err := a.storeConfig()
	if err != nil {
		return sysError("%s", err)
	}
	return a.withLibrary(cmd, func(lib types.Library) error {
		stats := lib.Statistics()
		fmt.Fprintf(cmd.OutOrStdout(), "Shelf initialized (%s backend): %d book(s), %d member(s)\n",
			cfg.Backend, stats.TotalBooks, stats.RegisteredMembers)
		return nil
	})
}

// writeConfigIfMissing creates config.yaml from the current settings if the
// file does not exist. An existing file is left untouched.
func (a *app) writeConfigIfMissing(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}

	cfg := configFile{
		Backend:  a.settings.GetString(cfgKeyBackend),
		DSN:      a.settings.GetString(cfgKeyDSN),
		LogLevel: a.settings.GetString(cfgKeyLogLevel),
	}
	if a.flags.dataDir != "" {
		dir, err := filepath.Abs(a.flags.dataDir)
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
		cfg.DataDir = dir
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
