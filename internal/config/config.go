// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "lllpack"
	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "yaml"
	// EnvPrefix is the prefix for environment variable overrides
	// (e.g. LLLPACK_WORKSPACE_ROOT).
	EnvPrefix = "LLLPACK"
)

// ConfigDir returns the lllpack configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigFilePath returns the effective config file path: the override set via
// the --config flag, or the default location under ConfigDir.
//
//nolint:revive // ConfigFilePath mirrors ConfigDir naming
func ConfigFilePath() (string, error) {
	if configFilePathOverride != "" {
		return configFilePathOverride, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// Load builds the effective configuration: defaults, then the config file if
// present, then LLLPACK_* environment variables. A config file explicitly
// supplied via SetConfigFilePathOverride must exist; the default file is
// optional.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("workspace.root", defaults.Workspace.Root)
	v.SetDefault("workspace.manifests_dir", defaults.Workspace.ManifestsDir)
	v.SetDefault("workspace.modules_dir", defaults.Workspace.ModulesDir)
	v.SetDefault("workspace.extension", defaults.Workspace.Extension)
	v.SetDefault("workspace.dist_dir", defaults.Workspace.DistDir)
	v.SetDefault("archive.extra_paths", defaults.Archive.ExtraPaths)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	path, err := ConfigFilePath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		v.SetConfigFile(path)
		if readErr := v.ReadInConfig(); readErr != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, readErr)
		}
	} else if configFilePathOverride != "" {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, errs[0]
	}

	return &cfg, nil
}
