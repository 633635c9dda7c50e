// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidExtension is the sentinel wrapped by InvalidExtensionError.
	ErrInvalidExtension = errors.New("invalid extension")
	// ErrInvalidConfig is the sentinel wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Config holds the application configuration.
	Config struct {
		// Workspace describes the on-disk workspace layout.
		Workspace WorkspaceConfig `json:"workspace" mapstructure:"workspace"`
		// Archive configures archive assembly.
		Archive ArchiveConfig `json:"archive" mapstructure:"archive"`
		// UI configures output behavior.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// WorkspaceConfig describes where manifests, modules, and build outputs
	// live relative to the workspace root.
	WorkspaceConfig struct {
		// Root is the workspace root directory.
		Root string `json:"root" mapstructure:"root"`
		// ManifestsDir is the manifests subdirectory name.
		ManifestsDir string `json:"manifests_dir" mapstructure:"manifests_dir"`
		// ModulesDir is the modules subdirectory name.
		ModulesDir string `json:"modules_dir" mapstructure:"modules_dir"`
		// Extension is the manifest/module file extension, with leading dot.
		Extension string `json:"extension" mapstructure:"extension"`
		// DistDir is the default output subdirectory for built archives.
		DistDir string `json:"dist_dir" mapstructure:"dist_dir"`
	}

	// ArchiveConfig configures archive assembly.
	ArchiveConfig struct {
		// ExtraPaths lists auxiliary files, as slash-separated paths relative
		// to the workspace root, bundled alongside manifests and modules.
		// Missing entries are skipped at build time.
		ExtraPaths []string `json:"extra_paths" mapstructure:"extra_paths"`
	}

	// UIConfig configures output behavior.
	UIConfig struct {
		// Verbose enables debug-level logging.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// InvalidExtensionError is returned when the configured extension does not
	// start with a dot. It wraps ErrInvalidExtension for errors.Is().
	InvalidExtensionError struct {
		Value string
	}

	// InvalidConfigError is returned when a Config has invalid fields. It
	// wraps ErrInvalidConfig for errors.Is() and collects field-level errors.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// Error implements the error interface for InvalidExtensionError.
func (e *InvalidExtensionError) Error() string {
	return fmt.Sprintf("invalid extension %q: must start with a dot", e.Value)
}

// Unwrap returns ErrInvalidExtension for errors.Is() compatibility.
func (e *InvalidExtensionError) Unwrap() error { return ErrInvalidExtension }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// IsValid returns whether the Config has valid fields, and the field errors
// if it does not.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if !strings.HasPrefix(c.Workspace.Extension, ".") {
		errs = append(errs, &InvalidExtensionError{Value: c.Workspace.Extension})
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// DefaultExtraPaths returns the default auxiliary file set bundled into
// archives: run scripts, docs, environment profiles, and the installer.
func DefaultExtraPaths() []string {
	return []string{
		"README.md",
		"docs/architecture.mmd",
		"installer/install.sh",
		"profiles/prod.env",
		"profiles/staging.env",
		"scripts/instant_run.sh",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			Root:         ".",
			ManifestsDir: "manifests",
			ModulesDir:   "modules",
			Extension:    ".lll",
			DistDir:      "dist",
		},
		Archive: ArchiveConfig{
			ExtraPaths: DefaultExtraPaths(),
		},
		UI: UIConfig{
			Verbose: false,
		},
	}
}
