// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"lllpack/internal/config"
	"lllpack/internal/issue"
	"lllpack/pkg/manifest"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// workspaceRoot overrides the configured workspace root
	workspaceRoot string

	// cfg is the effective configuration, populated by initRootConfig.
	cfg *config.Config

	// logger writes diagnostics to stderr; command output goes to stdout.
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "lllpack",
		Short: "Package manifest-described bundles into distributable archives",
		Long: TitleStyle.Render("lllpack") + SubtitleStyle.Render(" - bundle packager for manifest-described workspaces") + `

lllpack reads line-oriented bundle manifests, resolves their dependency
closure, and packages the referenced module contract files into a single
zip archive, together with a fixed set of auxiliary workspace files and
an optional compiled binary.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Describe your bundle in manifests/<name>.lll
  2. List its modules and required sub-bundles
  3. Build the archive with: lllpack build <name>

` + SubtitleStyle.Render("Examples:") + `
  lllpack build core                  Build dist/core.lll.zip
  lllpack build core --binary ./node  Embed a compiled binary
  lllpack deps core                   Show the resolved closure
  lllpack inspect dist/core.lll.zip   List archive contents`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/lllpack/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&workspaceRoot, "workspace", "w", "", "workspace root directory (default from config)")

	// Add subcommands
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(unpackCmd)
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newCompletionCommand())
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		// Always surface config loading errors, then continue on defaults.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		loaded = config.DefaultConfig()
	}
	cfg = loaded

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = cfg.UI.Verbose
	}
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
}

// currentConfig returns the effective configuration, falling back to defaults
// when called before initRootConfig (e.g. from tests).
func currentConfig() *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}

// newWorkspace builds the manifest workspace from the effective configuration,
// honoring the --workspace flag.
func newWorkspace() *manifest.Workspace {
	c := currentConfig()
	root := workspaceRoot
	if root == "" {
		root = c.Workspace.Root
	}
	return &manifest.Workspace{
		Root:         root,
		ManifestsDir: c.Workspace.ManifestsDir,
		ModulesDir:   c.Workspace.ModulesDir,
		Extension:    c.Workspace.Extension,
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
