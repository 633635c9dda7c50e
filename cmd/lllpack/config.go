// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"lllpack/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `lllpack config` command tree.
func newConfigCommand() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage lllpack configuration",
		Long: `Manage lllpack configuration.

Configuration is stored in:
  - Linux: ~/.config/lllpack/config.yaml
  - macOS: ~/Library/Application Support/lllpack/config.yaml
  - Windows: %APPDATA%\lllpack\config.yaml

Every key can also be overridden via LLLPACK_* environment variables,
e.g. LLLPACK_WORKSPACE_ROOT.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	return cfgCmd
}

func showConfig() error {
	c := currentConfig()

	keyStyle := NameStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	cfgPath, err := config.ConfigFilePath()
	if err == nil && fileExists(cfgPath) {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s:\n", keyStyle.Render("workspace"))
	fmt.Printf("  root: %s\n", valueStyle.Render(c.Workspace.Root))
	fmt.Printf("  manifests_dir: %s\n", valueStyle.Render(c.Workspace.ManifestsDir))
	fmt.Printf("  modules_dir: %s\n", valueStyle.Render(c.Workspace.ModulesDir))
	fmt.Printf("  extension: %s\n", valueStyle.Render(c.Workspace.Extension))
	fmt.Printf("  dist_dir: %s\n", valueStyle.Render(c.Workspace.DistDir))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("archive"))
	fmt.Printf("  extra_paths:\n")
	if len(c.Archive.ExtraPaths) == 0 {
		fmt.Printf("    %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		for _, p := range c.Archive.ExtraPaths {
			fmt.Printf("    - %s\n", valueStyle.Render(p))
		}
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", c.UI.Verbose)))

	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", cfgPath)

	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
