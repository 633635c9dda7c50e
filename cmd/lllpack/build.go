// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"lllpack/internal/issue"
	"lllpack/pkg/bundle"
	"lllpack/pkg/manifest"

	"github.com/spf13/cobra"
)

var (
	// buildOutput is the output path for the built archive
	buildOutput string
	// buildNoExtra disables bundling of auxiliary workspace files
	buildNoExtra bool
	// buildBinaryPath embeds a compiled binary into the archive
	buildBinaryPath string
	// buildBinaryName overrides the archived binary's file name
	buildBinaryName string

	// buildCmd packages a bundle's dependency closure into a zip archive
	buildCmd = &cobra.Command{
		Use:   "build <bundle>",
		Short: "Build a bundle archive from its manifest",
		Long: `Build a distributable zip archive for a bundle.

The bundle's manifest is loaded from the workspace, its 'requires'
entries are resolved transitively, and every manifest and module
contract in the closure is written into the archive. Auxiliary
workspace files (run scripts, docs, environment profiles) are included
when present, and a compiled binary can be embedded under bin/.

Examples:
  lllpack build core
  lllpack build core --output /tmp/core.zip
  lllpack build core --no-extra
  lllpack build core --binary ./build/node --binary-name lll-node`,
		Args: cobra.ExactArgs(1),
		RunE: runBuild,
	}
)

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output path for the zip file (default: <root>/dist/<bundle>.lll.zip)")
	buildCmd.Flags().BoolVar(&buildNoExtra, "no-extra", false, "skip auxiliary workspace files")
	buildCmd.Flags().StringVar(&buildBinaryPath, "binary", "", "path to a compiled binary to embed under bin/")
	buildCmd.Flags().StringVar(&buildBinaryName, "binary-name", "", "archived name for the embedded binary (default: source file name)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	name := args[0]
	ws := newWorkspace()
	c := currentConfig()

	fmt.Println(TitleStyle.Render("Build Bundle"))

	output := buildOutput
	if output == "" {
		output = filepath.Join(ws.Root, c.Workspace.DistDir, name+ws.Extension+".zip")
	}

	logger.Debug("building bundle",
		"bundle", name,
		"workspace", ws.Root,
		"output", output,
		"extras", !buildNoExtra,
		"binary", buildBinaryPath)

	archivePath, err := bundle.Build(bundle.BuildOptions{
		Workspace:    ws,
		Name:         name,
		Output:       output,
		IncludeExtra: !buildNoExtra,
		ExtraPaths:   c.Archive.ExtraPaths,
		BinaryPath:   buildBinaryPath,
		BinaryName:   buildBinaryName,
	})
	if err != nil {
		var nf *manifest.NotFoundError
		if errors.As(err, &nf) {
			fmt.Printf("%s Build failed: %v\n", errorIcon, err)
			return &ExitError{Code: exitMissingInput, Err: issue.NewErrorContext().
				WithOperation("build bundle").
				WithResource(name).
				WithSuggestion(fmt.Sprintf("Create the missing %s file at %s, or remove its entry from the manifest", nf.Kind, nf.Path)).
				WithSuggestion(fmt.Sprintf("Run 'lllpack deps %s' to inspect the resolved closure", name)).
				Wrap(err).
				BuildError()}
		}
		return fmt.Errorf("failed to build bundle: %w", err)
	}

	// Get file info for size
	info, err := os.Stat(archivePath)
	if err != nil {
		return fmt.Errorf("failed to stat output file: %w", err)
	}

	fmt.Printf("%s Bundle built successfully\n", successIcon)
	fmt.Println()
	fmt.Printf("%s Output: %s\n", infoIcon, PathStyle.Render(archivePath))
	fmt.Printf("%s Size: %s\n", infoIcon, formatFileSize(info.Size()))

	return nil
}

// formatFileSize formats a file size in bytes to a human-readable string
func formatFileSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/float64(GB))
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/float64(MB))
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/float64(KB))
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}
