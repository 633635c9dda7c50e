// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"lllpack/pkg/bundle"

	"github.com/spf13/cobra"
)

// inspectCmd lists the contents of a built archive
var inspectCmd = &cobra.Command{
	Use:   "inspect <archive>",
	Short: "List the contents of a bundle archive",
	Long: `List the entries of a built bundle archive, with per-file sizes.

Examples:
  lllpack inspect dist/core.lll.zip`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	archivePath := args[0]

	entries, err := bundle.List(archivePath)
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}

	fmt.Println(TitleStyle.Render("Archive Contents"))
	fmt.Println()
	fmt.Printf("%s Archive: %s\n", infoIcon, PathStyle.Render(archivePath))
	fmt.Printf("%s Entries: %d\n", infoIcon, len(entries))
	fmt.Println()

	var total int64
	for _, e := range entries {
		size := int64(e.Size)
		fmt.Printf("   %10s  %s\n", formatFileSize(size), NameStyle.Render(e.Name))
		total += size
	}
	fmt.Println()
	fmt.Printf("%s Total uncompressed: %s\n", infoIcon, formatFileSize(total))

	return nil
}
