// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"lllpack/pkg/bundle"

	"github.com/spf13/cobra"
)

var (
	// unpackDest is the destination directory for extracted bundles
	unpackDest string
	// unpackOverwrite allows replacing an existing extracted bundle
	unpackOverwrite bool

	// unpackCmd extracts a built archive back into a directory tree
	unpackCmd = &cobra.Command{
		Use:   "unpack <archive>",
		Short: "Extract a bundle archive",
		Long: `Extract a built bundle archive into a directory.

The archive's top-level bundle directory is recreated under the
destination directory (current directory by default).

Examples:
  lllpack unpack dist/core.lll.zip
  lllpack unpack dist/core.lll.zip --dest /srv/bundles --overwrite`,
		Args: cobra.ExactArgs(1),
		RunE: runUnpack,
	}
)

func init() {
	unpackCmd.Flags().StringVarP(&unpackDest, "dest", "d", ".", "destination directory")
	unpackCmd.Flags().BoolVar(&unpackOverwrite, "overwrite", false, "overwrite an existing bundle directory")
}

func runUnpack(cmd *cobra.Command, args []string) error {
	source := args[0]

	fmt.Println(TitleStyle.Render("Unpack Bundle"))

	bundlePath, err := bundle.Unpack(bundle.UnpackOptions{
		Source:    source,
		DestDir:   unpackDest,
		Overwrite: unpackOverwrite,
	})
	if err != nil {
		return fmt.Errorf("failed to unpack bundle: %w", err)
	}

	fmt.Printf("%s Bundle unpacked successfully\n", successIcon)
	fmt.Println()
	fmt.Printf("%s Path: %s\n", infoIcon, PathStyle.Render(bundlePath))

	return nil
}
