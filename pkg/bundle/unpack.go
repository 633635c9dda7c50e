// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// UnpackOptions configures archive extraction.
type UnpackOptions struct {
	// Source is the path to the archive file.
	Source string
	// DestDir is the destination directory (defaults to the current
	// directory).
	DestDir string
	// Overwrite allows replacing an existing bundle directory.
	Overwrite bool
}

// Unpack extracts a bundle archive. The bundle root directory is the
// archive's single top-level directory; entries outside it are ignored.
// Returns the path to the extracted bundle directory.
func Unpack(opts UnpackOptions) (extractedPath string, err error) {
	if opts.Source == "" {
		return "", fmt.Errorf("source cannot be empty")
	}

	destDir := opts.DestDir
	if destDir == "" {
		destDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
	}
	absDestDir, err := filepath.Abs(destDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve destination directory: %w", err)
	}
	if err = os.MkdirAll(absDestDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create destination directory: %w", err)
	}

	zr, err := zip.OpenReader(opts.Source)
	if err != nil {
		return "", fmt.Errorf("failed to open archive %s: %w", opts.Source, err)
	}
	defer func() {
		if closeErr := zr.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	// The bundle root is the first top-level directory seen in the archive.
	var bundleRoot string
	for _, f := range zr.File {
		segment, _, found := strings.Cut(f.Name, "/")
		if found && segment != "" && segment != "." && segment != ".." {
			bundleRoot = segment
			break
		}
	}
	if bundleRoot == "" {
		return "", fmt.Errorf("no bundle root directory found in %s", opts.Source)
	}

	bundlePath := filepath.Join(absDestDir, bundleRoot)
	if _, statErr := os.Stat(bundlePath); statErr == nil {
		if !opts.Overwrite {
			return "", fmt.Errorf("bundle already exists at %s (use overwrite to replace)", bundlePath)
		}
		if err = os.RemoveAll(bundlePath); err != nil {
			return "", fmt.Errorf("failed to remove existing bundle: %w", err)
		}
	}

	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, bundleRoot+"/") {
			continue
		}

		destPath := filepath.Join(absDestDir, filepath.FromSlash(f.Name))

		// Reject entries that would escape the destination.
		relPath, relErr := filepath.Rel(absDestDir, destPath)
		if relErr != nil || strings.HasPrefix(relPath, "..") {
			return "", fmt.Errorf("invalid path in archive: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if mkdirErr := os.MkdirAll(destPath, 0o755); mkdirErr != nil {
				return "", fmt.Errorf("failed to create directory: %w", mkdirErr)
			}
			continue
		}

		if mkdirErr := os.MkdirAll(filepath.Dir(destPath), 0o755); mkdirErr != nil {
			return "", fmt.Errorf("failed to create parent directory: %w", mkdirErr)
		}
		if extractErr := extractFile(f, destPath); extractErr != nil {
			return "", fmt.Errorf("failed to extract %s: %w", f.Name, extractErr)
		}
	}

	return bundlePath, nil
}

// extractFile writes a single archive entry to destPath, preserving its mode.
func extractFile(f *zip.File, destPath string) (err error) {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := destFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = io.Copy(destFile, rc)
	return err
}
