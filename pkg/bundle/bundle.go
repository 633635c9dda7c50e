// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"

	"lllpack/pkg/manifest"

	"github.com/klauspost/compress/flate"
)

// DefaultDistDir is the workspace subdirectory for built archives when no
// output path is given.
const DefaultDistDir = "dist"

// BuildOptions configures a single archive build.
type BuildOptions struct {
	// Workspace maps manifest and module names to files.
	Workspace *manifest.Workspace
	// Name is the root manifest name; it also names the archive's root
	// directory.
	Name string
	// Output is the destination archive path. Empty means
	// <root>/dist/<name><ext>.zip.
	Output string
	// IncludeExtra controls whether the auxiliary file set is written.
	IncludeExtra bool
	// ExtraPaths lists auxiliary files as slash-separated paths relative to
	// the workspace root. Missing entries are skipped silently.
	ExtraPaths []string
	// BinaryPath optionally embeds a binary under <name>/bin/. The file must
	// exist.
	BinaryPath string
	// BinaryName overrides the embedded binary's archive filename; empty
	// means the source file's own name.
	BinaryName string
}

// Build resolves the bundle's dependency closure and writes the archive.
// Returns the absolute archive path on success.
//
// Missing modules and a missing binary abort the build with a
// manifest.NotFoundError; missing auxiliary files are skipped. No cleanup is
// attempted on failure, so a truncated archive may remain on disk.
func Build(opts BuildOptions) (archivePath string, err error) {
	ws := opts.Workspace

	closure, err := ws.Resolve(opts.Name)
	if err != nil {
		return "", err
	}

	output := opts.Output
	if output == "" {
		output = filepath.Join(ws.Root, DefaultDistDir, opts.Name+ws.Extension+".zip")
	}
	absOutput, err := filepath.Abs(output)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absOutput), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	zipFile, err := os.Create(absOutput)
	if err != nil {
		return "", fmt.Errorf("failed to create archive file: %w", err)
	}
	defer func() {
		if closeErr := zipFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	zw := zip.NewWriter(zipFile)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})
	defer func() {
		if closeErr := zw.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for _, name := range closure.SortedManifests() {
		src := ws.ManifestPath(name)
		arcName := path.Join(opts.Name, ws.ManifestsDir, name+ws.Extension)
		if err := addFile(zw, src, arcName); err != nil {
			return "", err
		}
	}

	for _, name := range closure.SortedModules() {
		src := ws.ModulePath(name)
		if _, statErr := os.Stat(src); statErr != nil {
			if os.IsNotExist(statErr) {
				return "", &manifest.NotFoundError{Kind: manifest.KindModule, Path: src}
			}
			return "", fmt.Errorf("failed to stat module %s: %w", src, statErr)
		}
		arcName := path.Join(opts.Name, ws.ModulesDir, name+ws.Extension)
		if err := addFile(zw, src, arcName); err != nil {
			return "", err
		}
	}

	if opts.IncludeExtra {
		extras := slices.Clone(opts.ExtraPaths)
		slices.Sort(extras)
		for _, rel := range extras {
			src := filepath.Join(ws.Root, filepath.FromSlash(rel))
			if _, statErr := os.Stat(src); statErr != nil {
				// Auxiliary files are optional decoration, not build inputs.
				continue
			}
			arcName := path.Join(opts.Name, path.Clean(filepath.ToSlash(rel)))
			if err := addFile(zw, src, arcName); err != nil {
				return "", err
			}
		}
	}

	if opts.BinaryPath != "" {
		if _, statErr := os.Stat(opts.BinaryPath); statErr != nil {
			if os.IsNotExist(statErr) {
				return "", &manifest.NotFoundError{Kind: manifest.KindBinary, Path: opts.BinaryPath}
			}
			return "", fmt.Errorf("failed to stat binary %s: %w", opts.BinaryPath, statErr)
		}
		name := opts.BinaryName
		if name == "" {
			name = filepath.Base(opts.BinaryPath)
		}
		if err := addFile(zw, opts.BinaryPath, path.Join(opts.Name, "bin", name)); err != nil {
			return "", err
		}
	}

	return absOutput, nil
}

// addFile copies one source file into the archive under arcName, carrying the
// source's mode bits and compressing with Deflate.
func addFile(zw *zip.Writer, srcPath, arcName string) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", srcPath, err)
	}

	info, err := os.Stat(srcPath)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", srcPath, err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("failed to create header for %s: %w", srcPath, err)
	}
	header.Name = arcName
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create archive entry %s: %w", arcName, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write archive entry %s: %w", arcName, err)
	}
	return nil
}
