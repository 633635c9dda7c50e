// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultManifestsDir is the workspace subdirectory holding manifest files.
	DefaultManifestsDir = "manifests"
	// DefaultModulesDir is the workspace subdirectory holding module files.
	DefaultModulesDir = "modules"
	// DefaultExtension is the file extension shared by manifests and modules.
	DefaultExtension = ".lll"
)

// ErrNotFound is the sentinel wrapped by NotFoundError for errors.Is() checks.
var ErrNotFound = errors.New("required file not found")

type (
	// FileKind identifies which kind of required file was missing.
	FileKind string

	// NotFoundError is returned when a file the build requires does not exist.
	// It is the only domain error kind: missing manifests, missing modules and
	// missing binaries all surface as a NotFoundError carrying the offending
	// path. It wraps ErrNotFound for errors.Is() compatibility.
	NotFoundError struct {
		Kind FileKind
		Path string
	}

	// Manifest is one parsed manifest. Entries keep the order they appear in
	// the source file. A Manifest is never mutated after parsing.
	Manifest struct {
		// Name is the manifest name (file name without extension).
		Name string
		// Modules lists the module names this manifest ships.
		Modules []string
		// Requires lists the manifest names this manifest depends on.
		Requires []string
	}

	// Workspace describes the on-disk layout that maps manifest and module
	// names to files. The zero value is not usable; construct with New.
	Workspace struct {
		// Root is the workspace root directory.
		Root string
		// ManifestsDir is the manifests subdirectory name.
		ManifestsDir string
		// ModulesDir is the modules subdirectory name.
		ModulesDir string
		// Extension is the file extension for manifests and modules,
		// including the leading dot.
		Extension string
	}
)

const (
	// KindManifest marks a missing manifest file.
	KindManifest FileKind = "manifest"
	// KindModule marks a missing module file.
	KindModule FileKind = "module"
	// KindBinary marks a missing binary supplied for embedding.
	KindBinary FileKind = "binary"
)

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Path)
}

// Unwrap returns ErrNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// New creates a Workspace rooted at the given directory using the default
// layout conventions (manifests/, modules/, .lll).
func New(root string) *Workspace {
	return &Workspace{
		Root:         root,
		ManifestsDir: DefaultManifestsDir,
		ModulesDir:   DefaultModulesDir,
		Extension:    DefaultExtension,
	}
}

// ManifestPath returns the file path for a manifest name.
func (ws *Workspace) ManifestPath(name string) string {
	return filepath.Join(ws.Root, ws.ManifestsDir, name+ws.Extension)
}

// ModulePath returns the file path for a module name.
func (ws *Workspace) ModulePath(name string) string {
	return filepath.Join(ws.Root, ws.ModulesDir, name+ws.Extension)
}

// Load locates and parses the named manifest. A missing file is reported as a
// NotFoundError; the names listed inside the manifest are not checked for
// existence (consumers do that when they need the files).
func (ws *Workspace) Load(name string) (*Manifest, error) {
	path := ws.ManifestPath(name)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Kind: KindManifest, Path: path}
		}
		return nil, fmt.Errorf("failed to open manifest %s: %w", path, err)
	}
	defer func() {
		// Read-only handle; close errors carry no information here.
		_ = f.Close()
	}()

	m, err := Parse(name, f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return m, nil
}
