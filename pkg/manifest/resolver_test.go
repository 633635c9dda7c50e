// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// newTestWorkspace creates a workspace under a temp dir with empty manifests/
// and modules/ directories.
func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{DefaultManifestsDir, DefaultModulesDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return New(root)
}

// writeManifest writes a manifest file into the workspace.
func writeManifest(t *testing.T, ws *Workspace, name, content string) {
	t.Helper()
	if err := os.WriteFile(ws.ManifestPath(name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_MissingManifest(t *testing.T) {
	ws := newTestWorkspace(t)

	_, err := ws.Load("ghost")
	if err == nil {
		t.Fatal("Load() expected error for missing manifest, got nil")
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Load() error = %v, want NotFoundError", err)
	}
	if nf.Kind != KindManifest {
		t.Errorf("Kind = %q, want %q", nf.Kind, KindManifest)
	}
	if nf.Path != ws.ManifestPath("ghost") {
		t.Errorf("Path = %q, want %q", nf.Path, ws.ManifestPath("ghost"))
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("error should wrap ErrNotFound")
	}
}

func TestResolve_SingleManifest(t *testing.T) {
	ws := newTestWorkspace(t)
	writeManifest(t, ws, "root", "modules:\n  - m1\n  - m2\n")

	c, err := ws.Resolve("root")
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if !slices.Equal(c.SortedManifests(), []string{"root"}) {
		t.Errorf("manifests = %v, want [root]", c.SortedManifests())
	}
	if !slices.Equal(c.SortedModules(), []string{"m1", "m2"}) {
		t.Errorf("modules = %v, want [m1 m2]", c.SortedModules())
	}
}

func TestResolve_ModuleUnionDeduplicates(t *testing.T) {
	ws := newTestWorkspace(t)
	writeManifest(t, ws, "root", "modules:\n  - m1\n  - m2\nrequires:\n  - child\n")
	writeManifest(t, ws, "child", "modules:\n  - m2\n  - m3\n")

	c, err := ws.Resolve("root")
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if !slices.Equal(c.SortedManifests(), []string{"child", "root"}) {
		t.Errorf("manifests = %v, want [child root]", c.SortedManifests())
	}
	if !slices.Equal(c.SortedModules(), []string{"m1", "m2", "m3"}) {
		t.Errorf("modules = %v, want [m1 m2 m3]", c.SortedModules())
	}
}

func TestResolve_DiamondParsedOnce(t *testing.T) {
	// A requires B and C; both require D. The visited set must collapse the
	// shared dependency: D appears once in the closure.
	ws := newTestWorkspace(t)
	writeManifest(t, ws, "a", "requires:\n  - b\n  - c\n")
	writeManifest(t, ws, "b", "modules:\n  - mb\nrequires:\n  - d\n")
	writeManifest(t, ws, "c", "modules:\n  - mc\nrequires:\n  - d\n")
	writeManifest(t, ws, "d", "modules:\n  - md\n")

	c, err := ws.Resolve("a")
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if !slices.Equal(c.SortedManifests(), []string{"a", "b", "c", "d"}) {
		t.Errorf("manifests = %v, want [a b c d]", c.SortedManifests())
	}
	if !slices.Equal(c.SortedModules(), []string{"mb", "mc", "md"}) {
		t.Errorf("modules = %v, want [mb mc md]", c.SortedModules())
	}
}

func TestResolve_CycleTerminates(t *testing.T) {
	ws := newTestWorkspace(t)
	writeManifest(t, ws, "a", "modules:\n  - ma\nrequires:\n  - b\n")
	writeManifest(t, ws, "b", "modules:\n  - mb\nrequires:\n  - a\n")

	c, err := ws.Resolve("a")
	if err != nil {
		t.Fatalf("Resolve() failed on cyclic requires: %v", err)
	}
	if !slices.Equal(c.SortedManifests(), []string{"a", "b"}) {
		t.Errorf("manifests = %v, want exactly [a b]", c.SortedManifests())
	}
	if !slices.Equal(c.SortedModules(), []string{"ma", "mb"}) {
		t.Errorf("modules = %v, want [ma mb]", c.SortedModules())
	}
}

func TestResolve_SelfRequireTerminates(t *testing.T) {
	ws := newTestWorkspace(t)
	writeManifest(t, ws, "a", "modules:\n  - ma\nrequires:\n  - a\n")

	c, err := ws.Resolve("a")
	if err != nil {
		t.Fatalf("Resolve() failed on self-require: %v", err)
	}
	if !slices.Equal(c.SortedManifests(), []string{"a"}) {
		t.Errorf("manifests = %v, want [a]", c.SortedManifests())
	}
}

func TestResolve_MissingRequiredManifest(t *testing.T) {
	ws := newTestWorkspace(t)
	writeManifest(t, ws, "root", "requires:\n  - missing\n")

	_, err := ws.Resolve("root")
	if err == nil {
		t.Fatal("Resolve() expected error for missing required manifest, got nil")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Resolve() error = %v, want NotFoundError", err)
	}
	if nf.Kind != KindManifest {
		t.Errorf("Kind = %q, want %q", nf.Kind, KindManifest)
	}
}
