// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func buildTestArchive(t *testing.T) string {
	t.Helper()
	ws := newBuildWorkspace(t)
	output := filepath.Join(t.TempDir(), "root.lll.zip")
	if _, err := Build(BuildOptions{Workspace: ws, Name: "root", Output: output}); err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	return output
}

func TestUnpack(t *testing.T) {
	t.Run("extracts bundle directory", func(t *testing.T) {
		archive := buildTestArchive(t)
		dest := t.TempDir()

		got, err := Unpack(UnpackOptions{Source: archive, DestDir: dest})
		if err != nil {
			t.Fatalf("Unpack() failed: %v", err)
		}
		if got != filepath.Join(dest, "root") {
			t.Errorf("Unpack() returned %q, want %q", got, filepath.Join(dest, "root"))
		}

		for _, rel := range []string{
			"manifests/root.lll",
			"manifests/child.lll",
			"modules/m1.lll",
			"modules/m2.lll",
			"modules/m3.lll",
		} {
			if _, err := os.Stat(filepath.Join(got, filepath.FromSlash(rel))); err != nil {
				t.Errorf("extracted bundle missing %s: %v", rel, err)
			}
		}

		data, err := os.ReadFile(filepath.Join(got, "modules", "m1.lll"))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "contract m1\n" {
			t.Errorf("m1 content = %q, want %q", data, "contract m1\n")
		}
	})

	t.Run("existing bundle without overwrite fails", func(t *testing.T) {
		archive := buildTestArchive(t)
		dest := t.TempDir()

		if _, err := Unpack(UnpackOptions{Source: archive, DestDir: dest}); err != nil {
			t.Fatalf("first Unpack() failed: %v", err)
		}
		_, err := Unpack(UnpackOptions{Source: archive, DestDir: dest})
		if err == nil {
			t.Fatal("Unpack() expected error for existing bundle, got nil")
		}
		if !strings.Contains(err.Error(), "already exists") {
			t.Errorf("error = %v, want mention of existing bundle", err)
		}
	})

	t.Run("overwrite replaces existing bundle", func(t *testing.T) {
		archive := buildTestArchive(t)
		dest := t.TempDir()

		bundlePath, err := Unpack(UnpackOptions{Source: archive, DestDir: dest})
		if err != nil {
			t.Fatalf("first Unpack() failed: %v", err)
		}

		// Plant a stray file; overwrite must remove it.
		stray := filepath.Join(bundlePath, "stray.txt")
		if err := os.WriteFile(stray, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := Unpack(UnpackOptions{Source: archive, DestDir: dest, Overwrite: true}); err != nil {
			t.Fatalf("Unpack() with overwrite failed: %v", err)
		}
		if _, err := os.Stat(stray); !os.IsNotExist(err) {
			t.Error("overwrite did not replace the existing bundle directory")
		}
	})

	t.Run("rejects path traversal entries", func(t *testing.T) {
		// Hand-craft an archive whose entry escapes the bundle root.
		dir := t.TempDir()
		archive := filepath.Join(dir, "evil.zip")
		f, err := os.Create(archive)
		if err != nil {
			t.Fatal(err)
		}
		zw := zip.NewWriter(f)
		for _, name := range []string{"root/manifests/root.lll", "root/../../escape.txt"} {
			w, createErr := zw.Create(name)
			if createErr != nil {
				t.Fatal(createErr)
			}
			if _, writeErr := w.Write([]byte("x")); writeErr != nil {
				t.Fatal(writeErr)
			}
		}
		if err := zw.Close(); err != nil {
			t.Fatal(err)
		}
		if err := f.Close(); err != nil {
			t.Fatal(err)
		}

		dest := t.TempDir()
		if _, err := Unpack(UnpackOptions{Source: archive, DestDir: dest}); err == nil {
			t.Fatal("Unpack() expected error for traversal entry, got nil")
		}
		if _, err := os.Stat(filepath.Join(filepath.Dir(dest), "escape.txt")); !os.IsNotExist(err) {
			t.Error("traversal entry was written outside the destination")
		}
	})

	t.Run("empty source fails", func(t *testing.T) {
		if _, err := Unpack(UnpackOptions{}); err == nil {
			t.Fatal("Unpack() expected error for empty source, got nil")
		}
	})
}
