// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"archive/zip"
	"fmt"
)

// Entry describes one file inside an archive.
type Entry struct {
	// Name is the slash-separated path inside the archive.
	Name string
	// Size is the uncompressed size in bytes.
	Size uint64
	// CompressedSize is the stored size in bytes.
	CompressedSize uint64
}

// List returns the file entries of an archive in stored order. Directory
// entries are omitted.
func List(archivePath string) (entries []Entry, err error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", archivePath, err)
	}
	defer func() {
		if closeErr := zr.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, Entry{
			Name:           f.Name,
			Size:           f.UncompressedSize64,
			CompressedSize: f.CompressedSize64,
		})
	}
	return entries, nil
}
