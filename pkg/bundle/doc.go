// SPDX-License-Identifier: MPL-2.0

// Package bundle assembles resolved workspaces into distributable zip archives
// and reads them back.
//
// An archive is rooted at a directory named after the bundle (the root
// manifest). It contains the resolved manifests under manifests/, the resolved
// modules under modules/, an optional fixed set of auxiliary workspace files,
// and an optional embedded binary under bin/. Entry order inside each group is
// lexicographic, so building the same workspace twice yields the same layout.
package bundle
