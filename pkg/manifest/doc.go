// SPDX-License-Identifier: MPL-2.0

// Package manifest reads .lll manifests and resolves their dependency closure.
//
// A manifest is a plain-text file declaring two ordered lists: the modules it
// ships and the other manifests it requires. Manifests live under a workspace's
// manifests directory, one file per manifest; modules live under the modules
// directory, one file per module. Resolution walks the "requires" relation
// depth-first and returns the full closure of manifests and modules reachable
// from a root manifest.
package manifest
