// SPDX-License-Identifier: MPL-2.0

// Package config loads the lllpack configuration.
//
// Configuration is layered: built-in defaults, then an optional config file
// (config.yaml in the platform config directory), then LLLPACK_* environment
// variables. Command-line flags override on top of that in the cmd layer.
package config
