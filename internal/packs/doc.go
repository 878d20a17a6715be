// SPDX-License-Identifier: MPL-2.0

// Package packs handles finding pack directories and loading their sidecar
// configuration.
//
// A pack lives directly under `datapacks/<game version>/` or
// `resourcepacks/<game version>/` and carries a `config.yaml` (or
// `config.toml`) sidecar with at least a title and a version. Discovery never
// aborts on a bad pack: each result carries its own error so callers can log
// and continue with the rest.
//
// File organization:
//   - discovery.go: Discovery, Pack, Discovered, and the path-shape check
//   - config.go: sidecar config parsing and validation
package packs
