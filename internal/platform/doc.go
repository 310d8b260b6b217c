// Package platform provides cross-platform filesystem operations for link
// materialization. On Unix systems it uses native symlinks directly. On
// Windows it falls back to copying the target and writing a .target sidecar
// when developer-mode symlinks are unavailable.
package platform
