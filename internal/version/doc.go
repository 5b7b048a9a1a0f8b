// Package version exposes build metadata for the mkver binary itself.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags. When they are left at their defaults, Commit falls back to the
// vcs.revision recorded by the Go toolchain in the binary's build info.
package version
