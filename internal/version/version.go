// Package version carries build metadata injected by the linker.
package version

// Populated via -ldflags at build time; see the magefile's Build target.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)
