// Package buildinfo holds the version metadata stamped into the
// familybudget binary at build time. The root command's --version output
// reads these.
package buildinfo

// Set via -ldflags "-X github.com/olex-green/family-budget/internal/buildinfo.Version=..."
// and friends; the zero values identify a plain `go build`.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
