package buildinfo

import "fmt"

// Set at build time via -ldflags "-X sparkplot/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for the window title.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Line is the startup banner logged by the app.
func Line() string {
	return fmt.Sprintf("sparkplot %s (commit %s, built %s)", Short(), Commit, Date)
}
