package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/pagesmith/internal/version.Version=v1.0.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Resolved returns Version, falling back to the module version recorded by
// `go install` when no ldflags were given.
func Resolved() string {
	if Version != "unknown" && Version != "" {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return Version
}

// Generator is the value written to generator meta fields and feeds.
func Generator() string {
	return "pagesmith " + Resolved()
}

// String renders the `pagesmith version` output.
func String() string {
	return fmt.Sprintf("pagesmith %s (commit %s, built %s, %s %s/%s)",
		Resolved(), GitCommit, BuildTime, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
