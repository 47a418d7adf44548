// Package version reports which build of gridbeat is running.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is set at build time, e.g.
// go build -ldflags "-X github.com/vsariola/gridbeat/version.Version=$(git describe --dirty)"
var Version string

// Hash is the short VCS revision the binary was built from, with a -dirty
// suffix for modified trees.
var Hash = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var rev string
	modified := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			rev = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if rev != "" && modified {
		rev += "-dirty"
	}
	return rev
}()

// VersionOrHash is Version if set, Hash otherwise, or "dev" if neither is
// known.
var VersionOrHash = func() string {
	switch {
	case Version != "":
		return Version
	case Hash != "":
		return Hash
	}
	return "dev"
}()

// String describes the build for the version command.
func String() string {
	return fmt.Sprintf("gridbeat %s (%s, %s/%s)", VersionOrHash, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
