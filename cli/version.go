package cli

import "runtime/debug"

// version can be set by the linker.
var version string

// Version returns the linker-set version if there is one and otherwise the
// module version from the build information, which is "(devel)" for
// binaries not built by "go install PACKAGE@VERSION".
func Version() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.Main.Version
	}
	return "unknown"
}
