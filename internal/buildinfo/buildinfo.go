package buildinfo

import "runtime/debug"

// Set with -ldflags "-X vrpga/internal/buildinfo.Version=..." at release time.
var (
	Version = "dev"
	Commit  = ""
	BuiltAt = ""
)

// Info reports the release stamp. When no commit was stamped the VCS revision
// recorded by the Go toolchain is used instead.
func Info() map[string]string {
	commit := Commit
	goVersion := ""
	if bi, ok := debug.ReadBuildInfo(); ok {
		goVersion = bi.GoVersion
		if commit == "" {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" {
					commit = s.Value
				}
			}
		}
	}
	return map[string]string{
		"version":   Version,
		"commit":    commit,
		"builtAt":   BuiltAt,
		"goVersion": goVersion,
	}
}
