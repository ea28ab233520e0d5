// Package version resolves the chartfit build version.
package version

import "runtime/debug"

// Version is set at build time via ldflags:
//
//	go build -ldflags "-X github.com/marcus/chartfit/internal/version.Version=v1.2.3"
var Version = ""

// String returns the effective version.
func String() string {
	return Effective(Version, readBuildInfo)
}

func readBuildInfo() (*debug.BuildInfo, bool) {
	return debug.ReadBuildInfo()
}

// Effective returns v if set, else the module version, else a devel
// string built from VCS info.
func Effective(v string, info func() (*debug.BuildInfo, bool)) string {
	if v != "" {
		return v
	}

	bi, ok := info()
	if !ok || bi == nil {
		return "unknown"
	}

	if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	if revision != "" {
		ver := "devel+" + shortRevision(revision)
		if dirty {
			ver += "+dirty"
		}
		return ver
	}
	return "devel"
}

// shortRevision returns the first 12 chars of a revision.
func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
