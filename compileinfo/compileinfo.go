// Package compileinfo reports which commit a microbemap binary was built from.
package compileinfo

import (
	"fmt"
	"runtime/debug"
)

type CompileInfo struct {
	Package    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

// Version is a short identifier for logs: the first 12 characters of the
// commit, with a +dirty suffix for modified trees, or "devel" when the binary
// carries no VCS stamp.
func (c CompileInfo) Version() string {
	if c.Commit == "" {
		return "devel"
	}

	v := c.Commit
	if len(v) > 12 {
		v = v[:12]
	}
	if c.Modified {
		v += "+dirty"
	}

	return v
}

func (c CompileInfo) String() string {
	if c.Package == "" {
		return "microbemap (no build information)"
	}

	return fmt.Sprintf("%s %s built with %s at %s", c.Package, c.Version(), c.GoVersion, c.CommitTime)
}

func Get() CompileInfo {
	z, ok := debug.ReadBuildInfo()
	if !ok {
		return CompileInfo{}
	}

	return fromSettings(z.Path, z.GoVersion, z.Settings)
}

func fromSettings(pkg, goVersion string, settings []debug.BuildSetting) CompileInfo {
	out := CompileInfo{Package: pkg, GoVersion: goVersion}
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}
