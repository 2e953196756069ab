// Package buildinfo reports the version of the running textsvg binary.
//
// Release builds stamp the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/textsvg/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/textsvg/pkg/buildinfo.Commit=$(git rev-parse HEAD)"
//
// Anything left unset is read from the module and VCS stamp the Go
// toolchain embeds in the binary.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X".
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Info describes a build. The server returns it from /version.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Date      string `json:"date,omitempty"`
	GoVersion string `json:"go,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
}

var readBuildInfo = debug.ReadBuildInfo

// Get returns the build description.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "" {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String formats the info on one line.
func (i Info) String() string {
	commit := i.Commit
	if commit == "" {
		commit = "none"
	} else if len(commit) > 12 {
		commit = commit[:12]
	}
	if i.Modified {
		commit += "-dirty"
	}
	date := i.Date
	if date == "" {
		date = "unknown"
	}
	s := fmt.Sprintf("textsvg version %s (commit %s, built %s", i.Version, commit, date)
	if i.GoVersion != "" {
		s += ", " + i.GoVersion
	}
	return s + ")"
}

// Template returns the cobra version template.
func Template() string {
	return Get().String() + "\n"
}
