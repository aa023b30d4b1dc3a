package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Product is the name used in the User-Agent header.
const Product = "gofetch"

var (
	// These variables are set at build time using -ldflags.
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info represents version information.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	IsRelease bool   `json:"is_release"`
	IsDirty   bool   `json:"is_dirty"`
}

// Get returns version information, filling gaps from the embedded build info.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		IsRelease: Version != "dev" && !strings.Contains(Version, "dirty"),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.modified":
				info.IsDirty = s.Value == "true"
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			}
		}
	}
	if len(info.GitCommit) > 7 {
		info.GitCommit = info.GitCommit[:7]
	}
	return info
}

// Short returns "version[-commit][-dirty]".
func Short() string {
	info := Get()
	s := info.Version
	if info.GitCommit != "" {
		s += "-" + info.GitCommit
	}
	if info.IsDirty {
		s += "-dirty"
	}
	return s
}

// Full returns Short plus the build time and Go version when known.
func Full() string {
	info := Get()
	s := Short()
	if info.BuildTime != "" {
		s += fmt.Sprintf(" (built %s)", info.BuildTime)
	}
	if info.GoVersion != "" {
		s += " " + info.GoVersion
	}
	return s
}

// UserAgent returns the default User-Agent, e.g. "gofetch/1.2.0".
func UserAgent() string {
	return Product + "/" + Version
}
