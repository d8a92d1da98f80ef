// Package version reports how the gones binary was built.
package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

const unknown = "unknown"

// Set at link time:
//
//	go build -ldflags "-X github.com/gones/gones/internal/version.Version=v1.0.0"
var (
	Version   = "dev"
	GitCommit = unknown
	BuildTime = unknown
	BuildUser = unknown
)

// BuildInfo contains detailed build information
type BuildInfo struct {
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit"`
	BuildTime  string `json:"build_time"`
	BuildUser  string `json:"build_user"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
	Arch       string `json:"arch"`
	CGOEnabled bool   `json:"cgo_enabled"`
	Modified   bool   `json:"modified"`
}

// GetBuildInfo merges the link-time variables with the VCS stamp the Go
// toolchain embeds. Link-time values win.
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		BuildUser: BuildUser,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.apply(bi.Settings)
	}
	return info
}

func (b *BuildInfo) apply(settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if b.GitCommit == unknown {
				b.GitCommit = s.Value
			}
		case "vcs.time":
			if b.BuildTime == unknown {
				b.BuildTime = s.Value
			}
		case "vcs.modified":
			b.Modified = s.Value == "true"
		case "CGO_ENABLED":
			b.CGOEnabled = s.Value == "1"
		}
	}
}

// ShortCommit is the first seven characters of the commit hash.
func (b BuildInfo) ShortCommit() string {
	if len(b.GitCommit) > 7 {
		return b.GitCommit[:7]
	}
	return b.GitCommit
}

// String renders a one-line description such as
// "gones version v1.0.0 (commit abc1234) with go1.23 for linux/amd64".
func (b BuildInfo) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "gones version %s", b.Version)
	if b.GitCommit != unknown {
		fmt.Fprintf(&sb, " (commit %s", b.ShortCommit())
		if b.Modified {
			sb.WriteString(", modified")
		}
		sb.WriteString(")")
	}
	if b.BuildTime != unknown {
		when := b.BuildTime
		if t, err := time.Parse(time.RFC3339, b.BuildTime); err == nil {
			when = t.UTC().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(&sb, " built on %s", when)
	}
	fmt.Fprintf(&sb, " with %s for %s/%s", b.GoVersion, b.Platform, b.Arch)
	if b.BuildUser != unknown {
		fmt.Fprintf(&sb, " by %s", b.BuildUser)
	}
	return sb.String()
}

// GetVersion returns the release version, or dev-<commit> for untagged
// builds.
func GetVersion() string {
	if Version != "dev" {
		return Version
	}
	info := GetBuildInfo()
	if info.GitCommit == unknown {
		return Version
	}
	return "dev-" + info.ShortCommit()
}

// GetDetailedVersion returns GetBuildInfo().String().
func GetDetailedVersion() string {
	return GetBuildInfo().String()
}

// PrintBuildInfo writes formatted build information to w.
func PrintBuildInfo(w io.Writer) {
	b := GetBuildInfo()
	rows := []struct{ label, value string }{
		{"Version", b.Version},
		{"Git Commit", b.GitCommit},
		{"Build Time", b.BuildTime},
		{"Build User", b.BuildUser},
		{"Go Version", b.GoVersion},
		{"Platform", b.Platform + "/" + b.Arch},
		{"CGO Enabled", fmt.Sprint(b.CGOEnabled)},
	}
	fmt.Fprintln(w, "gones - Go NES Emulator")
	for _, r := range rows {
		fmt.Fprintf(w, "%-12s %s\n", r.label+":", r.value)
	}
}
