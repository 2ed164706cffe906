// Package appinfo holds the build information of the application.
package appinfo

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/wuxler/rxb/pkg/cmdhelper"
)

// Set at build time:
//
//	go build -ldflags '-X github.com/wuxler/rxb/pkg/appinfo.version=v1.0.0'
var (
	version      = "dev"
	buildDate    = "1970-01-01T00:00:00Z"
	gitBranch    = ""
	gitCommit    = ""
	gitTag       = ""
	gitTreeState = ""
)

// Version describes the build of the application.
type Version struct {
	Version string    `json:"version" yaml:"version"`
	Git     GitInfo   `json:"git" yaml:"git"`
	Build   BuildInfo `json:"build" yaml:"build"`
}

// GitInfo is the state of the git tree at build time.
type GitInfo struct {
	Branch    string `json:"branch" yaml:"branch"`
	Commit    string `json:"commit" yaml:"commit"`
	Tag       string `json:"tag" yaml:"tag"`
	TreeState string `json:"tree_state" yaml:"tree_state"`
}

// BuildInfo is the toolchain and platform of the build.
type BuildInfo struct {
	BuildDate string `json:"build_date,omitempty" yaml:"build_date,omitempty"`
	GoVersion string `json:"go_version,omitempty" yaml:"go_version,omitempty"`
	Compiler  string `json:"compiler,omitempty" yaml:"compiler,omitempty"`
	Platform  string `json:"platform,omitempty" yaml:"platform,omitempty"`
}

// GetVersion returns the Version of the running binary.
func GetVersion() Version {
	return Version{
		Version: version,
		Git: GitInfo{
			Branch:    gitBranch,
			Commit:    gitCommit,
			Tag:       gitTag,
			TreeState: gitTreeState,
		},
		Build: BuildInfo{
			BuildDate: buildDate,
			GoVersion: runtime.Version(),
			Compiler:  runtime.Compiler,
			Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		},
	}
}

// Short returns the version followed by the abbreviated commit, if any.
func (v Version) Short() string {
	if len(v.Git.Commit) > 7 {
		return v.Version + " (" + v.Git.Commit[:8] + ")"
	}
	return v.Version
}

// WriteVersion writes v to w in format. The text format is a one line
// version when short is set and a detailed listing otherwise.
func WriteVersion(w io.Writer, v Version, appName, format string, short bool) error {
	return cmdhelper.Write(w, format, v, func(w io.Writer) error {
		if short {
			_, err := fmt.Fprintln(w, v.Short())
			return err
		}
		_, err := io.WriteString(w, v.extended(appName))
		return err
	})
}

func (v Version) extended(appName string) string {
	sb := &strings.Builder{}
	if appName != "" {
		fmt.Fprintf(sb, "Application  : %s\n", appName)
	}
	fmt.Fprintf(sb, "Version      : %s\n", v.Version)
	fmt.Fprintf(sb, "[Git]\n  Branch     : %s\n  Commit     : %s\n  Tag        : %s\n  TreeState  : %s\n",
		v.Git.Branch, v.Git.Commit, v.Git.Tag, v.Git.TreeState)
	fmt.Fprintf(sb, "[Build]\n  BuildDate  : %s\n  GoVersion  : %s\n  Compiler   : %s\n  Platform   : %s\n",
		v.Build.BuildDate, v.Build.GoVersion, v.Build.Compiler, v.Build.Platform)
	return sb.String()
}
