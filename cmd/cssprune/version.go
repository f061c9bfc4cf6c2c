package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/cssprune
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cssprune version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString(version, debug.ReadBuildInfo))
	},
}

// versionString formats the version line. Binaries installed with
// "go install" carry no ldflags, so the module version and VCS revision
// from the build info stand in for "dev".
func versionString(v string, info func() (*debug.BuildInfo, bool)) string {
	bi, ok := info()
	if !ok {
		return "cssprune " + v
	}

	if v == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		v = bi.Main.Version
	}

	var revision string
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			revision = s.Value[:7]
		}
	}
	if revision != "" {
		return fmt.Sprintf("cssprune %s (%s, %s)", v, revision, bi.GoVersion)
	}
	return fmt.Sprintf("cssprune %s (%s)", v, bi.GoVersion)
}
