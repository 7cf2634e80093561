package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// getVersionInfo returns version information, prioritizing ldflags values
// over build info.
func getVersionInfo() (string, string, string) {
	if version != "dev" || commit != "none" || date != "unknown" {
		return version, commit, date
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return version, commit, date
	}

	moduleVersion := version
	if buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		moduleVersion = buildInfo.Main.Version
	}

	vcsCommit := commit
	vcsTime := date
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			if len(setting.Value) >= 7 {
				vcsCommit = setting.Value[:7]
			} else {
				vcsCommit = setting.Value
			}
		case "vcs.time":
			vcsTime = setting.Value
		}
	}

	return moduleVersion, vcsCommit, vcsTime
}

var rootCmd = &cobra.Command{
	Use:   "hopcycle",
	Short: "Find the longest simple directed cycle per claim/status group in a routing hop log",
	Long: `hopcycle reads a log of routing hops and, for each distinct
(claim_id, status_code) pair, finds the longest simple directed cycle among
the systems that pair's hops visited.

The input is streamed and partitioned into on-disk buckets so a single pass
never holds the whole log in memory; each bucket's groups are then reduced
to a compact graph, searched for strongly connected components, and probed
for their longest simple cycle. The single best (claim_id, status_code,
length) across the whole input is reported on stdout.`,
	Version: version,
}

func init() {
	currentVersion, currentCommit, currentDate := getVersionInfo()
	rootCmd.Version = currentVersion

	template := fmt.Sprintf("%s\nBuild: %s\nBuilt: %s\n", currentVersion, currentCommit, currentDate)
	rootCmd.SetVersionTemplate(template)

	rootCmd.AddCommand(findCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}
