// =============================================================================
// Point Description Parser - Version Command
// =============================================================================
//
// COMMAND USAGE:
//   descparse version
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is reported by 'descparse version'. When left empty the module
// version recorded by 'go install' is used.
var Version = ""

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "descparse %s (%s)\n", moduleVersion(), runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// moduleVersion returns Version, falling back to the build info.
func moduleVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
