package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mspwatch/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "mspwatch %s (commit %s, built %s)\n", version.Version, version.Commit, version.BuildDate)
	},
}
