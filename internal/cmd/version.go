package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/fulmenhq/gofulmen/crucible"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print version information. Use --extended for commit, build date, Go and Gofulmen versions.",
	RunE: func(cmd *cobra.Command, args []string) error {
		extended, _ := cmd.Flags().GetBool("extended")
		writeVersion(cmd.OutOrStdout(), GetAppIdentity().BinaryName, extended)
		return nil
	},
}

func writeVersion(w io.Writer, binary string, extended bool) {
	fmt.Fprintf(w, "%s %s\n", binary, versionInfo.Version)
	if !extended {
		return
	}
	fmt.Fprintf(w, "Commit: %s\n", versionInfo.Commit)
	fmt.Fprintf(w, "Built: %s\n", versionInfo.BuildDate)
	fmt.Fprintf(w, "Go: %s\n\n", runtime.Version())

	version := crucible.GetVersion()
	fmt.Fprintf(w, "Gofulmen: %s\n", version.Gofulmen)
	fmt.Fprintf(w, "Crucible: %s\n", version.Crucible)
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("extended", "e", false, "show extended version information")
}
