package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0"
	GitCommit = "development"
	BuildDate = "unknown"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "krkp v%s\n", Version)
			fmt.Fprintf(a.stdout, "  Git Commit: %s\n", GitCommit)
			fmt.Fprintf(a.stdout, "  Build Date: %s\n", BuildDate)
			fmt.Fprintf(a.stdout, "  Go Version: %s\n", runtime.Version())
		},
	}
}
