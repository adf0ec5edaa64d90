package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/see12357/TFYA-KR-KP/lib"
)

// Exit status for failures that are not a check outcome (bad flags,
// unreadable config, unreachable history database).
const exitUsage = 64

// exitError carries a process exit status out of a command.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

type app struct {
	cfgFile string
	verbose bool
	cfg     lib.Config
	logger  *slog.Logger
	stdout  io.Writer
	stderr  io.Writer
}

func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return 0
	}
	var exit exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitUsage
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "krkp",
		Short: "Lexical and syntax checker for the dim/program teaching language",
		Long: `krkp scans programs of the small dim/program teaching language and
validates them against its grammar.

Exit status:
  0  program accepted
  1  file not found or unreadable
  2  lexical error
  3  syntax error`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (TOML, or YAML by extension)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newCheckCmd(a),
		newTokensCmd(a),
		newHistoryCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := lib.LoadConfig(a.cfgFile)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := lib.NewLogger(cfg.Log, a.stderr)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}
