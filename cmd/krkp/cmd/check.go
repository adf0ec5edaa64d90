package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/see12357/TFYA-KR-KP/lib"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file|dir>...",
		Short: "Check programs; directories are checked file by file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check(cmd.Context(), args)
		},
	}
}

func (a *app) check(ctx context.Context, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var diagnostics lib.Diagnostics = lib.NewConsoleReporter(a.stdout)
	if a.cfg.History.Enabled {
		store, err := lib.OpenHistory(ctx, a.cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()
		diagnostics = lib.MultiDiagnostics{diagnostics, store}
	}

	checker := &lib.Checker{Logger: a.logger, Diagnostics: diagnostics}

	results := []lib.Result{}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			dirResults, err := checker.CheckDir(ctx, path)
			if err != nil {
				results = append(results, lib.Result{Source: path, Outcome: lib.OutcomeUnreadable, Err: err})
				continue
			}
			results = append(results, dirResults...)
			continue
		}
		results = append(results, checker.CheckFile(ctx, path))
	}

	worst := lib.OutcomeAccepted
	for _, res := range results {
		if res.Outcome == lib.OutcomeUnreadable {
			fmt.Fprintf(a.stderr, "%s: cannot read: %v\n", res.Source, res.Err)
		}
		if res.Outcome > worst {
			worst = res.Outcome
		}
	}

	if worst != lib.OutcomeAccepted {
		return exitError{code: worst.ExitCode()}
	}
	return nil
}
