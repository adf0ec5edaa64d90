package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/see12357/TFYA-KR-KP/lib"
)

func newHistoryCmd(a *app) *cobra.Command {
	limit := 20
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently recorded checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return a.history(ctx, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", limit, "number of runs to list")
	return cmd
}

func (a *app) history(ctx context.Context, limit int) error {
	store, err := lib.OpenHistory(ctx, a.cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			run.CheckedAt.Local().Format(time.DateTime),
			run.Outcome,
			run.Source,
			run.Program,
			run.Message)
	}
	return w.Flush()
}
