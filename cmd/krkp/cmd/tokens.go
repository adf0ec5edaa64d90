package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/see12357/TFYA-KR-KP/lib"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token sequence of a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.tokens(args[0])
		},
	}
}

func (a *app) tokens(path string) error {
	lines, err := lib.FileSource{Path: path}.Lines()
	if err != nil {
		fmt.Fprintf(a.stderr, "%s: cannot read: %v\n", path, err)
		return exitError{code: lib.OutcomeUnreadable.ExitCode()}
	}

	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	err = lib.Lex(lines, func(tok lib.Token) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tok.Location, tok.Category, tok.Text, numberDetail(tok))
	})
	w.Flush()
	if err != nil {
		fmt.Fprintf(a.stderr, "%s: %v\n", path, err)
		return exitError{code: lib.Classify(err).ExitCode()}
	}
	return nil
}

func numberDetail(tok lib.Token) string {
	if tok.Category != lib.CategoryNumber {
		return ""
	}
	n, err := lib.ParseNumber(tok.Text)
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("%s = %s", n.Kind, n)
}
