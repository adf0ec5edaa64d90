package lib

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsoleReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporter(&buf)
	ctx := context.Background()

	require.NoError(t, r.Accepted(ctx, "ok.prog", Program{
		Name:         "demo",
		Declarations: []Declaration{{Name: "x", Type: VarTypeInt}},
	}))
	require.NoError(t, r.Failed(ctx, "bad.prog", Failure{
		Class:    OutcomeSyntaxError,
		Message:  "Missing 'do' in while loop at <2:9 -> identifier: x>",
		Location: Location{Line: 2, Col: 9},
	}))
	require.NoError(t, r.Failed(ctx, "worse.prog", Failure{
		Class:    OutcomeLexicalError,
		Message:  "Error at line 1:3: invalid character <#>",
		Location: Location{Line: 1, Col: 3},
	}))

	// A buffer is not a terminal, so no styling is applied
	require.Equal(t, "ok.prog: ACCEPTED program demo (1 declarations)\n"+
		"bad.prog:2:9: SyntaxError Missing 'do' in while loop at <2:9 -> identifier: x>\n"+
		"worse.prog:1:3: LexicalError Error at line 1:3: invalid character <#>\n",
		buf.String())
}

func TestMultiDiagnostics(t *testing.T) {
	first, second := &recorder{}, &recorder{}
	multi := MultiDiagnostics{first, second}
	ctx := context.Background()

	require.NoError(t, multi.Accepted(ctx, "a", Program{}))
	require.NoError(t, multi.Failed(ctx, "b", Failure{Class: OutcomeSyntaxError}))
	require.Len(t, first.verdicts, 2)
	require.Len(t, second.verdicts, 2)
}
