package test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/see12357/TFYA-KR-KP/lib"
)

type failureSink struct {
	failures map[string]lib.Failure
}

func (f *failureSink) Accepted(context.Context, string, lib.Program) error {
	return nil
}

func (f *failureSink) Failed(_ context.Context, source string, failure lib.Failure) error {
	f.failures[source] = failure
	return nil
}

func TestPrograms(t *testing.T) {
	sink := &failureSink{failures: map[string]lib.Failure{}}
	checker := &lib.Checker{Diagnostics: sink}

	results, err := checker.CheckDir(context.Background(), "programs")
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for _, res := range results {
		t.Run(filepath.Base(res.Source), func(t *testing.T) {
			exp, err := ReadExpectation(res.Source)
			require.NoError(t, err)
			require.Equal(t, exp.Outcome, res.Outcome, "%v", res.Err)

			if exp.Outcome == lib.OutcomeAccepted {
				require.NoError(t, res.Err)
				return
			}
			require.Equal(t, exp.Location, sink.failures[res.Source].Location)
		})
	}
}

func TestPostgresHistory(t *testing.T) {
	dsn := os.Getenv("KRKP_PG_DSN")
	if dsn == "" {
		t.Skip("KRKP_PG_DSN not set")
	}

	ctx := context.Background()
	store, err := lib.OpenHistory(ctx, lib.HistoryConfig{Enabled: true, Driver: lib.DriverPostgres, DSN: dsn})
	require.NoError(t, err)
	defer store.Close()

	source := "e2e-" + uuid.NewString()
	checker := &lib.Checker{Diagnostics: store}
	res := checker.CheckFile(ctx, filepath.Join("programs", "accepted_basic.prog"))
	require.Equal(t, lib.OutcomeAccepted, res.Outcome)
	require.NoError(t, store.Failed(ctx, source, lib.Failure{
		Class:    lib.OutcomeSyntaxError,
		Message:  "Incorrect input at <1:1 -> ;>",
		Location: lib.Location{Line: 1, Col: 1},
	}))

	runs, err := store.Recent(ctx, 50)
	require.NoError(t, err)

	found := false
	for _, run := range runs {
		if run.Source == source {
			found = true
			require.Equal(t, "syntax-error", run.Outcome)
			require.Equal(t, lib.Location{Line: 1, Col: 1}, run.Location)
		}
	}
	require.True(t, found)
}
