package lib

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type verdict struct {
	source   string
	accepted bool
	failure  Failure
}

// recorder is a Diagnostics sink that keeps every verdict it receives.
type recorder struct {
	verdicts []verdict
	err      error
}

func (r *recorder) Accepted(_ context.Context, source string, _ Program) error {
	r.verdicts = append(r.verdicts, verdict{source: source, accepted: true})
	return r.err
}

func (r *recorder) Failed(_ context.Context, source string, failure Failure) error {
	r.verdicts = append(r.verdicts, verdict{source: source, failure: failure})
	return r.err
}

func checkString(c *Checker, src string) Result {
	return c.CheckSource(context.Background(), "mem", ReaderSource{Reader: strings.NewReader(src)})
}

func TestCheckSourceAccepted(t *testing.T) {
	rec := &recorder{}
	c := &Checker{Diagnostics: rec}

	res := checkString(c, "program P\ndim x as integer\nx = 1\nend\n")
	require.NoError(t, res.Err)
	require.Equal(t, OutcomeAccepted, res.Outcome)
	require.Equal(t, "P", res.Program.Name)
	require.Len(t, res.Tokens, 10)

	require.Equal(t, []verdict{{source: "mem", accepted: true}}, rec.verdicts)
}

func TestCheckSourceLexicalError(t *testing.T) {
	rec := &recorder{}
	c := &Checker{Diagnostics: rec}

	res := checkString(c, "program P\nx = 12X\nend")
	require.Equal(t, OutcomeLexicalError, res.Outcome)
	require.Empty(t, res.Tokens)

	require.Len(t, rec.verdicts, 1)
	failure := rec.verdicts[0].failure
	require.Equal(t, OutcomeLexicalError, failure.Class)
	require.Equal(t, Location{Line: 2, Col: 5}, failure.Location)
	require.Equal(t, "Error at line 2:5: invalid number <12X>", failure.Message)
}

func TestCheckSourceSyntaxError(t *testing.T) {
	rec := &recorder{}
	c := &Checker{Diagnostics: rec}

	res := checkString(c, "program P\nx = 1\nend")
	require.Equal(t, OutcomeSyntaxError, res.Outcome)
	require.NotEmpty(t, res.Tokens)

	require.Len(t, rec.verdicts, 1)
	require.Equal(t, OutcomeSyntaxError, rec.verdicts[0].failure.Class)
	require.Equal(t, Location{Line: 2, Col: 1}, rec.verdicts[0].failure.Location)
}

func TestCheckSourceSinkErrorDoesNotChangeOutcome(t *testing.T) {
	c := &Checker{Diagnostics: &recorder{err: errors.New("sink down")}}
	res := checkString(c, "program P end")
	require.Equal(t, OutcomeAccepted, res.Outcome)
}

func TestZeroCheckerWorks(t *testing.T) {
	c := &Checker{}
	require.Equal(t, OutcomeAccepted, checkString(c, "program P end").Outcome)
	require.Equal(t, OutcomeSyntaxError, checkString(c, "").Outcome)
}

func TestCheckFileMissing(t *testing.T) {
	rec := &recorder{}
	c := &Checker{Diagnostics: rec}

	res := c.CheckFile(context.Background(), filepath.Join(t.TempDir(), "nope.prog"))
	require.Equal(t, OutcomeUnreadable, res.Outcome)
	require.ErrorIs(t, res.Err, os.ErrNotExist)
	require.Empty(t, rec.verdicts)
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_bad.prog"), []byte("program P # end"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_ok.prog"), []byte("program P end"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c_bad.prog"), []byte("program end"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	rec := &recorder{}
	c := &Checker{Diagnostics: rec}
	results, err := c.CheckDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.Equal(t, OutcomeAccepted, results[0].Outcome)
	require.Equal(t, OutcomeLexicalError, results[1].Outcome)
	require.Equal(t, OutcomeSyntaxError, results[2].Outcome)
	require.Equal(t, filepath.Join(dir, "a_ok.prog"), results[0].Source)
	require.Len(t, rec.verdicts, 3)
}

func TestCheckDirMissing(t *testing.T) {
	_, err := (&Checker{}).CheckDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestReaderSourceLines(t *testing.T) {
	lines, err := ReaderSource{Reader: strings.NewReader("a\r\nb\n\nc")}.Lines()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "", "c"}, lines)
}
