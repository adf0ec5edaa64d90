package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeProgram(t *testing.T, dir string, name string, src string) string {
	filePath := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(filePath, []byte(src), 0o644))
	return filePath
}

func runCmd(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCheckExitCodes(t *testing.T) {
	dir := t.TempDir()
	ok := writeProgram(t, dir, "ok.prog", "program P\ndim x as integer\nx = 1\nend\n")
	lexical := writeProgram(t, dir, "lexical.prog", "program P\nx = 12X\nend\n")
	syntax := writeProgram(t, dir, "syntax.prog", "program P\ndim x as integer\nwhile x x = 1\nend\n")

	tests := []struct {
		name   string
		path   string
		code   int
		output string
	}{
		{"accepted", ok, 0, "ACCEPTED program P"},
		{"missing", filepath.Join(dir, "missing.prog"), 1, ""},
		{"lexical", lexical, 2, "LexicalError Error at line 2:5: invalid number <12X>"},
		{"syntax", syntax, 3, "SyntaxError Missing 'do' in while loop at <3:9 -> identifier: x>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCmd("check", tt.path)
			require.Equal(t, tt.code, code)
			require.Contains(t, stdout, tt.output)
			if tt.code == 1 {
				require.Contains(t, stderr, "cannot read")
			}
		})
	}
}

func TestCheckReportsWorstOutcome(t *testing.T) {
	dir := t.TempDir()
	ok := writeProgram(t, dir, "ok.prog", "program P end")
	lexical := writeProgram(t, dir, "lexical.prog", "program P # end")

	code, stdout, _ := runCmd("check", ok, lexical)
	require.Equal(t, 2, code)
	require.Contains(t, stdout, "ACCEPTED")
	require.Contains(t, stdout, "LexicalError")

	code, _, _ = runCmd("check", dir)
	require.Equal(t, 2, code)
}

func TestCheckRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "history.db")
	cfgPath := writeProgram(t, dir, "krkp.toml", fmt.Sprintf("[history]\nenabled = true\ndsn = %q\n", dbPath))
	prog := writeProgram(t, dir, "ok.prog", "program Recorded end")

	code, _, _ := runCmd("--config", cfgPath, "check", prog)
	require.Equal(t, 0, code)

	code, stdout, _ := runCmd("--config", cfgPath, "history", "-n", "5")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "accepted")
	require.Contains(t, stdout, "Recorded")
}

func TestTokensCommand(t *testing.T) {
	dir := t.TempDir()
	prog := writeProgram(t, dir, "p.prog", "program P\nx = 2FH\nend")

	code, stdout, _ := runCmd("tokens", prog)
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "program")
	require.Contains(t, stdout, "hexadecimal = 47")

	bad := writeProgram(t, dir, "bad.prog", "x = 1 # 2")
	code, _, stderr := runCmd("tokens", bad)
	require.Equal(t, 2, code)
	require.Contains(t, stderr, "invalid character <#>")
}

func TestBadConfigIsUsageError(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeProgram(t, dir, "krkp.toml", "[log]\nlevel = \"loud\"\n")
	prog := writeProgram(t, dir, "ok.prog", "program P end")

	code, _, stderr := runCmd("--config", cfgPath, "check", prog)
	require.Equal(t, exitUsage, code)
	require.Contains(t, stderr, "Error:")
}

func TestCheckRequiresArgs(t *testing.T) {
	code, _, _ := runCmd("check")
	require.Equal(t, exitUsage, code)
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runCmd("version")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "krkp v"+Version)
}
