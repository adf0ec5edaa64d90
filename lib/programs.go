package lib

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Result is the outcome of one check pass over one program.
type Result struct {
	Source  string
	Tokens  []Token
	Program Program
	Outcome Outcome
	Err     error
}

// Checker drives the scan-then-validate pipeline and hands each verdict to
// its Diagnostics sink. A zero Checker is usable and reports nowhere.
type Checker struct {
	Logger      *slog.Logger
	Diagnostics Diagnostics
}

func (c *Checker) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

func (c *Checker) CheckFile(ctx context.Context, filePath string) Result {
	return c.CheckSource(ctx, filePath, FileSource{Path: filePath})
}

// CheckDir checks every regular file in dir, in name order. Each file is an
// independent pass; a rejected file does not stop the others.
func (c *Checker) CheckDir(ctx context.Context, dir string) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	results := []Result{}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		results = append(results, c.CheckFile(ctx, filepath.Join(dir, entry.Name())))
	}
	return results, nil
}

func (c *Checker) CheckSource(ctx context.Context, name string, src SourceProvider) Result {
	log := c.logger().With(slog.String("source", name))
	res := Result{Source: name}

	// Read the program text
	lines, err := src.Lines()
	if err != nil {
		log.Warn("cannot read source", slog.Any("error", err))
		res.Outcome = OutcomeUnreadable
		res.Err = err
		return res
	}

	// Scan everything before validating anything
	tokens, err := Tokenize(lines)
	if err != nil {
		return c.reject(ctx, log, res, err)
	}
	res.Tokens = tokens
	log.Debug("scanned", slog.Int("lines", len(lines)), slog.Int("tokens", len(tokens)))

	prog, err := validate(tokens, log)
	if err != nil {
		return c.reject(ctx, log, res, err)
	}
	res.Program = prog
	res.Outcome = OutcomeAccepted
	log.Info("program accepted",
		slog.String("program", prog.Name),
		slog.Int("declarations", len(prog.Declarations)))

	if c.Diagnostics != nil {
		if err := c.Diagnostics.Accepted(ctx, name, prog); err != nil {
			log.Error("diagnostics sink failed", slog.Any("error", err))
		}
	}
	return res
}

func (c *Checker) reject(ctx context.Context, log *slog.Logger, res Result, err error) Result {
	res.Err = err
	res.Outcome = Classify(err)

	failure, ok := FailureFromError(err)
	if !ok {
		// Only lexical and syntax errors come out of the pipeline.
		panic(fmt.Sprintf("unexpected check error: %v", err))
	}
	log.Warn("program rejected",
		slog.String("class", failure.Class.String()),
		slog.String("at", failure.Location.String()),
		slog.String("message", failure.Message))

	if c.Diagnostics != nil {
		if err := c.Diagnostics.Failed(ctx, res.Source, failure); err != nil {
			log.Error("diagnostics sink failed", slog.Any("error", err))
		}
	}
	return res
}
