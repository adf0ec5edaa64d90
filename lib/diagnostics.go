package lib

import (
	"context"
	"errors"
)

// Failure is the single record a rejected program produces.
type Failure struct {
	Class    Outcome
	Message  string
	Location Location
}

// FailureFromError builds the failure record for a lexical or syntax error.
// It reports false for any other error.
func FailureFromError(err error) (Failure, bool) {
	var lexErr *LexicalError
	if errors.As(err, &lexErr) {
		return Failure{Class: OutcomeLexicalError, Message: lexErr.Error(), Location: lexErr.Location}, true
	}
	var synErr *SyntaxError
	if errors.As(err, &synErr) {
		return Failure{Class: OutcomeSyntaxError, Message: synErr.Error(), Location: synErr.Location()}, true
	}
	return Failure{}, false
}

// Diagnostics receives the final verdict of each checked program: exactly
// one call to Accepted or Failed.
type Diagnostics interface {
	Accepted(ctx context.Context, source string, prog Program) error
	Failed(ctx context.Context, source string, failure Failure) error
}

// MultiDiagnostics forwards every verdict to each sink in order, stopping
// at the first sink error.
type MultiDiagnostics []Diagnostics

func (m MultiDiagnostics) Accepted(ctx context.Context, source string, prog Program) error {
	for _, d := range m {
		if err := d.Accepted(ctx, source, prog); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiDiagnostics) Failed(ctx context.Context, source string, failure Failure) error {
	for _, d := range m {
		if err := d.Failed(ctx, source, failure); err != nil {
			return err
		}
	}
	return nil
}
