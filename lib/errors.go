package lib

import (
	"errors"
	"fmt"
)

// LexicalError is raised by the scanner for a character that cannot start
// any token or for a numeric lexeme that matches none of the literal shapes.
type LexicalError struct {
	Location Location
	Lexeme   string
	Msg      string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("Error at line %d:%d: %s <%s>", e.Location.Line, e.Location.Col, e.Msg, e.Lexeme)
}

// SyntaxError is raised by the validator on the first grammar violation.
// Token is the offending token; for a premature end of input it is a
// zero-text token placed at the last known position.
type SyntaxError struct {
	Token Token
	Msg   string
}

func (e *SyntaxError) Error() string {
	if e.Token.Text == "" {
		return fmt.Sprintf("%s at <%d:%d -> EOF>", e.Msg, e.Token.Location.Line, e.Token.Location.Col)
	}
	return fmt.Sprintf("%s at <%s>", e.Msg, tokenString(e.Token))
}

// Location of the offending token.
func (e *SyntaxError) Location() Location {
	return e.Token.Location
}

type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeUnreadable
	OutcomeLexicalError
	OutcomeSyntaxError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeUnreadable:
		return "unreadable"
	case OutcomeLexicalError:
		return "lexical-error"
	case OutcomeSyntaxError:
		return "syntax-error"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// ExitCode is the process exit status a driver reports for the outcome.
func (o Outcome) ExitCode() int {
	return int(o)
}

// Classify maps the error returned by a check to its outcome. Errors that
// are neither lexical nor syntax errors come from reading the source.
func Classify(err error) Outcome {
	if err == nil {
		return OutcomeAccepted
	}
	var lexErr *LexicalError
	if errors.As(err, &lexErr) {
		return OutcomeLexicalError
	}
	var synErr *SyntaxError
	if errors.As(err, &synErr) {
		return OutcomeSyntaxError
	}
	return OutcomeUnreadable
}
