package test

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/see12357/TFYA-KR-KP/lib"
)

// Expectation is the verdict a fixture program declares in its first line,
// e.g. "{ expect: syntax-error 4:5 }".
type Expectation struct {
	Outcome  lib.Outcome
	Location lib.Location
}

var expectPattern = regexp.MustCompile(`^\{ expect: ([a-z-]+)(?: (\d+):(\d+))? \}$`)

var outcomesByName = map[string]lib.Outcome{
	lib.OutcomeAccepted.String():     lib.OutcomeAccepted,
	lib.OutcomeLexicalError.String(): lib.OutcomeLexicalError,
	lib.OutcomeSyntaxError.String():  lib.OutcomeSyntaxError,
}

func ReadExpectation(filePath string) (Expectation, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return Expectation{}, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return Expectation{}, fmt.Errorf("%s: empty fixture", filePath)
	}

	m := expectPattern.FindStringSubmatch(scanner.Text())
	if m == nil {
		return Expectation{}, fmt.Errorf("%s: first line is not an expectation", filePath)
	}
	outcome, ok := outcomesByName[m[1]]
	if !ok {
		return Expectation{}, fmt.Errorf("%s: unknown outcome '%s'", filePath, m[1])
	}

	exp := Expectation{Outcome: outcome}
	if m[2] != "" {
		exp.Location.Line, _ = strconv.Atoi(m[2])
		exp.Location.Col, _ = strconv.Atoi(m[3])
	}
	return exp, nil
}
