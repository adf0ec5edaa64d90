package lib

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type NumberKind int

const (
	NumberBinary NumberKind = iota
	NumberOctal
	NumberDecimal
	NumberHexadecimal
	NumberReal
)

func (k NumberKind) String() string {
	switch k {
	case NumberBinary:
		return "binary"
	case NumberOctal:
		return "octal"
	case NumberDecimal:
		return "decimal"
	case NumberHexadecimal:
		return "hexadecimal"
	case NumberReal:
		return "real"
	default:
		return fmt.Sprintf("NumberKind(%d)", int(k))
	}
}

// Shapes are tried in this order; the first match wins.
var numberShapes = []struct {
	kind    NumberKind
	pattern *regexp.Regexp
}{
	{NumberBinary, regexp.MustCompile(`^[01]+[Bb]$`)},
	{NumberOctal, regexp.MustCompile(`^[0-7]+[Oo]$`)},
	{NumberDecimal, regexp.MustCompile(`^[0-9]+[Dd]?$`)},
	{NumberHexadecimal, regexp.MustCompile(`^[0-9A-Fa-f]+[Hh]$`)},
	{NumberReal, regexp.MustCompile(`^[0-9]*(\.[0-9]+)?([Ee][+-]?[0-9]+)?$`)},
}

// ClassifyNumber returns the literal shape text matches, if any.
func ClassifyNumber(text string) (NumberKind, bool) {
	if text == "" {
		return 0, false
	}
	for _, shape := range numberShapes {
		if shape.pattern.MatchString(text) {
			return shape.kind, true
		}
	}
	return 0, false
}

// Number is a decoded numeric literal. Int is set for the four integer
// shapes, Real for the real shape.
type Number struct {
	Kind NumberKind
	Text string
	Int  int64
	Real float64
}

func (n Number) String() string {
	if n.Kind == NumberReal {
		return strconv.FormatFloat(n.Real, 'g', -1, 64)
	}
	return strconv.FormatInt(n.Int, 10)
}

// ParseNumber decodes a NUMBER lexeme according to its shape.
func ParseNumber(text string) (Number, error) {
	kind, ok := ClassifyNumber(text)
	if !ok {
		return Number{}, fmt.Errorf("invalid number '%s'", text)
	}

	n := Number{Kind: kind, Text: text}
	var err error
	switch kind {
	case NumberBinary:
		n.Int, err = strconv.ParseInt(text[:len(text)-1], 2, 64)
	case NumberOctal:
		n.Int, err = strconv.ParseInt(text[:len(text)-1], 8, 64)
	case NumberDecimal:
		n.Int, err = strconv.ParseInt(strings.TrimRight(text, "Dd"), 10, 64)
	case NumberHexadecimal:
		n.Int, err = strconv.ParseInt(text[:len(text)-1], 16, 64)
	case NumberReal:
		n.Real, err = strconv.ParseFloat(text, 64)
	}
	if err != nil {
		return Number{}, fmt.Errorf("cannot decode %s number '%s': %w", kind, text, err)
	}
	return n, nil
}
