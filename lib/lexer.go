package lib

import (
	"unicode"
)

type scanMode int

const (
	modeIdle scanMode = iota
	modeWord
	modeNumber
	modeComment
	modeSymbol
)

// scanState is everything the scanner carries between characters. It is
// threaded through step by value, so a lexer holds no hidden state.
type scanState struct {
	mode  scanMode
	buf   []rune
	start Location
}

func (st scanState) text() string {
	return string(st.buf)
}

// Lex scans the given lines and calls emit for every finalized token, in
// source order. The first lexical error stops the scan.
func Lex(lines []string, emit func(Token)) error {
	st := scanState{}
	for i, line := range lines {
		var err error
		st, err = lexLine(st, i+1, line, emit)
		if err != nil {
			return err
		}
	}
	return nil
}

// Tokenize is Lex collecting the tokens into a slice.
func Tokenize(lines []string) ([]Token, error) {
	tokens := []Token{}
	err := Lex(lines, func(t Token) {
		tokens = append(tokens, t)
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// lexLine feeds one line through the machine. Whatever run is open at the
// end of the line is finalized there, comments included.
func lexLine(st scanState, lineNo int, line string, emit func(Token)) (scanState, error) {
	col := 0
	for _, ch := range line {
		col++
		var err error
		st, err = step(st, ch, Location{Line: lineNo, Col: col}, emit)
		if err != nil {
			return scanState{}, err
		}
	}
	return finish(st, emit)
}

// step advances the machine by one character.
func step(st scanState, ch rune, at Location, emit func(Token)) (scanState, error) {
	switch st.mode {
	case modeWord:
		if isWordPart(ch) {
			st.buf = append(st.buf, ch)
			return st, nil
		}
		return replay(st, ch, at, emit)

	case modeNumber:
		if isNumberPart(ch) {
			st.buf = append(st.buf, ch)
			return st, nil
		}
		if unicode.IsLetter(ch) || ch == '_' {
			return scanState{}, &LexicalError{
				Location: st.start,
				Lexeme:   st.text() + string(ch),
				Msg:      "invalid number",
			}
		}
		return replay(st, ch, at, emit)

	case modeComment:
		st.buf = append(st.buf, ch)
		if ch == '}' {
			return finish(st, emit)
		}
		return st, nil

	default:
		return start(ch, at, emit)
	}
}

// replay finalizes the open run and scans ch again from idle, so the
// character that ended the run is neither lost nor consumed twice.
func replay(st scanState, ch rune, at Location, emit func(Token)) (scanState, error) {
	st, err := finish(st, emit)
	if err != nil {
		return scanState{}, err
	}
	return start(ch, at, emit)
}

func start(ch rune, at Location, emit func(Token)) (scanState, error) {
	open := func(mode scanMode) scanState {
		return scanState{mode: mode, buf: []rune{ch}, start: at}
	}

	switch {
	case unicode.IsSpace(ch):
		return scanState{}, nil
	case unicode.IsLetter(ch):
		return open(modeWord), nil
	case isDigit(ch) || ch == '.':
		return open(modeNumber), nil
	case ch == '{':
		return open(modeComment), nil
	case isSymbolicOperator(ch):
		return finish(open(modeSymbol), emit)
	case isSeparator(ch):
		emit(Token{Category: CategorySeparator, Text: string(ch), Location: at})
		return scanState{}, nil
	default:
		return scanState{}, &LexicalError{
			Location: at,
			Lexeme:   string(ch),
			Msg:      "invalid character",
		}
	}
}

// finish classifies the open run, emits it and returns the idle state.
func finish(st scanState, emit func(Token)) (scanState, error) {
	if st.mode == modeIdle || len(st.buf) == 0 {
		return scanState{}, nil
	}

	text := st.text()
	tok := Token{Text: text, Location: st.start}
	switch st.mode {
	case modeWord:
		tok.Category = classifyWord(text)
	case modeNumber:
		if _, ok := ClassifyNumber(text); !ok {
			return scanState{}, &LexicalError{Location: st.start, Lexeme: text, Msg: "invalid number"}
		}
		tok.Category = CategoryNumber
	case modeComment:
		tok.Category = CategoryComment
	case modeSymbol:
		tok.Category = CategoryOperator
	}

	emit(tok)
	return scanState{}, nil
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isWordPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}

// isNumberPart accepts speculatively; the shape is only checked on finish.
func isNumberPart(ch rune) bool {
	if isDigit(ch) {
		return true
	}
	switch ch {
	case '.', '+', '-',
		'A', 'B', 'C', 'D', 'E', 'F', 'a', 'b', 'c', 'd', 'e', 'f',
		'O', 'o', 'H', 'h':
		return true
	}
	return false
}
