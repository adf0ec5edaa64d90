package lib

// tokenBuffer is the validator's cursor over a fully scanned token
// sequence. COMMENT tokens are stepped over before every read, so the
// grammar never sees them.
type tokenBuffer struct {
	tokens []Token
	index  int
	last   Token
}

func newTokenBuffer(tokens []Token) *tokenBuffer {
	return &tokenBuffer{
		tokens: tokens,
		last:   Token{Location: Location{Line: 1, Col: 1}},
	}
}

func (tb *tokenBuffer) skipComments() {
	for tb.index < len(tb.tokens) && tb.tokens[tb.index].Category == CategoryComment {
		tb.index++
	}
}

func (tb *tokenBuffer) Next() (Token, bool) {
	tok, done := tb.Peek()
	if done {
		return Token{}, true
	}
	tb.index++
	tb.last = tok
	return tok, false
}

func (tb *tokenBuffer) Peek() (Token, bool) {
	tb.skipComments()
	if tb.index >= len(tb.tokens) {
		return Token{}, true
	}
	return tb.tokens[tb.index], false
}

// Last returns the most recently consumed token, or a token at 1:1 if
// nothing has been consumed yet.
func (tb *tokenBuffer) Last() Token {
	return tb.last
}
