package lib

import "fmt"

type Category int

const (
	CategoryKeyword Category = iota
	CategoryIdentifier
	CategoryOperator
	CategorySeparator
	CategoryNumber
	CategoryComment
)

var categoryNames = [...]string{
	CategoryKeyword:    "KEYWORD",
	CategoryIdentifier: "IDENTIFIER",
	CategoryOperator:   "OPERATOR",
	CategorySeparator:  "SEPARATOR",
	CategoryNumber:     "NUMBER",
	CategoryComment:    "COMMENT",
}

func (c Category) String() string {
	if c >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Location is a 1-based line/column pair.
type Location struct {
	Line int
	Col  int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

// Token is a finalized lexeme. The Location is that of its first character.
type Token struct {
	Category Category
	Text     string
	Location Location
}

func (t Token) String() string {
	return tokenString(t)
}

func (t Token) is(category Category, text string) bool {
	return t.Category == category && t.Text == text
}

func (t Token) isKeyword(word string) bool {
	return t.is(CategoryKeyword, word)
}

var keywords = map[string]bool{
	"integer": true,
	"real":    true,
	"boolean": true,
	"dim":     true,
	"as":      true,
	"if":      true,
	"then":    true,
	"else":    true,
	"for":     true,
	"to":      true,
	"do":      true,
	"while":   true,
	"read":    true,
	"write":   true,
	"true":    true,
	"false":   true,
	"program": true,
	"end":     true,
}

var wordOperators = map[string]bool{
	"EQ":   true,
	"NE":   true,
	"LT":   true,
	"LE":   true,
	"GT":   true,
	"GE":   true,
	"plus": true,
	"min":  true,
	"or":   true,
	"mult": true,
	"div":  true,
	"and":  true,
}

var relationalOperators = map[string]bool{
	"EQ": true, "NE": true, "LT": true, "LE": true, "GT": true, "GE": true,
}

var additiveOperators = map[string]bool{
	"plus": true, "min": true, "or": true,
}

var multiplicativeOperators = map[string]bool{
	"mult": true, "div": true, "and": true,
}

func isSymbolicOperator(ch rune) bool {
	return ch == '~' || ch == '='
}

func isSeparator(ch rune) bool {
	switch ch {
	case '[', ']', '(', ')', ':', ';', ',':
		return true
	}
	return false
}

// IsKeyword reports whether word is a reserved keyword.
func IsKeyword(word string) bool {
	return keywords[word]
}

// IsWordOperator reports whether word is an alphabetic operator such as plus or EQ.
func IsWordOperator(word string) bool {
	return wordOperators[word]
}

// classifyWord applies the keyword > word-operator > identifier priority.
func classifyWord(word string) Category {
	if keywords[word] {
		return CategoryKeyword
	}
	if wordOperators[word] {
		return CategoryOperator
	}
	return CategoryIdentifier
}

func tokenString(tok Token) string {
	return fmt.Sprintf(
		"%d:%d -> %s",
		tok.Location.Line,
		tok.Location.Col,
		tokenValueString(tok))
}

func tokenValueString(tok Token) string {
	switch tok.Category {
	case CategoryKeyword:
		return fmt.Sprintf("keyword: %s", tok.Text)
	case CategoryIdentifier:
		return fmt.Sprintf("identifier: %s", tok.Text)
	case CategoryOperator:
		return fmt.Sprintf("operator: %s", tok.Text)
	case CategorySeparator:
		return tok.Text
	case CategoryNumber:
		return fmt.Sprintf("number: %s", tok.Text)
	case CategoryComment:
		return fmt.Sprintf("comment: %s", tok.Text)
	default:
		return "?"
	}
}
