package lib

import (
	"fmt"
	"io"
	"log/slog"
)

// Validate checks a complete token sequence against the program grammar.
// Validation stops at the first violation; on success the program name and
// its declarations are returned.
func Validate(tokens []Token) (Program, error) {
	return validate(tokens, nil)
}

func validate(tokens []Token, logger *slog.Logger) (Program, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p := parser{
		reader:  newTokenBuffer(tokens),
		symbols: newSymbolTable(),
		logger:  logger,
	}
	return p.scan()
}

type parser struct {
	reader  tokenReader
	symbols *symbolTable
	logger  *slog.Logger
}

// Program := 'program' IDENTIFIER Declarations Body 'end'
func (p *parser) scan() (Program, error) {
	if _, done := p.reader.Peek(); done {
		return Program{}, &SyntaxError{
			Token: Token{Location: Location{Line: 1, Col: 1}},
			Msg:   "Token list is empty",
		}
	}

	if _, err := p.requireKeyword("program", "The program must start with the keyword 'program'"); err != nil {
		return Program{}, err
	}
	name, err := p.requireToken(CategoryIdentifier, "Expected program name after 'program'")
	if err != nil {
		return Program{}, err
	}

	if err := p.scanDeclarations(); err != nil {
		return Program{}, err
	}
	if err := p.scanBody(); err != nil {
		return Program{}, err
	}
	if _, err := p.requireKeyword("end", "Program must end with 'end'"); err != nil {
		return Program{}, err
	}

	// Anything after 'end' is not looked at.
	return Program{
		Name:         name.Text,
		Declarations: p.symbols.declarations(),
	}, nil
}

// Declarations := { 'dim' IDENTIFIER 'as' TypeKeyword }
func (p *parser) scanDeclarations() error {
	defer p.symbols.seal()

	for p.checkKeyword("dim") {
		name, err := p.requireToken(CategoryIdentifier, "Expected an identifier")
		if err != nil {
			return err
		}
		if _, err := p.requireKeyword("as", "Expected 'as' after variable name"); err != nil {
			return err
		}

		typeTok, err := p.requireToken(CategoryKeyword, "Expected variable type")
		if err != nil {
			return err
		}
		varType, ok := typeKeywords[typeTok.Text]
		if !ok {
			return p.errorAt(typeTok, "Unknown variable type")
		}

		decl := Declaration{Name: name.Text, Type: varType, Location: name.Location}
		if err := p.symbols.declare(decl); err != nil {
			return p.errorAt(name, err.Error())
		}
		p.logger.Debug("declared variable",
			slog.String("name", decl.Name),
			slog.String("type", decl.Type.String()),
			slog.String("at", decl.Location.String()))
	}
	return nil
}

// Body := { Statement }, ending before 'end' or 'else'. Running out of
// tokens also ends the body; the caller then reports the missing 'end'.
func (p *parser) scanBody() error {
	for {
		tok, done := p.reader.Peek()
		if done || tok.isKeyword("end") || tok.isKeyword("else") {
			return nil
		}
		if err := p.scanStatement(tok); err != nil {
			return err
		}
	}
}

// Statement := Assignment | IfStmt | WhileStmt | ReadStmt | WriteStmt
func (p *parser) scanStatement(tok Token) error {
	switch tok.Category {
	case CategoryIdentifier:
		return p.scanAssignment()
	case CategoryKeyword:
		switch tok.Text {
		case "if":
			return p.scanIf()
		case "while":
			return p.scanWhile()
		case "read":
			return p.scanRead()
		case "write":
			return p.scanWrite()
		}
		return p.errorAt(tok, "Unexpected keyword")
	default:
		return p.errorAt(tok, "Incorrect input")
	}
}

// Assignment := IDENTIFIER '=' Expr
func (p *parser) scanAssignment() error {
	if err := p.requireDeclared(); err != nil {
		return err
	}
	if !p.checkToken(CategoryOperator, "=") {
		return p.errorAtNext("Expected assignment '='")
	}
	return p.scanExpr()
}

// IfStmt := 'if' Expr 'then' Body [ 'else' Body ]
func (p *parser) scanIf() error {
	p.advance()
	if err := p.scanExpr(); err != nil {
		return err
	}
	if !p.checkKeyword("then") {
		return p.errorAtNext("Missing 'then' in if statement")
	}
	if err := p.scanBody(); err != nil {
		return err
	}
	if p.checkKeyword("else") {
		return p.scanBody()
	}
	return nil
}

// WhileStmt := 'while' Expr 'do' Body
func (p *parser) scanWhile() error {
	p.advance()
	if err := p.scanExpr(); err != nil {
		return err
	}
	if !p.checkKeyword("do") {
		return p.errorAtNext("Missing 'do' in while loop")
	}
	return p.scanBody()
}

// ReadStmt := 'read' IDENTIFIER
func (p *parser) scanRead() error {
	p.advance()
	tok, done := p.reader.Peek()
	if done || tok.Category != CategoryIdentifier {
		return p.errorAtNext("Expected identifier after 'read'")
	}
	return p.requireDeclared()
}

// WriteStmt := 'write' Expr
func (p *parser) scanWrite() error {
	p.advance()
	return p.scanExpr()
}

/*
 Expressions: each level loops on its own operator set, one token of
 lookahead deciding whether to continue.
*/

// Expr := Disjunct { RelOp Disjunct }
func (p *parser) scanExpr() error {
	return p.scanBinary(relationalOperators, p.scanDisjunct)
}

// Disjunct := Term { ('plus'|'min'|'or') Term }
func (p *parser) scanDisjunct() error {
	return p.scanBinary(additiveOperators, p.scanTerm)
}

// Term := Factor { ('mult'|'div'|'and') Factor }
func (p *parser) scanTerm() error {
	return p.scanBinary(multiplicativeOperators, p.scanFactor)
}

func (p *parser) scanBinary(ops map[string]bool, operand func() error) error {
	if err := operand(); err != nil {
		return err
	}
	for {
		tok, done := p.reader.Peek()
		if done || tok.Category != CategoryOperator || !ops[tok.Text] {
			return nil
		}
		p.advance()
		if err := operand(); err != nil {
			return err
		}
	}
}

// Factor := IDENTIFIER | 'true' | 'false' | NUMBER | '~' Factor | '(' Expr ')'
func (p *parser) scanFactor() error {
	tok, done := p.reader.Peek()
	if done {
		return p.errorAtEnd("Expected an expression")
	}

	switch {
	case tok.Category == CategoryIdentifier:
		return p.requireDeclared()
	case tok.isKeyword("true"), tok.isKeyword("false"):
		p.advance()
		return nil
	case tok.Category == CategoryNumber:
		p.advance()
		return nil
	case tok.is(CategoryOperator, "~"):
		p.advance()
		return p.scanFactor()
	case tok.is(CategorySeparator, "("):
		p.advance()
		if err := p.scanExpr(); err != nil {
			return err
		}
		if !p.checkToken(CategorySeparator, ")") {
			return p.errorAt(tok, "Expected closing parenthesis")
		}
		return nil
	default:
		return p.errorAt(tok, "Unexpected token")
	}
}

// requireDeclared consumes the identifier under the cursor, which must be
// in the declared-variable table. Only the name is checked.
func (p *parser) requireDeclared() error {
	tok, _ := p.reader.Next()
	if _, ok := p.symbols.lookup(tok.Text); !ok {
		return p.errorAt(tok, fmt.Sprintf("Undeclared or incorrect variable '%s'", tok.Text))
	}
	return nil
}

func (p *parser) requireToken(category Category, msg string) (Token, error) {
	next, done := p.reader.Peek()
	if done {
		return Token{}, p.errorAtEnd(msg)
	}
	if next.Category != category {
		return Token{}, p.errorAt(next, msg)
	}
	p.advance()
	return next, nil
}

func (p *parser) requireKeyword(word string, msg string) (Token, error) {
	next, done := p.reader.Peek()
	if done {
		return Token{}, p.errorAtEnd(msg)
	}
	if !next.isKeyword(word) {
		return Token{}, p.errorAt(next, msg)
	}
	p.advance()
	return next, nil
}

func (p *parser) checkKeyword(word string) bool {
	return p.checkToken(CategoryKeyword, word)
}

func (p *parser) checkToken(category Category, text string) bool {
	next, done := p.reader.Peek()
	if done || !next.is(category, text) {
		return false
	}
	p.advance()
	return true
}

func (p *parser) advance() {
	_, _ = p.reader.Next()
}

func (p *parser) errorAt(tok Token, msg string) error {
	return &SyntaxError{Token: tok, Msg: msg}
}

// errorAtNext reports at the lookahead token, or at the end of input.
func (p *parser) errorAtNext(msg string) error {
	next, done := p.reader.Peek()
	if done {
		return p.errorAtEnd(msg)
	}
	return p.errorAt(next, msg)
}

func (p *parser) errorAtEnd(msg string) error {
	return &SyntaxError{
		Token: Token{Location: p.reader.Last().Location},
		Msg:   msg + ": unexpected end of tokens",
	}
}
