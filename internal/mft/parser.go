package mft

import (
	"fmt"
)

// Parser parses .mft source files into an AST.
//
// Parsing is first-error-wins: the earliest diagnostic is kept and every
// parse function unwinds as soon as one has been recorded.
type Parser struct {
	lexer   *Lexer
	current Token
	peek    Token
	errors  *ErrorList
}

// NewParser creates a new Parser for the given lexer.
func NewParser(lexer *Lexer) *Parser {
	p := &Parser{
		lexer:  lexer,
		errors: NewErrorList(),
	}
	// Read two tokens to initialize current and peek
	p.advance()
	p.advance()
	return p
}

// Errors returns any errors encountered during parsing.
func (p *Parser) Errors() *ErrorList {
	return p.errors
}

// advance moves to the next token.
func (p *Parser) advance() {
	p.current = p.peek
	p.peek = p.lexer.Next()
}

// ok reports whether no error has been recorded yet.
func (p *Parser) ok() bool {
	return !p.errors.HasErrors()
}

// position returns the current token's position.
func (p *Parser) position() Position {
	return Position{
		File:   p.lexer.filename,
		Line:   p.current.Line,
		Column: p.current.Column,
	}
}

// fail records a syntax error at the current token unless an earlier error
// exists. When the current token is a lexer error, the lexer's diagnostic
// is reported instead.
func (p *Parser) fail(format string, args ...any) {
	p.failHint("", format, args...)
}

// failHint is fail with a suggestion attached to the syntax error.
func (p *Parser) failHint(hint, format string, args ...any) {
	if p.errors.HasErrors() {
		return
	}
	if p.current.Type == TokenError {
		if err := p.lexer.Errors().First(); err != nil {
			p.errors.Add(err)
			return
		}
	}
	err := NewErrorf(p.position(), format, args...)
	err.Hint = hint
	p.errors.Add(err)
}

// expect checks that the current token has the expected type and advances.
func (p *Parser) expect(typ TokenType) (Token, bool) {
	if !p.ok() {
		return Token{}, false
	}
	tok := p.current
	if tok.Type != typ {
		p.fail("expected %s, got %s", typ, describe(tok))
		return Token{}, false
	}
	p.advance()
	return tok, true
}

// describe renders a token for diagnostics.
func describe(tok Token) string {
	switch tok.Type {
	case TokenIdent, TokenCssWord, TokenNumber, TokenString:
		return fmt.Sprintf("%s %s", tok.Type, quoteLiteral(tok.Literal))
	}
	return tok.Type.String()
}

func quoteLiteral(lit string) string {
	if len(lit) > 0 && (lit[0] == '"' || lit[0] == '\'') {
		return lit
	}
	return fmt.Sprintf("%q", lit)
}

// ParseFile parses a complete .mft file into a File AST node.
// On failure the AST is discarded and only the error is returned.
func (p *Parser) ParseFile() (*File, error) {
	file := &File{
		Position: p.position(),
	}

	for p.ok() && p.current.Type != TokenEOF {
		blk := p.parseBlock()
		if blk == nil {
			break
		}
		file.Blocks = append(file.Blocks, blk)
	}

	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return file, nil
}

// Parse is a convenience wrapper that lexes and parses source.
func Parse(filename, source string) (*File, error) {
	return NewParser(NewLexer(filename, source)).ParseFile()
}

// ParseExpression parses a single markup expression, such as the body of a
// {...} interpolation.
func ParseExpression(filename, source string) (Expr, error) {
	p := NewParser(NewLexer(filename, source))
	x := p.parseExpression()
	if p.ok() && p.current.Type == TokenNewline {
		p.advance()
	}
	p.expect(TokenEOF)
	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return x, nil
}

// parseBlock parses one top-level block.
func (p *Parser) parseBlock() Block {
	pos := p.position()

	switch p.current.Type {
	case TokenCss:
		p.advance()
		return p.parseCSSBlock(pos)
	case TokenHtml:
		p.advance()
		return p.parseHTMLBlock(pos)
	case TokenIdent:
		return p.parseHTMLBlock(pos)
	case TokenImport:
		p.advance()
		return p.parseImport(pos)
	default:
		p.fail("expected css, html or import block, got %s", describe(p.current))
		return nil
	}
}

// parseImport parses the rest of an import after the keyword:
//   - import name from "source"
//   - import {a, b as c} from "source"
func (p *Parser) parseImport(pos Position) Block {
	if p.current.Type != TokenLBrace {
		name, ok := p.expect(TokenIdent)
		if !ok {
			return nil
		}
		source, ok := p.parseImportSource()
		if !ok {
			return nil
		}
		return &ImportModule{Name: name.Literal, Source: source, Position: pos}
	}

	p.advance() // consume {
	imp := &ImportVars{Position: pos}
	for p.current.Type == TokenIdent {
		name := ImportName{Name: p.current.Literal}
		p.advance()
		if p.current.Type == TokenAs {
			p.advance()
			alias, ok := p.expect(TokenIdent)
			if !ok {
				return nil
			}
			name.Alias = alias.Literal
		}
		imp.Names = append(imp.Names, name)
		if p.current.Type != TokenComma {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(TokenRBrace); !ok {
		return nil
	}

	source, ok := p.parseImportSource()
	if !ok {
		return nil
	}
	imp.Source = source
	return imp
}

// parseImportSource parses `from "source"` and the line end.
func (p *Parser) parseImportSource() (string, bool) {
	if _, ok := p.expect(TokenFrom); !ok {
		return "", false
	}
	source, ok := p.parseStringValue()
	if !ok {
		return "", false
	}
	if _, ok := p.expect(TokenNewline); !ok {
		return "", false
	}
	return source, true
}

// parseStringValue consumes a string token and returns its unescaped value.
func (p *Parser) parseStringValue() (string, bool) {
	tok, ok := p.expect(TokenString)
	if !ok {
		return "", false
	}
	value, err := Unescape(tok.Literal)
	if err != nil {
		p.errors.AddErrorf(Position{File: p.lexer.filename, Line: tok.Line, Column: tok.Column}, "%v", err)
		return "", false
	}
	return value, true
}
