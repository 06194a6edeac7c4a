package mft

import (
	"strings"
)

// stmtContext selects which statements a body may contain.
type stmtContext int

const (
	ctxBlock   stmtContext = iota // top of a markup block: let allowed
	ctxElement                    // element body: let, store and link allowed
	ctxBranch                     // if/for body: no bindings
)

// parseHTMLBlock parses a markup block after the optional html keyword:
//
//	name(param, other="default") events a, b:
//	  statements...
func (p *Parser) parseHTMLBlock(pos Position) Block {
	name, ok := p.expect(TokenIdent)
	if !ok {
		return nil
	}
	blk := &HTMLBlock{Name: name.Literal, Position: pos}

	if p.current.Type == TokenLParen {
		p.advance()
		for p.current.Type == TokenIdent {
			param := &Param{Name: p.current.Literal, Position: p.position()}
			p.advance()
			if p.current.Type == TokenEquals {
				p.advance()
				tok, ok := p.expect(TokenString)
				if !ok {
					return nil
				}
				param.Default = tok.Literal
			}
			blk.Params = append(blk.Params, param)
			if p.current.Type != TokenComma {
				break
			}
			p.advance()
		}
		if _, ok := p.expect(TokenRParen); !ok {
			return nil
		}
	}

	if p.current.Type == TokenEvents {
		p.advance()
		for {
			tok, ok := p.expect(TokenIdent)
			if !ok {
				return nil
			}
			blk.Events = append(blk.Events, tok.Literal)
			if p.current.Type != TokenComma {
				break
			}
			p.advance()
		}
	}

	if !p.expectHeaderEnd() {
		return nil
	}
	blk.Body = p.parseChunk(ctxBlock)
	if !p.ok() {
		return nil
	}
	return blk
}

// expectHeaderEnd consumes the `:` and line end closing a header.
func (p *Parser) expectHeaderEnd() bool {
	if _, ok := p.expect(TokenColon); !ok {
		return false
	}
	_, ok := p.expect(TokenNewline)
	return ok
}

// parseChunk parses an optional indented run of statements.
func (p *Parser) parseChunk(ctx stmtContext) []Statement {
	if p.current.Type != TokenIndent {
		return nil
	}
	p.advance()

	var body []Statement
	for p.ok() && p.current.Type != TokenDedent {
		stmt := p.parseStatement(ctx)
		if stmt == nil {
			return nil
		}
		body = append(body, stmt)
	}
	if _, ok := p.expect(TokenDedent); !ok {
		return nil
	}
	return body
}

// parseStatement dispatches on the leading token of a body line.
func (p *Parser) parseStatement(ctx stmtContext) Statement {
	switch p.current.Type {
	case TokenIdent, TokenDot:
		return p.parseElement()
	case TokenString:
		return p.parseTextContent()
	case TokenEquals:
		return p.parseOutput()
	case TokenIf:
		return p.parseIf()
	case TokenFor:
		return p.parseFor()
	case TokenLet:
		if ctx == ctxBranch {
			p.fail("let is not allowed inside if or for")
			return nil
		}
		return p.parseLet()
	case TokenStore:
		if ctx != ctxElement {
			p.fail("store is only allowed inside an element")
			return nil
		}
		return p.parseStore()
	case TokenLink:
		if ctx != ctxElement {
			p.fail("link is only allowed inside an element")
			return nil
		}
		return p.parseLink()
	default:
		p.fail("expected statement, got %s", describe(p.current))
		return nil
	}
}

// parseElement parses `tag.class.cond?(expr) [a=expr, ...]` followed by
// either a text line or an indented body. A leading class implies div.
func (p *Parser) parseElement() Statement {
	elem := &Element{Name: "div", Position: p.position()}
	if p.current.Type == TokenIdent {
		elem.Name = p.current.Literal
		p.advance()
	}

	for p.current.Type == TokenDot {
		p.advance()
		name, ok := p.parseDashName()
		if !ok {
			return nil
		}
		cls := Class{Name: name}
		if p.current.Type == TokenQuestion {
			p.advance()
			if _, ok := p.expect(TokenLParen); !ok {
				return nil
			}
			cls.Cond = p.parseExpression()
			if _, ok := p.expect(TokenRParen); !ok {
				return nil
			}
		}
		elem.Classes = append(elem.Classes, cls)
	}

	if p.current.Type == TokenLBracket {
		p.advance()
		for isWord(p.current) {
			name, ok := p.parseDashName()
			if !ok {
				return nil
			}
			attr := Attribute{Name: name}
			if _, ok := p.expect(TokenEquals); !ok {
				return nil
			}
			attr.Value = p.parseExpression()
			if !p.ok() {
				return nil
			}
			elem.Attributes = append(elem.Attributes, attr)
			if p.current.Type != TokenComma {
				break
			}
			p.advance()
		}
		if _, ok := p.expect(TokenRBracket); !ok {
			return nil
		}
	}

	switch p.current.Type {
	case TokenString:
		text := p.parseTextContent()
		if text == nil {
			return nil
		}
		elem.Body = []Statement{text}
	case TokenNewline:
		p.advance()
		elem.Body = p.parseChunk(ctxElement)
	case TokenDash:
		p.failHint("class and attribute names cannot contain spaces",
			"expected text or new line after element, got %s", describe(p.current))
		return nil
	default:
		p.fail("expected text or new line after element, got %s", describe(p.current))
		return nil
	}
	if !p.ok() {
		return nil
	}
	return elem
}

// parseDashName reads a name such as btn-primary or btn-2x, which the
// lexer splits into words, dashes and numbers outside css blocks. Only
// pieces written without spaces between them belong to the name.
func (p *Parser) parseDashName() (string, bool) {
	if !isWord(p.current) {
		p.fail("expected name, got %s", describe(p.current))
		return "", false
	}
	var sb strings.Builder
	for {
		sb.WriteString(p.current.Literal)
		end := p.current.StartPos + len(p.current.Literal)
		p.advance()
		if p.current.StartPos != end || !isNamePiece(p.current) {
			return sb.String(), true
		}
	}
}

func isNamePiece(tok Token) bool {
	return tok.Type == TokenDash || tok.Type == TokenNumber || isWord(tok)
}

// parseTextContent parses a string line into text segments.
func (p *Parser) parseTextContent() Statement {
	pos := p.position()
	value, ok := p.parseStringValue()
	if !ok {
		return nil
	}
	if _, ok := p.expect(TokenNewline); !ok {
		return nil
	}
	return &TextContent{Segments: SplitFormat(value), Position: pos}
}

// parseOutput parses `= expr`.
func (p *Parser) parseOutput() Statement {
	pos := p.position()
	p.advance() // consume =
	value := p.parseExpression()
	if _, ok := p.expect(TokenNewline); !ok {
		return nil
	}
	return &Output{Value: value, Position: pos}
}

// parseAssignment parses `name = expr` and the line end after a binding
// keyword.
func (p *Parser) parseAssignment() (string, Expr, bool) {
	p.advance() // consume keyword
	name, ok := p.expect(TokenIdent)
	if !ok {
		return "", nil, false
	}
	if _, ok := p.expect(TokenEquals); !ok {
		return "", nil, false
	}
	value := p.parseExpression()
	if _, ok := p.expect(TokenNewline); !ok {
		return "", nil, false
	}
	return name.Literal, value, true
}

func (p *Parser) parseLet() Statement {
	pos := p.position()
	name, value, ok := p.parseAssignment()
	if !ok {
		return nil
	}
	return &LetBinding{Name: name, Value: value, Position: pos}
}

func (p *Parser) parseStore() Statement {
	pos := p.position()
	name, value, ok := p.parseAssignment()
	if !ok {
		return nil
	}
	return &StoreBinding{Name: name, Value: value, Position: pos}
}

// parseIf parses an if/elif/else chain.
func (p *Parser) parseIf() Statement {
	stmt := &IfStmt{Position: p.position()}

	for first := true; first || p.current.Type == TokenElif; first = false {
		p.advance() // consume if or elif
		cond := p.parseExpression()
		if !p.expectHeaderEnd() {
			return nil
		}
		body := p.parseChunk(ctxBranch)
		if !p.ok() {
			return nil
		}
		stmt.Branches = append(stmt.Branches, Branch{Cond: cond, Body: body})
	}

	if p.current.Type == TokenElse {
		p.advance()
		if !p.expectHeaderEnd() {
			return nil
		}
		stmt.Else = p.parseChunk(ctxBranch)
		stmt.HasElse = true
		if !p.ok() {
			return nil
		}
	}
	return stmt
}

// parseFor parses `for name of iterable:` and its body.
func (p *Parser) parseFor() Statement {
	loop := &ForLoop{Position: p.position()}
	p.advance() // consume for
	name, ok := p.expect(TokenIdent)
	if !ok {
		return nil
	}
	loop.Var = name.Literal
	if _, ok := p.expect(TokenOf); !ok {
		return nil
	}
	loop.Iterable = p.parseExpression()
	if !p.expectHeaderEnd() {
		return nil
	}
	loop.Body = p.parseChunk(ctxBranch)
	if !p.ok() {
		return nil
	}
	return loop
}

// parseLink parses `link a = dest, {b, c: d} = value -> dest`.
func (p *Parser) parseLink() Statement {
	stmt := &LinkStmt{Position: p.position()}
	p.advance() // consume link

	for {
		var link Link
		switch p.current.Type {
		case TokenIdent:
			link = p.parseSingleLink()
		case TokenLBrace:
			link = p.parseMultiLink()
		default:
			p.fail("expected event name or {, got %s", describe(p.current))
		}
		if !p.ok() {
			return nil
		}
		stmt.Links = append(stmt.Links, link)
		if p.current.Type != TokenComma {
			break
		}
		p.advance()
	}

	if _, ok := p.expect(TokenNewline); !ok {
		return nil
	}
	return stmt
}

func (p *Parser) parseSingleLink() Link {
	link := &SingleLink{Event: p.current.Literal}
	p.advance()
	link.Filter = p.parseLinkFilter()
	if _, ok := p.expect(TokenEquals); !ok {
		return nil
	}
	link.Dest = p.parseLinkDest()
	return link
}

func (p *Parser) parseMultiLink() Link {
	p.advance() // consume {
	link := &MultiLink{}
	for p.current.Type == TokenIdent {
		entry := LinkEntry{Attr: p.current.Literal}
		p.advance()
		entry.Filter = p.parseLinkFilter()
		if p.current.Type == TokenColon {
			p.advance()
			alias, ok := p.expect(TokenIdent)
			if !ok {
				return nil
			}
			entry.Alias = alias.Literal
		}
		link.Entries = append(link.Entries, entry)
		if p.current.Type != TokenComma {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(TokenRBrace); !ok {
		return nil
	}
	if _, ok := p.expect(TokenEquals); !ok {
		return nil
	}
	link.Dest = p.parseLinkDest()
	return link
}

// parseLinkFilter parses an optional [expr] event filter.
func (p *Parser) parseLinkFilter() Expr {
	if p.current.Type != TokenLBracket {
		return nil
	}
	p.advance()
	filter := p.parseExpression()
	if _, ok := p.expect(TokenRBracket); !ok {
		return nil
	}
	return filter
}

// parseLinkDest parses `target` or `value -> target`.
func (p *Parser) parseLinkDest() LinkDest {
	first := p.parseExpression()
	if p.current.Type != TokenArrowRight {
		return LinkDest{Target: first}
	}
	p.advance()
	return LinkDest{Value: first, Target: p.parseExpression()}
}
