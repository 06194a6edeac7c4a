package mft

// Expression precedence, lowest first: or, and, not, comparison,
// additive, multiplicative, postfix, atom.

// parseExpression parses a full expression.
func (p *Parser) parseExpression() Expr {
	if !p.ok() {
		return nil
	}
	return p.parseOr()
}

func (p *Parser) parseOr() Expr {
	left := p.parseAnd()
	for p.ok() && p.current.Type == TokenOr {
		pos := p.position()
		p.advance()
		right := p.parseAnd()
		if right == nil {
			return nil
		}
		left = &OrExpr{Left: left, Right: right, Position: pos}
	}
	if !p.ok() {
		return nil
	}
	return left
}

func (p *Parser) parseAnd() Expr {
	left := p.parseNot()
	for p.ok() && p.current.Type == TokenAnd {
		pos := p.position()
		p.advance()
		right := p.parseNot()
		if right == nil {
			return nil
		}
		left = &AndExpr{Left: left, Right: right, Position: pos}
	}
	if !p.ok() {
		return nil
	}
	return left
}

func (p *Parser) parseNot() Expr {
	if p.current.Type != TokenNot {
		return p.parseComparison()
	}
	pos := p.position()
	p.advance()
	x := p.parseNot()
	if x == nil {
		return nil
	}
	return &NotExpr{X: x, Position: pos}
}

var comparators = map[TokenType]Comparator{
	TokenEq:        CmpEq,
	TokenNotEq:     CmpNotEq,
	TokenLess:      CmpLess,
	TokenLessEq:    CmpLessEq,
	TokenGreater:   CmpGreater,
	TokenGreaterEq: CmpGreaterEq,
}

// parseComparison folds chained comparisons to the left.
func (p *Parser) parseComparison() Expr {
	left := p.parseAdditive()
	for p.ok() {
		op, ok := comparators[p.current.Type]
		if !ok {
			break
		}
		pos := p.position()
		p.advance()
		right := p.parseAdditive()
		if right == nil {
			return nil
		}
		left = &CompareExpr{Op: op, Left: left, Right: right, Position: pos}
	}
	if !p.ok() {
		return nil
	}
	return left
}

func (p *Parser) parseAdditive() Expr {
	left := p.parseMultiplicative()
	for p.ok() && (p.current.Type == TokenPlus || p.current.Type == TokenDash) {
		op := OpAdd
		if p.current.Type == TokenDash {
			op = OpSub
		}
		pos := p.position()
		p.advance()
		right := p.parseMultiplicative()
		if right == nil {
			return nil
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right, Position: pos}
	}
	if !p.ok() {
		return nil
	}
	return left
}

func (p *Parser) parseMultiplicative() Expr {
	left := p.parsePostfix()
	for p.ok() && (p.current.Type == TokenMultiply || p.current.Type == TokenDivide) {
		op := OpMul
		if p.current.Type == TokenDivide {
			op = OpDiv
		}
		pos := p.position()
		p.advance()
		right := p.parsePostfix()
		if right == nil {
			return nil
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right, Position: pos}
	}
	if !p.ok() {
		return nil
	}
	return left
}

// parsePostfix parses attribute access, indexing and calls.
func (p *Parser) parsePostfix() Expr {
	x := p.parseAtom()
	for p.ok() {
		pos := p.position()
		switch p.current.Type {
		case TokenDot:
			p.advance()
			if !isWord(p.current) {
				p.fail("expected attribute name, got %s", describe(p.current))
				return nil
			}
			x = &AttrExpr{X: x, Name: p.current.Literal, Position: pos}
			p.advance()
		case TokenLBracket:
			p.advance()
			idx := p.parseExpression()
			if _, ok := p.expect(TokenRBracket); !ok {
				return nil
			}
			x = &ItemExpr{X: x, Index: idx, Position: pos}
		case TokenLParen:
			p.advance()
			args := p.parseExprList(TokenRParen)
			if !p.ok() {
				return nil
			}
			x = &CallExpr{Func: x, Args: args, Position: pos}
		default:
			return x
		}
	}
	return nil
}

// isWord reports whether tok is spelled as a bare word, so that keywords
// can still be used as attribute, class and dictionary key names. A lone !
// shares its token type with not but is no word.
func isWord(tok Token) bool {
	if tok.Type == TokenIdent {
		return true
	}
	if _, ok := keywordTypes[tok.Type]; !ok {
		return false
	}
	return tok.Literal != "" && isLetter(rune(tok.Literal[0]))
}

var keywordTypes = func() map[TokenType]struct{} {
	m := make(map[TokenType]struct{}, len(keywords))
	for _, typ := range keywords {
		m[typ] = struct{}{}
	}
	return m
}()

// parseExprList parses comma-separated expressions up to and including the
// closing token. A trailing comma is allowed.
func (p *Parser) parseExprList(closing TokenType) []Expr {
	var items []Expr
	for p.ok() && p.current.Type != closing {
		x := p.parseExpression()
		if x == nil {
			return nil
		}
		items = append(items, x)
		if p.current.Type != TokenComma {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(closing); !ok {
		return nil
	}
	return items
}

// parseAtom parses names, literals and bracketed expressions.
func (p *Parser) parseAtom() Expr {
	pos := p.position()

	switch p.current.Type {
	case TokenIdent:
		name := p.current.Literal
		p.advance()
		return &NameExpr{Name: name, Position: pos}

	case TokenNew:
		p.advance()
		x := p.parsePostfix()
		if x == nil {
			return nil
		}
		return &NewExpr{X: x, Position: pos}

	case TokenNumber:
		text := p.current.Literal
		p.advance()
		return &NumberLit{Text: text, Position: pos}

	case TokenString:
		value, ok := p.parseStringValue()
		if !ok {
			return nil
		}
		segs := SplitFormat(value)
		if !hasInterpolation(segs) {
			return &StringLit{Value: joinText(segs), Position: pos}
		}
		return &FormatString{Segments: segs, Position: pos}

	case TokenLBrace:
		return p.parseDict()

	case TokenLBracket:
		p.advance()
		items := p.parseExprList(TokenRBracket)
		if !p.ok() {
			return nil
		}
		return &ListLit{Items: items, Position: pos}

	case TokenLParen:
		p.advance()
		x := p.parseExpression()
		if _, ok := p.expect(TokenRParen); !ok {
			return nil
		}
		return x

	default:
		p.fail("expected expression, got %s", describe(p.current))
		return nil
	}
}

// parseDict parses {key: value, "quoted key": value}.
func (p *Parser) parseDict() Expr {
	dict := &DictLit{Position: p.position()}
	p.advance() // consume {

	for p.ok() && p.current.Type != TokenRBrace {
		var key string
		switch {
		case p.current.Type == TokenString:
			value, ok := p.parseStringValue()
			if !ok {
				return nil
			}
			key = value
		case isWord(p.current):
			key = p.current.Literal
			p.advance()
		default:
			p.fail("expected dictionary key, got %s", describe(p.current))
			return nil
		}
		if _, ok := p.expect(TokenColon); !ok {
			return nil
		}
		value := p.parseExpression()
		if value == nil {
			return nil
		}
		dict.Items = append(dict.Items, DictItem{Key: key, Value: value})
		if p.current.Type != TokenComma {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(TokenRBrace); !ok {
		return nil
	}
	return dict
}
