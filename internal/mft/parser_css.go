package mft

import (
	"strings"
)

// parseCSSBlock parses a css block after the keyword:
//
//	css(name="default", ...):
//	  selector, selector:
//	    property: value
func (p *Parser) parseCSSBlock(pos Position) Block {
	blk := &CSSBlock{Position: pos}

	if p.current.Type == TokenLParen {
		p.advance()
		for p.current.Type == TokenCssWord {
			param := &CSSParam{Name: p.current.Literal, Position: p.position()}
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

	if _, ok := p.expect(TokenColon); !ok {
		return nil
	}
	if _, ok := p.expect(TokenNewline); !ok {
		return nil
	}

	if p.current.Type != TokenIndent {
		return blk
	}
	p.advance()
	for p.ok() && p.current.Type != TokenDedent {
		rule := p.parseRule()
		if rule == nil {
			return nil
		}
		blk.Rules = append(blk.Rules, rule)
	}
	if _, ok := p.expect(TokenDedent); !ok {
		return nil
	}
	return blk
}

// parseRule parses a selector list and its indented property lines.
// A trailing colon after the selectors is optional.
func (p *Parser) parseRule() *Rule {
	rule := &Rule{Position: p.position()}

	for {
		sel, ok := p.parseSelector()
		if !ok {
			return nil
		}
		rule.Selectors = append(rule.Selectors, sel)
		if p.current.Type != TokenComma {
			break
		}
		p.advance()
	}

	if p.current.Type == TokenColon {
		p.advance()
	}
	if _, ok := p.expect(TokenNewline); !ok {
		return nil
	}

	if p.current.Type != TokenIndent {
		return rule
	}
	p.advance()
	for p.ok() && p.current.Type != TokenDedent {
		if p.current.Type != TokenCssWord {
			p.fail("expected property name, got %s", describe(p.current))
			return nil
		}
		prop := Property{Name: p.current.Literal}
		p.advance()
		if _, ok := p.expect(TokenColon); !ok {
			return nil
		}
		prop.Value = p.parsePropertyValue()
		if _, ok := p.expect(TokenNewline); !ok {
			return nil
		}
		rule.Properties = append(rule.Properties, prop)
	}
	if _, ok := p.expect(TokenDedent); !ok {
		return nil
	}
	return rule
}

// parseSelector parses element.class.other:state. Either the element or at
// least one class must be present. A conditional class suffix ?(...) is
// accepted and its condition ignored; it matters only for markup.
func (p *Parser) parseSelector() (Selector, bool) {
	var sel Selector

	if p.current.Type == TokenCssWord {
		parts := splitDotted(p.current.Literal)
		sel.Element = parts[0]
		sel.Classes = append(sel.Classes, parts[1:]...)
		p.advance()
	}

	for p.current.Type == TokenDot {
		p.advance()
		tok, ok := p.expect(TokenCssWord)
		if !ok {
			return sel, false
		}
		parts := splitDotted(tok.Literal)
		sel.Classes = append(sel.Classes, parts...)
		if p.current.Type == TokenQuestion {
			p.advance()
			if !p.skipGroup() {
				return sel, false
			}
		}
	}

	if sel.Element == "" && len(sel.Classes) == 0 {
		p.fail("expected selector, got %s", describe(p.current))
		return sel, false
	}

	if p.current.Type == TokenColon && p.peek.Type == TokenCssWord {
		p.advance()
		sel.State = p.current.Literal
		p.advance()
	}
	return sel, true
}

// splitDotted splits a css word such as button.primary into its parts,
// dropping empty pieces. The first part is the element and may be empty.
func splitDotted(word string) []string {
	raw := strings.Split(word, ".")
	parts := raw[:1]
	for _, part := range raw[1:] {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// skipGroup consumes a balanced parenthesized group.
func (p *Parser) skipGroup() bool {
	if _, ok := p.expect(TokenLParen); !ok {
		return false
	}
	depth := 1
	for depth > 0 {
		switch p.current.Type {
		case TokenLParen:
			depth++
		case TokenRParen:
			depth--
		case TokenEOF, TokenError:
			p.fail("expected ), got %s", describe(p.current))
			return false
		}
		p.advance()
	}
	return true
}

// parsePropertyValue collects the tokens of a property value up to the end
// of the line. Words are separated by single spaces, commas attach to the
// preceding word and slashes and dots join their neighbours.
func (p *Parser) parsePropertyValue() string {
	var sb strings.Builder
	glue := true // no space before the next word

	word := func(text string) {
		if !glue {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
		glue = false
	}

	for p.ok() {
		switch p.current.Type {
		case TokenCssWord, TokenNumber, TokenString:
			word(p.current.Literal)
			p.advance()
			if p.current.Type == TokenLParen {
				p.advance()
				inner := p.parsePropertyValue()
				if _, ok := p.expect(TokenRParen); !ok {
					return ""
				}
				sb.WriteString("(" + inner + ")")
			}
		case TokenComma:
			sb.WriteByte(',')
			glue = false
			p.advance()
		case TokenDivide:
			sb.WriteByte('/')
			glue = true
			p.advance()
		case TokenDot:
			word(".")
			glue = true
			p.advance()
		case TokenNot:
			word("!")
			glue = true
			p.advance()
		default:
			return sb.String()
		}
	}
	return sb.String()
}
