package mft

import (
	"fmt"
	"strings"
)

// readString reads a single- or double-quoted string. Escapes are skipped
// over but kept in the literal; see Unescape for their meaning.
func (l *Lexer) readString() Token {
	quote := l.ch
	l.readChar() // consume opening quote

	for {
		if l.eof() {
			return l.fail("unterminated string literal")
		}
		switch l.ch {
		case quote:
			l.readChar() // consume closing quote
			return l.makeToken(TokenString, l.source[l.tokenStartPos:l.pos])
		case '\\':
			l.readChar() // consume backslash
			if l.eof() {
				return l.fail("unterminated string literal")
			}
			l.readChar() // any character is allowed after a backslash
		default:
			l.readChar()
		}
	}
}

// Unescape converts a quoted string literal, as produced by the lexer, into
// its value. \n, \r and \t map to control characters; a backslash before
// any other character yields that character.
func Unescape(literal string) (string, error) {
	if len(literal) < 2 {
		return "", fmt.Errorf("string literal %q is too short", literal)
	}
	quote := literal[0]
	if (quote != '"' && quote != '\'') || literal[len(literal)-1] != quote {
		return "", fmt.Errorf("string literal %q is not quoted", literal)
	}

	body := literal[1 : len(literal)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}

	var sb strings.Builder
	sb.Grow(len(body))
	escaped := false
	for _, r := range body {
		if escaped {
			switch r {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteRune(r)
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		sb.WriteRune(r)
	}
	if escaped {
		return "", fmt.Errorf("string literal %q ends with a backslash", literal)
	}
	return sb.String(), nil
}
