package mft

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// lexMode selects how bare words are read.
type lexMode int

const (
	modeNormal lexMode = iota
	modeCSS            // words may contain '-' and '.'
)

// Lexer tokenizes .mft source files.
//
// The lexer walks the source one grapheme cluster at a time, so a column is
// one user-perceived character regardless of its byte length. Newlines are
// significant only outside brackets, and indentation changes at the start of
// a line are reported as Indent and Dedent tokens.
type Lexer struct {
	filename string
	source   string
	pos      int  // byte offset of the current cluster
	next     int  // byte offset just past the current cluster
	ch       rune // first rune of the current cluster
	line     int  // current line (1-based)
	column   int  // current column (1-based, in clusters)
	segState int  // uniseg boundary state carried between clusters

	brackets []rune // open brackets, innermost last
	indents  []int  // indentation levels, always starts with 0
	mode     lexMode
	lastType TokenType // type of the last token handed out

	// Track the start position of current token
	tokenLine     int
	tokenColumn   int
	tokenStartPos int

	failure *Token // sticky error token once lexing has failed
	errors  *ErrorList
}

// NewLexer creates a new Lexer for the given source.
func NewLexer(filename, source string) *Lexer {
	l := &Lexer{
		filename: filename,
		source:   source,
		line:     1,
		column:   1,
		segState: -1,
		indents:  []int{0},
		lastType: TokenNewline,
		errors:   NewErrorList(),
	}
	l.load()
	return l
}

// Errors returns any errors encountered during lexing.
func (l *Lexer) Errors() *ErrorList {
	return l.errors
}

// Clone returns an independent copy of the lexer at its current position.
// Advancing the copy does not affect the original.
func (l *Lexer) Clone() *Lexer {
	c := *l
	c.brackets = append([]rune(nil), l.brackets...)
	c.indents = append([]int(nil), l.indents...)
	c.errors = NewErrorList()
	for _, err := range l.errors.Errors() {
		c.errors.Add(err)
	}
	if l.failure != nil {
		tok := *l.failure
		c.failure = &tok
	}
	return &c
}

// Tokenize runs a lexer over source and returns every token up to and
// including EOF. Lexing stops at the first error.
func Tokenize(filename, source string) ([]Token, error) {
	l := NewLexer(filename, source)
	var tokens []Token
	for {
		tok := l.Next()
		if tok.Type == TokenError {
			return tokens, l.errors.Err()
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// load decodes the cluster starting at l.pos.
func (l *Lexer) load() {
	if l.pos >= len(l.source) {
		l.ch = 0
		l.next = l.pos
		return
	}
	cluster, _, _, state := uniseg.FirstGraphemeClusterInString(l.source[l.pos:], l.segState)
	l.segState = state
	l.next = l.pos + len(cluster)
	if cluster == "\r\n" {
		l.ch = '\n'
		return
	}
	l.ch, _ = utf8.DecodeRuneInString(cluster)
}

// readChar advances to the next cluster in the source.
func (l *Lexer) readChar() {
	if l.eof() {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos = l.next
	l.load()
}

// peekChar returns the first rune of the next cluster without advancing.
func (l *Lexer) peekChar() rune {
	if l.next >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.next:])
	return r
}

// eof reports whether the whole source has been consumed.
func (l *Lexer) eof() bool {
	return l.pos >= len(l.source)
}

// startToken marks the beginning of a new token.
func (l *Lexer) startToken() {
	l.tokenLine = l.line
	l.tokenColumn = l.column
	l.tokenStartPos = l.pos
}

// makeToken creates a token with the current start position.
func (l *Lexer) makeToken(typ TokenType, literal string) Token {
	return Token{
		Type:     typ,
		Literal:  literal,
		Line:     l.tokenLine,
		Column:   l.tokenColumn,
		StartPos: l.tokenStartPos,
	}
}

// position returns the current token Position for error reporting.
func (l *Lexer) position() Position {
	return Position{
		File:   l.filename,
		Line:   l.tokenLine,
		Column: l.tokenColumn,
	}
}

// fail records a lexical error and returns the error token.
func (l *Lexer) fail(format string, args ...any) Token {
	return l.failHint("", format, args...)
}

// failHint is fail with a suggestion attached to the error.
func (l *Lexer) failHint(hint, format string, args ...any) Token {
	err := NewErrorf(l.position(), format, args...)
	err.Hint = hint
	l.errors.Add(err)
	return l.makeToken(TokenError, l.source[l.tokenStartPos:l.pos])
}

// Next returns the next token from the source. After the first lexical
// error every call returns the same error token.
func (l *Lexer) Next() Token {
	if l.failure != nil {
		return *l.failure
	}
	tok := l.scan()
	if tok.Type == TokenError {
		l.failure = &tok
		return tok
	}
	l.lastType = tok.Type
	return tok
}

func (l *Lexer) scan() Token {
	for {
		if l.column == 1 && !l.eof() {
			if tok, ok := l.lineStart(); ok {
				return tok
			}
		}

		l.startToken()
		if l.eof() {
			return l.finish()
		}

		switch l.ch {
		case '\n':
			l.readChar()
			if len(l.brackets) == 0 {
				return l.makeToken(TokenNewline, l.source[l.tokenStartPos:l.pos])
			}
			continue

		case ' ', '\t', '\r':
			l.readChar()
			continue

		case '#':
			// the comment runs up to the line break, which lexes as usual
			for !l.eof() && l.ch != '\n' {
				l.readChar()
			}
			continue

		case '(', '[', '{':
			return l.openBracket()

		case ')', ']', '}':
			return l.closeBracket()

		case '"', '\'':
			return l.readString()
		}

		if l.mode == modeCSS && l.tokenColumn == 1 && isLetter(l.ch) {
			// a word at the start of a line begins a new top-level block
			l.mode = modeNormal
		}

		switch {
		case l.mode == modeCSS && isCSSWordStart(l.ch):
			return l.readCSSWord()
		case isLetter(l.ch):
			return l.readIdentifier()
		case isDigit(l.ch):
			return l.readNumber()
		}

		if tok, ok := l.readOperator(); ok {
			return tok
		}

		return l.fail("unexpected character %q", l.ch)
	}
}

// lineStart measures indentation for a line starting at column 1. It
// returns a token when the indentation level changes; ok is false when
// lexing should continue with the line's content.
func (l *Lexer) lineStart() (Token, bool) {
	for l.column == 1 && !l.eof() {
		if len(l.brackets) > 0 {
			return Token{}, false
		}

		width, end := l.measureIndent()
		if end >= len(l.source) || l.source[end] == '\n' ||
			(l.source[end] == '\r' && end+1 < len(l.source) && l.source[end+1] == '\n') {
			l.skipLine()
			continue
		}
		if l.source[end] == '#' {
			l.skipLine()
			continue
		}
		if l.source[end] == '\t' {
			l.skipSpaces()
			l.startToken()
			return l.failHint("indent with spaces", "tab character in indentation"), true
		}

		top := l.indents[len(l.indents)-1]
		switch {
		case width == top:
			l.skipSpaces()
			return Token{}, false

		case width > top:
			l.indents = append(l.indents, width)
			l.skipSpaces()
			l.startToken()
			return l.makeToken(TokenIndent, ""), true

		default:
			l.indents = l.indents[:len(l.indents)-1]
			outer := l.indents[len(l.indents)-1]
			if outer < width {
				l.skipSpaces()
				l.startToken()
				return l.fail("inconsistent dedent: indentation of %d does not match any outer level", width), true
			}
			if outer == width {
				l.skipSpaces()
				l.startToken()
			} else {
				// more levels to unwind; stay at column 1 for the next call
				l.tokenLine = l.line
				l.tokenColumn = width + 1
				l.tokenStartPos = end
			}
			return l.makeToken(TokenDedent, ""), true
		}
	}
	return Token{}, false
}

// finish produces the trailing tokens at end of input.
func (l *Lexer) finish() Token {
	if len(l.brackets) == 0 && needsNewline(l.lastType) {
		return l.makeToken(TokenNewline, "")
	}
	if len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		return l.makeToken(TokenDedent, "")
	}
	return l.makeToken(TokenEOF, "")
}

// needsNewline reports whether a file ending right after a token of type
// typ is missing its final line break.
func needsNewline(typ TokenType) bool {
	switch typ {
	case TokenNewline, TokenIndent, TokenDedent, TokenEOF:
		return false
	}
	return true
}

func (l *Lexer) openBracket() Token {
	ch := l.ch
	l.readChar()
	l.brackets = append(l.brackets, ch)
	switch ch {
	case '(':
		return l.makeToken(TokenLParen, "(")
	case '[':
		return l.makeToken(TokenLBracket, "[")
	default:
		return l.makeToken(TokenLBrace, "{")
	}
}

func (l *Lexer) closeBracket() Token {
	ch := l.ch
	l.readChar()

	var typ TokenType
	var open rune
	switch ch {
	case ')':
		typ, open = TokenRParen, '('
	case ']':
		typ, open = TokenRBracket, '['
	default:
		typ, open = TokenRBrace, '{'
	}

	if len(l.brackets) == 0 || l.brackets[len(l.brackets)-1] != open {
		return l.fail("unmatched closing bracket %q", ch)
	}
	l.brackets = l.brackets[:len(l.brackets)-1]
	return l.makeToken(typ, string(ch))
}

// readOperator reads punctuation, matching two-character operators first.
func (l *Lexer) readOperator() (Token, bool) {
	two := func(second rune, long, short TokenType) Token {
		if l.peekChar() == second {
			l.readChar()
			l.readChar()
			return l.makeToken(long, l.source[l.tokenStartPos:l.pos])
		}
		l.readChar()
		return l.makeToken(short, l.source[l.tokenStartPos:l.pos])
	}
	one := func(typ TokenType) Token {
		l.readChar()
		return l.makeToken(typ, l.source[l.tokenStartPos:l.pos])
	}

	switch l.ch {
	case '=':
		return two('=', TokenEq, TokenEquals), true
	case '!':
		return two('=', TokenNotEq, TokenNot), true
	case '>':
		return two('=', TokenGreaterEq, TokenGreater), true
	case '<':
		return two('=', TokenLessEq, TokenLess), true
	case '-':
		return two('>', TokenArrowRight, TokenDash), true
	case ',':
		return one(TokenComma), true
	case ':':
		return one(TokenColon), true
	case '.':
		return one(TokenDot), true
	case '+':
		return one(TokenPlus), true
	case '*':
		return one(TokenMultiply), true
	case '/':
		return one(TokenDivide), true
	case '?':
		return one(TokenQuestion), true
	}
	return Token{}, false
}
