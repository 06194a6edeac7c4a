package mft

// skipLine consumes everything up to and including the next line break.
func (l *Lexer) skipLine() {
	for !l.eof() && l.ch != '\n' {
		l.readChar()
	}
	l.readChar()
}

// skipSpaces consumes indentation spaces.
func (l *Lexer) skipSpaces() {
	for l.ch == ' ' {
		l.readChar()
	}
}

// measureIndent counts the spaces at the current position without
// consuming them. It returns the width and the byte offset of the first
// character after them.
func (l *Lexer) measureIndent() (int, int) {
	end := l.pos
	for end < len(l.source) && l.source[end] == ' ' {
		end++
	}
	return end - l.pos, end
}

// readIdentifier reads an identifier or keyword. The css keyword at the
// start of a line switches the lexer into css mode.
func (l *Lexer) readIdentifier() Token {
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	literal := l.source[l.tokenStartPos:l.pos]
	typ := LookupIdent(literal)
	if typ == TokenCss && l.tokenColumn == 1 {
		l.mode = modeCSS
	}
	return l.makeToken(typ, literal)
}

// readCSSWord reads a dashed css word such as font-size, 1.5em or 100%.
func (l *Lexer) readCSSWord() Token {
	for isCSSWordPart(l.ch) {
		l.readChar()
	}
	return l.makeToken(TokenCssWord, l.source[l.tokenStartPos:l.pos])
}

// readNumber reads a number; its text is passed through untouched. A dot
// belongs to the number only when a digit follows it, so col-12.wide keeps
// its class dot.
func (l *Lexer) readNumber() Token {
	for isDigit(l.ch) || l.ch == '_' || (l.ch == '.' && isDigit(l.peekChar())) {
		l.readChar()
	}
	return l.makeToken(TokenNumber, l.source[l.tokenStartPos:l.pos])
}

// isLetter returns true for ASCII letters and underscore.
func isLetter(ch rune) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

// isDigit returns true for ASCII digits.
func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isCSSWordStart(ch rune) bool {
	return isLetter(ch) || isDigit(ch) || ch == '-'
}

func isCSSWordPart(ch rune) bool {
	return isCSSWordStart(ch) || ch == '.' || ch == '%'
}
