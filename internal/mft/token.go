package mft

import "fmt"

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Special tokens
	TokenEOF   TokenType = iota // end of file
	TokenError                  // lexer error

	// Structural tokens
	TokenNewline // significant newline
	TokenIndent  // indentation increased
	TokenDedent  // indentation decreased

	// Block keywords
	TokenCss  // css
	TokenHtml // html

	// Control keywords
	TokenImport // import
	TokenFrom   // from
	TokenIf     // if
	TokenElif   // elif
	TokenElse   // else
	TokenFor    // for
	TokenIn     // in
	TokenOf     // of
	TokenLet    // let
	TokenStore  // store
	TokenLink   // link
	TokenNew    // new
	TokenNot    // not (also a lone !)
	TokenAnd    // and
	TokenOr     // or
	TokenAs     // as
	TokenEvents // events
	TokenKey    // key

	// Literals
	TokenIdent   // identifier
	TokenCssWord // dashed css word, only produced in css mode
	TokenNumber  // number, kept as opaque text
	TokenString  // quoted string, literal keeps the quotes

	// Operators and punctuation
	TokenComma      // ,
	TokenEquals     // =
	TokenEq         // ==
	TokenNotEq      // !=
	TokenGreater    // >
	TokenLess       // <
	TokenGreaterEq  // >=
	TokenLessEq     // <=
	TokenColon      // :
	TokenDot        // .
	TokenDash       // -
	TokenPlus       // +
	TokenMultiply   // *
	TokenDivide     // /
	TokenQuestion   // ?
	TokenArrowRight // ->
	TokenLParen     // (
	TokenRParen     // )
	TokenLBracket   // [
	TokenRBracket   // ]
	TokenLBrace     // {
	TokenRBrace     // }
)

// tokenNames maps token types to the names used in diagnostics.
var tokenNames = map[TokenType]string{
	TokenEOF:        "end of file",
	TokenError:      "error",
	TokenNewline:    "new line",
	TokenIndent:     "indentation",
	TokenDedent:     "unindent",
	TokenCss:        "css",
	TokenHtml:       "html",
	TokenImport:     "import",
	TokenFrom:       "from",
	TokenIf:         "if",
	TokenElif:       "elif",
	TokenElse:       "else",
	TokenFor:        "for",
	TokenIn:         "in",
	TokenOf:         "of",
	TokenLet:        "let",
	TokenStore:      "store",
	TokenLink:       "link",
	TokenNew:        "new",
	TokenNot:        "not",
	TokenAnd:        "and",
	TokenOr:         "or",
	TokenAs:         "as",
	TokenEvents:     "events",
	TokenKey:        "key",
	TokenIdent:      "identifier",
	TokenCssWord:    "css word",
	TokenNumber:     "number",
	TokenString:     "quoted string",
	TokenComma:      "comma",
	TokenEquals:     "equals",
	TokenEq:         "double equals",
	TokenNotEq:      "not equals",
	TokenGreater:    "greater",
	TokenLess:       "less",
	TokenGreaterEq:  "greater or equal",
	TokenLessEq:     "less or equal",
	TokenColon:      "colon",
	TokenDot:        "dot",
	TokenDash:       "dash",
	TokenPlus:       "plus",
	TokenMultiply:   "multiply",
	TokenDivide:     "division",
	TokenQuestion:   "question mark",
	TokenArrowRight: "arrow right",
	TokenLParen:     "(",
	TokenRParen:     ")",
	TokenLBracket:   "[",
	TokenRBracket:   "]",
	TokenLBrace:     "{",
	TokenRBrace:     "}",
}

// String returns a human-readable name for the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// Token represents a lexical token with its type, literal value, and source position.
type Token struct {
	Type     TokenType
	Literal  string // slice of the source; empty for Indent, Dedent and EOF
	Line     int
	Column   int // counted in grapheme clusters
	StartPos int // byte offset in source where token starts
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Literal == "" || t.Type == TokenNewline {
		return fmt.Sprintf("%s at %d:%d", t.Type, t.Line, t.Column)
	}
	lit := t.Literal
	if len(lit) > 20 {
		lit = lit[:17] + "..."
	}
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, lit, t.Line, t.Column)
}

// Position represents a source code location for error reporting.
type Position struct {
	File   string
	Line   int
	Column int
}

// String returns a formatted position string.
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// keywords maps keyword strings to their token types in normal mode.
var keywords = map[string]TokenType{
	"css":    TokenCss,
	"html":   TokenHtml,
	"import": TokenImport,
	"from":   TokenFrom,
	"if":     TokenIf,
	"elif":   TokenElif,
	"else":   TokenElse,
	"for":    TokenFor,
	"in":     TokenIn,
	"of":     TokenOf,
	"let":    TokenLet,
	"store":  TokenStore,
	"link":   TokenLink,
	"new":    TokenNew,
	"not":    TokenNot,
	"and":    TokenAnd,
	"or":     TokenOr,
	"as":     TokenAs,
	"events": TokenEvents,
	"key":    TokenKey,
}

// LookupIdent returns the token type for an identifier,
// checking if it's a keyword first.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}
