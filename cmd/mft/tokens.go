package main

import (
	"fmt"
	"io"
	"os"

	"github.com/grindlemire/go-marafet/internal/mft"
)

// runTokens implements the tokens subcommand.
// It prints one token per line as line:column, type and literal.
func runTokens(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("tokens needs exactly one file")
	}
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	return printTokens(os.Stdout, args[0], string(source))
}

// printTokens writes the tokens of source to w. Tokens before a lexical
// error are printed ahead of the error.
func printTokens(w io.Writer, filename, source string) error {
	tokens, err := mft.Tokenize(filename, source)
	for _, tok := range tokens {
		fmt.Fprintf(w, "%d:%d\t%s", tok.Line, tok.Column, tok.Type)
		if tok.Literal != "" && tok.Type != mft.TokenNewline {
			fmt.Fprintf(w, "\t%s", tok.Literal)
		}
		fmt.Fprintln(w)
	}
	return err
}
