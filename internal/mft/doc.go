// Package mft reads .mft template files.
//
// The front end consists of:
//   - [Lexer]: tokenizes source into an indentation-aware token stream
//   - [Parser]: builds a [File] of css, markup and import blocks
//   - [BareElements] and [AddBlockScoping]: prepare style rules for a block class
//   - [GenerateCSS]: renders style blocks as CSS text
//
// Markup blocks are lowered to JavaScript by the compiler package.
package mft
