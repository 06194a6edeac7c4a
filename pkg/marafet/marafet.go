// Package marafet compiles .mft templates into CSS text and cito.js render
// functions.
//
// A .mft file mixes style blocks and markup blocks:
//
//	css:
//	  .title
//	    font-weight: bold
//
//	html greeting(name):
//	  h1.title "Hello {name}!"
//
// Compile runs the whole pipeline in one call:
//
//	out, err := marafet.Compile("greeting.mft", src, marafet.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(out.CSS, out.JS)
package marafet

import (
	"path/filepath"
	"strings"

	"github.com/grindlemire/go-marafet/internal/compiler"
	"github.com/grindlemire/go-marafet/internal/debug"
	"github.com/grindlemire/go-marafet/internal/js"
	"github.com/grindlemire/go-marafet/internal/mft"
)

// Extension is the file extension of template sources.
const Extension = ".mft"

// Options controls a compile.
type Options struct {
	// BlockName is the scoping class of the file. Empty selects
	// DefaultBlockName of the filename.
	BlockName string

	// AMD wraps the generated code in a define call.
	AMD bool

	// AMDName is the module name passed to define. Empty selects the
	// filename without its extension.
	AMDName string

	// AutoLoadCSS makes the generated code add the CSS to the document
	// when it runs.
	AutoLoadCSS bool

	// CSSVars overrides style block variables by name.
	CSSVars map[string]string

	// Indent is the number of spaces per level in the JavaScript output.
	// Zero or less selects four.
	Indent int
}

// Output is the result of a compile.
type Output struct {
	CSS  string
	JS   string
	File *mft.File
}

// DefaultBlockName returns the base name of filename without its
// extension, such as "button" for "widgets/button.mft".
func DefaultBlockName(filename string) string {
	if filename == "" {
		return ""
	}
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Parse parses source without compiling it.
func Parse(filename, source string) (*mft.File, error) {
	return mft.Parse(filename, source)
}

// Compile parses source and generates its CSS and JavaScript. Syntax
// errors are returned as *mft.ErrorList values.
func Compile(filename, source string, opts Options) (*Output, error) {
	file, err := mft.Parse(filename, source)
	if err != nil {
		debug.Log("compile %s: %v", filename, err)
		return nil, err
	}
	debug.Log("compile %s: parsed %d block(s)", filename, len(file.Blocks))

	blockName := opts.BlockName
	if blockName == "" {
		blockName = DefaultBlockName(filename)
	}

	styled := file
	if blockName != "" {
		styled = mft.AddBlockScoping(file, blockName)
	}
	css := mft.GenerateCSS(styled, opts.CSSVars)

	code := compiler.Compile(file, compiler.Settings{
		BlockName:    blockName,
		BareElements: mft.BareElements(file),
	})
	if opts.AutoLoadCSS {
		code = compiler.AddCSSLoader(code, css)
	}
	if opts.AMD {
		name := opts.AMDName
		if name == "" {
			name = strings.TrimSuffix(filename, filepath.Ext(filename))
		}
		code = compiler.WrapAMD(code, file, name)
	}

	out := &Output{
		CSS:  css,
		JS:   js.NewEmitter(opts.Indent).Emit(code),
		File: file,
	}
	debug.Log("compile %s: block %q, %d bytes css, %d bytes js", filename, blockName, len(out.CSS), len(out.JS))
	return out, nil
}
