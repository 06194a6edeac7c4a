// Package main provides the CLI tool for the .mft template compiler.
//
// Usage:
//
//	mft build [options] [path...]   Compile .mft files to .js and .css
//	mft check [path...]             Check .mft files without compiling
//	mft tokens file.mft             Print the token stream of a file
//	mft help                        Show help
//
// Examples:
//
//	mft build ./...                 Recursively compile all .mft files
//	mft build -amd ./widgets        Compile a directory into AMD modules
//	mft build -stdout button.mft    Print the output of a single file
//	mft check button.mft            Check syntax without compiling
package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/grindlemire/go-marafet/internal/debug"
)

const version = "0.1.0"

const usage = `mft - compiler for marafet templates

Usage:
  mft <command> [options] [path...]

Commands:
  build       Compile .mft files to JavaScript and CSS
  check       Check .mft files without writing output
  tokens      Print the token stream of a .mft file
  version     Print version information
  help        Show this help message

Build options:
  -v                    Verbose output
  -block-name NAME      Scoping class (default: file name without extension)
  -amd                  Wrap the output in an AMD define call
  -amd-name NAME        AMD module name (default: path without extension)
  -auto-load-css        Add the CSS to the document when the module runs
  -css-var NAME=VALUE   Override a style variable (repeatable)
  -indent N             Spaces per level in the JavaScript output (default 4)
  -js PATH              JavaScript output path (single input only)
  -css PATH             CSS output path (single input only)
  -stdout               Print the output instead of writing files

Examples:
  mft build ./...                       Recursively compile all .mft files
  mft build -amd -auto-load-css ./ui    Self-contained AMD modules
  mft build -css-var fg=#333 card.mft   Override a style variable
  mft check ./...                       Check syntax of all .mft files
  mft tokens card.mft                   Dump tokens for debugging
`

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes a command and returns the process exit code. The debug log
// is closed before returning.
func run(args []string) int {
	defer debug.Close()

	if len(args) == 0 {
		fmt.Print(usage)
		return 1
	}

	var err error
	switch command := args[0]; command {
	case "build":
		err = runBuild(args[1:])
	case "check":
		err = runCheck(args[1:])
	case "tokens":
		err = runTokens(args[1:])
	case "version":
		fmt.Printf("mft version %s\n", version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		fmt.Print(usage)
		return 1
	}
	if err != nil {
		printError(err)
		return 1
	}
	return 0
}

// errorPrefix is red when stderr is a terminal.
func errorPrefix() string {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return "\x1b[31merror:\x1b[0m"
	}
	return "error:"
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", errorPrefix(), err)
}
