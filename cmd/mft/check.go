package main

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/go-marafet/pkg/marafet"
)

// runCheck implements the check subcommand.
// It parses .mft files without writing output.
func runCheck(args []string) error {
	verbose := false
	var paths []string

	for _, arg := range args {
		if arg == "-v" || arg == "--verbose" {
			verbose = true
		} else {
			paths = append(paths, arg)
		}
	}

	if len(paths) == 0 {
		paths = []string{"."}
	}

	files, err := collectMftFiles(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found", marafet.Extension)
	}

	if verbose {
		fmt.Printf("Checking %d %s file(s)\n", len(files), marafet.Extension)
	}

	// Failures are kept per file in errs. The closures never fail, so Wait
	// always returns nil.
	errs := make([]error, len(files))
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			errs[i] = checkFile(path)
			return nil
		})
	}
	_ = g.Wait()

	var errorCount int
	for i, err := range errs {
		if verbose {
			fmt.Printf("Checking %s\n", files[i])
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorPrefix(), err)
			errorCount++
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}
	if verbose {
		fmt.Printf("All %d file(s) passed checks\n", len(files))
	}
	return nil
}

// checkFile parses a single .mft file.
func checkFile(inputPath string) error {
	source, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	_, err = marafet.Parse(inputPath, string(source))
	return err
}
