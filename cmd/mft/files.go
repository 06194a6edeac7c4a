package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/grindlemire/go-marafet/pkg/marafet"
)

// collectMftFiles finds all .mft files from the given paths.
// Supports:
//   - Direct file paths: "button.mft"
//   - Directory paths: "./widgets"
//   - Recursive pattern: "./..."
func collectMftFiles(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		if strings.HasSuffix(path, "/...") {
			root := strings.TrimSuffix(path, "/...")
			if root == "" {
				root = "."
			}

			err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && strings.HasSuffix(p, marafet.Extension) {
					files = append(files, p)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walking %s: %w", root, err)
			}
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if info.IsDir() {
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, fmt.Errorf("reading directory %s: %w", path, err)
			}
			for _, entry := range entries {
				if !entry.IsDir() && strings.HasSuffix(entry.Name(), marafet.Extension) {
					files = append(files, filepath.Join(path, entry.Name()))
				}
			}
		} else if strings.HasSuffix(path, marafet.Extension) {
			files = append(files, path)
		}
	}

	return files, nil
}

// outputPaths returns the .js and .css files written next to an input.
//
//	widgets/button.mft -> widgets/button.js, widgets/button.css
func outputPaths(inputPath string) (jsPath, cssPath string) {
	base := strings.TrimSuffix(inputPath, marafet.Extension)
	return base + ".js", base + ".css"
}
