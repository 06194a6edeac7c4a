package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/go-marafet/internal/debug"
	"github.com/grindlemire/go-marafet/pkg/marafet"
)

// cssVars collects repeated -css-var name=value flags.
type cssVars map[string]string

func (v cssVars) String() string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	pairs := make([]string, len(names))
	for i, name := range names {
		pairs[i] = name + "=" + v[name]
	}
	return strings.Join(pairs, ",")
}

func (v cssVars) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("want NAME=VALUE, got %q", s)
	}
	v[name] = value
	return nil
}

type buildConfig struct {
	opts    marafet.Options
	jsPath  string
	cssPath string
	stdout  bool
	verbose bool
}

// buildResult is the output of one input file.
type buildResult struct {
	path string
	out  *marafet.Output
	err  error
}

// runBuild implements the build subcommand.
// It compiles .mft files and writes the JavaScript and CSS they produce.
func runBuild(args []string) error {
	cfg, paths, err := parseBuildFlags(args)
	if err != nil {
		return err
	}

	files, err := collectMftFiles(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found", marafet.Extension)
	}
	if (cfg.jsPath != "" || cfg.cssPath != "") && len(files) != 1 {
		return fmt.Errorf("-js and -css need exactly one input, got %d", len(files))
	}

	if cfg.verbose {
		fmt.Printf("Found %d %s file(s)\n", len(files), marafet.Extension)
	}

	// Failures are kept per file in results so every file gets reported.
	// The closures never fail, so Wait always returns nil.
	results := make([]buildResult, len(files))
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			out, err := buildFile(path, cfg)
			results[i] = buildResult{path: path, out: out, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var errorCount int
	for _, res := range results {
		if res.err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorPrefix(), res.err)
			errorCount++
			continue
		}
		if cfg.stdout {
			if res.out.CSS != "" {
				fmt.Print(res.out.CSS)
			}
			fmt.Print(res.out.JS)
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}
	if cfg.verbose {
		fmt.Printf("Successfully compiled %d file(s)\n", len(files))
	}
	return nil
}

func parseBuildFlags(args []string) (buildConfig, []string, error) {
	var cfg buildConfig
	vars := cssVars{}

	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.BoolVar(&cfg.verbose, "v", false, "verbose output")
	fs.StringVar(&cfg.opts.BlockName, "block-name", "", "scoping class")
	fs.BoolVar(&cfg.opts.AMD, "amd", false, "wrap the output in an AMD define call")
	fs.StringVar(&cfg.opts.AMDName, "amd-name", "", "AMD module name")
	fs.BoolVar(&cfg.opts.AutoLoadCSS, "auto-load-css", false, "add the CSS to the document at load")
	fs.Var(vars, "css-var", "override a style variable as NAME=VALUE")
	fs.IntVar(&cfg.opts.Indent, "indent", 0, "spaces per level in the JavaScript output")
	fs.StringVar(&cfg.jsPath, "js", "", "JavaScript output path")
	fs.StringVar(&cfg.cssPath, "css", "", "CSS output path")
	fs.BoolVar(&cfg.stdout, "stdout", false, "print the output instead of writing files")

	if err := fs.Parse(args); err != nil {
		return cfg, nil, err
	}
	if len(vars) > 0 {
		cfg.opts.CSSVars = vars
	}

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}
	return cfg, paths, nil
}

// buildFile compiles one file and, unless printing to stdout, writes its
// output. The CSS file is only written when there is CSS to write.
func buildFile(inputPath string, cfg buildConfig) (*marafet.Output, error) {
	source, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	out, err := marafet.Compile(inputPath, string(source), cfg.opts)
	if err != nil {
		return nil, err
	}
	if cfg.stdout {
		return out, nil
	}

	jsPath, cssPath := outputPaths(inputPath)
	if cfg.jsPath != "" {
		jsPath = cfg.jsPath
	}
	if cfg.cssPath != "" {
		cssPath = cfg.cssPath
	}

	if cfg.verbose {
		fmt.Printf("Processing %s -> %s\n", inputPath, jsPath)
	}
	debug.Log("build %s -> %s", inputPath, jsPath)

	if err := os.WriteFile(jsPath, []byte(out.JS), 0644); err != nil {
		return nil, fmt.Errorf("writing file: %w", err)
	}
	if out.CSS != "" || cfg.cssPath != "" {
		if err := os.WriteFile(cssPath, []byte(out.CSS), 0644); err != nil {
			return nil, fmt.Errorf("writing file: %w", err)
		}
	}
	return out, nil
}
