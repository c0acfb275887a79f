// Package main generates documentation of the test suite from Go test
// functions and their doc comments, as markdown or as a terminal table.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raphi011/inkwell/internal/term"
	"github.com/raphi011/inkwell/internal/ui/render"
)

func main() {
	var (
		rootDir    string
		outputFile string
		format     string
		width      int
	)

	flag.StringVar(&rootDir, "root", ".", "root directory to scan for test files")
	flag.StringVar(&outputFile, "out", "docs/TESTS.md", "output file (markdown format only)")
	flag.StringVar(&format, "format", "markdown", "output format: markdown or table")
	flag.IntVar(&width, "width", 0, "table width (0 detects it from the terminal)")
	flag.Parse()

	if err := run(rootDir, outputFile, format, width); err != nil {
		fmt.Fprintf(os.Stderr, "testdoc: %v\n", err)
		os.Exit(1)
	}
}

func run(rootDir, outputFile, format string, width int) error {
	// Resolve root directory to absolute path
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return fmt.Errorf("error resolving root directory: %w", err)
	}

	packages, err := ParseTestFiles(absRoot)
	if err != nil {
		return fmt.Errorf("error parsing test files: %w", err)
	}

	switch format {
	case "table":
		if width == 0 {
			width = term.Width(os.Stdout)
		}
		t := render.New(render.WithOutput(os.Stdout), render.WithWidth(width))
		return t.Println(SummaryTable(packages))
	case "markdown":
		return writeMarkdown(outputFile, packages)
	}
	return fmt.Errorf("unknown format %q (must be markdown or table)", format)
}

func writeMarkdown(outputFile string, packages []TestPackage) error {
	// Ensure output directory exists
	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer f.Close()

	if err := RenderMarkdown(f, packages); err != nil {
		return fmt.Errorf("error rendering markdown: %w", err)
	}

	fmt.Printf("Generated %s with %d packages\n", outputFile, len(packages))
	return nil
}
