package main

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/raphi011/inkwell/internal/ui/render"
	"github.com/raphi011/inkwell/internal/ui/table"
)

var anchorChars = regexp.MustCompile(`[^a-z0-9-]`)

// RenderMarkdown writes the test documentation as markdown, one section per
// package.
func RenderMarkdown(w io.Writer, packages []TestPackage) error {
	fmt.Fprintf(w, "# Test Documentation\n\n")
	fmt.Fprintf(w, "Generated: %s\n\n", time.Now().Format("2006-01-02"))

	// Summary
	fmt.Fprintf(w, "## Summary\n\n")
	fmt.Fprintf(w, "| Package | Tests |\n")
	fmt.Fprintf(w, "|---------|-------|\n")

	totalTests := 0
	for _, pkg := range packages {
		fmt.Fprintf(w, "| [%s](#%s) | %d |\n", pkg.Name, toAnchor(pkg.Name), pkg.TotalTests)
		totalTests += pkg.TotalTests
	}
	fmt.Fprintf(w, "| **Total** | **%d** |\n\n", totalTests)

	for _, pkg := range packages {
		renderPackageSection(w, pkg)
	}

	return nil
}

func renderPackageSection(w io.Writer, pkg TestPackage) {
	fmt.Fprintf(w, "## %s\n\n", pkg.Name)
	fmt.Fprintf(w, "| Test | Description |\n")
	fmt.Fprintf(w, "|------|-------------|\n")

	for _, file := range pkg.Files {
		for _, test := range file.Tests {
			desc := extractDescription(test.Doc, test.Name)
			// Escape pipes in description for markdown table
			desc = strings.ReplaceAll(desc, "|", "\\|")
			name := "`" + test.Name + "`"
			if test.IsTable {
				name += " (table)"
			}
			fmt.Fprintf(w, "| %s | %s |\n", name, desc)
		}
	}
	fmt.Fprintf(w, "\n")
}

// SummaryTable lays out the test count per package and file. The package
// cell spans all of its file rows.
func SummaryTable(packages []TestPackage) *table.Table {
	b := table.New().Expand(false)
	b.Column(0).Width(table.Expand(1))
	b.Column(2).Align(render.AlignRight)
	b.Column(3).Align(render.AlignRight)
	b.Header().Row("Package", "File", "Tests", "Table-driven")

	total, tableDriven := 0, 0
	for _, pkg := range packages {
		for i, file := range pkg.Files {
			n := countTableDriven(file.Tests)
			tableDriven += n
			if i == 0 {
				b.Body().Row(table.NewCell(pkg.Name).RowSpan(len(pkg.Files)), file.Name, len(file.Tests), n)
				continue
			}
			b.Body().Row(file.Name, len(file.Tests), n)
		}
		total += pkg.TotalTests
	}

	b.Footer().Row(table.NewCell("Total").ColumnSpan(2), total, tableDriven)
	return b.MustBuild()
}

func countTableDriven(tests []TestFunc) int {
	n := 0
	for _, t := range tests {
		if t.IsTable {
			n++
		}
	}
	return n
}

// extractDescription gets the first line of the doc comment as description.
// It strips the test function name from the beginning if present.
func extractDescription(doc string, testName string) string {
	for line := range strings.SplitSeq(doc, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// "TestParse_ColumnSpan checks..." -> "Checks..."
		line = strings.TrimPrefix(line, testName+" ")
		return strings.ToUpper(line[:1]) + line[1:]
	}
	return "_No documentation_"
}

// toAnchor converts a heading to a markdown anchor.
func toAnchor(heading string) string {
	anchor := strings.ToLower(strings.ReplaceAll(heading, " ", "-"))
	anchor = strings.ReplaceAll(anchor, "/", "")
	return anchorChars.ReplaceAllString(anchor, "")
}
