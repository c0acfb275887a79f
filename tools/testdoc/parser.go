package main

import (
	"cmp"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// TestFunc is one Test function found in a _test.go file.
type TestFunc struct {
	Name    string
	Doc     string
	Line    int
	IsTable bool // runs subtests from inside a range loop
}

// TestFile lists the tests of a single file.
type TestFile struct {
	Name  string
	Path  string
	Tests []TestFunc
}

// TestPackage groups test files by directory, relative to the scanned root.
type TestPackage struct {
	Name       string
	Files      []TestFile
	TotalTests int
}

// ParseTestFiles collects the tests of every _test.go file below root.
// Directories the go tool ignores (vendor, testdata, names starting with "."
// or "_") are skipped. Packages and files are sorted by name.
func ParseTestFiles(root string) ([]TestPackage, error) {
	byDir := make(map[string]*TestPackage)

	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && ignoredDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), "_test.go") {
			return nil
		}

		file, err := parseTestFile(path)
		if err != nil {
			return err
		}
		if len(file.Tests) == 0 {
			return nil
		}

		name := packageName(root, filepath.Dir(path))
		pkg := byDir[name]
		if pkg == nil {
			pkg = &TestPackage{Name: name}
			byDir[name] = pkg
		}
		pkg.Files = append(pkg.Files, file)
		pkg.TotalTests += len(file.Tests)
		return nil
	}
	if err := filepath.WalkDir(root, walk); err != nil {
		return nil, err
	}

	packages := make([]TestPackage, 0, len(byDir))
	for _, name := range slices.Sorted(maps.Keys(byDir)) {
		pkg := byDir[name]
		slices.SortFunc(pkg.Files, func(a, b TestFile) int {
			return cmp.Compare(a.Name, b.Name)
		})
		packages = append(packages, *pkg)
	}
	return packages, nil
}

func ignoredDir(name string) bool {
	switch {
	case name == "vendor", name == "testdata":
		return true
	case strings.HasPrefix(name, "."), strings.HasPrefix(name, "_"):
		return true
	}
	return false
}

func packageName(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	switch {
	case err != nil:
		return dir
	case rel == ".":
		return filepath.Base(root)
	}
	return filepath.ToSlash(rel)
}

func parseTestFile(path string) (TestFile, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return TestFile{}, err
	}

	file := TestFile{Name: filepath.Base(path), Path: path}
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || !strings.HasPrefix(fn.Name.Name, "Test") || !takesTestingT(fn) {
			continue
		}
		test := TestFunc{
			Name:    fn.Name.Name,
			Line:    fset.Position(fn.Pos()).Line,
			IsTable: runsSubtestsInLoop(fn.Body),
		}
		if fn.Doc != nil {
			test.Doc = strings.TrimSpace(fn.Doc.Text())
		}
		file.Tests = append(file.Tests, test)
	}
	return file, nil
}

// takesTestingT reports whether fn has the single *testing.T (or *testing.B)
// parameter the go tool requires.
func takesTestingT(fn *ast.FuncDecl) bool {
	params := fn.Type.Params
	if params == nil || len(params.List) != 1 {
		return false
	}
	star, ok := params.List[0].Type.(*ast.StarExpr)
	if !ok {
		return false
	}
	sel, ok := star.X.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == "testing" && (sel.Sel.Name == "T" || sel.Sel.Name == "B")
}

// runsSubtestsInLoop reports whether body calls Run inside a range loop, which
// is how table-driven tests look.
func runsSubtestsInLoop(body *ast.BlockStmt) bool {
	if body == nil {
		return false
	}
	found := false
	ast.Inspect(body, func(n ast.Node) bool {
		if found {
			return false
		}
		loop, ok := n.(*ast.RangeStmt)
		if !ok {
			return true
		}
		ast.Inspect(loop.Body, func(n ast.Node) bool {
			if call, ok := n.(*ast.CallExpr); ok {
				if sel, ok := call.Fun.(*ast.SelectorExpr); ok && sel.Sel.Name == "Run" {
					found = true
				}
			}
			return !found
		})
		return !found
	})
	return found
}
