package stdlib_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const module = "github.com/comalice/pg2hda/"

// imports lists the imports of the non-test files of the package in dir.
func imports(t *testing.T, dir string) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		t.Fatalf("glob %s: %v", dir, err)
	}
	if len(files) == 0 {
		t.Fatalf("no Go files in %s", dir)
	}
	var out []string
	fset := token.NewFileSet()
	for _, fn := range files {
		if strings.HasSuffix(fn, "_test.go") {
			continue
		}
		src, err := os.ReadFile(fn)
		if err != nil {
			t.Fatalf("read %s: %v", fn, err)
		}
		f, err := parser.ParseFile(fset, fn, src, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parse %s: %v", fn, err)
		}
		for _, imp := range f.Imports {
			path, _ := strconv.Unquote(imp.Path.Value)
			out = append(out, path)
		}
	}
	return out
}

func isStdlib(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}

// TestStdlibOnlyCore keeps the cube model, the set algebra and the
// expression language free of third-party and sibling dependencies.
func TestStdlibOnlyCore(t *testing.T) {
	for _, dir := range []string{"primitives", "cube", "expr"} {
		for _, imp := range imports(t, dir) {
			if isStdlib(imp) || imp == module+"internal/primitives" {
				continue
			}
			t.Errorf("%s imports %s", dir, imp)
		}
	}
}

// TestEngineLayering keeps the construction independent of program graphs:
// the explorer only sees the Oracle contract.
func TestEngineLayering(t *testing.T) {
	forbidden := []string{"internal/pgraph", "internal/input", "internal/render", "internal/config"}
	for _, dir := range []string{"lattice", "core", "cube"} {
		for _, imp := range imports(t, dir) {
			for _, f := range forbidden {
				if imp == module+f {
					t.Errorf("%s must not import %s", dir, imp)
				}
			}
		}
	}
}
