package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulePath = "github.com/leapstack-labs/lintattrs"

// allowedImports lists the non-stdlib imports each library package may use.
// The layering is core <- guideline <- emit; nothing under pkg/ reaches into
// internal/ or the CLI stack.
var allowedImports = map[string]map[string]bool{
	".": {},
	"../guideline": {
		modulePath + "/pkg/core":        true,
		"golang.org/x/text/unicode/norm": true,
	},
	"../emit": {
		modulePath + "/pkg/core":      true,
		modulePath + "/pkg/guideline": true,
	},
}

// sourceImports returns the imports of the non-test Go files in dir, by file.
func sourceImports(t *testing.T, dir string) map[string][]string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}

	fset := token.NewFileSet()
	imports := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}
		// Skip test files
		if strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}
		for _, imp := range f.Imports {
			imports[path] = append(imports[path], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return imports
}

// TestLibraryLayering verifies each pkg/ package only imports what its layer allows.
// pkg/core imports ONLY stdlib.
func TestLibraryLayering(t *testing.T) {
	for dir, allowed := range allowedImports {
		for file, imports := range sourceImports(t, dir) {
			for _, importPath := range imports {
				// Allow stdlib (no dots in the first path element)
				if !strings.Contains(strings.SplitN(importPath, "/", 2)[0], ".") {
					continue
				}
				if !allowed[importPath] {
					t.Errorf("%s imports forbidden package: %s", file, importPath)
				}
			}
		}
	}
}

// TestLibraryDoesNotImportInternal verifies no pkg/ package imports internal packages.
func TestLibraryDoesNotImportInternal(t *testing.T) {
	for dir := range allowedImports {
		for file, imports := range sourceImports(t, dir) {
			for _, importPath := range imports {
				if strings.Contains(importPath, "/internal/") {
					t.Errorf("%s imports internal package: %s (pkg/ must not import internal packages)", file, importPath)
				}
			}
		}
	}
}
