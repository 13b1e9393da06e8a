// Package load parses Go packages into DST files for the generator.
package load

import (
	"errors"
	"fmt"
	"go/build"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// PackageDST loads a package by import path and returns its DST files.
// This is the shared implementation used by all PackageLoader implementations.
// Uses fast DST parsing with no type checking.
//
// The local package (".") is parsed including its test files: go:generate
// directives for substitutes usually live in test files, next to the tests
// that use them. Other packages skip test files to avoid parse noise.
func PackageDST(importPath string) ([]*dst.File, error) {
	dir, err := resolvePackageDir(importPath)
	if err != nil {
		return nil, err
	}

	includeTests := importPath == "."

	goFiles, err := listGoFiles(dir, includeTests)
	if err != nil {
		return nil, err
	}

	if len(goFiles) == 0 {
		return nil, fmt.Errorf("%w: no .go files in %s", errNoPackagesFound, dir)
	}

	fset := token.NewFileSet()
	dec := decorator.NewDecorator(fset)

	allFiles := make([]*dst.File, 0, len(goFiles))

	for _, goFile := range goFiles {
		dstFile, err := dec.ParseFile(goFile, nil, 0)
		if err != nil {
			// Skip files with parse errors
			continue
		}

		allFiles = append(allFiles, dstFile)
	}

	if len(allFiles) == 0 {
		return nil, fmt.Errorf("%w: failed to parse any .go files in %s", errNoPackagesFound, dir)
	}

	return allFiles, nil
}

// resolvePackageDir maps an import path to the directory holding its source.
func resolvePackageDir(importPath string) (string, error) {
	if importPath == "." {
		dir, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}

		return dir, nil
	}

	srcDir, _ := os.Getwd()

	pkg, err := build.Import(importPath, srcDir, build.FindOnly)
	if err != nil {
		return "", fmt.Errorf("failed to find package %q: %w", importPath, err)
	}

	return pkg.Dir, nil
}

// listGoFiles returns the .go files directly in dir, optionally including
// test files.
func listGoFiles(dir string, includeTests bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	goFiles := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(name, ".go") {
			continue
		}

		if !includeTests && strings.HasSuffix(name, "_test.go") {
			continue
		}

		goFiles = append(goFiles, filepath.Join(dir, name))
	}

	return goFiles, nil
}

// unexported variables.
var (
	errNoPackagesFound = errors.New("no packages found")
)
