// privateer/privgen is a tool to generate test substitutes for Go structs.
// To use it, install it with `go install github.com/toejough/privateer/privgen@latest`
// and add a `//go:generate privgen <StructName>` comment next to the struct whose non-public methods you want to
// substitute. By default, the substitute struct is named <StructName>Sub. Add a `--name <subname>` flag to pick a
// different name, and a `--keep <m1,m2>` flag to leave some methods on the real implementation (registered as
// non-overridable). The substitute is written to <subname>_test.go when generating from a test file, else to
// <subname>.go, in the package containing the `//go:generate` comment.
package main

import (
	"fmt"
	"os"

	"github.com/dave/dst"

	"github.com/toejough/privateer/privgen/run"
	load "github.com/toejough/privateer/privgen/run/2_load"
)

// main is the entry point of the privgen tool.
func main() {
	if os.Args == nil {
		return
	}

	err := run.Run(os.Args, os.Getenv, &realFileSystem{}, &realPackageLoader{}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements FileSystem using the os package.
type realFileSystem struct{}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}

// realPackageLoader implements PackageLoader using direct DST parsing.
type realPackageLoader struct{}

// Load loads a package by import path and returns its DST files.
// Uses the shared load.PackageDST function for direct DST parsing with no type checking.
func (pl *realPackageLoader) Load(importPath string) ([]*dst.File, error) {
	files, err := load.PackageDST(importPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load package %q: %w", importPath, err)
	}

	return files, nil
}
