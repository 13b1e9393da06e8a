// Package output writes generated substitute code to disk, next to the
// go:generate directive that requested it.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/toejough/go-reorder"
)

// Writer abstracts file writing so tests can capture generated files in
// memory instead of touching the working tree.
type Writer interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// WriteSubstitute writes the generated code to <subName>.go, or to
// <subName>_test.go when generation was requested from test code.
func WriteSubstitute(
	code string, subName string, pkgName string, getEnv func(string) string, fileWriter Writer, out io.Writer,
) error {
	const generatedFilePermissions = 0o600

	filename := substituteFilename(subName, pkgName, getEnv("GOFILE"))

	// Generated files follow the same declaration ordering conventions as
	// hand-written ones.
	reordered, err := reorder.Source(code)
	if err != nil {
		// Reordering is cosmetic, so fall back to the unordered code
		// rather than failing generation.
		_, _ = fmt.Fprintf(out, "Warning: failed to reorder %s: %v\n", filename, err)

		reordered = code
	}

	err = fileWriter.WriteFile(filename, []byte(reordered), generatedFilePermissions)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	_, _ = fmt.Fprintf(out, "%s written successfully.\n", filename)

	return nil
}

// substituteFilename picks the output filename. Generation requested from a
// test package (blackbox) or from a _test.go file (whitebox) lands in a
// _test.go file so the substitute stays out of the production build.
func substituteFilename(subName, pkgName, goFile string) string {
	inTestContext := strings.HasSuffix(pkgName, "_test") || strings.HasSuffix(goFile, "_test.go")
	if inTestContext && !strings.HasSuffix(subName, "_test") {
		return subName + "_test.go"
	}

	return subName + ".go"
}
