// Package run implements the main logic for the privgen tool in a testable
// way.
package run

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/dave/dst"

	detect "github.com/toejough/privateer/privgen/run/3_detect"
	generate "github.com/toejough/privateer/privgen/run/5_generate"
	output "github.com/toejough/privateer/privgen/run/6_output"
)

// Vars - Private

var (
	errGOPACKAGENotSet    = errors.New("GOPACKAGE environment variable not set; run privgen via go generate")
	errNoProtectedMethods = errors.New("no protected methods found")
	errUnknownKeepMethod  = errors.New("unknown --keep method")
)

// Interfaces - Public

// FileSystem interface for mocking.
type FileSystem interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// PackageLoader interface for loading the package the directive lives in.
type PackageLoader interface {
	Load(importPath string) ([]*dst.File, error)
}

// Structs - Private

// cliArgs defines the command-line arguments for the generator.
type cliArgs struct {
	Struct string `arg:"positional,required" help:"struct type whose non-public methods should be substituted"`
	Name   string `arg:"--name"              help:"name for the generated substitute (defaults to <Struct>Sub)"`
	Keep   string `arg:"--keep"              help:"comma-separated method names to keep routed to the base type"`
}

// generatorInfo holds information gathered for generation.
type generatorInfo struct {
	pkgName, structName, subName string
	keep                         []string
}

// Functions - Public

// Run executes the privgen tool logic. It takes command-line arguments, an environment variable getter, a FileSystem
// interface for file operations, a PackageLoader for package operations, and a writer for progress output. It returns
// an error if any step fails. On success, it generates a Go source file declaring a substitute for the specified
// struct, in the calling package.
func Run(args []string, getEnv func(string) string, fileSys FileSystem, pkgLoader PackageLoader, out io.Writer) error {
	info, err := getGeneratorCallInfo(args, getEnv)
	if err != nil {
		return err
	}

	astFiles, err := pkgLoader.Load(".")
	if err != nil {
		return err
	}

	details, err := detect.FindStruct(astFiles, info.structName)
	if err != nil {
		return err
	}

	methods := detect.CollectProtectedMethods(astFiles, info.structName)
	if len(methods) == 0 {
		return fmt.Errorf("%w on %s", errNoProtectedMethods, info.structName)
	}

	err = validateKeep(info.keep, methods)
	if err != nil {
		return err
	}

	code, err := generate.SubstituteCode(generate.GeneratorInfo{
		PkgName:    info.pkgName,
		StructName: info.structName,
		SubName:    info.subName,
		Keep:       info.keep,
	}, details, methods)
	if err != nil {
		return err
	}

	err = output.WriteSubstitute(code, info.subName, info.pkgName, getEnv, fileSys, out)
	if err != nil {
		return err
	}

	return nil
}

// Functions - Private

// getGeneratorCallInfo returns basic information about the current call to the generator.
func getGeneratorCallInfo(args []string, getEnv func(string) string) (generatorInfo, error) {
	pkgName := getEnv("GOPACKAGE")
	if pkgName == "" {
		return generatorInfo{}, errGOPACKAGENotSet
	}

	parsed, err := parseArgs(args)
	if err != nil {
		return generatorInfo{}, err
	}

	subName := parsed.Name

	// set substitute name if not provided
	if subName == "" {
		subName = parsed.Struct + "Sub" // default substitute name
	}

	return generatorInfo{
		pkgName:    pkgName,
		structName: parsed.Struct,
		subName:    subName,
		keep:       splitKeep(parsed.Keep),
	}, nil
}

// parseArgs parses command-line arguments into cliArgs.
func parseArgs(args []string) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{}, &parsed)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, nil
}

// splitKeep splits the --keep flag value into trimmed method names.
func splitKeep(keep string) []string {
	if keep == "" {
		return nil
	}

	parts := strings.Split(keep, ",")
	names := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			names = append(names, trimmed)
		}
	}

	return names
}

// validateKeep confirms every --keep name is a collected protected method, so
// typos fail generation instead of silently intercepting the method.
func validateKeep(keep []string, methods map[string]*dst.FuncType) error {
	for _, name := range keep {
		_, known := methods[name]
		if !known {
			return fmt.Errorf("%w: %q", errUnknownKeepMethod, name)
		}
	}

	return nil
}
