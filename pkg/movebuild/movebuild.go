// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package movebuild drives the external Move compiler and reads its build
// outputs.
package movebuild

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/ux"

	"github.com/spf13/afero"
)

var (
	ErrCompilerNotFound = errors.New("aptos CLI not found, install it or pass --aptos-path")
	ErrNoModules        = errors.New("no compiled modules found")
)

type CompileOptions struct {
	// AptosPath is the compiler binary; empty means "aptos" on PATH.
	AptosPath      string
	PackageDir     string
	NamedAddresses map[string]string
	Stdout         io.Writer
	Stderr         io.Writer
}

// CompileArgs returns the compiler arguments for opts. Named addresses are
// sorted so the command line is stable.
func CompileArgs(opts CompileOptions) []string {
	args := []string{"move", "compile", "--save-metadata", "--package-dir", opts.PackageDir}
	if len(opts.NamedAddresses) == 0 {
		return args
	}
	names := make([]string, 0, len(opts.NamedAddresses))
	for name := range opts.NamedAddresses {
		names = append(names, name)
	}
	sort.Strings(names)
	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"="+opts.NamedAddresses[name])
	}
	return append(args, "--named-addresses", strings.Join(pairs, ","))
}

func FindCompiler(aptosPath string) (string, error) {
	if aptosPath == "" {
		aptosPath = constants.AptosBinary
	}
	path, err := exec.LookPath(aptosPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCompilerNotFound, err)
	}
	return path, nil
}

// Compile runs the Move compiler with --save-metadata so the package
// metadata needed for publication is written next to the bytecode.
func Compile(ctx context.Context, opts CompileOptions) error {
	bin, err := FindCompiler(opts.AptosPath)
	if err != nil {
		return err
	}
	args := CompileArgs(opts)
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if opts.Stdout != nil {
		cmd.Stdout = io.MultiWriter(&stdout, opts.Stdout)
	}
	if opts.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, opts.Stderr)
	}
	ux.Logger.Info("running %s %s", bin, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		if out := strings.TrimSpace(stdout.String()); out != "" {
			ux.Logger.PrintToUser("%s", out)
		}
		if out := strings.TrimSpace(stderr.String()); out != "" {
			ux.Logger.PrintToUser("%s", out)
		}
		return fmt.Errorf("could not compile Move package in %s: %w", opts.PackageDir, err)
	}
	return nil
}

// Package holds the opaque build outputs of one Move package.
type Package struct {
	Name        string
	Metadata    []byte
	ModuleNames []string
	Modules     [][]byte
}

// BuildDir returns <projectDir>/build/<packageName>.
func BuildDir(projectDir string, packageName string) string {
	return filepath.Join(projectDir, constants.BuildDir, packageName)
}

// ReadPackage reads the metadata and bytecode modules of packageName built
// under projectDir. Modules named in order come first, in that order; the
// rest follow sorted by name.
func ReadPackage(afs afero.Fs, projectDir string, packageName string, order ...string) (*Package, error) {
	dir := BuildDir(projectDir, packageName)
	metadata, err := afero.ReadFile(afs, filepath.Join(dir, constants.PackageMetadata))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("package metadata missing in %s, was the package compiled with --save-metadata? %w", dir, err)
	}
	if err != nil {
		return nil, err
	}

	modulesDir := filepath.Join(dir, constants.BytecodeModulesDir)
	entries, err := afero.ReadDir(afs, modulesDir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != constants.ModuleExtension {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), constants.ModuleExtension))
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoModules, modulesDir)
	}
	names = orderModules(names, order)

	pkg := &Package{Name: packageName, Metadata: metadata, ModuleNames: names}
	for _, name := range names {
		code, err := afero.ReadFile(afs, filepath.Join(modulesDir, name+constants.ModuleExtension))
		if err != nil {
			return nil, err
		}
		pkg.Modules = append(pkg.Modules, code)
	}
	return pkg, nil
}

func orderModules(names []string, order []string) []string {
	sort.Strings(names)
	ordered := make([]string, 0, len(names))
	for _, name := range order {
		if slices.Contains(names, name) && !slices.Contains(ordered, name) {
			ordered = append(ordered, name)
		}
	}
	for _, name := range names {
		if !slices.Contains(ordered, name) {
			ordered = append(ordered, name)
		}
	}
	return ordered
}
