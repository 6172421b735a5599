// Copyright (C) 2024 The Vix Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/VixLanguage/Vix-programing-language/internal/compiler"
	"github.com/VixLanguage/Vix-programing-language/internal/config"
	"github.com/VixLanguage/Vix-programing-language/internal/diag"
	"github.com/VixLanguage/Vix-programing-language/internal/library"
	"github.com/VixLanguage/Vix-programing-language/internal/parser"
	"github.com/VixLanguage/Vix-programing-language/internal/source"
)

var (
	flagOutput string
	flagClang  string
	flagKeepC  bool
)

func buildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <file.vix>",
		Short: "compile a Vix program to a native executable",
		Args:  cobra.ExactArgs(1),
		RunE:  runBuild,
	}
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "a.out", "path of the produced executable")
	cmd.Flags().StringVar(&flagClang, "clang", "", "C compiler to invoke (default: clang)")
	cmd.Flags().BoolVar(&flagKeepC, "keep-c", false, "keep the intermediate .c file next to the output")
	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Resolve(flagRoot, flagVerbose)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirs(); err != nil {
		return err
	}

	srcPath := args[0]
	text, err := os.ReadFile(srcPath)
	if err != nil {
		return errors.Wrapf(err, "reading %s", srcPath)
	}
	file := source.NewFile(srcPath, string(text))

	// A first, throwaway parse discovers which libraries the program
	// imports, so they can be loaded before the real compile declares
	// their exported symbols into the ImportContext (spec.md §4.5).
	var scoutDiags diag.Collector
	_, scoutCtx := parser.Parse(ctx, file, &scoutDiags)

	mgr := library.NewManager(cfg, compiler.NewFrontEnd(), &compiler.ClangBackend{Path: flagClang})
	footprints, err := mgr.Load(ctx, withoutImplicitCore(scoutCtx.Libraries()))
	if err != nil {
		return errors.Wrap(err, "loading libraries")
	}

	cCode, diags, err := compiler.CompileProgram(ctx, file, footprints)
	if err != nil {
		return err
	}
	printDiagnostics(diags)
	if diags.HasErrors() {
		return errors.New("compilation failed, see diagnostics above")
	}

	outDir, err := os.MkdirTemp("", "vixc-build-")
	if err != nil {
		return errors.Wrap(err, "creating build scratch directory")
	}
	if !flagKeepC {
		defer os.RemoveAll(outDir)
	}

	cPath := filepath.Join(outDir, "main.c")
	if err := os.WriteFile(cPath, []byte(cCode), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", cPath)
	}

	objPath := filepath.Join(outDir, "main.o")
	backend := &compiler.ClangBackend{Path: flagClang}
	if err := backend.CompileObject(ctx, cCode, compiler.CollectIncludeFlags(footprints), objPath); err != nil {
		return err
	}

	if err := link(ctx, objPath, footprints, cfg); err != nil {
		return err
	}

	if flagKeepC {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cPath)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", flagOutput)
	return nil
}

// link invokes the configured C compiler to link the main translation
// unit's object file against every linked library's cached object
// (spec.md §4.5's release/library/bin cache) into flagOutput.
func link(ctx context.Context, mainObj string, footprints []library.FootprintPack, cfg *config.Config) error {
	clang := flagClang
	if clang == "" {
		clang = "clang"
	}
	args := []string{mainObj}
	for _, p := range footprints {
		libObj := filepath.Join(cfg.ReleaseLibraryBinDir(), p.SourceLibrary+"-"+p.Version+".o")
		if _, err := os.Stat(libObj); err == nil {
			args = append(args, libObj)
		}
	}
	args = append(args, "-o", flagOutput)

	out, err := exec.CommandContext(ctx, clang, args...).CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "%s linking failed: %s", diag.KindExternalCompilerFailed, strings.TrimSpace(string(out)))
	}
	return nil
}

func withoutImplicitCore(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != "core" {
			out = append(out, n)
		}
	}
	return out
}

func printDiagnostics(diags *diag.Collector) {
	for file, ds := range diags.ByFile() {
		for _, d := range ds {
			fmt.Fprintf(os.Stderr, "%s: %s[%s]: %s\n", file, d.Severity, d.Kind, d.Message)
		}
	}
}
