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

package compiler

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/VixLanguage/Vix-programing-language/internal/diag"
	"github.com/VixLanguage/Vix-programing-language/internal/library"
)

// ClangBackend is the real library.CBackend: it shells out to an external
// C compiler (spec.md treats this invocation as the opaque
// "compile_to_object(source_text, out_path, target)" contract). The
// compiler binary itself is never vendored or reimplemented — only the
// process invocation is this project's concern.
type ClangBackend struct {
	// Path is the compiler executable to invoke, e.g. "clang" or "cc".
	// Defaults to "clang" when empty.
	Path string
	// ExtraFlags are appended after the fixed -std=c17 -c flags, e.g.
	// "-O2" or "-target <triple>" for cross-compilation.
	ExtraFlags []string
}

var _ library.CBackend = (*ClangBackend)(nil)

// CompileObject implements library.CBackend: it writes cCode to a
// sibling .c file next to objPath and invokes the configured compiler on
// it, passing includes through verbatim as extra command-line flags —
// this is exactly a library's package.json "include.Clang" list
// (spec.md §4.5 step 1), which names flags like "-lm" or "-I<dir>", not
// bare header names. It reports a KindExternalCompilerFailed-flavored
// error on any non-zero exit.
func (b *ClangBackend) CompileObject(ctx context.Context, cCode string, includes []string, objPath string) error {
	clang := b.Path
	if clang == "" {
		clang = "clang"
	}

	srcPath := strings.TrimSuffix(objPath, filepath.Ext(objPath)) + ".c"
	if err := os.WriteFile(srcPath, []byte(cCode), 0o644); err != nil {
		return errors.Wrapf(err, "writing intermediate C source %s", srcPath)
	}

	args := []string{"-std=c17", "-c", srcPath, "-o", objPath}
	args = append(args, includes...)
	args = append(args, b.ExtraFlags...)

	cmd := exec.CommandContext(ctx, clang, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "%s failed: %s", diag.KindExternalCompilerFailed, strings.TrimSpace(string(out)))
	}
	return nil
}
