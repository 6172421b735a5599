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

// Command vixc is the thin CLI wiring of the front end described by
// spec.md: it never implements a phase itself, only sequences the
// library manager and compiler packages and reports their diagnostics.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/VixLanguage/Vix-programing-language/internal/diag"
)

var (
	flagRoot    string
	flagVerbose bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vixc",
		Short: "vixc compiles Vix source to C and, optionally, a native object",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				diag.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().StringVar(&flagRoot, "vix-root", "", "override VIX_ROOT (default: $VIX_ROOT or $HOME/.vix)")
	root.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug-level phase logging")
	root.AddCommand(buildCmd(), libsCmd())
	return root
}
