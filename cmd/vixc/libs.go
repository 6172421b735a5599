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
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/VixLanguage/Vix-programing-language/internal/config"
	"github.com/VixLanguage/Vix-programing-language/internal/library"
)

func libsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "libs",
		Short: "list the libraries resolved in the current VIX_ROOT's footprint manifest",
		Args:  cobra.NoArgs,
		RunE:  runLibs,
	}
	return cmd
}

func runLibs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Resolve(flagRoot, flagVerbose)
	if err != nil {
		return err
	}

	packs, err := library.LoadFootprints(cfg.FootprintFile())
	if err != nil {
		return errors.Wrap(err, "loading footprint manifest")
	}
	if len(packs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no libraries resolved yet")
		return nil
	}
	for _, p := range packs {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (publisher: %s, functions: %d, classes: %d)\n",
			p.Name, p.Version, p.Publisher, len(p.Functions), len(p.Classes))
	}
	return nil
}
