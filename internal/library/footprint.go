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

// Package library implements the resolve/collect/compile/cache/extract/
// persist pipeline of spec.md §4.5, the ABI boundary between separately
// compiled Vix libraries and the program that imports them.
package library

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// FunctionSignature is one exported function's calling shape, as
// recorded in a FootprintPack, grounded field-for-field on
// original_source's Library::manager::FunctionSignature.
type FunctionSignature struct {
	Name       string      `json:"name"`
	ReturnType string      `json:"return_type"`
	Parameters [][2]string `json:"parameters"`
	ABI        string      `json:"abi"`
}

// FootprintPack is the persisted JSON manifest of one library's public
// ABI (spec.md §3.6): name, version, publisher, the struct names it
// exports ("classes"), its exported function signatures, its raw
// exported function name list, the extra C includes it requires, and
// the library name it was compiled from.
type FootprintPack struct {
	Name               string              `json:"name"`
	Version            string              `json:"version"`
	Publisher          string              `json:"publisher"`
	Classes            []string            `json:"classes"`
	FunctionSignatures []FunctionSignature `json:"function_signatures"`
	Functions          []string            `json:"functions"`
	Includes           []string            `json:"includes"`
	SourceLibrary      string              `json:"source_library"`
}

// LoadFootprints reads and parses the libraries.pack manifest at path.
// A missing file is not an error: it means no library has been compiled
// yet, so an empty set is returned.
func LoadFootprints(path string) ([]FootprintPack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading footprint manifest %s", path)
	}
	var packs []FootprintPack
	if err := json.Unmarshal(data, &packs); err != nil {
		return nil, errors.Wrapf(err, "parsing footprint manifest %s", path)
	}
	return packs, nil
}

// SaveFootprints overwrites path with the JSON encoding of packs. This
// is a whole-set persist, not an incremental merge: the original
// implementation's save_footprint_libraries likewise serializes the
// complete in-memory Vec<FootprintPack> on every call, so the caller is
// responsible for having already merged in whatever prior packs it
// wants kept (spec.md §4.5 step 6).
func SaveFootprints(path string, packs []FootprintPack) error {
	data, err := json.MarshalIndent(packs, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding footprint manifest")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing footprint manifest %s", path)
	}
	return nil
}

// Find returns the FootprintPack named name within packs, if present.
func Find(packs []FootprintPack, name string) (FootprintPack, bool) {
	for _, p := range packs {
		if p.Name == name {
			return p, true
		}
	}
	return FootprintPack{}, false
}
