// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mock

import (
	"math/rand/v2"

	"github.com/gogpu/glyphwalk"
)

// DefaultTable returns an address table with a seeded random vector in
// [-1, 1) for every alphanumeric symbol. The same seed and dim always give
// the same table.
func DefaultTable(seed uint64, dim int) *glyphwalk.MapTable {
	entries := make(map[glyphwalk.Symbol]glyphwalk.Vector, 62)
	for _, s := range glyphwalk.AlphaNum() {
		rng := rand.New(rand.NewPCG(seed, uint64(s)))
		v := make(glyphwalk.Vector, dim)
		for i := range v {
			v[i] = rng.Float64()*2 - 1
		}
		entries[s] = v
	}
	t, err := glyphwalk.NewMapTable(dim, entries)
	if err != nil {
		panic(err) // entries are alphanumeric and sized by construction
	}
	return t
}
