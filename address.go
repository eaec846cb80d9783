package glyphwalk

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// AddressTable maps symbols to their fixed latent addresses.
//
// Implementations must be safe for concurrent reads and must return vectors
// of length Dim for every symbol they report. Callers never mutate returned
// vectors.
type AddressTable interface {
	// Lookup returns the address of s, or false if s is unrepresentable.
	Lookup(s Symbol) (Vector, bool)

	// Dim returns the latent dimensionality shared by every entry.
	Dim() int
}

// MapTable is an in-memory AddressTable.
type MapTable struct {
	dim     int
	entries map[Symbol]Vector
}

// NewMapTable validates entries and builds a table.
// Every key must be alphanumeric and every vector must have dim components.
func NewMapTable(dim int, entries map[Symbol]Vector) (*MapTable, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: table dimension %d", ErrDimension, dim)
	}
	t := &MapTable{dim: dim, entries: make(map[Symbol]Vector, len(entries))}
	for s, v := range entries {
		if !s.IsAlphaNum() {
			return nil, fmt.Errorf("%w: %q", ErrSymbol, s.String())
		}
		if len(v) != dim {
			return nil, fmt.Errorf("%w: %q has %d components, want %d", ErrDimension, s.String(), len(v), dim)
		}
		t.entries[s] = v.Clone()
	}
	return t, nil
}

// Lookup implements AddressTable.
func (t *MapTable) Lookup(s Symbol) (Vector, bool) {
	v, ok := t.entries[s]
	return v, ok
}

// Dim implements AddressTable.
func (t *MapTable) Dim() int {
	return t.dim
}

// Len returns the number of entries.
func (t *MapTable) Len() int {
	return len(t.entries)
}

// Symbols returns the table's symbols in ascending order.
func (t *MapTable) Symbols() []Symbol {
	out := make([]Symbol, 0, len(t.entries))
	for s := range t.entries {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// LoadTable reads a JSON object of symbol to address, for example
//
//	{"a": [0.12, -0.4, ...], "b": [...]}
//
// Keys are NFC-normalized before validation, so a key must be exactly one
// alphanumeric character once composed. The dimension is taken from the
// entries, which must all agree.
func LoadTable(r io.Reader) (*MapTable, error) {
	var raw map[string][]float64
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("glyphwalk: decode address table: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty address table", ErrDimension)
	}

	entries := make(map[Symbol]Vector, len(raw))
	dim := -1
	for key, v := range raw {
		runes := []rune(norm.NFC.String(key))
		if len(runes) != 1 {
			return nil, fmt.Errorf("%w: key %q", ErrSymbol, key)
		}
		s := Symbol(runes[0])
		if dim < 0 {
			dim = len(v)
		}
		if _, dup := entries[s]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrSymbol, key)
		}
		entries[s] = Vector(v)
	}
	return NewMapTable(dim, entries)
}

// MarshalJSON writes the table in the LoadTable format.
func (t *MapTable) MarshalJSON() ([]byte, error) {
	raw := make(map[string][]float64, len(t.entries))
	for s, v := range t.entries {
		raw[s.String()] = v
	}
	return json.Marshal(raw)
}
