package glyphwalk_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/glyphwalk"
)

func TestNewMapTableValidates(t *testing.T) {
	t.Parallel()

	_, err := glyphwalk.NewMapTable(2, map[glyphwalk.Symbol]glyphwalk.Vector{'a': {1, 2, 3}})
	assert.ErrorIs(t, err, glyphwalk.ErrDimension)

	_, err = glyphwalk.NewMapTable(2, map[glyphwalk.Symbol]glyphwalk.Vector{'!': {1, 2}})
	assert.ErrorIs(t, err, glyphwalk.ErrSymbol)

	_, err = glyphwalk.NewMapTable(0, nil)
	assert.ErrorIs(t, err, glyphwalk.ErrDimension)
}

func TestMapTableCopiesEntries(t *testing.T) {
	t.Parallel()

	v := glyphwalk.Vector{1, 2}
	table, err := glyphwalk.NewMapTable(2, map[glyphwalk.Symbol]glyphwalk.Vector{'a': v})
	require.NoError(t, err)
	v[0] = 9

	got, ok := table.Lookup('a')
	require.True(t, ok)
	assert.Equal(t, glyphwalk.Vector{1, 2}, got)

	_, ok = table.Lookup('b')
	assert.False(t, ok)
}

func TestLoadTable(t *testing.T) {
	t.Parallel()

	table, err := glyphwalk.LoadTable(strings.NewReader(`{"a":[0.5,-0.5],"B":[1,0],"3":[0,0]}`))
	require.NoError(t, err)
	assert.Equal(t, 2, table.Dim())
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []glyphwalk.Symbol{'3', 'B', 'a'}, table.Symbols())

	v, ok := table.Lookup('a')
	require.True(t, ok)
	assert.Equal(t, glyphwalk.Vector{0.5, -0.5}, v)
}

func TestLoadTableErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want error
	}{
		{"mixed dimensions", `{"a":[1,2],"b":[1]}`, glyphwalk.ErrDimension},
		{"multi-char key", `{"ab":[1]}`, glyphwalk.ErrSymbol},
		{"punctuation", `{"!":[1]}`, glyphwalk.ErrSymbol},
		{"empty", `{}`, glyphwalk.ErrDimension},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := glyphwalk.LoadTable(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := glyphwalk.LoadTable(strings.NewReader(`not json`))
	assert.Error(t, err)
}

func TestLoadTableNormalizesKeys(t *testing.T) {
	t.Parallel()

	// "e" followed by a combining acute accent composes to a single rune,
	// which is then rejected as non-alphanumeric rather than as too long.
	_, err := glyphwalk.LoadTable(strings.NewReader("{\"e\u0301\":[1]}"))
	assert.ErrorIs(t, err, glyphwalk.ErrSymbol)
	assert.NotContains(t, err.Error(), "key")
}

func TestMapTableMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	table := testTable(t)
	data, err := json.Marshal(table)
	require.NoError(t, err)

	back, err := glyphwalk.LoadTable(strings.NewReader(string(data)))
	require.NoError(t, err)
	for _, s := range table.Symbols() {
		want, _ := table.Lookup(s)
		got, ok := back.Lookup(s)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}
