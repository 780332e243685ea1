package launch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFavorites(t *testing.T) {
	data, err := EncodeFavorites([]string{"A/B", "C"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"favorites":["A/B","C"]}`, string(data))

	data, err = EncodeFavorites(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"favorites":[]}`, string(data))
}

func TestDecodeFavorites_Valid(t *testing.T) {
	got, err := DecodeFavorites([]byte(`{"favorites":["X","Y"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y"}, got)

	got, err = DecodeFavorites([]byte(`{"favorites":[]}`))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeFavorites_Whitespace(t *testing.T) {
	got, err := DecodeFavorites([]byte("{ \"favorites\" : [ \"X\" , \"Y\" ] }\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y"}, got)
}

func TestDecodeFavorites_CollapsesDuplicates(t *testing.T) {
	got, err := DecodeFavorites([]byte(`{"favorites":["b","a","b","c","a"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, got)
}

func TestDecodeFavorites_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `not json`},
		{"empty", ``},
		{"null", `null`},
		{"array", `["a"]`},
		{"string", `"favorites"`},
		{"missing field", `{}`},
		{"null favorites", `{"favorites":null}`},
		{"unknown field", `{"favorites":["a"],"theme":"dark"}`},
		{"non-string entry", `{"favorites":["a",1]}`},
		{"object entry", `{"favorites":[{"path":"a"}]}`},
		{"favorites not array", `{"favorites":"a"}`},
		{"trailing data", `{"favorites":["a"]}{}`},
		{"null entry", `{"favorites":["a",null]}`},
		{"key case", `{"FAVORITES":["x"]}`},
		{"mixed case key", `{"Favorites":["x"]}`},
		{"repeated key", `{"favorites":null,"favorites":["b"]}`},
		{"repeated valid key", `{"favorites":["a"],"favorites":["b"]}`},
		{"unclosed", `{"favorites":["a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFavorites([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestEncodeDecode_PreservesOrder(t *testing.T) {
	in := []string{"Aircraft/Laminar Research/Cessna 172", "Aircraft/Extra", "Aircraft/Laminar Research/Cessna 172/liveries/Red"}
	data, err := EncodeFavorites(in)
	require.NoError(t, err)

	out, err := DecodeFavorites(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestToggle(t *testing.T) {
	assert.Equal(t, []string{"A"}, toggle(nil, "A"))
	assert.Equal(t, []string{"A", "B"}, toggle([]string{"A"}, "B"))
	assert.Equal(t, []string{"B"}, toggle([]string{"A", "B"}, "A"))
	assert.Equal(t, []string{"A", "C"}, toggle([]string{"A", "B", "C"}, "B"))
	assert.Empty(t, toggle([]string{"A"}, "A"))
}

func TestWrapHour(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{12.5, 12.5},
		{24, 0},
		{25, 1},
		{-1, 23},
		{-24, 0},
		{48.25, 0.25},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, wrapHour(tt.in), 1e-9, "wrapHour(%v)", tt.in)
	}
}

func TestClampFuel(t *testing.T) {
	assert.Equal(t, 0.0, clampFuel(-5))
	assert.Equal(t, 42.0, clampFuel(42))
	assert.Equal(t, 100.0, clampFuel(140))
}
