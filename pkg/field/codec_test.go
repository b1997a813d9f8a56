package field_test

import (
	"testing"

	"github.com/gnames/gnblob/pkg/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollapse(t *testing.T) {
	tests := []struct {
		msg      string
		values   []string
		fixed    []string
		wantKeys []string
		wantIdx  []int
	}{
		{
			msg:      "no fixed keys",
			values:   []string{"x", "y", "x"},
			wantKeys: []string{"x", "y"},
			wantIdx:  []int{0, 1, 0},
		},
		{
			msg:      "doc example",
			values:   []string{"A", "A", "B", "A"},
			wantKeys: []string{"A", "B"},
			wantIdx:  []int{0, 0, 1, 0},
		},
		{
			msg:      "fixed keys first",
			values:   []string{"c", "a", "d", "c"},
			fixed:    []string{"a", "b"},
			wantKeys: []string{"a", "b", "c", "d"},
			wantIdx:  []int{2, 0, 3, 2},
		},
		{
			msg:      "unused fixed keys stay",
			values:   []string{},
			fixed:    []string{"z", "a"},
			wantKeys: []string{"z", "a"},
			wantIdx:  []int{},
		},
		{
			msg:      "empty",
			values:   nil,
			wantKeys: []string{},
			wantIdx:  []int{},
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			keys, idx := field.Collapse(v.values, v.fixed)
			assert.Equal(t, v.wantKeys, keys)
			assert.Equal(t, v.wantIdx, idx)
		})
	}
}

func TestCollapseRoundTrip(t *testing.T) {
	values := []string{"b", "a", "c", "a", "b", "b", "e"}
	fixedSets := [][]string{
		nil,
		{"a"},
		{"e", "d"},
		{"x", "y", "z", "a", "b", "c"},
	}

	for _, fixed := range fixedSets {
		keys, idx := field.Collapse(values, fixed)
		res, err := field.Expand(keys, idx)
		require.NoError(t, err)
		assert.Equal(t, values, res)

		// fixed keys are never reordered
		for i := range fixed {
			assert.Equal(t, fixed[i], keys[i])
		}
	}
}

func TestCollapseDeterministic(t *testing.T) {
	values := []int{5, 3, 5, 1, 3}
	k1, i1 := field.Collapse(values, nil)
	k2, i2 := field.Collapse(values, nil)
	assert.Equal(t, k1, k2)
	assert.Equal(t, i1, i2)

	// a larger fixed prefix made of the old keys keeps key order
	k3, i3 := field.Collapse(values, k1)
	assert.Equal(t, k1, k3)
	assert.Equal(t, i1, i3)
}

func TestExpandError(t *testing.T) {
	_, err := field.Expand([]string{"a"}, []int{0, 1})
	assert.Error(t, err)

	_, err = field.Expand([]string{"a"}, []int{-1})
	assert.Error(t, err)
}

func TestCollapseAny(t *testing.T) {
	keys, idx, err := field.CollapseAny([]any{"x", 1, "x", 1.5}, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"x", 1, 1.5}, keys)
	assert.Equal(t, []int{0, 1, 0, 2}, idx)

	_, _, err = field.CollapseAny([]any{"x", []any{1}}, nil)
	assert.Error(t, err)
}
