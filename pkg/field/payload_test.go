package field_test

import (
	"encoding/json"
	"testing"

	"github.com/gnames/gnblob/pkg/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadJSONMembers(t *testing.T) {
	cat, err := field.NewCategory("c", nil)
	require.NoError(t, err)
	arr, err := field.NewArray("a", [][]any{{"x", 1}},
		field.OptHeaders("name", "n"), field.OptCategorySlot(0))
	require.NoError(t, err)
	plain, err := field.NewArray("p", [][]any{{1, 2}})
	require.NoError(t, err)
	vr, err := field.NewVariable("v", nil)
	require.NoError(t, err)

	tests := []struct {
		msg     string
		f       field.Field
		present []string
		absent  []string
	}{
		{"category", cat, []string{"values", "keys"},
			[]string{"headers", "category_slot"}},
		{"array with slot", arr,
			[]string{"values", "keys", "headers", "category_slot"}, nil},
		{"array without slot", plain, []string{"values"},
			[]string{"keys", "headers", "category_slot"}},
		{"variable", vr, []string{"values"},
			[]string{"keys", "headers", "category_slot"}},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			bs, err := json.Marshal(v.f.Payload())
			require.NoError(t, err)
			var res map[string]any
			require.NoError(t, json.Unmarshal(bs, &res))
			for _, k := range v.present {
				assert.Contains(t, res, k)
			}
			for _, k := range v.absent {
				assert.NotContains(t, res, k)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		msg  string
		kind field.Kind
		json string
		test func(*testing.T, field.Field)
	}{
		{
			msg:  "identifier",
			kind: field.IdentifierKind,
			json: `{"values":["c1","c2"]}`,
			test: func(t *testing.T, f field.Field) {
				id, ok := f.(*field.Identifier)
				require.True(t, ok)
				assert.Equal(t, []string{"c1", "c2"}, id.Strings())
			},
		},
		{
			msg:  "variable",
			kind: field.VariableKind,
			json: `{"values":[1,5,9]}`,
			test: func(t *testing.T, f field.Field) {
				v, ok := f.(*field.Variable)
				require.True(t, ok)
				res, err := v.RangeIndices([]int{0, 6}, false)
				require.NoError(t, err)
				assert.Equal(t, []int{0, 1}, res)
			},
		},
		{
			msg:  "category",
			kind: field.CategoryKind,
			json: `{"values":[0,1,0],"keys":["x","y"]}`,
			test: func(t *testing.T, f field.Field) {
				c, ok := f.(*field.Category)
				require.True(t, ok)
				assert.Equal(t, []any{"x", "y", "x"}, c.Expand())
			},
		},
		{
			msg:  "array",
			kind: field.ArrayKind,
			json: `{"values":[[0,2.5],[1,3]],"keys":["a","b"],
				"headers":["name","score"],"category_slot":0}`,
			test: func(t *testing.T, f field.Field) {
				a, ok := f.(*field.Array)
				require.True(t, ok)
				assert.Equal(t, [][]any{{0, 2.5}, {1, 3.0}}, a.Records())
				assert.Equal(t, []string{"name", "score"}, a.Headers())
			},
		},
		{
			msg:  "multi array",
			kind: field.ArrayKind,
			json: `{"values":[[],[[0,1],[1,2]]],"keys":["a","b"],
				"category_slot":0}`,
			test: func(t *testing.T, f field.Field) {
				m, ok := f.(*field.MultiArray)
				require.True(t, ok)
				assert.Equal(t, [][][]any{{}, {{0, 1.0}, {1, 2.0}}}, m.Rows())
			},
		},
		{
			msg:  "multi array with empty rows only",
			kind: field.ArrayKind,
			json: `{"values":[[],[]],"keys":[],"category_slot":0}`,
			test: func(t *testing.T, f field.Field) {
				_, ok := f.(*field.MultiArray)
				assert.True(t, ok)
			},
		},
		{
			msg:  "generic",
			kind: field.GenericKind,
			json: `{"values":["a",1]}`,
			test: func(t *testing.T, f field.Field) {
				_, ok := f.(*field.Generic)
				assert.True(t, ok)
				assert.Equal(t, []any{"a", 1.0}, f.Values())
			},
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			var p field.Payload
			require.NoError(t, json.Unmarshal([]byte(v.json), &p))
			f, err := field.Decode("f", v.kind, p)
			require.NoError(t, err)
			assert.Equal(t, v.kind, f.Kind())
			v.test(t, f)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		msg  string
		kind field.Kind
		p    field.Payload
	}{
		{"identifier not string", field.IdentifierKind,
			field.Payload{Values: []any{1.0}}},
		{"duplicate identifiers", field.IdentifierKind,
			field.Payload{Values: []any{"a", "a"}}},
		{"category index outside keys", field.CategoryKind,
			field.Payload{Values: []any{3.0}, Keys: []any{"a"}}},
		{"array record not a list", field.ArrayKind,
			field.Payload{Values: []any{"a"}}},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			_, err := field.Decode("f", v.kind, v.p)
			assert.Error(t, err)
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	orig, err := field.NewCategory("c", []any{"x", "y", "x"})
	require.NoError(t, err)

	bs, err := json.Marshal(orig.Payload())
	require.NoError(t, err)
	var p field.Payload
	require.NoError(t, json.Unmarshal(bs, &p))

	res, err := field.Decode("c", field.CategoryKind, p)
	require.NoError(t, err)
	assert.Equal(t, orig.Expand(), res.(*field.Category).Expand())
	assert.Equal(t, orig.Indices(), res.(*field.Category).Indices())
}
