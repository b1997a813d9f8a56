package iostore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gnblob/internal/iostore"
	"github.com/gnames/gnblob/pkg/field"
	"github.com/gnames/gnblob/pkg/gnblob"
	"github.com/gnames/gnblob/pkg/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeta(t *testing.T) {
	for _, compress := range []bool{false, true} {
		dir := t.TempDir()
		s := iostore.New(dir, compress)
		assert.Equal(t, dir, s.Dir())
		assert.False(t, s.HasMeta())

		_, err := s.ReadMeta()
		assert.True(t, gnblob.IsNotFound(err))

		m := meta.New("ds1", "Danio rerio")
		m.SetRecords(3)
		m.AddField(
			[]meta.Parent{{ID: "coverage", Range: &meta.Range{0, 10}}},
			meta.FieldMeta{ID: "cov", Type: "variable"},
		)
		require.NoError(t, s.WriteMeta(m))
		assert.True(t, s.HasMeta())

		res, err := s.ReadMeta()
		require.NoError(t, err)
		assert.Equal(t, "ds1", res.ID)
		assert.Equal(t, 3, res.Records)
		fm, ok := res.FieldMeta("coverage")
		require.True(t, ok)
		assert.Equal(t, &meta.Range{0, 10}, fm.Range)
		fm, ok = res.FieldMeta("cov")
		require.True(t, ok)
		assert.Equal(t, "coverage", fm.Parent)
	}
}

func TestFieldUnit(t *testing.T) {
	dir := t.TempDir()
	s := iostore.New(dir, false)

	f, err := field.NewCategory("phylum", []any{"x", "y", "x"})
	require.NoError(t, err)
	require.NoError(t, s.WriteField(f))

	bs, err := os.ReadFile(filepath.Join(dir, "phylum.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"values":[0,1,0],"keys":["x","y"]}`, string(bs))

	res, err := s.ReadField("phylum", field.CategoryKind)
	require.NoError(t, err)
	cat, ok := res.(*field.Category)
	require.True(t, ok)
	assert.Equal(t, []any{"x", "y", "x"}, cat.Expand())

	_, err = s.ReadField("gc", field.VariableKind)
	assert.True(t, gnblob.IsNotFound(err))
}

func TestCompressedUnits(t *testing.T) {
	dir := t.TempDir()
	plain := iostore.New(dir, false)
	gz := iostore.New(dir, true)

	f, err := field.NewVariable("gc", []any{0.25, 0.5})
	require.NoError(t, err)
	require.NoError(t, plain.WriteField(f))
	require.NoError(t, gz.WriteField(f))

	// only the last written form stays
	_, err = os.Stat(filepath.Join(dir, "gc.json"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "gc.json.gz"))
	require.NoError(t, err)

	// both stores read the compressed unit
	for _, s := range []gnblob.Store{plain, gz} {
		res, err := s.ReadField("gc", field.VariableKind)
		require.NoError(t, err)
		assert.Equal(t, []any{0.25, 0.5}, res.Values())
	}
}

func TestMalformedUnit(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "identifiers.json"),
		[]byte(`{"values":[1,2]}`), 0644)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "broken.json"),
		[]byte(`{"values":`), 0644)
	require.NoError(t, err)

	s := iostore.New(dir, false)
	_, err = s.ReadField("identifiers", field.IdentifierKind)
	assert.Error(t, err)
	assert.False(t, gnblob.IsNotFound(err))

	_, err = s.ReadField("broken", field.GenericKind)
	assert.Error(t, err)
}

func TestWriteUnchangedBytes(t *testing.T) {
	dir := t.TempDir()
	s := iostore.New(dir, false)
	f, err := field.NewIdentifier("identifiers", []string{"c1", "c2"})
	require.NoError(t, err)
	require.NoError(t, s.WriteField(f))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	// no temporary files are left behind
	require.Len(t, entries, 1)
	assert.Equal(t, "identifiers.json", entries[0].Name())
}
