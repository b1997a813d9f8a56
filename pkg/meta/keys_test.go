package meta_test

import (
	"testing"

	"github.com/gnames/gnblob/pkg/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLink(t *testing.T) {
	m := meta.New("ds1", "ds1")

	err := m.AddLink("taxon.ENA", "https://www.ebi.ac.uk/ena/browser/view/Taxon:{taxid}")
	require.NoError(t, err)
	err = m.AddLink("record.NCBI", "https://www.ncbi.nlm.nih.gov/nuccore/{id}")
	require.NoError(t, err)
	err = m.AddLink("taxon.ENA", "https://ena.example.org/{taxid}")
	require.NoError(t, err)

	assert.Equal(t, []meta.Link{
		{Path: "taxon.ENA", URL: "https://ena.example.org/{taxid}"},
		{Path: "record.NCBI", URL: "https://www.ncbi.nlm.nih.gov/nuccore/{id}"},
	}, m.Links)

	tests := []struct {
		msg, path, link string
	}{
		{"empty path", " ", "https://example.org"},
		{"no scheme", "taxon.ENA", "example.org/taxon"},
		{"no host", "taxon.ENA", "file:///tmp/x"},
		{"bad escape", "taxon.ENA", "https://example.org/%zz"},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			assert.Error(t, m.AddLink(v.path, v.link))
		})
	}
	assert.Len(t, m.Links, 2)
}

func TestSetKey(t *testing.T) {
	m := meta.New("ds1", "ds1")

	ok, err := m.SetKey("study.id", "PRJEB123", false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"id": "PRJEB123"}, m.Keys["study"])

	// existing value is kept without replace
	ok, err = m.SetKey("study.id", "PRJEB999", false)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "PRJEB123", m.Keys["study"].(map[string]any)["id"])

	ok, err = m.SetKey("study.id", "PRJEB999", true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "PRJEB999", m.Keys["study"].(map[string]any)["id"])

	// a scalar in the way
	ok, err = m.SetKey("study.id.version", 2, false)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = m.SetKey("study.id.version", 2, true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"version": 2},
		m.Keys["study"].(map[string]any)["id"])

	ok, err = m.SetKey("assembly.level", "chromosome", false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "chromosome", m.Assembly["level"])

	ok, err = m.SetKey("taxon.genus", "Danio", false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Danio", m.Taxon["genus"])

	ok, err = m.SetKey("name", "other", false)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "ds1", m.Name)

	ok, err = m.SetKey("record_type", "scaffold", false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "scaffold", m.RecordType)
}

func TestSetKeyErrors(t *testing.T) {
	m := meta.New("ds1", "ds1")
	for _, v := range []string{"", "a..b", "name.first", "assembly", "taxon"} {
		t.Run(v, func(t *testing.T) {
			_, err := m.SetKey(v, "x", true)
			assert.Error(t, err)
		})
	}
}

func TestSetTaxon(t *testing.T) {
	m := meta.New("ds1", "ds1")
	m.SetTaxon("7955", map[string]string{
		"species": "Danio rerio",
		"genus":   "Danio",
	})
	assert.Equal(t, "7955", m.Taxon["taxid"])
	assert.Equal(t, "Danio rerio", m.Taxon["species"])
	assert.Equal(t, "Danio", m.Taxon["genus"])
}

func TestMerge(t *testing.T) {
	m := meta.New("ds1", "ds1")
	m.Assembly["file"] = "asm.fa"

	m.Merge(map[string]any{
		"name":        "Danio rerio genome",
		"record_type": "contig",
		"assembly": map[string]any{
			"accession": "GCA_000002035.4",
		},
		"taxon": map[string]any{"taxid": "7955"},
		"study": map[string]any{"id": "PRJEB1"},
		"notes": "sample",
	})

	assert.Equal(t, "ds1", m.ID)
	assert.Equal(t, "Danio rerio genome", m.Name)
	assert.Equal(t, "contig", m.RecordType)
	assert.Equal(t, map[string]any{
		"file":      "asm.fa",
		"accession": "GCA_000002035.4",
	}, m.Assembly)
	assert.Equal(t, "7955", m.Taxon["taxid"])
	assert.Equal(t, map[string]any{"id": "PRJEB1"}, m.Keys["study"])
	assert.Equal(t, "sample", m.Keys["notes"])

	m.Merge(map[string]any{"study": map[string]any{"title": "zebrafish"}})
	assert.Equal(t, map[string]any{"id": "PRJEB1", "title": "zebrafish"},
		m.Keys["study"])
}
