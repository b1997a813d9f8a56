package gnblob_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnblob/pkg/field"
	"github.com/gnames/gnblob/pkg/gnblob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclarations(t *testing.T) {
	decls := gnblob.Declarations()
	kinds := make([]gnblob.Kind, len(decls))
	for i, v := range decls {
		kinds[i] = v.Kind
	}
	assert.Equal(t, []gnblob.Kind{
		gnblob.KindBed, gnblob.KindBedDir, gnblob.KindFasta,
		gnblob.KindBlobDB, gnblob.KindBusco, gnblob.KindText,
		gnblob.KindTrnascan, gnblob.KindCov, gnblob.KindHits,
		gnblob.KindSynonyms,
	}, kinds)

	// callers cannot change the declarations
	decls[7].Depends[0] = "changed"
	cov, ok := gnblob.Lookup(gnblob.KindCov)
	require.True(t, ok)
	assert.Equal(t, []string{"identifiers", "length", "ncount"}, cov.Depends)

	fasta, ok := gnblob.Lookup(gnblob.KindFasta)
	require.True(t, ok)
	assert.Empty(t, fasta.Depends)
	assert.Equal(t, []string{"identifiers"}, fasta.Optional)

	_, ok = gnblob.Lookup("bam")
	assert.False(t, ok)
}

func TestRequestKinds(t *testing.T) {
	req := gnblob.Request{Inputs: map[gnblob.Kind][]string{
		gnblob.KindHits:  {"hits.tsv"},
		gnblob.KindText:  {"a.txt"},
		gnblob.KindFasta: {"asm.fa"},
		gnblob.KindBusco: nil,
	}}
	assert.Equal(t,
		[]gnblob.Kind{gnblob.KindFasta, gnblob.KindText, gnblob.KindHits},
		req.Kinds(),
	)
}

func TestParsePair(t *testing.T) {
	tests := []struct {
		msg   string
		input string
		res   gnblob.Pair
		err   bool
	}{
		{"simple", "study.id=PRJEB1", gnblob.Pair{Path: "study.id", Value: "PRJEB1"}, false},
		{"url value", "taxon.ENA=https://x.org/?a=b",
			gnblob.Pair{Path: "taxon.ENA", Value: "https://x.org/?a=b"}, false},
		{"empty value", "notes=", gnblob.Pair{Path: "notes", Value: ""}, false},
		{"no equal sign", "notes", gnblob.Pair{}, true},
		{"no path", "=value", gnblob.Pair{}, true},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res, err := gnblob.ParsePair(v.input)
			if v.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, v.res, res)
		})
	}
}

func TestParams(t *testing.T) {
	p := gnblob.Params{
		"threads":     "4",
		"hit-count":   10,
		"text-header": true,
		"text-cols":   "1=identifiers",
		"no-array":    "true",
	}
	assert.Equal(t, 4, p.Int("threads", 1))
	assert.Equal(t, 10, p.Int("hit-count", 1))
	assert.Equal(t, 1, p.Int("missing", 1))
	assert.True(t, p.Bool("text-header"))
	assert.True(t, p.Bool("no-array"))
	assert.False(t, p.Bool("missing"))
	assert.Equal(t, "1=identifiers", p.String("text-cols", ""))
	assert.Equal(t, "\t", p.String("text-delimiter", "\t"))
	assert.Equal(t, "10", p.String("hit-count", ""))
}

func TestDeps(t *testing.T) {
	deps := gnblob.NewDeps()
	_, ok := deps.Identifiers()
	assert.False(t, ok)

	ids, err := field.NewIdentifier("identifiers", []string{"c1", "c2"})
	require.NoError(t, err)
	length, err := field.NewVariable("length", []any{10, 20})
	require.NoError(t, err)
	deps.Add(ids)
	deps.Add(length)

	assert.Equal(t, 2, deps.Len())
	assert.True(t, deps.Has("length"))
	res, ok := deps.Identifiers()
	require.True(t, ok)
	assert.Equal(t, 2, res.Len())

	v, ok := deps.Variable("length")
	require.True(t, ok)
	assert.Equal(t, "length", v.ID())

	_, ok = deps.Variable("identifiers")
	assert.False(t, ok)
	_, ok = deps.Get("gc")
	assert.False(t, ok)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, gnblob.IsNotFound(gnblob.ErrNotFound))
	assert.True(t, gnblob.IsNotFound(
		&gn.Error{Err: fmt.Errorf("meta.json: %w", gnblob.ErrNotFound)}))
	assert.False(t, gnblob.IsNotFound(errors.New("disk is full")))
	assert.False(t, gnblob.IsNotFound(nil))
}
