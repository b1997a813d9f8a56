package cmd

import (
	"testing"

	"github.com/gnames/gnblob/internal/ioparse"
	"github.com/gnames/gnblob/pkg/gnblob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFlags(t *testing.T) {
	cmd := getAddCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--fasta", "asm.fa.gz",
		"--text", "a.tsv,b.tsv",
		"--text-cols", "1=identifiers,2=gc",
		"--text-no-array",
		"--key", "study.id=PRJEB1",
		"--key", "assembly.level=chromosome",
		"--link", "record.ENA=https://ena.example.org/{id}",
		"--taxid", "7955",
		"-c", "-j", "4",
	}))

	fl := cmd.Flags()
	assert.True(t, fl.Changed("threads"))
	assert.False(t, fl.Changed("compress"))
	create, err := fl.GetBool("create")
	require.NoError(t, err)
	assert.True(t, create)
}

func TestNewRequest(t *testing.T) {
	req := newRequest(addFlags{
		fasta:       []string{"asm.fa"},
		text:        []string{"a.tsv", "b.tsv"},
		keys:        []string{"study.id=PRJEB1"},
		taxID:       "7955",
		textCols:    "1=identifiers,2=gc",
		textNoArray: true,
	})

	assert.Equal(t, []gnblob.Kind{gnblob.KindFasta, gnblob.KindText},
		req.Kinds())
	assert.Equal(t, []string{"a.tsv", "b.tsv"}, req.Inputs[gnblob.KindText])
	assert.Equal(t, "1=identifiers,2=gc",
		req.Params.String(ioparse.ParamTextCols, ""))
	assert.True(t, req.Params.Bool(ioparse.ParamTextNoArray))
	assert.False(t, req.Params.Bool(ioparse.ParamTextHeader))
	assert.NotContains(t, req.Params, ioparse.ParamTextDelimiter)
	assert.Equal(t, "7955", req.TaxID)

	empty := newRequest(addFlags{})
	assert.Empty(t, empty.Kinds())
}
