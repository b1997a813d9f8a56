package ioparse

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnblob/pkg/field"
	"github.com/gnames/gnblob/pkg/gnblob"
	"github.com/gnames/gnblob/pkg/meta"
)

type seqStats struct {
	id     string
	length int
	gc     int
	acgt   int
	ncount int
}

func (s seqStats) gcRatio() float64 {
	if s.acgt == 0 {
		return 0
	}
	return math.Round(float64(s.gc)/float64(s.acgt)*10_000) / 10_000
}

type fasta struct{}

// NewFasta creates a parser of FASTA sequence files. It produces
// identifiers, length, gc and ncount fields. If identifiers already exist,
// sequence IDs must be among them and fields follow their order.
func NewFasta() gnblob.Parser {
	return fasta{}
}

func (fasta) Kind() gnblob.Kind {
	return gnblob.KindFasta
}

func (fasta) Parents() []meta.Parent {
	return nil
}

func (p fasta) Parse(
	ctx context.Context,
	inputs []string,
	deps *gnblob.Deps,
	_ *meta.Meta,
	_ gnblob.Params,
) ([]field.Field, error) {
	path := inputs[0]
	stats, err := p.read(ctx, path)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(stats))
	for i, v := range stats {
		names[i] = v.id
	}

	ids, hasIDs := deps.Identifiers()
	if !hasIDs {
		if !field.CheckUnique(names) {
			return nil, IdentifiersError(path, "sequence IDs are not unique")
		}
		idf, err := field.NewIdentifier("identifiers", names)
		if err != nil {
			return nil, err
		}
		res, err := statFields(stats)
		if err != nil {
			return nil, err
		}
		return append([]field.Field{idf}, res...), nil
	}

	if !ids.ValidateList(names) {
		return nil, IdentifiersError(path,
			"sequence IDs do not match existing identifiers")
	}
	byID := make(map[string]seqStats, len(stats))
	for _, v := range stats {
		byID[v.id] = v
	}
	ordered := make([]seqStats, ids.Len())
	var missing int
	for i, id := range ids.Strings() {
		v, ok := byID[id]
		if !ok {
			missing++
			v.id = id
		}
		ordered[i] = v
	}
	if missing > 0 {
		gn.Warn("<em>%s</em> has no sequences for %d of %d records, "+
			"their length, gc and ncount are set to 0",
			path, missing, ids.Len())
		slog.Warn("Records missing from FASTA file",
			"file", path, "missing", missing, "records", ids.Len())
	}
	return statFields(ordered)
}

func (fasta) read(ctx context.Context, path string) ([]seqStats, error) {
	in, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	var res []seqStats
	var cur *seqStats
	sc := newScanner(in)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if len(res)%10_000 == 0 && ctx.Err() != nil {
				return nil, ctx.Err()
			}
			header := strings.Fields(string(line[1:]))
			if len(header) == 0 {
				return nil, IdentifiersError(path,
					fmt.Sprintf("empty header after %d sequences", len(res)))
			}
			res = append(res, seqStats{id: header[0]})
			cur = &res[len(res)-1]
			continue
		}
		if cur == nil {
			return nil, IdentifiersError(path, "sequence before the first header")
		}
		for _, b := range line {
			switch b {
			case 'G', 'C', 'g', 'c':
				cur.gc++
				cur.acgt++
			case 'A', 'T', 'a', 't':
				cur.acgt++
			case 'N', 'n':
				cur.ncount++
			case ' ', '\t', '\r':
				continue
			}
			cur.length++
		}
	}
	if err = sc.Err(); err != nil {
		return nil, InputError(path, err)
	}
	if len(res) == 0 {
		return nil, IdentifiersError(path, "no sequences found")
	}
	return res, nil
}

func statFields(stats []seqStats) ([]field.Field, error) {
	length := make([]float64, len(stats))
	gc := make([]float64, len(stats))
	ncount := make([]float64, len(stats))
	for i, v := range stats {
		length[i] = float64(v.length)
		gc[i] = v.gcRatio()
		ncount[i] = float64(v.ncount)
	}

	specs := []struct {
		id     string
		values []float64
		attrs  map[string]any
	}{
		{"length", length, map[string]any{"scale": "scaleLog", "preload": true}},
		{"gc", gc, map[string]any{"scale": "scaleLinear", "preload": true}},
		{"ncount", ncount, map[string]any{"scale": "scaleLinear"}},
	}

	res := make([]field.Field, 0, len(specs))
	for _, v := range specs {
		f, err := field.NewVariableFloats(v.id, v.values,
			field.OptMeta(v.attrs),
			field.OptRange(slices.Min(v.values), slices.Max(v.values)),
		)
		if err != nil {
			return nil, err
		}
		res = append(res, f)
	}
	return res, nil
}
