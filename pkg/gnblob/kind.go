package gnblob

import "slices"

// Kind is a type of input file.
type Kind string

const (
	KindBed      Kind = "bed"
	KindBedDir   Kind = "beddir"
	KindFasta    Kind = "fasta"
	KindBlobDB   Kind = "blobdb"
	KindBusco    Kind = "busco"
	KindText     Kind = "text"
	KindTrnascan Kind = "trnascan"
	KindCov      Kind = "cov"
	KindHits     Kind = "hits"
	KindSynonyms Kind = "synonyms"
)

// Declaration describes dependencies of an input kind on fields that
// must (Depends) or may (Optional) exist before the kind is parsed.
type Declaration struct {
	Kind     Kind
	Depends  []string
	Optional []string
}

// declarations are kept in processing order.
var declarations = []Declaration{
	{Kind: KindBed, Optional: []string{"identifiers"}},
	{Kind: KindBedDir, Optional: []string{"identifiers"}},
	{Kind: KindFasta, Optional: []string{"identifiers"}},
	{Kind: KindBlobDB, Depends: []string{"identifiers"}},
	{Kind: KindBusco, Depends: []string{"identifiers"}},
	{Kind: KindText, Depends: []string{"identifiers"}},
	{Kind: KindTrnascan, Depends: []string{"identifiers"}},
	{Kind: KindCov, Depends: []string{"identifiers", "length", "ncount"}},
	{Kind: KindHits, Depends: []string{"identifiers", "length"}},
	{Kind: KindSynonyms, Depends: []string{"identifiers"}},
}

// Declarations returns declarations of all input kinds in the order in
// which they are processed. Fields produced by an earlier kind are
// available to later kinds.
func Declarations() []Declaration {
	res := make([]Declaration, len(declarations))
	for i, v := range declarations {
		res[i] = Declaration{
			Kind:     v.Kind,
			Depends:  slices.Clone(v.Depends),
			Optional: slices.Clone(v.Optional),
		}
	}
	return res
}

// Lookup finds the declaration of a kind.
func Lookup(k Kind) (Declaration, bool) {
	for _, v := range Declarations() {
		if v.Kind == k {
			return v, true
		}
	}
	return Declaration{}, false
}
