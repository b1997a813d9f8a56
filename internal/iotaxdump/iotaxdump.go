// Package iotaxdump reads ranks of taxa from an NCBI new_taxdump
// directory.
package iotaxdump

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gnames/gnblob/internal/iofs"
	"github.com/gnames/gnblob/pkg/gnblob"
	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
)

// LineageFile is the taxdump file with ranked lineages.
const LineageFile = "rankedlineage.dmp"

// ranks of rankedlineage.dmp columns, starting from the third column.
var ranks = []string{
	"species", "genus", "family", "order",
	"class", "phylum", "kingdom", "superkingdom",
}

type taxdump struct {
	path   string
	parser gnparser.GNparser

	mu    sync.Mutex
	cache map[string]map[string]string
}

// New checks that dir contains ranked lineages and returns a TaxDump
// reading them.
func New(dir string) (gnblob.TaxDump, error) {
	path := filepath.Join(dir, LineageFile)
	exists, isDir := iofs.Exists(path)
	if !exists || isDir {
		return nil, ReadError(path, os.ErrNotExist)
	}

	cfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Botanical))
	res := &taxdump{
		path:   path,
		parser: gnparser.New(cfg),
		cache:  make(map[string]map[string]string),
	}
	return res, nil
}

// Ranks returns the taxdump name of a taxon under the "name" key, its
// canonical form under "canonical" and names of its ancestors under their
// ranks. Empty ranks are omitted, as is a canonical form that cannot be
// parsed.
func (t *taxdump) Ranks(taxID string) (map[string]string, error) {
	taxID = strings.TrimSpace(taxID)
	t.mu.Lock()
	defer t.mu.Unlock()
	if res, ok := t.cache[taxID]; ok {
		return res, nil
	}

	row, err := t.find(taxID)
	if err != nil {
		return nil, err
	}

	res := map[string]string{"name": row[1]}
	if can := t.canonical(row[1]); can != "" {
		res["canonical"] = can
	}
	for i, rank := range ranks {
		if i+2 >= len(row) || row[i+2] == "" {
			continue
		}
		res[rank] = row[i+2]
	}
	t.cache[taxID] = res
	return res, nil
}

func (t *taxdump) find(taxID string) ([]string, error) {
	f, err := os.Open(t.path)
	if err != nil {
		return nil, ReadError(t.path, err)
	}
	defer f.Close()

	prefix := taxID + "\t|"
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		return splitRow(line), nil
	}
	if err = sc.Err(); err != nil {
		return nil, ReadError(t.path, err)
	}
	return nil, TaxIDError(taxID)
}

func (t *taxdump) canonical(name string) string {
	parsed := t.parser.ParseName(name)
	if !parsed.Parsed || parsed.Canonical == nil {
		return ""
	}
	return parsed.Canonical.Simple
}

// splitRow splits a "\t|\t" delimited row.
func splitRow(line string) []string {
	line = strings.TrimSuffix(line, "\t|")
	res := strings.Split(line, "\t|\t")
	for i := range res {
		res[i] = strings.TrimSpace(res[i])
	}
	return res
}
