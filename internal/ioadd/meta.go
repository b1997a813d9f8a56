package ioadd

import (
	"log/slog"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnblob/pkg/gnblob"
	"github.com/gnames/gnblob/pkg/meta"
	"gopkg.in/yaml.v3"
)

// addLinks attaches "path=URL" links. Record links point to individual
// records and need identifiers in the BlobDir.
func (a *adder) addLinks(links []string, deps *gnblob.Deps, m *meta.Meta) error {
	for _, s := range links {
		pair, err := gnblob.ParsePair(s)
		if err != nil {
			return LinkError(s, err)
		}

		if strings.HasPrefix(pair.Path, "record.") {
			err = a.resolve("identifiers", deps, m)
			if err != nil {
				return LinkError(s, err)
			}
		}

		if err = m.AddLink(pair.Path, pair.Value); err != nil {
			return LinkError(s, err)
		}
		slog.Info("Link added", "path", pair.Path, "url", pair.Value)
	}
	return nil
}

// addKeys sets "path=value" keys. A value is read as a YAML scalar, so
// numbers and booleans keep their type.
func (a *adder) addKeys(keys []string, m *meta.Meta) error {
	for _, s := range keys {
		pair, err := gnblob.ParsePair(s)
		if err != nil {
			return KeyError(s, err)
		}

		ok, err := m.SetKey(pair.Path, scalar(pair.Value), a.cfg.Add.Replace)
		if err != nil {
			return KeyError(s, err)
		}
		if !ok {
			gn.Warn("Key <em>%s</em> already has a value, not overwriting. "+
				"Use <em>--replace</em> to overwrite it.", pair.Path)
			slog.Warn("Key already has a value, skipping", "key", pair.Path)
		}
	}
	return nil
}

// addTaxID adds the ranks of the taxon, loading taxdump data on the
// first use.
func (a *adder) addTaxID(taxID string, m *meta.Meta) error {
	taxID = strings.TrimSpace(taxID)
	if taxID == "" {
		return nil
	}

	if a.taxdump == nil {
		td, err := a.loadTaxDump(a.cfg.TaxdumpDir)
		if err != nil {
			return TaxIDError(taxID, err)
		}
		a.taxdump = td
	}

	ranks, err := a.taxdump.Ranks(taxID)
	if err != nil {
		return TaxIDError(taxID, err)
	}
	m.SetTaxon(taxID, ranks)
	return nil
}

func scalar(s string) any {
	var res any
	if err := yaml.Unmarshal([]byte(s), &res); err != nil {
		return s
	}
	switch res.(type) {
	case int, float64, bool:
		return res
	}
	return s
}
