// Package ioadd implements gnblob.Adder. It runs input kinds in their
// declared order, resolves fields each kind depends on, registers parsed
// fields in the dataset metadata and writes field units to the store.
package ioadd

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnblob/internal/iofs"
	"github.com/gnames/gnblob/internal/ioparse"
	"github.com/gnames/gnblob/internal/iotaxdump"
	"github.com/gnames/gnblob/pkg/config"
	"github.com/gnames/gnblob/pkg/gnblob"
	"github.com/gnames/gnblob/pkg/meta"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
)

// TaxDumpLoader opens taxonomy data found in a directory.
type TaxDumpLoader func(dir string) (gnblob.TaxDump, error)

// Option modifies the adder during construction.
type Option func(*adder)

// OptParsers registers parsers of input kinds.
func OptParsers(parsers ...gnblob.Parser) Option {
	return func(a *adder) {
		for _, v := range parsers {
			a.parsers[v.Kind()] = v
		}
	}
}

// OptTaxDumpLoader replaces the loader of NCBI taxdump data.
func OptTaxDumpLoader(fn TaxDumpLoader) Option {
	return func(a *adder) {
		if fn != nil {
			a.loadTaxDump = fn
		}
	}
}

type adder struct {
	cfg         *config.Config
	store       gnblob.Store
	parsers     map[gnblob.Kind]gnblob.Parser
	loadTaxDump TaxDumpLoader
	taxdump     gnblob.TaxDump
}

// New creates an Adder that works on the BlobDir of the store.
func New(
	cfg *config.Config,
	store gnblob.Store,
	opts ...Option,
) gnblob.Adder {
	res := &adder{
		cfg:     cfg,
		store:   store,
		parsers: make(map[gnblob.Kind]gnblob.Parser),
		loadTaxDump: func(dir string) (gnblob.TaxDump, error) {
			return iotaxdump.New(dir)
		},
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Add runs the ingestion request.
func (a *adder) Add(ctx context.Context, req gnblob.Request) error {
	startTime := time.Now()

	if err := a.checkKinds(req); err != nil {
		return err
	}

	m, err := a.loadMeta(req)
	if err != nil {
		return err
	}

	deps := gnblob.NewDeps()
	var total int
	for _, k := range req.Kinds() {
		select {
		case <-ctx.Done():
			return CancelledError(ctx.Err())
		default:
		}

		kindStart := time.Now()
		n, err := a.processKind(ctx, k, req, deps, m)
		if err != nil {
			return err
		}
		total += n
		slog.Info("Input kind processed",
			"kind", k,
			"fields", n,
			"duration", gnfmt.TimeString(time.Since(kindStart).Seconds()),
		)
	}

	if err = a.addLinks(req.Links, deps, m); err != nil {
		return err
	}
	if err = a.addKeys(req.Keys, m); err != nil {
		return err
	}
	if err = a.addTaxID(req.TaxID, m); err != nil {
		return err
	}

	if err = a.store.WriteMeta(m); err != nil {
		return err
	}

	dur := gnfmt.TimeString(time.Since(startTime).Seconds())
	slog.Info("BlobDir updated",
		"dir", a.store.Dir(),
		"fields", total,
		"duration", dur,
	)
	gn.Info("Added <em>%s</em> fields to <em>%s</em> in %s",
		humanize.Comma(int64(total)), a.store.Dir(), dur)
	return nil
}

// checkKinds rejects kinds that are not declared or have no parser,
// before any work is done.
func (a *adder) checkKinds(req gnblob.Request) error {
	var unknown []string
	for _, k := range slices.Sorted(maps.Keys(req.Inputs)) {
		if len(req.Inputs[k]) == 0 {
			continue
		}
		_, declared := gnblob.Lookup(k)
		_, hasParser := a.parsers[k]
		if !declared || !hasParser {
			unknown = append(unknown, string(k))
		}
	}
	if len(unknown) > 0 {
		return UnknownKindError(unknown)
	}
	return nil
}

// loadMeta reads dataset metadata or starts new one, then applies
// metadata given with the request.
func (a *adder) loadMeta(req gnblob.Request) (*meta.Meta, error) {
	dir := a.store.Dir()
	create, replace := a.cfg.Add.Create, a.cfg.Add.Replace
	exists := a.store.HasMeta()

	var m *meta.Meta
	var err error
	switch {
	case exists && create && !replace:
		return nil, MetaExistsError(dir)
	case exists && !create:
		if m, err = a.store.ReadMeta(); err != nil {
			return nil, err
		}
	case !exists && !create:
		return nil, MetaMissingError(dir)
	default:
		if err = iofs.EnsureBlobDir(dir); err != nil {
			return nil, err
		}
		name := filepath.Base(filepath.Clean(dir))
		m = meta.New(gnuuid.New(name).String(), name)
		slog.Info("Creating new BlobDir", "dir", dir, "id", m.ID)
	}

	if req.MetaFile != "" {
		data, err := ioparse.LoadMeta(req.MetaFile)
		if err != nil {
			return nil, err
		}
		m.Merge(data)
	}
	if fasta := req.Inputs[gnblob.KindFasta]; len(fasta) > 0 {
		m.SetAssemblyFile(fasta[0])
	}
	return m, nil
}

// params adds run settings to parser parameters.
func (a *adder) params(p gnblob.Params) gnblob.Params {
	res := maps.Clone(p)
	if res == nil {
		res = make(gnblob.Params)
	}
	if _, ok := res["threads"]; !ok {
		res["threads"] = a.cfg.JobsNumber
	}
	res["replace"] = a.cfg.Add.Replace
	return res
}

func (a *adder) jobs() int {
	return max(a.cfg.JobsNumber, 1)
}

func plural(n int, s string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, s)
	}
	return fmt.Sprintf("%d %ss", n, s)
}
