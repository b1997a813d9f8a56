package ioadd

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gn"
	"github.com/gnames/gnblob/pkg/field"
	"github.com/gnames/gnblob/pkg/gnblob"
	"github.com/gnames/gnblob/pkg/meta"
	"golang.org/x/sync/errgroup"
)

// processKind parses inputs of one kind, registers produced fields and
// writes them. It returns the number of committed fields.
func (a *adder) processKind(
	ctx context.Context,
	k gnblob.Kind,
	req gnblob.Request,
	deps *gnblob.Deps,
	m *meta.Meta,
) (int, error) {
	decl, _ := gnblob.Lookup(k)
	p := a.parsers[k]

	for _, id := range decl.Depends {
		err := a.resolve(id, deps, m)
		if gnblob.IsNotFound(err) {
			return 0, MissingDependencyError(k, id)
		}
		if err != nil {
			return 0, err
		}
	}
	for _, id := range decl.Optional {
		err := a.resolve(id, deps, m)
		if err != nil && !gnblob.IsNotFound(err) {
			return 0, err
		}
	}

	fields, err := p.Parse(ctx, req.Inputs[k], deps, m, a.params(req.Params))
	if err != nil {
		return 0, ParseError(k, err)
	}

	committed, skipped := a.register(fields, p.Parents(), deps, m)
	if err = a.persist(ctx, k, committed); err != nil {
		return 0, err
	}

	if skipped > 0 {
		gn.Info("<em>%s</em>: added %s, skipped %d",
			k, plural(len(committed), "field"), skipped)
	} else {
		gn.Info("<em>%s</em>: added %s", k, plural(len(committed), "field"))
	}
	return len(committed), nil
}

// resolve makes sure the field is in deps, reading it from the store if
// this run did not produce it. A field that is not registered in the
// metadata, or has no unit, gives an error wrapping gnblob.ErrNotFound.
func (a *adder) resolve(id string, deps *gnblob.Deps, m *meta.Meta) error {
	if deps.Has(id) {
		return nil
	}

	fm, ok := m.FieldMeta(id)
	if !ok {
		return fmt.Errorf("field %s is not registered: %w", id, gnblob.ErrNotFound)
	}

	var opts []field.Option
	if len(fm.Attrs) > 0 {
		opts = append(opts, field.OptMeta(fm.Attrs))
	}
	if fm.Range != nil {
		opts = append(opts, field.OptRange(fm.Range[0], fm.Range[1]))
	}

	f, err := a.store.ReadField(id, field.NewKind(fm.Type), opts...)
	if err != nil {
		return err
	}
	deps.Add(f)
	slog.Debug("Dependency read from BlobDir", "field", id)
	return nil
}

// register applies the commit policy to parsed fields in their order.
// A field that is already registered is skipped unless replace is set.
// A field whose length differs from the number of records is skipped.
// Ranges of lineage entries are merged with registered ones. If the same
// ID is committed twice, only the last field is returned for writing.
func (a *adder) register(
	fields []field.Field,
	kindParents []meta.Parent,
	deps *gnblob.Deps,
	m *meta.Meta,
) (committed []field.Field, skipped int) {
	pos := make(map[string]int)
	for _, f := range fields {
		ids, isIDs := f.(*field.Identifier)
		if !isIDs && m.Records > 0 && f.Len() != m.Records {
			gn.Warn("Field <em>%s</em> has %d values, dataset has %d records, "+
				"not adding it.", f.ID(), f.Len(), m.Records)
			slog.Warn("Field length does not match records, skipping",
				"field", f.ID(), "values", f.Len(), "records", m.Records)
			skipped++
			continue
		}

		if !a.cfg.Add.Replace && m.HasField(f.ID()) {
			gn.Warn("Field <em>%s</em> is already present in dataset, "+
				"not overwriting. Use <em>--replace</em> to overwrite it.", f.ID())
			slog.Warn("Field is already present, skipping", "field", f.ID())
			skipped++
			continue
		}

		parents := slices.Concat(kindParents, f.Parents())
		m.AddField(mergeRanges(parents, m), f.FieldMeta())
		if isIDs {
			m.SetRecords(ids.Len())
		}
		deps.Add(f)

		if i, ok := pos[f.ID()]; ok {
			slog.Debug("Field replaced within one run", "field", f.ID())
			committed[i] = f
			continue
		}
		pos[f.ID()] = len(committed)
		committed = append(committed, f)
	}
	return committed, skipped
}

// mergeRanges returns copies of parents where every range covers the
// range already registered for the same entry.
func mergeRanges(parents []meta.Parent, m *meta.Meta) []meta.Parent {
	res := make([]meta.Parent, len(parents))
	for i, p := range parents {
		res[i] = p
		if p.Range == nil {
			continue
		}
		rng := *p.Range
		if fm, ok := m.FieldMeta(p.ID); ok && fm.Range != nil {
			rng = meta.MergeRange(rng, *fm.Range)
		}
		res[i].Range = &rng
	}
	return res
}

// persist writes field units concurrently. Metadata registration is
// done before, so the order of writes does not matter.
func (a *adder) persist(
	ctx context.Context,
	k gnblob.Kind,
	fields []field.Field,
) error {
	if len(fields) == 0 {
		return nil
	}

	var bar *pb.ProgressBar
	if len(fields) > 1 {
		bar = pb.Full.Start(len(fields))
		bar.Set("prefix", fmt.Sprintf("Writing %s fields: ", k))
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(a.jobs())
	for _, f := range fields {
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}
			if err := a.store.WriteField(f); err != nil {
				return err
			}
			if bar != nil {
				bar.Increment()
			}
			return nil
		})
	}
	return g.Wait()
}
