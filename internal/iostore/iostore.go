// Package iostore implements gnblob.Store on a BlobDir directory. Every
// field is a JSON unit <id>.json, dataset metadata is meta.json. With
// compression on, units are written gzipped as <id>.json.gz. Both forms
// are readable regardless of the setting.
package iostore

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gnames/gnblob/pkg/field"
	"github.com/gnames/gnblob/pkg/gnblob"
	"github.com/gnames/gnblob/pkg/meta"
	"github.com/gnames/gnfmt"
	"github.com/klauspost/compress/gzip"
)

// MetaID is the name of the dataset metadata unit.
const MetaID = "meta"

const (
	plainExt = ".json"
	gzipExt  = ".json.gz"
)

type store struct {
	dir      string
	compress bool
	enc      gnfmt.Encoder
}

// New creates a Store for the BlobDir at dir.
func New(dir string, compress bool) gnblob.Store {
	return &store{dir: dir, compress: compress, enc: gnfmt.GNjson{}}
}

func (s *store) Dir() string {
	return s.dir
}

func (s *store) HasMeta() bool {
	_, err := s.unitPath(MetaID)
	return err == nil
}

func (s *store) ReadMeta() (*meta.Meta, error) {
	bs, err := s.read(MetaID)
	if err != nil {
		return nil, err
	}
	var res meta.Meta
	if err = s.enc.Decode(bs, &res); err != nil {
		return nil, DecodeError(MetaID, err)
	}
	return &res, nil
}

func (s *store) WriteMeta(m *meta.Meta) error {
	bs, err := s.enc.Encode(m)
	if err != nil {
		return EncodeError(MetaID, err)
	}
	return s.write(MetaID, bs)
}

func (s *store) ReadField(
	id string,
	kind field.Kind,
	opts ...field.Option,
) (field.Field, error) {
	bs, err := s.read(id)
	if err != nil {
		return nil, err
	}
	var p field.Payload
	if err = s.enc.Decode(bs, &p); err != nil {
		return nil, DecodeError(id, err)
	}
	res, err := field.Decode(id, kind, p, opts...)
	if err != nil {
		return nil, DecodeError(id, err)
	}
	return res, nil
}

func (s *store) WriteField(f field.Field) error {
	bs, err := s.enc.Encode(f.Payload())
	if err != nil {
		return EncodeError(f.ID(), err)
	}
	return s.write(f.ID(), bs)
}

// unitPath finds an existing unit, preferring the form that would be
// written with the current settings.
func (s *store) unitPath(id string) (string, error) {
	exts := []string{plainExt, gzipExt}
	if s.compress {
		exts = []string{gzipExt, plainExt}
	}
	for _, ext := range exts {
		path := filepath.Join(s.dir, id+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", NotFoundError(filepath.Join(s.dir, id+plainExt))
}

func (s *store) read(id string) ([]byte, error) {
	path, err := s.unitPath(id)
	if err != nil {
		return nil, err
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	if filepath.Ext(path) != ".gz" {
		return bs, nil
	}

	r, err := gzip.NewReader(bytes.NewReader(bs))
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer r.Close()
	res, err := io.ReadAll(r)
	if err != nil {
		return nil, ReadError(path, err)
	}
	return res, nil
}

// write replaces the unit through a temporary file, and removes the
// unit in the other form, so only one version of a unit exists.
func (s *store) write(id string, bs []byte) error {
	ext, other := plainExt, gzipExt
	if s.compress {
		ext, other = gzipExt, plainExt
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(bs); err != nil {
			return WriteError(id+ext, err)
		}
		if err := w.Close(); err != nil {
			return WriteError(id+ext, err)
		}
		bs = buf.Bytes()
	}

	path := filepath.Join(s.dir, id+ext)
	tmp, err := os.CreateTemp(s.dir, "."+id+"-*")
	if err != nil {
		return WriteError(path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err = tmp.Write(bs); err != nil {
		tmp.Close()
		return WriteError(path, err)
	}
	if err = tmp.Close(); err != nil {
		return WriteError(path, err)
	}
	if err = os.Chmod(tmpPath, 0644); err != nil {
		return WriteError(path, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return WriteError(path, err)
	}

	err = os.Remove(filepath.Join(s.dir, id+other))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return WriteError(path, err)
	}
	return nil
}
