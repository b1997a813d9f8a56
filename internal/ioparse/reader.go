// Package ioparse provides parsers of input files that produce BlobDir
// fields, and a loader of YAML dataset metadata.
package ioparse

import (
	"bufio"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// maxLine is the longest line accepted by the scanners, long enough for
// unwrapped chromosome-scale FASTA sequences.
const maxLine = 256 << 20

type input struct {
	f  *os.File
	gz *gzip.Reader
	io.Reader
}

func (in *input) Close() error {
	if in.gz != nil {
		in.gz.Close()
	}
	return in.f.Close()
}

// openInput opens a plain or gzipped file. Compression is detected by
// the gzip magic number, not by the file extension.
func openInput(path string) (*input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, InputError(path, err)
	}

	br := bufio.NewReader(f)
	res := &input{f: f, Reader: br}
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, InputError(path, err)
		}
		res.gz = gz
		res.Reader = gz
	}
	return res, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	res := bufio.NewScanner(r)
	res.Buffer(make([]byte, 0, 64*1024), maxLine)
	return res
}
