package ioparse

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// LoadMeta reads dataset metadata from a YAML file. An empty path gives
// an empty map. The file may be gzipped.
func LoadMeta(path string) (map[string]any, error) {
	res := make(map[string]any)
	if path == "" {
		return res, nil
	}

	in, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	bs, err := io.ReadAll(in)
	if err != nil {
		return nil, InputError(path, err)
	}

	var doc any
	if err = yaml.Unmarshal(bs, &doc); err != nil {
		return nil, MetaYAMLError(path, err)
	}
	if doc == nil {
		return res, nil
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, MetaYAMLError(path,
			fmt.Errorf("top level is %T, not a mapping", doc))
	}
	return m, nil
}
