package gnblob

import (
	"fmt"
	"strconv"
	"strings"
)

// Request describes one ingestion run.
type Request struct {
	// Inputs are input files per kind.
	Inputs map[Kind][]string

	// Params are passed to parsers as they are.
	Params Params

	// MetaFile is a YAML document with dataset metadata.
	MetaFile string

	// Links are "path=URL" pairs.
	Links []string

	// Keys are "path=value" pairs.
	Keys []string

	// TaxID adds ranks of the taxon to the dataset metadata.
	TaxID string
}

// Kinds returns requested kinds in processing order.
func (r Request) Kinds() []Kind {
	var res []Kind
	for _, v := range declarations {
		if len(r.Inputs[v.Kind]) > 0 {
			res = append(res, v.Kind)
		}
	}
	return res
}

// Pair is a parsed "path=value" argument.
type Pair struct {
	Path  string
	Value string
}

// ParsePair splits a "path=value" argument on the first '='.
func ParsePair(s string) (Pair, error) {
	path, val, ok := strings.Cut(s, "=")
	path = strings.TrimSpace(path)
	if !ok || path == "" {
		return Pair{}, fmt.Errorf("%q is not a path=value pair", s)
	}
	return Pair{Path: path, Value: strings.TrimSpace(val)}, nil
}

// Params are parser settings, for example "threads", "text-cols" or
// "text-header".
type Params map[string]any

// String returns a string parameter or def.
func (p Params) String(key, def string) string {
	v, ok := p[key]
	if !ok {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns an integer parameter or def.
func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// Bool returns a boolean parameter, absent parameter is false.
func (p Params) Bool(key string) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}
