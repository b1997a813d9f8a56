package ioparse

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/gnblob/pkg/field"
	"github.com/gnames/gnblob/pkg/gnblob"
	"github.com/gnames/gnblob/pkg/meta"
)

// Parameters of the text parser.
const (
	ParamTextCols      = "text-cols"
	ParamTextHeader    = "text-header"
	ParamTextDelimiter = "text-delimiter"
	ParamTextNoArray   = "text-no-array"
)

// column is a selected column of a text file.
type column struct {
	idx  int
	name string
}

type textTable struct {
	path    string
	columns []column
	idCol   int
	rows    map[string][][]string
	order   []string
	repeats bool
}

type text struct{}

// NewText creates a parser of delimited text files. Columns are selected
// with the "text-cols" parameter as a comma separated list of
// <column number>[=<field name>], one of them must be "identifiers".
// Numeric columns become variable fields, others become category fields.
// A file that repeats identifiers becomes one array field with a record
// list per identifier, unless "text-no-array" is set.
func NewText() gnblob.Parser {
	return text{}
}

func (text) Kind() gnblob.Kind {
	return gnblob.KindText
}

func (text) Parents() []meta.Parent {
	return nil
}

func (p text) Parse(
	ctx context.Context,
	inputs []string,
	deps *gnblob.Deps,
	_ *meta.Meta,
	params gnblob.Params,
) ([]field.Field, error) {
	ids, ok := deps.Identifiers()
	if !ok {
		return nil, fmt.Errorf("identifiers field is required: %w",
			gnblob.ErrNotFound)
	}

	var res []field.Field
	for _, path := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tbl, err := p.read(path, params)
		if err != nil {
			return nil, err
		}
		if !ids.ValidateList(tbl.order) {
			return nil, IdentifiersError(path,
				"identifiers in the file do not match existing identifiers")
		}

		var fields []field.Field
		if tbl.repeats && !params.Bool(ParamTextNoArray) {
			fields, err = tbl.arrayField(ids)
		} else {
			fields, err = tbl.columnFields(ids)
		}
		if err != nil {
			return nil, err
		}
		res = append(res, fields...)
	}
	return res, nil
}

func (text) read(path string, params gnblob.Params) (*textTable, error) {
	in, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	split := splitter(params.String(ParamTextDelimiter, ""))
	spec := params.String(ParamTextCols, "")

	res := &textTable{path: path, rows: make(map[string][][]string)}
	sc := newScanner(in)
	var header []string
	if params.Bool(ParamTextHeader) && sc.Scan() {
		header = split(sc.Text())
	}
	if res.columns, res.idCol, err = parseCols(spec, header); err != nil {
		return nil, err
	}

	var lineNum int
	for sc.Scan() {
		lineNum++
		line := sc.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cells := split(line)
		for _, c := range res.columns {
			if c.idx >= len(cells) {
				return nil, ColumnsError(path,
					fmt.Errorf("line %d has no column %d", lineNum, c.idx+1))
			}
		}

		id := cells[res.idCol]
		row := make([]string, len(res.columns))
		for i, c := range res.columns {
			row[i] = cells[c.idx]
		}
		if _, ok := res.rows[id]; ok {
			res.repeats = true
		} else {
			res.order = append(res.order, id)
		}
		res.rows[id] = append(res.rows[id], row)
	}
	if err = sc.Err(); err != nil {
		return nil, InputError(path, err)
	}
	return res, nil
}

// parseCols reads a column list such as "1=identifiers,3=gc". Without a
// list the first column holds identifiers and all other columns named in
// the header are used.
func parseCols(spec string, header []string) ([]column, int, error) {
	var res []column
	spec = strings.TrimSpace(spec)
	if spec == "" {
		if len(header) == 0 {
			return nil, 0, ColumnsError(spec,
				fmt.Errorf("a column list or a header is required"))
		}
		res = append(res, column{idx: 0, name: "identifiers"})
		for i := 1; i < len(header); i++ {
			res = append(res, column{idx: i, name: header[i]})
		}
		return res, 0, nil
	}

	idCol := -1
	seen := make(map[string]struct{})
	for _, v := range strings.Split(spec, ",") {
		num, name, _ := strings.Cut(strings.TrimSpace(v), "=")
		idx, err := strconv.Atoi(num)
		if err != nil || idx < 1 {
			return nil, 0, ColumnsError(spec,
				fmt.Errorf("%q is not a column number", num))
		}
		idx--
		if name == "" && idx < len(header) {
			name = header[idx]
		}
		if name == "" {
			return nil, 0, ColumnsError(spec,
				fmt.Errorf("column %d has no name", idx+1))
		}
		if _, ok := seen[name]; ok {
			return nil, 0, ColumnsError(spec,
				fmt.Errorf("field %q is used twice", name))
		}
		seen[name] = struct{}{}
		if name == "identifiers" {
			idCol = idx
		}
		res = append(res, column{idx: idx, name: name})
	}
	if idCol < 0 {
		return nil, 0, ColumnsError(spec,
			fmt.Errorf("no identifiers column"))
	}
	return res, idCol, nil
}

// columnFields creates a field per column, records follow identifiers.
// Identifiers missing from the file get 0 or "None".
func (t *textTable) columnFields(ids *field.Identifier) ([]field.Field, error) {
	var res []field.Field
	for i, c := range t.columns {
		if c.name == "identifiers" {
			continue
		}

		raw := make([]string, ids.Len())
		for j, id := range ids.Strings() {
			if rows, ok := t.rows[id]; ok {
				// the last value wins when arrays are disabled
				raw[j] = rows[len(rows)-1][i]
			}
		}

		if nums, ok := numbers(raw); ok {
			f, err := field.NewVariableFloats(c.name, nums,
				field.OptRange(slices.Min(nums), slices.Max(nums)),
				field.OptMeta(map[string]any{"source": filepath.Base(t.path)}),
			)
			if err != nil {
				return nil, err
			}
			res = append(res, f)
			continue
		}

		values := make([]any, len(raw))
		for j, v := range raw {
			if v == "" {
				v = "None"
			}
			values[j] = v
		}
		f, err := field.NewCategory(c.name, values,
			field.OptMeta(map[string]any{"source": filepath.Base(t.path)}),
		)
		if err != nil {
			return nil, err
		}
		res = append(res, f)
	}
	return res, nil
}

// arrayField creates one array field named after the file. Every
// identifier gets the list of its records, the first non-numeric column
// is the category slot.
func (t *textTable) arrayField(ids *field.Identifier) ([]field.Field, error) {
	var headers []string
	var cols []int
	for i, c := range t.columns {
		if c.name == "identifiers" {
			continue
		}
		headers = append(headers, c.name)
		cols = append(cols, i)
	}

	slot := -1
	for i, col := range cols {
		raw := make([]string, 0, len(t.order))
		for _, rows := range t.rows {
			for _, row := range rows {
				raw = append(raw, row[col])
			}
		}
		if _, ok := numbers(raw); !ok {
			slot = i
			break
		}
	}

	rows := make([][][]any, ids.Len())
	for i, id := range ids.Strings() {
		recs := t.rows[id]
		rows[i] = make([][]any, len(recs))
		for j, row := range recs {
			rec := make([]any, len(cols))
			for k, col := range cols {
				rec[k] = cell(row[col], k == slot)
			}
			rows[i][j] = rec
		}
	}

	opts := []field.Option{
		field.OptHeaders(headers...),
		field.OptMeta(map[string]any{"source": filepath.Base(t.path)}),
	}
	if slot >= 0 {
		opts = append(opts, field.OptCategorySlot(slot))
	}
	f, err := field.NewMultiArray(fieldID(t.path), rows, opts...)
	if err != nil {
		return nil, err
	}
	return []field.Field{f}, nil
}

func cell(s string, isCategory bool) any {
	if isCategory {
		return s
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return s
}

// numbers converts all values to floats, empty values become 0.
func numbers(raw []string) ([]float64, bool) {
	res := make([]float64, len(raw))
	for i, v := range raw {
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		res[i] = f
	}
	return res, true
}

// fieldID makes a field ID from a file name without extensions.
func fieldID(path string) string {
	res := filepath.Base(path)
	for _, ext := range []string{".gz", ".tsv", ".csv", ".txt"} {
		res = strings.TrimSuffix(res, ext)
	}
	return res
}

func splitter(delim string) func(string) []string {
	switch delim {
	case "", "whitespace":
		return strings.Fields
	case `\t`, "tab":
		delim = "\t"
	}
	return func(s string) []string {
		res := strings.Split(s, delim)
		for i := range res {
			res[i] = strings.TrimSpace(res[i])
		}
		return res
	}
}
