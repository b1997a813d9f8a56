package field

import (
	"encoding/json"
	"fmt"
)

// Payload is the storage representation of a field. Values are always
// present. Keys are present only for kinds that encode categories,
// headers only for composite records and CategorySlot only if a slot is
// designated.
type Payload struct {
	Values       []any    `json:"values"`
	Keys         []any    `json:"keys"`
	Headers      []string `json:"headers"`
	CategorySlot *int     `json:"category_slot"`
}

// wirePayload keeps empty, but present, keys in the JSON output.
type wirePayload struct {
	Values       []any     `json:"values"`
	Keys         *[]any    `json:"keys,omitempty"`
	Headers      *[]string `json:"headers,omitempty"`
	CategorySlot *int      `json:"category_slot,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (p Payload) MarshalJSON() ([]byte, error) {
	w := wirePayload{Values: p.Values, CategorySlot: p.CategorySlot}
	if w.Values == nil {
		w.Values = []any{}
	}
	if p.Keys != nil {
		w.Keys = &p.Keys
	}
	if p.Headers != nil {
		w.Headers = &p.Headers
	}
	return json.Marshal(w)
}

// Decode rebuilds a field of the given kind from its payload.
// An array payload whose rows are lists of records becomes a MultiArray.
func Decode(id string, kind Kind, p Payload, opts ...Option) (Field, error) {
	var res Field
	var err error

	switch kind {
	case IdentifierKind:
		names := make([]string, len(p.Values))
		for i, v := range p.Values {
			s, ok := v.(string)
			if !ok {
				err = fmt.Errorf("identifier %v at position %d is not a string", v, i)
				return nil, DecodeError(id, kind, err)
			}
			names[i] = s
		}
		res, err = NewIdentifier(id, names, opts...)
	case VariableKind:
		res, err = NewVariable(id, p.Values, opts...)
	case CategoryKind:
		if p.Keys != nil {
			opts = append(opts, OptKeys(p.Keys))
		}
		res, err = NewCategory(id, p.Values, opts...)
	case ArrayKind:
		res, err = decodeArray(id, p, opts)
	default:
		res, err = NewGeneric(id, p.Values, opts...)
	}

	if err != nil {
		return nil, DecodeError(id, kind, err)
	}
	return res, nil
}

func decodeArray(id string, p Payload, opts []Option) (Field, error) {
	if p.Keys != nil {
		opts = append(opts, OptKeys(p.Keys))
	}
	if len(p.Headers) > 0 {
		opts = append(opts, OptHeaders(p.Headers...))
	}
	if p.CategorySlot != nil {
		opts = append(opts, OptCategorySlot(*p.CategorySlot))
	}

	if isMulti(p) {
		rows := make([][][]any, len(p.Values))
		for i, v := range p.Values {
			list, ok := v.([]any)
			if !ok {
				return nil, fmt.Errorf("row %d is not a list", i)
			}
			rows[i] = make([][]any, len(list))
			for j := range list {
				rec, ok := list[j].([]any)
				if !ok {
					return nil, fmt.Errorf("row %d record %d is not a list", i, j)
				}
				rows[i][j] = rec
			}
		}
		return NewMultiArray(id, rows, opts...)
	}

	recs := make([][]any, len(p.Values))
	for i, v := range p.Values {
		rec, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("record %d is not a list", i)
		}
		recs[i] = rec
	}
	return NewArray(id, recs, opts...)
}

// isMulti decides by the first non-empty row. If all rows are empty
// lists, a designated category slot means the rows are lists of records.
func isMulti(p Payload) bool {
	for _, v := range p.Values {
		row, ok := v.([]any)
		if !ok {
			return false
		}
		if len(row) == 0 {
			continue
		}
		_, ok = row[0].([]any)
		return ok
	}
	return len(p.Values) > 0 && p.CategorySlot != nil
}
