package meta

import (
	"fmt"
	"maps"
	"net/url"
	"strings"
)

// AddLink attaches a URL to a dataset attribute path, for example
// "taxon.ENA" or "record.NCBI". A URL may contain placeholders such as
// {taxid} or {id}. Only the syntax of the URL is checked. A link with the
// same path replaces the old one.
func (m *Meta) AddLink(path, link string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("link path cannot be empty")
	}
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("cannot parse link %q: %w", link, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("link %q needs scheme and host", link)
	}

	for i := range m.Links {
		if m.Links[i].Path == path {
			m.Links[i].URL = link
			return nil
		}
	}
	m.Links = append(m.Links, Link{Path: path, URL: link})
	return nil
}

// SetKey sets a value at a dotted path. The first segment "assembly" or
// "taxon" addresses those attributes, "name" and "record_type" set the
// dataset attributes, anything else is stored under Keys.
//
// Without replace an existing value is kept and false is returned.
func (m *Meta) SetKey(path string, value any, replace bool) (bool, error) {
	parts := strings.Split(strings.TrimSpace(path), ".")
	for _, v := range parts {
		if v == "" {
			return false, fmt.Errorf("malformed key path %q", path)
		}
	}

	switch parts[0] {
	case "name", "record_type":
		if len(parts) > 1 {
			return false, fmt.Errorf("%q cannot have nested keys", parts[0])
		}
		s := fmt.Sprint(value)
		target := &m.Name
		if parts[0] == "record_type" {
			target = &m.RecordType
		}
		if *target != "" && !replace {
			return false, nil
		}
		*target = s
		return true, nil
	case "assembly":
		if len(parts) == 1 {
			return false, fmt.Errorf("%q needs a nested key", parts[0])
		}
		if m.Assembly == nil {
			m.Assembly = make(map[string]any)
		}
		return setNested(m.Assembly, parts[1:], value, replace)
	case "taxon":
		if len(parts) == 1 {
			return false, fmt.Errorf("%q needs a nested key", parts[0])
		}
		if m.Taxon == nil {
			m.Taxon = make(map[string]any)
		}
		return setNested(m.Taxon, parts[1:], value, replace)
	default:
		if m.Keys == nil {
			m.Keys = make(map[string]any)
		}
		return setNested(m.Keys, parts, value, replace)
	}
}

// SetTaxon records a taxon ID with its named ranks.
func (m *Meta) SetTaxon(taxID string, ranks map[string]string) {
	if m.Taxon == nil {
		m.Taxon = make(map[string]any)
	}
	m.Taxon["taxid"] = taxID
	for k, v := range ranks {
		m.Taxon[k] = v
	}
}

// Merge overlays dataset attributes loaded from a metadata document.
// Known top level keys update the corresponding attributes, the rest
// goes to Keys. Nested maps are merged key by key.
func (m *Meta) Merge(data map[string]any) {
	for k, v := range data {
		switch k {
		case "id":
			m.ID = fmt.Sprint(v)
		case "name":
			m.Name = fmt.Sprint(v)
		case "record_type":
			m.RecordType = fmt.Sprint(v)
		case "assembly":
			m.Assembly = mergeMap(m.Assembly, v)
		case "taxon":
			m.Taxon = mergeMap(m.Taxon, v)
		default:
			if m.Keys == nil {
				m.Keys = make(map[string]any)
			}
			if sub, ok := v.(map[string]any); ok {
				m.Keys[k] = mergeMap(asMap(m.Keys[k]), sub)
				continue
			}
			m.Keys[k] = v
		}
	}
}

func setNested(
	target map[string]any,
	path []string,
	value any,
	replace bool,
) (bool, error) {
	cur := target
	for _, k := range path[:len(path)-1] {
		next, ok := cur[k]
		if !ok {
			sub := make(map[string]any)
			cur[k] = sub
			cur = sub
			continue
		}
		sub, ok := next.(map[string]any)
		if !ok {
			// a scalar is in the way
			if !replace {
				return false, nil
			}
			sub = make(map[string]any)
			cur[k] = sub
		}
		cur = sub
	}

	last := path[len(path)-1]
	if _, ok := cur[last]; ok && !replace {
		return false, nil
	}
	cur[last] = value
	return true, nil
}

func mergeMap(dst map[string]any, src any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	sub, ok := src.(map[string]any)
	if !ok {
		return dst
	}
	for k, v := range sub {
		if vm, ok := v.(map[string]any); ok {
			dst[k] = mergeMap(asMap(dst[k]), vm)
			continue
		}
		dst[k] = v
	}
	return dst
}

func asMap(v any) map[string]any {
	res, _ := v.(map[string]any)
	if res == nil {
		return make(map[string]any)
	}
	return maps.Clone(res)
}
