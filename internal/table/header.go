package table

import (
	"strings"

	"github.com/vvka-141/imgpick/pkg/imgpick"
)

// Column is a resolved header: its original spelling and its position.
type Column struct {
	Name  string
	Index int
}

// HeaderIndex answers case-insensitive column lookups over a header row.
type HeaderIndex struct {
	headers    []string
	byKey      map[string]int
	collisions map[string][]string
}

// NewHeaderIndex builds the lookup table for headers.
// Keys are lowercased and trimmed; the first header in order owns a key.
func NewHeaderIndex(headers []string) *HeaderIndex {
	h := &HeaderIndex{
		headers: append([]string(nil), headers...),
		byKey:   make(map[string]int, len(headers)),
	}
	for i, name := range headers {
		key := normalizeKey(name)
		if first, ok := h.byKey[key]; ok {
			if h.collisions == nil {
				h.collisions = make(map[string][]string)
			}
			if _, seen := h.collisions[key]; !seen {
				h.collisions[key] = []string{headers[first]}
			}
			h.collisions[key] = append(h.collisions[key], name)
			continue
		}
		h.byKey[key] = i
	}
	return h
}

// Resolve returns the canonical column for a requested name.
// The request is matched after lowercasing and trimming both sides.
func (h *HeaderIndex) Resolve(requested string) (Column, error) {
	key := normalizeKey(requested)
	if key != "" {
		if i, ok := h.byKey[key]; ok {
			return Column{Name: h.headers[i], Index: i}, nil
		}
	}
	return Column{}, &imgpick.ColumnNotFoundError{
		Requested: requested,
		Headers:   append([]string(nil), h.headers...),
	}
}

// Collisions returns the header groups that share a normalized key, keyed by
// that key, each group in header order. Resolve always picks the first of a group.
func (h *HeaderIndex) Collisions() map[string][]string {
	out := make(map[string][]string, len(h.collisions))
	for k, v := range h.collisions {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Headers returns the header row as read.
func (h *HeaderIndex) Headers() []string {
	return append([]string(nil), h.headers...)
}

func normalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
