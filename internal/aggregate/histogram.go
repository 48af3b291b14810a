package aggregate

import (
	"bytes"
	"encoding/json"
)

// Histogram counts occurrences over a closed, ordered category set. Every
// category is present from the start with a zero count. Values outside the
// set never get a bucket; they are tallied in Unrecognized instead.
type Histogram struct {
	keys         []string
	counts       map[string]int
	Unrecognized int
}

// NewHistogram returns an empty histogram over keys, kept in the given order.
func NewHistogram(keys []string) *Histogram {
	h := &Histogram{
		keys:   append([]string(nil), keys...),
		counts: make(map[string]int, len(keys)),
	}
	for _, k := range keys {
		h.counts[k] = 0
	}
	return h
}

// Add increments key's bucket. It reports false, and only bumps
// Unrecognized, when key is not one of the categories. Matching is exact
// and case-sensitive.
func (h *Histogram) Add(key string) bool {
	if _, ok := h.counts[key]; !ok {
		h.Unrecognized++
		return false
	}
	h.counts[key]++
	return true
}

// Keys returns the categories in declared order.
func (h *Histogram) Keys() []string {
	return append([]string(nil), h.keys...)
}

// Count returns the count for key, zero for unknown keys.
func (h *Histogram) Count(key string) int {
	return h.counts[key]
}

// Counts returns the counts aligned with Keys.
func (h *Histogram) Counts() []int {
	out := make([]int, len(h.keys))
	for i, k := range h.keys {
		out[i] = h.counts[k]
	}
	return out
}

// Total is the sum over the known categories; Unrecognized is not included.
func (h *Histogram) Total() int {
	n := 0
	for _, c := range h.counts {
		n += c
	}
	return n
}

// MarshalJSON writes the histogram as an object whose members follow the
// declared category order, so chart legends keep their order on the wire.
func (h *Histogram) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range h.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(h.counts[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
