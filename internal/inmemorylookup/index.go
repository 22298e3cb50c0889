package inmemorylookup

import (
	"cmp"
	"maps"
	"reflect"
	"slices"
)

// entry is one indexed object together with the sequence number of the add
// that placed it.
type entry struct {
	value any
	seq   uint64
}

// valueIndex is the last-wins single-value index. It is not synchronized;
// the owning registry holds the lock.
type valueIndex struct {
	entries map[reflect.Type]entry
	seq     uint64
}

func newValueIndex() valueIndex {
	return valueIndex{entries: make(map[reflect.Type]entry)}
}

// next returns a fresh, strictly increasing sequence number.
func (ix *valueIndex) next() uint64 {
	ix.seq++
	return ix.seq
}

func (ix *valueIndex) put(keys []reflect.Type, e entry) {
	for _, k := range keys {
		ix.entries[k] = e
	}
}

func (ix *valueIndex) get(t reflect.Type) any {
	return ix.entries[t].value
}

// drop deletes every key whose current value is obj.
func (ix *valueIndex) drop(obj any) bool {
	removed := false
	for k, e := range ix.entries {
		if e.value == obj {
			delete(ix.entries, k)
			removed = true
		}
	}
	return removed
}

// members returns the distinct indexed objects ordered by their latest add.
func (ix *valueIndex) members() []entry {
	latest := make(map[any]uint64, len(ix.entries))
	for _, e := range ix.entries {
		if seq, seen := latest[e.value]; !seen || e.seq > seq {
			latest[e.value] = e.seq
		}
	}
	out := make([]entry, 0, len(latest))
	for v, seq := range latest {
		out = append(out, entry{value: v, seq: seq})
	}
	slices.SortFunc(out, func(a, b entry) int { return cmp.Compare(a.seq, b.seq) })
	return out
}

func (ix *valueIndex) appendDistinct(dst []any) []any {
	for _, m := range ix.members() {
		dst = append(dst, m.value)
	}
	return dst
}

// reset empties the index but keeps the sequence counter monotonic.
func (ix *valueIndex) reset() {
	clear(ix.entries)
}

func (ix *valueIndex) clone() valueIndex {
	return valueIndex{entries: maps.Clone(ix.entries), seq: ix.seq}
}
