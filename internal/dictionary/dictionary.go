// Package dictionary builds the shared string dictionary used by struct
// property columns (spec.md §4.6): the set of distinct non-null string
// values across all children of a struct column, in first-occurrence
// order, with each child's values replaced by an index into that set.
package dictionary

import "github.com/cespare/xxhash/v2"

// entry pairs a dictionary string with its assigned index, chained on
// collision: Builder keys its lookup table by xxHash64 of the string, and a
// single bucket can hold several strings that happen to share a hash.
type entry struct {
	value string
	index int
}

// Builder accumulates distinct strings in first-occurrence order and
// assigns each a dense index. It is used once per struct column encode and
// discarded; callers needing to encode many columns create one Builder per
// column rather than resetting and reusing it, since the dictionary itself
// becomes part of the encoded output.
type Builder struct {
	buckets map[uint64][]entry
	values  []string
}

// NewBuilder creates an empty dictionary builder.
func NewBuilder() *Builder {
	return &Builder{
		buckets: make(map[uint64][]entry),
	}
}

// Intern returns the dictionary index for value, assigning it a new index
// on first occurrence. Returns the same index for every subsequent call
// with an equal string.
func (b *Builder) Intern(value string) int {
	hash := xxhash.Sum64String(value)

	for _, e := range b.buckets[hash] {
		if e.value == value {
			return e.index
		}
	}

	index := len(b.values)
	b.values = append(b.values, value)
	b.buckets[hash] = append(b.buckets[hash], entry{value: value, index: index})

	return index
}

// Values returns the dictionary's entries in first-occurrence order. The
// slice is owned by the Builder and must not be modified.
func (b *Builder) Values() []string {
	return b.values
}

// Len returns the number of distinct strings interned so far.
func (b *Builder) Len() int {
	return len(b.values)
}
