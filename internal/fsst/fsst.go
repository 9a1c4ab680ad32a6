// Package fsst implements a symbol-table byte-string compressor in the
// shape the wire format expects for FSST-encoded string columns (spec.md
// row "Str/OptStr (FSST)"): a symbol table built once from a string
// corpus, then a per-value stream of symbol codes with a literal escape
// for bytes the table does not cover. The symbol-selection heuristic is
// not the real FSST training algorithm; spec.md treats that algorithm as
// opaque and only requires decompress(compress(b)) == b.
package fsst

import (
	"fmt"
	"sort"

	"github.com/maplibre/mlt-go/errs"
)

const (
	minSymbolLen = 2
	maxSymbolLen = 8
	maxSymbols   = 254 // code 255 is reserved for the literal escape
	escapeCode   = 0xFF
)

// Table is a trained symbol table: a small set of common byte substrings,
// each assigned a single-byte code.
type Table struct {
	symbols [][]byte
}

// Train builds a symbol table from a corpus of strings by picking the
// substrings whose frequency-weighted length saves the most bytes when
// substituted with a single code byte.
func Train(corpus []string) *Table {
	counts := make(map[string]int)

	for _, s := range corpus {
		b := []byte(s)
		for length := minSymbolLen; length <= maxSymbolLen; length++ {
			for i := 0; i+length <= len(b); i++ {
				counts[string(b[i:i+length])]++
			}
		}
	}

	type candidate struct {
		sym   string
		score int
	}

	candidates := make([]candidate, 0, len(counts))
	for sym, count := range counts {
		if count < 2 {
			continue
		}

		score := count * (len(sym) - 1)
		candidates = append(candidates, candidate{sym: sym, score: score})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}

		return candidates[i].sym < candidates[j].sym
	})

	if len(candidates) > maxSymbols {
		candidates = candidates[:maxSymbols]
	}

	symbols := make([][]byte, 0, len(candidates))
	for _, c := range candidates {
		symbols = append(symbols, []byte(c.sym))
	}

	return &Table{symbols: symbols}
}

// NewTableFromSymbols rebuilds a Table from its serialized symbol lengths
// and the concatenated symbol bytes, as stored in a Str/OptStr column's
// symbol-length stream and symbol-table bytes.
func NewTableFromSymbols(lengths []int, data []byte) (*Table, error) {
	symbols := make([][]byte, 0, len(lengths))

	offset := 0
	for _, length := range lengths {
		if length < 0 || offset+length > len(data) {
			return nil, fmt.Errorf("fsst: %w: symbol table truncated", errs.ErrTruncated)
		}

		symbols = append(symbols, data[offset:offset+length])
		offset += length
	}

	return &Table{symbols: symbols}, nil
}

// Symbols returns the table's symbols in code order (code i has Symbols()[i]).
func (t *Table) Symbols() [][]byte {
	return t.symbols
}

// SymbolLengths returns the byte length of each symbol in code order.
func (t *Table) SymbolLengths() []int {
	lengths := make([]int, len(t.symbols))
	for i, s := range t.symbols {
		lengths[i] = len(s)
	}

	return lengths
}

// SymbolBytes returns the symbols concatenated in code order.
func (t *Table) SymbolBytes() []byte {
	total := 0
	for _, s := range t.symbols {
		total += len(s)
	}

	out := make([]byte, 0, total)
	for _, s := range t.symbols {
		out = append(out, s...)
	}

	return out
}

// Compress encodes s as a sequence of symbol codes, escaping bytes not
// covered by any symbol as 0xFF followed by the literal byte.
func (t *Table) Compress(s string) []byte {
	b := []byte(s)
	out := make([]byte, 0, len(b))

	for i := 0; i < len(b); {
		code, length := t.longestMatch(b[i:])
		if length > 0 {
			out = append(out, byte(code))
			i += length

			continue
		}

		out = append(out, escapeCode, b[i])
		i++
	}

	return out
}

func (t *Table) longestMatch(b []byte) (code, length int) {
	best := -1
	bestLen := 0

	for i, sym := range t.symbols {
		if len(sym) <= bestLen || len(sym) > len(b) {
			continue
		}

		if string(b[:len(sym)]) == string(sym) {
			best = i
			bestLen = len(sym)
		}
	}

	return best, bestLen
}

// Decompress reverses Compress, reconstructing the original string.
func (t *Table) Decompress(data []byte) (string, error) {
	out := make([]byte, 0, len(data)*2)

	for i := 0; i < len(data); {
		code := data[i]
		if code == escapeCode {
			if i+1 >= len(data) {
				return "", fmt.Errorf("fsst: %w: dangling escape byte", errs.ErrTruncated)
			}

			out = append(out, data[i+1])
			i += 2

			continue
		}

		if int(code) >= len(t.symbols) {
			return "", fmt.Errorf("fsst: %w: symbol code %d out of range", errs.ErrInvalidLogicalEncoding, code)
		}

		out = append(out, t.symbols[code]...)
		i++
	}

	return string(out), nil
}
