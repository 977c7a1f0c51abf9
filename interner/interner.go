// Package interner maps byte strings to stable integer symbols.
//
// Grounded on src/util/util.c's FNV-1a open-addressed table, with one fix:
// the original stores `slot_index + 1` as the symbol, which is wrong —
// rehashing reassigns slot indices, so a symbol minted before a rehash can
// silently point at the wrong string afterward. This implementation keeps
// a dense, append-only slice of canonical strings in insertion order; the
// hash table only ever stores indices into that slice, so a Symbol's
// identity survives any number of rehashes.
package interner

import "github.com/muyoamon/morphl/arena"

// Symbol is an opaque handle for an interned byte string. Zero means "none".
// Symbols are stable for the interner's lifetime.
type Symbol uint32

const noSymbol Symbol = 0

// Interner is not safe for concurrent use (one per compilation unit).
type Interner struct {
	arena   *arena.Arena
	strings []string   // dense, insertion-ordered; index i holds symbol i+1
	table   []int32    // open-addressed hash table of indices into strings, -1 = empty
	count   int
}

// New creates an empty Interner backed by its own arena for canonical bytes.
func New() *Interner {
	in := &Interner{arena: arena.New(4096)}
	in.growTable(64)
	return in
}

func (in *Interner) growTable(minCap int) {
	newCap := 16
	if len(in.table) > 0 {
		newCap = len(in.table) * 2
	}
	for newCap < minCap {
		newCap *= 2
	}
	newTable := make([]int32, newCap)
	for i := range newTable {
		newTable[i] = -1
	}
	for idx, s := range in.strings {
		in.insertIndex(newTable, s, int32(idx))
	}
	in.table = newTable
}

func (in *Interner) insertIndex(table []int32, s string, idx int32) {
	mask := uint64(len(table) - 1)
	slot := fnv1a(s) & mask
	for table[slot] != -1 {
		slot = (slot + 1) & mask
	}
	table[slot] = idx
}

// Intern returns the existing symbol for s if present, otherwise inserts it.
// Returned symbols are stable for the interner's lifetime.
func (in *Interner) Intern(s string) Symbol {
	if s == "" {
		return noSymbol
	}
	if (in.count+1)*2 >= len(in.table) {
		in.growTable(len(in.table) * 2)
	}

	mask := uint64(len(in.table) - 1)
	slot := fnv1a(s) & mask
	for {
		idx := in.table[slot]
		if idx == -1 {
			canon := in.arena.AllocString(s)
			in.strings = append(in.strings, canon)
			newIdx := int32(len(in.strings) - 1)
			in.table[slot] = newIdx
			in.count++
			return Symbol(newIdx + 1)
		}
		if in.strings[idx] == s {
			return Symbol(idx + 1)
		}
		slot = (slot + 1) & mask
	}
}

// Lookup returns the canonical bytes for sym, or "" if sym is zero/unknown.
func (in *Interner) Lookup(sym Symbol) string {
	if sym == noSymbol {
		return ""
	}
	idx := int(sym) - 1
	if idx < 0 || idx >= len(in.strings) {
		return ""
	}
	return in.strings[idx]
}

// Len reports how many distinct strings have been interned.
func (in *Interner) Len() int { return len(in.strings) }

func fnv1a(s string) uint64 {
	const offset = 14695981039346656037
	const prime = 1099511628211
	h := uint64(offset)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	return h
}
