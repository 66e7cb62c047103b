// Copyright (C) 2024 Memtable Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package btree

import "github.com/memtable/memtable/variant"

// FindNeq, FindLt, FindLte, FindGt, FindGte and FindBetween descend to
// the single leaf that would contain the bound key and linearly scan
// only that leaf for matching entries.
//
// This is a deliberate single-leaf scan, not an oversight: it is only
// sound when every matching key lives in that one leaf (small trees,
// or ranges narrow enough that they never cross a leaf boundary). A
// correct-for-all-sizes range scan would instead walk the leaf chain
// in the matching direction until the predicate is falsified; this
// implementation preserves the single-leaf behavior bit-for-bit
// rather than silently fixing it.
func (t *Tree[V]) FindNeq(key variant.Variant) []V {
	leaf := t.descendLeaf(key)
	var out []V
	for e := t.nodes[leaf].first; e != noIdx; e = t.elems[e].next {
		if t.cmp(t.elems[e].key, key) != 0 {
			out = append(out, t.elems[e].value)
		}
	}
	return out
}

func (t *Tree[V]) FindLt(key variant.Variant) []V {
	leaf := t.descendLeaf(key)
	var out []V
	for e := t.nodes[leaf].first; e != noIdx; e = t.elems[e].next {
		if t.cmp(t.elems[e].key, key) < 0 {
			out = append(out, t.elems[e].value)
		}
	}
	return out
}

func (t *Tree[V]) FindLte(key variant.Variant) []V {
	leaf := t.descendLeaf(key)
	var out []V
	for e := t.nodes[leaf].first; e != noIdx; e = t.elems[e].next {
		if t.cmp(t.elems[e].key, key) <= 0 {
			out = append(out, t.elems[e].value)
		}
	}
	return out
}

func (t *Tree[V]) FindGt(key variant.Variant) []V {
	leaf := t.descendLeaf(key)
	var out []V
	for e := t.nodes[leaf].first; e != noIdx; e = t.elems[e].next {
		if t.cmp(t.elems[e].key, key) > 0 {
			out = append(out, t.elems[e].value)
		}
	}
	return out
}

func (t *Tree[V]) FindGte(key variant.Variant) []V {
	leaf := t.descendLeaf(key)
	var out []V
	for e := t.nodes[leaf].first; e != noIdx; e = t.elems[e].next {
		if t.cmp(t.elems[e].key, key) >= 0 {
			out = append(out, t.elems[e].value)
		}
	}
	return out
}

// FindBetween descends to the leaf that would contain lo and returns
// entries in that leaf with lo <= key <= hi.
func (t *Tree[V]) FindBetween(lo, hi variant.Variant) []V {
	leaf := t.descendLeaf(lo)
	var out []V
	for e := t.nodes[leaf].first; e != noIdx; e = t.elems[e].next {
		k := t.elems[e].key
		if t.cmp(k, lo) >= 0 && t.cmp(k, hi) <= 0 {
			out = append(out, t.elems[e].value)
		}
	}
	return out
}

// LeafID is an opaque handle to one leaf, returned by FirstLeaf,
// LastLeaf, NextLeaf and PrevLeaf. Stepping past either end of the
// chain yields an invalid LeafID; test with Valid.
type LeafID int32

// Valid reports whether id refers to an existing leaf.
func (id LeafID) Valid() bool { return id != LeafID(noIdx) }

// FirstLeaf and LastLeaf expose the two ends of the leaf chain, used
// by the table engine for ordered traversal with offset/limit.
func (t *Tree[V]) FirstLeaf() LeafID { return LeafID(t.firstLeaf) }
func (t *Tree[V]) LastLeaf() LeafID  { return LeafID(t.lastLeaf) }

// NextLeaf and PrevLeaf step along the leaf chain.
func (t *Tree[V]) NextLeaf(id LeafID) LeafID { return LeafID(t.nodes[int32(id)].nextLeaf) }
func (t *Tree[V]) PrevLeaf(id LeafID) LeafID { return LeafID(t.nodes[int32(id)].prevLeaf) }

// Entry is one (key, value) pair of a leaf.
type Entry[V any] struct {
	Key   variant.Variant
	Value V
}

// LeafEntries returns the ordered entries of leaf id.
func (t *Tree[V]) LeafEntries(id LeafID) []Entry[V] {
	n := int32(id)
	out := make([]Entry[V], 0, t.nodes[n].count)
	for e := t.nodes[n].first; e != noIdx; e = t.elems[e].next {
		out = append(out, Entry[V]{Key: t.elems[e].key, Value: t.elems[e].value})
	}
	return out
}
