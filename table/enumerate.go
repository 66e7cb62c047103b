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

package table

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/memtable/memtable/btree"
	"github.com/memtable/memtable/idset"
	"github.com/memtable/memtable/msort"
)

// enumerateAll produces the ids for a query whose criterias is empty.
// Only the first sortBy entry is honored here: with no predicate to
// narrow the candidate set, ordering comes directly from walking an
// index's leaf chain, and that chain can only express one key at a
// time. Any further sortBy entries are ignored. With no sortBy, or
// sortBy on _id, every live id is returned. Sorting by a unique or
// sortable column returns only the ids stored in that column's tree:
// rows whose value is nil are not returned, and a multiple column's
// row appears once per element.
func (t *Table[Row]) enumerateAll(sortBy []SortBy[Row]) ([]uint32, error) {
	if len(sortBy) == 0 {
		return t.allLiveIDsAscending(), nil
	}
	sb := sortBy[0]
	if sb.Key == "_id" {
		ids := t.allLiveIDsAscending()
		if sb.Dir == Desc {
			slices.Reverse(ids)
		}
		return ids, nil
	}
	col, ok := t.schema.ColumnByName(sb.Key)
	if !ok {
		return nil, fmt.Errorf("Unknown column %s", sb.Key)
	}
	idx := t.indexes[sb.Key]
	if col.Unique {
		return iterateUniqueLeafChain(idx.unique, sb.Dir), nil
	}
	if col.Sortable {
		return iterateSortableLeafChain(idx.sortable, sb.Dir), nil
	}
	return nil, fmt.Errorf("No index found for column %s", sb.Key)
}

func (t *Table[Row]) allLiveIDsAscending() []uint32 {
	ids := make([]uint32, 0, len(t.rows))
	for i, s := range t.rows {
		if s.live {
			ids = append(ids, uint32(i)+1)
		}
	}
	return ids
}

func iterateUniqueLeafChain(tree *btree.Tree[uint32], dir Dir) []uint32 {
	var out []uint32
	if dir == Desc {
		for leaf := tree.LastLeaf(); leaf.Valid(); leaf = tree.PrevLeaf(leaf) {
			entries := tree.LeafEntries(leaf)
			for i := len(entries) - 1; i >= 0; i-- {
				out = append(out, entries[i].Value)
			}
		}
		return out
	}
	for leaf := tree.FirstLeaf(); leaf.Valid(); leaf = tree.NextLeaf(leaf) {
		for _, e := range tree.LeafEntries(leaf) {
			out = append(out, e.Value)
		}
	}
	return out
}

// iterateSortableLeafChain walks the set-valued tree's leaf chain in
// key order, sorting each bucket's own id set ascending or descending
// to match dir.
func iterateSortableLeafChain(tree *btree.Tree[idset.Set], dir Dir) []uint32 {
	var out []uint32
	appendBucket := func(ids idset.Set) {
		s := ids.Slice()
		msort.Sort(s, func(a, b uint32) bool { return a < b })
		if dir == Desc {
			slices.Reverse(s)
		}
		out = append(out, s...)
	}
	if dir == Desc {
		for leaf := tree.LastLeaf(); leaf.Valid(); leaf = tree.PrevLeaf(leaf) {
			entries := tree.LeafEntries(leaf)
			for i := len(entries) - 1; i >= 0; i-- {
				appendBucket(entries[i].Value)
			}
		}
		return out
	}
	for leaf := tree.FirstLeaf(); leaf.Valid(); leaf = tree.NextLeaf(leaf) {
		for _, e := range tree.LeafEntries(leaf) {
			appendBucket(e.Value)
		}
	}
	return out
}

