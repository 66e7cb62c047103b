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

import (
	"testing"

	"github.com/memtable/memtable/variant"
)

// validate walks the whole tree checking its structural invariants:
// non-root node occupancy within [ceil(k/2)-1, k-1], internal
// child-count = key-count+1, and leaf-chain key ordering.
func (t *Tree[V]) validate(tb testing.TB) {
	tb.Helper()
	t.validateNode(tb, t.root, true)

	// leaf chain must be in strictly ascending key order across leaves.
	haveKey := false
	var prevKey variant.Variant
	for leaf := t.firstLeaf; leaf != noIdx; leaf = t.nodes[leaf].nextLeaf {
		for e := t.nodes[leaf].first; e != noIdx; e = t.elems[e].next {
			k := t.elems[e].key
			if haveKey && t.cmp(prevKey, k) >= 0 {
				tb.Fatalf("leaf chain out of order: %v then %v", prevKey, k)
			}
			prevKey = k
			haveKey = true
		}
	}
}

func (t *Tree[V]) validateNode(tb testing.TB, id int32, isRoot bool) {
	tb.Helper()
	n := t.nodes[id]
	if !isRoot {
		if n.count < t.minCount() {
			tb.Fatalf("node %d underfull: count=%d min=%d", id, n.count, t.minCount())
		}
		max := t.maxLeaf()
		if !n.leaf {
			max = t.maxInternal()
		}
		if n.count > max {
			tb.Fatalf("node %d overfull: count=%d max=%d", id, n.count, max)
		}
	}
	// keys within node must be strictly ascending.
	prevSet := false
	var prev int32
	cnt := 0
	for e := n.first; e != noIdx; e = t.elems[e].next {
		if prevSet && t.cmp(t.elems[prev].key, t.elems[e].key) >= 0 {
			tb.Fatalf("node %d keys not ascending", id)
		}
		prev = e
		prevSet = true
		cnt++
		if !n.leaf {
			t.validateNode(tb, t.elems[e].left, false)
			if t.nodes[t.elems[e].left].parent != id {
				tb.Fatalf("child %d parent mismatch", t.elems[e].left)
			}
		}
	}
	if cnt != n.count {
		tb.Fatalf("node %d count field %d != actual %d", id, n.count, cnt)
	}
	if !n.leaf {
		t.validateNode(tb, n.lastChild, false)
		if t.nodes[n.lastChild].parent != id {
			tb.Fatalf("lastChild %d parent mismatch", n.lastChild)
		}
	}
}
