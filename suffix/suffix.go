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

package suffix

import "github.com/memtable/memtable/idset"

const noIdx = -1

// edge is a labelled transition out of a node. The label is a slice of
// the original indexed text: Go string slicing shares the backing
// array, so a tree over many long texts does not copy their bytes.
type edge struct {
	label  string
	target int32
}

type node struct {
	edges   []edge
	payload idset.Set // nil until the first id lands here
}

// Tree is a generalized suffix tree: one shared structure indexing
// every text passed to Put, each tagged with a caller-chosen id (the
// table engine uses row ids).
type Tree struct {
	nodes []node
	root  int32
}

// New returns an empty tree.
func New() *Tree {
	t := &Tree{}
	t.root = t.newNode()
	return t
}

func (t *Tree) newNode() int32 {
	t.nodes = append(t.nodes, node{})
	return int32(len(t.nodes) - 1)
}

func (t *Tree) findEdge(n int32, firstByte byte) int {
	edges := t.nodes[n].edges
	for i := range edges {
		if edges[i].label[0] == firstByte {
			return i
		}
	}
	return -1
}

func (t *Tree) addID(n int32, id uint32) {
	if t.nodes[n].payload == nil {
		t.nodes[n].payload = idset.New()
	}
	t.nodes[n].payload.Add(id)
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// Put indexes every suffix of text under id. An empty text indexes
// nothing.
func (t *Tree) Put(text string, id uint32) {
	for i := range text {
		t.insertSuffix(text[i:], id)
	}
}

// insertSuffix walks suffix down from the root, reusing whatever
// prefix of it the tree already has, splitting an edge if the suffix
// diverges partway through one, and tagging id onto the node the
// suffix ends at.
func (t *Tree) insertSuffix(suffix string, id uint32) {
	n := t.root
	s := suffix
	for {
		if len(s) == 0 {
			t.addID(n, id)
			return
		}
		ei := t.findEdge(n, s[0])
		if ei < 0 {
			leaf := t.newNode()
			t.nodes[n].edges = append(t.nodes[n].edges, edge{label: s, target: leaf})
			t.addID(leaf, id)
			return
		}
		e := t.nodes[n].edges[ei]
		cpl := commonPrefixLen(e.label, s)
		switch {
		case cpl == len(e.label) && cpl == len(s):
			t.addID(e.target, id)
			return
		case cpl == len(e.label):
			n = e.target
			s = s[cpl:]
			continue
		default:
			// Diverges at cpl: splice a new node in at that point.
			mid := t.newNode()
			oldTarget := e.target
			t.nodes[n].edges[ei] = edge{label: e.label[:cpl], target: mid}
			t.nodes[mid].edges = append(t.nodes[mid].edges, edge{label: e.label[cpl:], target: oldTarget})
			rem := s[cpl:]
			if rem == "" {
				t.addID(mid, id)
				return
			}
			leaf := t.newNode()
			t.nodes[mid].edges = append(t.nodes[mid].edges, edge{label: rem, target: leaf})
			t.addID(leaf, id)
			return
		}
	}
}

// descend walks pattern from the root, returning the node the match
// ends at (which may be the target of the edge the match ends inside,
// since no branch happens strictly within an edge) and whether every
// byte of pattern was matched.
func (t *Tree) descend(pattern string) (n int32, ok bool) {
	n = t.root
	s := pattern
	for len(s) > 0 {
		ei := t.findEdge(n, s[0])
		if ei < 0 {
			return noIdx, false
		}
		e := t.nodes[n].edges[ei]
		cpl := commonPrefixLen(e.label, s)
		switch {
		case cpl == len(s):
			return e.target, true
		case cpl == len(e.label):
			n = e.target
			s = s[cpl:]
		default:
			return noIdx, false
		}
	}
	return n, true
}

// Find returns the union of ids of every text containing pattern as a
// substring, found by descending to pattern's node and unioning its
// own payload with every descendant's. It returns nil for an empty
// pattern or no match.
func (t *Tree) Find(pattern string) idset.Set {
	if pattern == "" {
		return nil
	}
	n, ok := t.descend(pattern)
	if !ok {
		return nil
	}
	out := idset.New()
	t.collectInto(n, out)
	if out.Len() == 0 {
		return nil
	}
	return out
}

func (t *Tree) collectInto(n int32, out idset.Set) {
	if p := t.nodes[n].payload; p != nil {
		out.UnionWith(p)
	}
	for _, e := range t.nodes[n].edges {
		t.collectInto(e.target, out)
	}
}

// Delete removes id from the node key descends to and recurses into
// every descendant stripping id from it too (a deliberate
// over-deletion: shared nodes serve more than one text), before
// checking whether its own payload is now empty. A node whose payload
// empties drops its outgoing edges entirely.
//
// This intentionally over-deletes: if id was indexed under a text
// that shares a longer common suffix with key's path, deleting key
// can remove id from nodes that belong to that other, still-valid,
// text. That is the documented behavior this module preserves, not a
// bug to be designed away.
func (t *Tree) Delete(key string, id uint32) {
	n, ok := t.descend(key)
	if !ok {
		return
	}
	t.stripDescendants(n, id)
}

func (t *Tree) stripDescendants(n int32, id uint32) {
	for _, e := range t.nodes[n].edges {
		t.stripDescendants(e.target, id)
	}
	p := t.nodes[n].payload
	if p == nil {
		return
	}
	p.Remove(id)
	if p.Len() == 0 {
		t.nodes[n].payload = nil
		t.nodes[n].edges = nil
	}
}
