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

// Delete removes key, if present, rebalancing the tree by borrowing
// from a sibling or merging with one.
func (t *Tree[V]) Delete(key variant.Variant) bool {
	leaf := t.descendLeaf(key)
	var found int32 = noIdx
	for e := t.nodes[leaf].first; e != noIdx; e = t.elems[e].next {
		if t.cmp(t.elems[e].key, key) == 0 {
			found = e
			break
		}
	}
	if found == noIdx {
		return false
	}
	t.nodeRemove(leaf, found)

	if t.nodes[leaf].parent == noIdx {
		return true // empty/underfull root leaf is allowed
	}
	if t.nodes[leaf].count < t.minCount() {
		t.rebalance(leaf)
	}
	return true
}

// rebalance repairs an underflowing non-root node by borrowing from a
// sibling (preferring the left one) or merging with it.
func (t *Tree[V]) rebalance(nodeID int32) {
	parent := t.nodes[nodeID].parent
	if parent == noIdx {
		t.collapseRoot(nodeID)
		return
	}

	left, right := t.siblings(nodeID)
	isLeaf := t.nodes[nodeID].leaf

	var sibling int32
	var siblingIsLeft bool
	if left != noIdx {
		sibling, siblingIsLeft = left, true
	} else {
		sibling, siblingIsLeft = right, false
	}

	if t.nodes[sibling].count+t.nodes[nodeID].count <= t.mergeMax(isLeaf) {
		if siblingIsLeft {
			t.mergeNodes(sibling, nodeID, parent)
		} else {
			t.mergeNodes(nodeID, sibling, parent)
		}
	} else if siblingIsLeft {
		t.rotateFromLeft(nodeID, sibling, parent)
	} else {
		t.rotateFromRight(nodeID, sibling, parent)
	}
}

// collapseRoot handles deleting the last element of the root: it
// either leaves the emptied root leaf in place (if root is a leaf) or
// promotes the remaining child to root.
func (t *Tree[V]) collapseRoot(nodeID int32) {
	if t.nodes[nodeID].leaf {
		return
	}
	if t.nodes[nodeID].count == 0 {
		only := t.nodes[nodeID].lastChild
		t.nodes[only].parent = noIdx
		t.root = only
	}
}

// siblings returns nodeID's left and right siblings in its parent's
// child sequence (noIdx if absent at that end).
func (t *Tree[V]) siblings(nodeID int32) (left, right int32) {
	parent := t.nodes[nodeID].parent
	left, right = noIdx, noIdx
	prevChild := int32(noIdx)
	for e := t.nodes[parent].first; e != noIdx; e = t.elems[e].next {
		child := t.elems[e].left
		if child == nodeID {
			left = prevChild
			if t.elems[e].next != noIdx {
				right = t.elems[t.elems[e].next].left
			} else {
				right = t.nodes[parent].lastChild
			}
			return
		}
		prevChild = child
	}
	// nodeID is parent's lastChild.
	left = prevChild
	right = noIdx
	return
}

// mergeNodes merges rightID's contents into leftID, drops the
// separator between them from parent, and recursively repairs parent.
func (t *Tree[V]) mergeNodes(leftID, rightID, parentID int32) {
	isLeaf := t.nodes[leftID].leaf

	var sep int32 = noIdx
	for e := t.nodes[parentID].first; e != noIdx; e = t.elems[e].next {
		if t.elems[e].left == leftID {
			sep = e
			break
		}
	}
	sepKey := t.elems[sep].key
	sepNext := t.elems[sep].next

	if isLeaf {
		rightFirst := t.nodes[rightID].first
		if rightFirst != noIdx {
			leftLast := t.nodes[leftID].last
			t.elems[rightFirst].prev = leftLast
			if leftLast != noIdx {
				t.elems[leftLast].next = rightFirst
			} else {
				t.nodes[leftID].first = rightFirst
			}
			t.nodes[leftID].last = t.nodes[rightID].last
			for e := rightFirst; e != noIdx; e = t.elems[e].next {
				t.elems[e].owner = leftID
			}
			t.nodes[leftID].count += t.nodes[rightID].count
		}
		nextLeaf := t.nodes[rightID].nextLeaf
		t.nodes[leftID].nextLeaf = nextLeaf
		if nextLeaf != noIdx {
			t.nodes[nextLeaf].prevLeaf = leftID
		} else {
			t.lastLeaf = leftID
		}
	} else {
		demoted := t.newElem(sepKey, leftID)
		t.elems[demoted].left = t.nodes[leftID].lastChild
		t.nodeInsertBefore(leftID, noIdx, demoted)

		rightFirst := t.nodes[rightID].first
		if rightFirst != noIdx {
			leftLast := t.nodes[leftID].last // == demoted
			t.elems[rightFirst].prev = leftLast
			t.elems[leftLast].next = rightFirst
			t.nodes[leftID].last = t.nodes[rightID].last
			for e := rightFirst; e != noIdx; e = t.elems[e].next {
				t.elems[e].owner = leftID
				t.nodes[t.elems[e].left].parent = leftID
			}
			t.nodes[leftID].count += t.nodes[rightID].count
		}
		t.nodes[leftID].lastChild = t.nodes[rightID].lastChild
		t.nodes[t.nodes[leftID].lastChild].parent = leftID
	}

	if sepNext != noIdx {
		t.elems[sepNext].left = leftID
	} else {
		t.nodes[parentID].lastChild = leftID
	}
	t.nodeRemove(parentID, sep)

	if t.nodes[parentID].parent == noIdx {
		t.collapseRoot(parentID)
		return
	}
	if t.nodes[parentID].count < t.minCount() {
		t.rebalance(parentID)
	}
}

// rotateFromLeft borrows leftSib's last element, prepending it to
// nodeID, and rotates the separator through parent.
func (t *Tree[V]) rotateFromLeft(nodeID, leftSib, parentID int32) {
	var sep int32 = noIdx
	for e := t.nodes[parentID].first; e != noIdx; e = t.elems[e].next {
		if t.elems[e].left == leftSib {
			sep = e
			break
		}
	}

	if t.nodes[nodeID].leaf {
		borrowed := t.nodes[leftSib].last
		t.nodeRemove(leftSib, borrowed)
		t.nodeInsertBefore(nodeID, t.nodes[nodeID].first, borrowed)
		t.elems[sep].key = t.elems[borrowed].key
	} else {
		oldSiblingLastChild := t.nodes[leftSib].lastChild
		borrowed := t.nodes[leftSib].last
		ks := t.elems[borrowed].key
		cs := t.elems[borrowed].left
		t.nodeRemove(leftSib, borrowed)
		t.nodes[leftSib].lastChild = cs

		parentSepKey := t.elems[sep].key
		e := t.newElem(parentSepKey, nodeID)
		t.elems[e].left = oldSiblingLastChild
		t.nodes[oldSiblingLastChild].parent = nodeID
		t.nodeInsertBefore(nodeID, t.nodes[nodeID].first, e)

		t.elems[sep].key = ks
	}
}

// rotateFromRight borrows rightSib's first element, appending it to
// nodeID, and rotates the separator through parent.
func (t *Tree[V]) rotateFromRight(nodeID, rightSib, parentID int32) {
	var sep int32 = noIdx
	for e := t.nodes[parentID].first; e != noIdx; e = t.elems[e].next {
		if t.elems[e].left == nodeID {
			sep = e
			break
		}
	}

	if t.nodes[nodeID].leaf {
		borrowed := t.nodes[rightSib].first
		t.nodeRemove(rightSib, borrowed)
		t.nodeInsertBefore(nodeID, noIdx, borrowed)
		if nf := t.nodes[rightSib].first; nf != noIdx {
			t.elems[sep].key = t.elems[nf].key
		} else {
			t.elems[sep].key = t.elems[borrowed].key
		}
	} else {
		borrowed := t.nodes[rightSib].first
		kr := t.elems[borrowed].key
		cr := t.elems[borrowed].left
		t.nodeRemove(rightSib, borrowed)

		parentSepKey := t.elems[sep].key
		oldNodeLastChild := t.nodes[nodeID].lastChild
		e := t.newElem(parentSepKey, nodeID)
		t.elems[e].left = oldNodeLastChild
		t.nodeInsertBefore(nodeID, noIdx, e)

		t.nodes[nodeID].lastChild = cr
		t.nodes[cr].parent = nodeID

		t.elems[sep].key = kr
	}
}
