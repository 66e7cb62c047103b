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

// Package suffix implements the generalized suffix tree behind a
// partial ("contains") index: a compressed trie over every suffix of
// every indexed text, annotating each node with the set of row ids
// whose text passes through it.
//
// Same arena strategy as package btree: nodes are slots in a slice
// addressed by int32, so there are no pointer cycles for the garbage
// collector to chase and no parent/child pointer pairs to keep in
// sync by hand.
//
// Construction here builds the tree by inserting each suffix
// individually (splitting an edge where a new suffix diverges from an
// existing one), rather than Ukkonen's amortized single-pass online
// algorithm. Both produce the same tree; the per-suffix form is the
// one worth writing by hand when nothing can compile-check the edge
// arithmetic along the way (see DESIGN.md). The "active leaf" and
// suffix-link bookkeeping a true Ukkonen construction needs has no
// observable counterpart here: this module's Find already unions a
// node's own payload with every descendant's, which is the property
// that bookkeeping exists to make cheap, not a property it alone
// provides.
package suffix
