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

// Package btree implements an ordered B+tree multimap keyed by
// variant.Variant, parameterized over the leaf value type V so the
// same implementation backs both the unique index (V = uint32, one id
// per key) and the sortable index (V = idset.Set, a set of ids per
// key).
//
// Nodes and their keyed elements are not linked by pointer; they live
// in two parallel arenas (Tree.nodes, Tree.elems) addressed by int32,
// per the arena+index redesign called for when porting a pointer-
// cyclic node graph (parent/child, sibling/sibling, leaf/leaf,
// element/owner) into Go. Slots are never reclaimed on delete: a
// compacting pass would be possible but nothing in this module needs
// one, since tables live for the lifetime of the process.
package btree
