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

// Package idset implements the set-of-row-ids type shared by the
// sortable B+tree index, the suffix tree payloads, the prefix index
// buckets, and the table engine's criteria intersection pipeline.
// There is no third-party set/bitset library suited to this, and a
// plain map[uint32]struct{} is the idiomatic Go way to represent a
// small, frequently-mutated set, so this component is a plain Go map
// (with golang.org/x/exp/maps only for Slice) rather than a set
// library (see DESIGN.md).
package idset

import "golang.org/x/exp/maps"

// Set is a mutable set of row ids.
type Set map[uint32]struct{}

// New returns an empty set, optionally preloaded with ids.
func New(ids ...uint32) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Add(id uint32) { s[id] = struct{}{} }

func (s Set) Remove(id uint32) { delete(s, id) }

func (s Set) Contains(id uint32) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Len() int { return len(s) }

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// UnionWith adds every id of other into s.
func (s Set) UnionWith(other Set) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Intersect returns the ids present in both s and other.
func Intersect(s, other Set) Set {
	small, big := s, other
	if len(big) < len(small) {
		small, big = big, small
	}
	out := make(Set, len(small))
	for id := range small {
		if _, ok := big[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// Slice returns the set's ids in unspecified order.
func (s Set) Slice() []uint32 { return maps.Keys(s) }
