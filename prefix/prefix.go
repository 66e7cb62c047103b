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

// Package prefix implements the prefix index behind a "starts with"
// query: a map from every prefix of an indexed text to the set of row
// ids whose text begins with it. Unlike package suffix, prefixes of
// the same text never branch away from one another (every longer
// prefix contains every shorter one as its own prefix), so there is
// no tree to build here — a plain map is the direct, idiomatic
// structure wherever a key space does not need ordered traversal.
package prefix

import "github.com/memtable/memtable/idset"

// Index is a prefix index over indexed text values.
type Index struct {
	buckets map[string]idset.Set
}

// New returns an empty index.
func New() *Index {
	return &Index{buckets: make(map[string]idset.Set)}
}

// Put adds id under every non-empty byte-prefix of text.
func (x *Index) Put(text string, id uint32) {
	for i := 1; i <= len(text); i++ {
		p := text[:i]
		s, ok := x.buckets[p]
		if !ok {
			s = idset.New()
			x.buckets[p] = s
		}
		s.Add(id)
	}
}

// StartsWith returns the ids of every text beginning with prefix, or
// nil if none do.
func (x *Index) StartsWith(prefix string) idset.Set {
	if prefix == "" {
		return nil
	}
	s, ok := x.buckets[prefix]
	if !ok || s.Len() == 0 {
		return nil
	}
	return s
}

// Delete removes id from every prefix of text, dropping any prefix
// bucket that becomes empty.
func (x *Index) Delete(text string, id uint32) {
	for i := 1; i <= len(text); i++ {
		x.removeFrom(text[:i], id)
	}
}

func (x *Index) removeFrom(prefix string, id uint32) {
	s, ok := x.buckets[prefix]
	if !ok {
		return
	}
	s.Remove(id)
	if s.Len() == 0 {
		delete(x.buckets, prefix)
	}
}
