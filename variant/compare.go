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

package variant

import (
	"bytes"
	"math"
)

// Compare returns -1, 0 or 1 for a < b, a == b, a > b. nil is less
// than any non-nil value. Comparing two non-nil values of different
// kinds is a programmer error: the table engine only ever compares
// values drawn from the same column, which are always the same kind,
// so this aborts rather than returning an error.
func Compare(a, b Variant) int {
	if a.kind == KindNil && b.kind == KindNil {
		return 0
	}
	if a.kind == KindNil {
		return -1
	}
	if b.kind == KindNil {
		return 1
	}
	if a.kind != b.kind {
		bugf("compare of mismatched kinds %s and %s", a.kind, b.kind)
	}
	switch a.kind {
	case KindText:
		return cmpString(a.text, b.text)
	case KindNat, KindNat8, KindNat16, KindNat32, KindNat64:
		return cmpUint(a.num, b.num)
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return cmpInt(int64(a.num), int64(b.num))
	case KindFloat:
		return cmpFloat(math.Float64frombits(a.num), math.Float64frombits(b.num))
	case KindBool:
		return cmpBool(a.num != 0, b.num != 0)
	case KindBlob:
		return bytes.Compare(a.blob, b.blob)
	case KindArray:
		return cmpArray(a.arr, b.arr)
	case KindTuple:
		return cmpTuple(a.tuple, b.tuple)
	default:
		bugf("compare not defined for kind %s", a.kind)
		return 0
	}
}

// Less reports whether a orders strictly before b, for use as a sort
// less function.
func Less(a, b Variant) bool { return Compare(a, b) < 0 }

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

// cmpArray orders by length first, then elementwise.
func cmpArray(a, b []Variant) int {
	if len(a) != len(b) {
		return cmpInt(int64(len(a)), int64(len(b)))
	}
	for i := range a {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

// cmpTuple orders lexicographically on its two fields. Tuples only
// ever appear as the argument of the between operator, never as an
// index key, so no index ordering exercises this.
func cmpTuple(a, b *[2]Variant) int {
	if c := Compare(a[0], b[0]); c != 0 {
		return c
	}
	return Compare(a[1], b[1])
}

// Equal reports whether a and b represent the same value. Unlike
// Compare, Equal is defined for Map (which Compare does not order)
// and for values of different kinds, and never aborts.
func Equal(a, b Variant) bool {
	if a.kind == KindNil || b.kind == KindNil {
		return a.kind == b.kind
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return equalMap(a.m, b.m)
	case KindTuple:
		return Equal(a.tuple[0], b.tuple[0]) && Equal(a.tuple[1], b.tuple[1])
	case KindBlob:
		return bytes.Equal(a.blob, b.blob)
	default:
		return Compare(a, b) == 0
	}
}

// equalMap is order-insensitive: every key of a must resolve in b to
// an equal value and vice versa.
func equalMap(a, b []MapEntry) bool {
	if len(a) != len(b) {
		return false
	}
	lookup := func(entries []MapEntry, key string) (Variant, bool) {
		for _, e := range entries {
			if e.Key == key {
				return e.Value, true
			}
		}
		return Nil, false
	}
	for _, e := range a {
		bv, ok := lookup(b, e.Key)
		if !ok || !Equal(e.Value, bv) {
			return false
		}
	}
	for _, e := range b {
		if _, ok := lookup(a, e.Key); !ok {
			return false
		}
	}
	return true
}
