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

// Package variant implements the tagged value type shared by every
// index in this module: a closed sum of scalar branches (nil, text,
// the unsigned/signed integer widths, float, bool, blob) plus three
// compound branches (array, map, tuple) that are not themselves
// indexable but appear as row values and as the argument container
// for the between operator.
package variant

import (
	"fmt"
	"math"
)

// Kind is the tag of a Variant's active branch.
type Kind uint8

const (
	KindNil Kind = iota
	KindText
	KindNat
	KindNat8
	KindNat16
	KindNat32
	KindNat64
	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat
	KindBool
	KindBlob
	KindArray
	KindMap
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindText:
		return "text"
	case KindNat:
		return "nat"
	case KindNat8:
		return "nat8"
	case KindNat16:
		return "nat16"
	case KindNat32:
		return "nat32"
	case KindNat64:
		return "nat64"
	case KindInt:
		return "int"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindBlob:
		return "blob"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// MapEntry is a single (key, value) pair of a Map variant. Order in
// the backing slice is preserved for serialization but never used for
// comparison; Map equality is by key lookup (see Equal).
type MapEntry struct {
	Key   string
	Value Variant
}

// Variant is a tagged union of scalar and compound values. The zero
// value is KindNil.
type Variant struct {
	kind  Kind
	num   uint64 // bool/nat*/int*/float payload, reinterpreted per kind
	text  string
	blob  []byte
	arr   []Variant
	m     []MapEntry
	tuple *[2]Variant
}

// Nil is the nil branch.
var Nil = Variant{kind: KindNil}

func Text(s string) Variant { return Variant{kind: KindText, text: s} }

func Nat(v uint64) Variant   { return Variant{kind: KindNat, num: v} }
func Nat8(v uint8) Variant   { return Variant{kind: KindNat8, num: uint64(v)} }
func Nat16(v uint16) Variant { return Variant{kind: KindNat16, num: uint64(v)} }
func Nat32(v uint32) Variant { return Variant{kind: KindNat32, num: uint64(v)} }
func Nat64(v uint64) Variant { return Variant{kind: KindNat64, num: v} }

func Int(v int64) Variant   { return Variant{kind: KindInt, num: uint64(v)} }
func Int8(v int8) Variant   { return Variant{kind: KindInt8, num: uint64(v)} }
func Int16(v int16) Variant { return Variant{kind: KindInt16, num: uint64(v)} }
func Int32(v int32) Variant { return Variant{kind: KindInt32, num: uint64(v)} }
func Int64(v int64) Variant { return Variant{kind: KindInt64, num: uint64(v)} }

func Float(v float64) Variant { return Variant{kind: KindFloat, num: math.Float64bits(v)} }

func Bool(v bool) Variant {
	var n uint64
	if v {
		n = 1
	}
	return Variant{kind: KindBool, num: n}
}

func Blob(b []byte) Variant { return Variant{kind: KindBlob, blob: b} }

func Array(vs []Variant) Variant { return Variant{kind: KindArray, arr: vs} }

func Map(entries []MapEntry) Variant { return Variant{kind: KindMap, m: entries} }

// Tuple builds the pair argument used by the between operator.
func Tuple(a, b Variant) Variant {
	t := [2]Variant{a, b}
	return Variant{kind: KindTuple, tuple: &t}
}

func (v Variant) Kind() Kind { return v.kind }

func (v Variant) IsNil() bool { return v.kind == KindNil }

// Text returns the text payload and whether v is a text variant.
func (v Variant) Text() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

func (v Variant) Blob() ([]byte, bool) {
	if v.kind != KindBlob {
		return nil, false
	}
	return v.blob, true
}

func (v Variant) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.num != 0, true
}

func (v Variant) Float() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return math.Float64frombits(v.num), true
}

// Uint returns the payload of any unsigned-integer kind (nat/nat8..64).
func (v Variant) Uint() (uint64, bool) {
	switch v.kind {
	case KindNat, KindNat8, KindNat16, KindNat32, KindNat64:
		return v.num, true
	default:
		return 0, false
	}
}

// Int returns the payload of any signed-integer kind (int/int8..64).
func (v Variant) Int() (int64, bool) {
	switch v.kind {
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return int64(v.num), true
	default:
		return 0, false
	}
}

func (v Variant) Array() ([]Variant, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

func (v Variant) Map() ([]MapEntry, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.m, true
}

func (v Variant) Tuple() (Variant, Variant, bool) {
	if v.kind != KindTuple {
		return Nil, Nil, false
	}
	return v.tuple[0], v.tuple[1], true
}

// Len returns the size of v used for min/max bound checking: string
// length for text, byte length for blob, element count for array and
// map. It is undefined (0, false) for any other kind.
func (v Variant) Len() (int, bool) {
	switch v.kind {
	case KindText:
		return len(v.text), true
	case KindBlob:
		return len(v.blob), true
	case KindArray:
		return len(v.arr), true
	case KindMap:
		return len(v.m), true
	default:
		return 0, false
	}
}

func bugf(format string, args ...any) {
	panic("bug: " + fmt.Sprintf(format, args...))
}
