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
	"encoding/binary"
	"math"

	"github.com/dchest/siphash"
)

// seedK0/seedK1 are fixed process-wide siphash keys. This module has
// no adversarial-input threat model (it is an embedded library, not a
// network-facing service), so a fixed seed is fine; it only needs to
// be stable within a process for hash-bucketing callers.
const (
	seedK0 = 0x5b6f1f5a7f0c9d31
	seedK1 = 0x1f3b9c7a2e5d8041
)

// Hash is defined only for scalar kinds and nil; hashing a compound
// variant (array, map, tuple) is a programmer error and aborts.
func Hash(v Variant) uint64 {
	var buf [9]byte
	switch v.kind {
	case KindNil:
		buf[0] = byte(KindNil)
		return siphash.Hash(seedK0, seedK1, buf[:1])
	case KindText:
		return siphash.Hash(seedK0, seedK1, append([]byte{byte(KindText)}, v.text...))
	case KindBlob:
		return siphash.Hash(seedK0, seedK1, append([]byte{byte(KindBlob)}, v.blob...))
	case KindNat, KindNat8, KindNat16, KindNat32, KindNat64,
		KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		buf[0] = byte(v.kind)
		binary.LittleEndian.PutUint64(buf[1:], v.num)
		return siphash.Hash(seedK0, seedK1, buf[:])
	case KindFloat:
		buf[0] = byte(KindFloat)
		f := math.Float64frombits(v.num)
		binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(f))
		return siphash.Hash(seedK0, seedK1, buf[:])
	case KindBool:
		buf[0] = byte(KindBool)
		buf[1] = byte(v.num)
		return siphash.Hash(seedK0, seedK1, buf[:2])
	default:
		bugf("hash not defined for kind %s", v.kind)
		return 0
	}
}
