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
	"fmt"
	"strings"
)

// String renders v for diagnostics and log lines; it is not a
// serialization format.
func (v Variant) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindText:
		return fmt.Sprintf("%q", v.text)
	case KindNat, KindNat8, KindNat16, KindNat32, KindNat64:
		return fmt.Sprintf("%d", v.num)
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return fmt.Sprintf("%d", int64(v.num))
	case KindFloat:
		f, _ := v.Float()
		return fmt.Sprintf("%g", f)
	case KindBool:
		b, _ := v.Bool()
		return fmt.Sprintf("%t", b)
	case KindBlob:
		return fmt.Sprintf("blob(%d bytes)", len(v.blob))
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		parts := make([]string, len(v.m))
		for i, e := range v.m {
			parts[i] = fmt.Sprintf("%s: %s", e.Key, e.Value.String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindTuple:
		return fmt.Sprintf("(%s, %s)", v.tuple[0].String(), v.tuple[1].String())
	default:
		return "<invalid>"
	}
}
