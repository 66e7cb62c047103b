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

package table

import (
	"fmt"

	"github.com/memtable/memtable/variant"
)

// validate collects every size/nullability violation in m; the caller
// joins the results with a comma. Unlike canInsert, validate never
// short-circuits.
func (t *Table[Row]) validate(m map[string]variant.Variant) []string {
	var errs []string
	for _, c := range t.schema.Columns {
		if c.Primary {
			continue
		}
		v, ok := m[c.Name]
		if !ok {
			v = variant.Nil
		}
		if v.IsNil() {
			if !c.Nullable {
				errs = append(errs, fmt.Sprintf("Value can't be null on column %s", c.Name))
			}
			continue
		}
		if c.Multiple {
			if arr, ok := v.Array(); ok {
				for _, e := range arr {
					if e.IsNil() {
						errs = append(errs, fmt.Sprintf("%s can't be null", c.Name))
					}
				}
			}
		}
		if c.Min != nil {
			if msg, bad := checkBound(c.Name, v, *c.Min, false); bad {
				errs = append(errs, msg)
			}
		}
		if c.Max != nil {
			if msg, bad := checkBound(c.Name, v, *c.Max, true); bad {
				errs = append(errs, msg)
			}
		}
	}
	return errs
}

// checkBound interprets bound as a string/array/blob length bound or
// a numeric magnitude bound depending on v's kind: string length for
// text, element count for array, numeric bound for numeric kinds.
func checkBound(name string, v variant.Variant, bound int64, isMax bool) (string, bool) {
	switch v.Kind() {
	case variant.KindText, variant.KindBlob:
		n, _ := v.Len()
		if isMax && int64(n) > bound {
			return fmt.Sprintf("%s must be at most %d long", name, bound), true
		}
		if !isMax && int64(n) < bound {
			return fmt.Sprintf("%s must be at least %d long", name, bound), true
		}
	case variant.KindArray:
		n, _ := v.Len()
		if isMax && int64(n) > bound {
			return fmt.Sprintf("%s must have at most %d elements", name, bound), true
		}
		if !isMax && int64(n) < bound {
			return fmt.Sprintf("%s must have at least %d elements", name, bound), true
		}
	default:
		n, ok := numericValue(v)
		if !ok {
			return "", false
		}
		if isMax && n > float64(bound) {
			return fmt.Sprintf("%s must be at most %d", name, bound), true
		}
		if !isMax && n < float64(bound) {
			return fmt.Sprintf("%s must be at least %d", name, bound), true
		}
	}
	return "", false
}

func numericValue(v variant.Variant) (float64, bool) {
	if n, ok := v.Uint(); ok {
		return float64(n), true
	}
	if n, ok := v.Int(); ok {
		return float64(n), true
	}
	if n, ok := v.Float(); ok {
		return n, true
	}
	return 0, false
}

// canInsert enforces nullability and uniqueness against the current
// index state, short-circuiting at the first violation.
func (t *Table[Row]) canInsert(m map[string]variant.Variant) error {
	for _, c := range t.schema.Columns {
		if c.Primary {
			continue
		}
		idx := t.indexes[c.Name]
		v, ok := m[c.Name]
		if !ok {
			v = variant.Nil
		}
		if v.IsNil() {
			if !c.Nullable {
				return fmt.Errorf("Value can not be null at column %s", c.Name)
			}
			if c.Unique && idx.uniqueNullOccupied {
				return fmt.Errorf("Duplicated unique key at column %s", c.Name)
			}
			continue
		}
		if !c.Unique {
			continue
		}
		if c.Multiple {
			arr, ok := v.Array()
			if !ok {
				continue
			}
			for _, e := range arr {
				if _, exists := idx.unique.Get(e); exists {
					return fmt.Errorf("Duplicated unique key at column %s", c.Name)
				}
			}
			continue
		}
		if _, exists := idx.unique.Get(v); exists {
			return fmt.Errorf("Duplicated unique key at column %s", c.Name)
		}
	}
	return nil
}
