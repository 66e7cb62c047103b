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
	"errors"
	"fmt"
	"strings"

	"github.com/memtable/memtable/idset"
	"github.com/memtable/memtable/variant"
)

// Get returns the row stored at id. A missing or tombstoned id is
// not an error: it reports found=false.
func (t *Table[Row]) Get(id uint32) (row Row, found bool, err error) {
	if id == 0 {
		return row, false, errors.New("Invalid id")
	}
	i := int(id) - 1
	if i < 0 || i >= len(t.rows) || !t.rows[i].live {
		return row, false, nil
	}
	return t.rows[i].row, true, nil
}

// Insert appends row at id, which must equal NextID(). On
// validation or uniqueness failure the table is left unchanged.
func (t *Table[Row]) Insert(id uint32, row Row) (uint32, error) {
	if id == 0 || id != t.NextID() {
		return 0, errors.New("Invalid id")
	}
	m := t.serialize(row, true)
	if errs := t.validate(m); len(errs) > 0 {
		return 0, errors.New(strings.Join(errs, ","))
	}
	if err := t.canInsert(m); err != nil {
		return 0, err
	}
	t.rows = append(t.rows, rowSlot[Row]{row: row, live: true})
	t.indexRow(id, m)
	return id, nil
}

// Replace overwrites the row at id with row, restoring the prior
// indexed state if validation fails: it is transactional with
// respect to the index set.
func (t *Table[Row]) Replace(id uint32, row Row) error {
	if id == 0 {
		return errors.New("Invalid id")
	}
	i := int(id) - 1
	if i < 0 || i >= len(t.rows) || !t.rows[i].live {
		return errors.New("Not found")
	}

	oldMap := t.serialize(t.rows[i].row, true)
	t.unindexRow(id, oldMap)

	newMap := t.serialize(row, true)
	if errs := t.validate(newMap); len(errs) > 0 {
		t.indexRow(id, oldMap)
		return errors.New(strings.Join(errs, ","))
	}
	if err := t.canInsert(newMap); err != nil {
		t.indexRow(id, oldMap)
		return err
	}

	t.rows[i].row = row
	t.indexRow(id, newMap)
	return nil
}

// Delete tombstones the row at id: the vector slot is emptied,
// never removed, so ids are never reused.
func (t *Table[Row]) Delete(id uint32) error {
	if id == 0 {
		return errors.New("Invalid id")
	}
	i := int(id) - 1
	if i < 0 || i >= len(t.rows) || !t.rows[i].live {
		return fmt.Errorf("Primary key not found: %d", id)
	}
	m := t.serialize(t.rows[i].row, true)
	t.unindexRow(id, m)
	var zero Row
	t.rows[i] = rowSlot[Row]{row: zero, live: false}
	return nil
}

// indexRow fans the serialized row out to every column's indexes.
func (t *Table[Row]) indexRow(id uint32, m map[string]variant.Variant) {
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
			if c.Unique {
				idx.uniqueNullOccupied = true
				idx.uniqueNullID = id
			}
			if c.Sortable && !c.Unique {
				if idx.sortableNull == nil {
					idx.sortableNull = idset.New()
				}
				idx.sortableNull.Add(id)
			}
			continue
		}
		if c.Multiple {
			arr, ok := v.Array()
			if !ok {
				continue
			}
			for _, e := range arr {
				t.indexOneValue(idx, c, e, id)
			}
			continue
		}
		t.indexOneValue(idx, c, v, id)
	}
}

func (t *Table[Row]) indexOneValue(idx *columnIndex, c Column, v variant.Variant, id uint32) {
	if c.Unique {
		idx.unique.Put(v, id)
	}
	if c.Sortable && !c.Unique {
		ids, ok := idx.sortable.Get(v)
		if !ok {
			ids = idset.New()
		}
		ids.Add(id)
		idx.sortable.Put(v, ids)
	}
	if c.Partial {
		if s, ok := v.Text(); ok {
			idx.partial.Put(s, id)
		}
	}
	if c.Prefixed {
		if s, ok := v.Text(); ok {
			idx.prefixed.Put(s, id)
		}
	}
}

// unindexRow is indexRow's inverse, used by Replace and Delete.
func (t *Table[Row]) unindexRow(id uint32, m map[string]variant.Variant) {
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
			if c.Unique && idx.uniqueNullOccupied && idx.uniqueNullID == id {
				idx.uniqueNullOccupied = false
				idx.uniqueNullID = 0
			}
			if c.Sortable && !c.Unique && idx.sortableNull != nil {
				idx.sortableNull.Remove(id)
			}
			continue
		}
		if c.Multiple {
			arr, ok := v.Array()
			if !ok {
				continue
			}
			for _, e := range arr {
				t.unindexOneValue(idx, c, e, id)
			}
			continue
		}
		t.unindexOneValue(idx, c, v, id)
	}
}

func (t *Table[Row]) unindexOneValue(idx *columnIndex, c Column, v variant.Variant, id uint32) {
	if c.Unique {
		idx.unique.Delete(v)
	}
	if c.Sortable && !c.Unique {
		if ids, ok := idx.sortable.Get(v); ok {
			ids.Remove(id)
			if ids.Len() == 0 {
				idx.sortable.Delete(v)
			}
		}
	}
	if c.Partial {
		if s, ok := v.Text(); ok {
			idx.partial.Delete(s, id)
		}
	}
	if c.Prefixed {
		if s, ok := v.Text(); ok {
			idx.prefixed.Delete(s, id)
		}
	}
}
