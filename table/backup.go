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

	"github.com/memtable/memtable/variant"
)

// Entry is one (column, value) pair of a backup row, ordered the same
// way every time because it walks schema.Columns rather than a map.
type Entry struct {
	Column string
	Value  variant.Variant
}

// Backup returns an ordered sequence, one entry per non-tombstoned
// row, each a sequence of (column, value) pairs produced by
// serialize(row, false).
func (t *Table[Row]) Backup() [][]Entry {
	out := make([][]Entry, 0, len(t.rows))
	for i, s := range t.rows {
		if !s.live {
			continue
		}
		m := t.serialize(s.row, false)
		row := make([]Entry, 0, len(t.schema.Columns)+1)
		row = append(row, Entry{Column: "_id", Value: variant.Nat32(uint32(i) + 1)})
		for _, c := range t.schema.Columns {
			if c.Primary {
				continue
			}
			if v, ok := m[c.Name]; ok {
				row = append(row, Entry{Column: c.Name, Value: v})
			}
		}
		out = append(out, row)
	}
	return out
}

// Restore rebuilds the table from entries produced by Backup. Gaps in
// `_id` are padded with tombstones to preserve the id→slot mapping;
// every surviving row is re-indexed with the forIndexing=true
// projection. Restoration never validates uniqueness — it trusts the
// backup.
func (t *Table[Row]) Restore(entries [][]Entry) error {
	t.rows = t.rows[:0]
	t.resetIndexes()

	for _, entry := range entries {
		id, m, err := decodeEntry(entry)
		if err != nil {
			return err
		}
		for t.NextID() < id {
			var zero Row
			t.rows = append(t.rows, rowSlot[Row]{row: zero, live: false})
		}
		row := t.deserialize(m)
		t.rows = append(t.rows, rowSlot[Row]{row: row, live: true})
		t.indexRow(id, t.serialize(row, true))
	}
	return nil
}

// RestoreWithFingerprint behaves like Restore but first checks want
// against t.schema.Fingerprint(), refusing to load a backup produced
// under an incompatible schema.
func (t *Table[Row]) RestoreWithFingerprint(entries [][]Entry, want [32]byte) error {
	if t.schema.Fingerprint() != want {
		return errors.New("Schema fingerprint mismatch")
	}
	return t.Restore(entries)
}

func decodeEntry(entry []Entry) (uint32, map[string]variant.Variant, error) {
	m := make(map[string]variant.Variant, len(entry))
	var id uint32
	found := false
	for _, e := range entry {
		if e.Column == "_id" {
			n, ok := e.Value.Uint()
			if !ok {
				return 0, nil, errors.New("Invalid id")
			}
			id = uint32(n)
			found = true
			continue
		}
		m[e.Column] = e.Value
	}
	if !found {
		return 0, nil, errors.New("Invalid id")
	}
	return id, m, nil
}

func (t *Table[Row]) resetIndexes() {
	for _, c := range t.schema.Columns {
		if c.Primary {
			continue
		}
		idx := t.indexes[c.Name]
		if idx.unique != nil {
			idx.unique = newUniqueTree()
		}
		idx.uniqueNullOccupied = false
		idx.uniqueNullID = 0
		if idx.sortable != nil {
			idx.sortable = newSortableTree()
		}
		idx.sortableNull = nil
		if idx.partial != nil {
			idx.partial = newPartialIndex()
		}
		if idx.prefixed != nil {
			idx.prefixed = newPrefixIndex()
		}
	}
}
