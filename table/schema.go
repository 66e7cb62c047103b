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
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Column carries the declarative attributes that determine which
// indexes get allocated for it. The zero value is a plain, unindexed
// column.
type Column struct {
	Name string `json:"name"`

	// Primary marks the implicit "_id" column. A primary column is
	// never allocated a secondary index; Table skips it entirely when
	// building the index registry.
	Primary bool `json:"primary,omitempty"`

	Unique   bool `json:"unique,omitempty"`
	Sortable bool `json:"sortable,omitempty"`
	Nullable bool `json:"nullable,omitempty"`
	Partial  bool `json:"partial,omitempty"`
	Prefixed bool `json:"prefixed,omitempty"`
	Multiple bool `json:"multiple,omitempty"`

	// Min and Max bound a value's size (string/array length) or its
	// numeric magnitude, depending on the column's indexed kind. Nil
	// means unconstrained.
	Min *int64 `json:"min,omitempty"`
	Max *int64 `json:"max,omitempty"`
}

// Schema is an ordered list of columns plus a name and version.
type Schema struct {
	Name    string   `json:"name"`
	Version int      `json:"version"`
	Columns []Column `json:"columns"`
}

// Fingerprint returns a BLAKE2b-256 digest of the schema's structural
// declaration (name, version, and every column's fields, in order).
// Two schemas with the same fingerprint describe the same columns in
// the same order with the same options; restore uses this to refuse
// loading a backup produced under an incompatible schema.
func (s Schema) Fingerprint() [32]byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		bugf("blake2b.New256: %v", err)
	}
	writeString(h, s.Name)
	writeInt(h, int64(s.Version))
	writeInt(h, int64(len(s.Columns)))
	for _, c := range s.Columns {
		writeString(h, c.Name)
		writeBool(h, c.Primary)
		writeBool(h, c.Unique)
		writeBool(h, c.Sortable)
		writeBool(h, c.Nullable)
		writeBool(h, c.Partial)
		writeBool(h, c.Prefixed)
		writeBool(h, c.Multiple)
		writeOptionalInt(h, c.Min)
		writeOptionalInt(h, c.Max)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func writeString(w interface{ Write([]byte) (int, error) }, s string) {
	writeInt(w, int64(len(s)))
	w.Write([]byte(s))
}

func writeInt(w interface{ Write([]byte) (int, error) }, v int64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	w.Write(b[:])
}

func writeBool(w interface{ Write([]byte) (int, error) }, v bool) {
	if v {
		w.Write([]byte{1})
	} else {
		w.Write([]byte{0})
	}
}

func writeOptionalInt(w interface{ Write([]byte) (int, error) }, v *int64) {
	if v == nil {
		w.Write([]byte{0})
		return
	}
	w.Write([]byte{1})
	writeInt(w, *v)
}

// ColumnByName returns the column named name and whether it exists.
func (s Schema) ColumnByName(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}
