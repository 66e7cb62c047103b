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
	"github.com/google/uuid"

	"github.com/memtable/memtable/btree"
	"github.com/memtable/memtable/idset"
	"github.com/memtable/memtable/prefix"
	"github.com/memtable/memtable/suffix"
	"github.com/memtable/memtable/variant"
)

// columnIndex bundles the up-to-four index structures allocated per
// non-primary column, plus the two null-bucket companions.
type columnIndex struct {
	col Column

	unique             *btree.Tree[uint32]
	uniqueNullOccupied bool
	uniqueNullID       uint32

	sortable     *btree.Tree[idset.Set]
	sortableNull idset.Set

	partial  *suffix.Tree
	prefixed *prefix.Index
}

// rowSlot is one entry of the row vector: a state-machine cell that
// is either live or tombstoned.
type rowSlot[Row any] struct {
	row  Row
	live bool
}

// Serializer projects a row to a name→Variant map. forIndexing
// selects between the normalized projection used for validation,
// uniqueness checks and index insertion, and the canonical projection
// used by backup.
type Serializer[Row any] func(row Row, forIndexing bool) map[string]variant.Variant

// Deserializer is Serializer's inverse, used only by Restore.
type Deserializer[Row any] func(m map[string]variant.Variant) Row

// Table is the indexed table engine. The zero value is not usable;
// construct with New.
type Table[Row any] struct {
	id     uuid.UUID
	schema Schema

	serialize   Serializer[Row]
	deserialize Deserializer[Row]

	rows    []rowSlot[Row]
	indexes map[string]*columnIndex
}

// New builds a table for schema, allocating per-column indexes.
func New[Row any](schema Schema, serialize Serializer[Row], deserialize Deserializer[Row]) *Table[Row] {
	t := &Table[Row]{
		id:          uuid.New(),
		schema:      schema,
		serialize:   serialize,
		deserialize: deserialize,
		indexes:     make(map[string]*columnIndex, len(schema.Columns)),
	}
	for _, c := range schema.Columns {
		if c.Primary {
			continue
		}
		idx := &columnIndex{col: c}
		if c.Unique {
			idx.unique = newUniqueTree()
		}
		if c.Sortable && !c.Unique {
			idx.sortable = newSortableTree()
		}
		if c.Partial {
			idx.partial = newPartialIndex()
		}
		if c.Prefixed {
			idx.prefixed = newPrefixIndex()
		}
		t.indexes[c.Name] = idx
	}
	return t
}

func newUniqueTree() *btree.Tree[uint32] {
	return btree.New[uint32](btree.DefaultOrder, variant.Compare)
}

func newSortableTree() *btree.Tree[idset.Set] {
	return btree.New[idset.Set](btree.DefaultOrder, variant.Compare)
}

func newPartialIndex() *suffix.Tree { return suffix.New() }

func newPrefixIndex() *prefix.Index { return prefix.New() }

// ID returns the table's opaque instance identity, useful for a host
// process correlating logs or metrics across many tables.
func (t *Table[Row]) ID() uuid.UUID { return t.id }

// Schema returns the schema the table was constructed with.
func (t *Table[Row]) Schema() Schema { return t.schema }

// NextID returns the id the next Insert will need to use: the row
// vector's length plus one, derived from the vector itself rather
// than kept as a separate counter so restore cannot desynchronize it.
func (t *Table[Row]) NextID() uint32 { return uint32(len(t.rows)) + 1 }
