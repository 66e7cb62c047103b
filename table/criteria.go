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

	"github.com/memtable/memtable/btree"
	"github.com/memtable/memtable/idset"
	"github.com/memtable/memtable/msort"
	"github.com/memtable/memtable/variant"
)

// resolveCriteria folds each criterion's candidate set into a running
// intersection, short-circuiting as soon as it empties. The result is
// sorted ascending by id: idset.Set is a Go map and so has no
// ordering of its own, and a deterministic base order is needed for
// the no-sortBy case and as the tiebreak floor beneath whatever
// sortBy supplies.
func (t *Table[Row]) resolveCriteria(criterias []Criterion) ([]uint32, error) {
	var running idset.Set
	seeded := false
	for _, cr := range criterias {
		ids, err := t.evalCriterion(cr)
		if err != nil {
			return nil, err
		}
		if !seeded {
			running = ids
			seeded = true
		} else {
			running = idset.Intersect(running, ids)
		}
		if running.Len() == 0 {
			break
		}
	}
	if !seeded {
		return nil, nil
	}
	out := running.Slice()
	msort.Sort(out, func(a, b uint32) bool { return a < b })
	return out, nil
}

// evalCriterion resolves one criterion to its full candidate id set,
// independent of whatever running set it will be folded into.
func (t *Table[Row]) evalCriterion(cr Criterion) (idset.Set, error) {
	if cr.Key == "_id" {
		return t.evalIDCriterion(cr)
	}

	col, ok := t.schema.ColumnByName(cr.Key)
	if !ok {
		return nil, fmt.Errorf("Unknown column %s", cr.Key)
	}
	idx := t.indexes[cr.Key]

	switch cr.Op {
	case OpEq:
		return t.evalEq(col, idx, cr)
	case OpContains:
		return t.evalContains(col, idx, cr)
	case OpStartsWith:
		return t.evalStartsWith(col, idx, cr)
	case OpNeq, OpLt, OpLte, OpGt, OpGte, OpBetween:
		return t.evalRange(col, idx, cr)
	default:
		return nil, fmt.Errorf("No index found for column %s", cr.Key)
	}
}

func (t *Table[Row]) evalIDCriterion(cr Criterion) (idset.Set, error) {
	if cr.Op != OpEq {
		return nil, errors.New("Unsupported operator for column _id")
	}
	if cr.Value.Kind() != variant.KindNat32 {
		return nil, errors.New("Type of column _id must be Nat32")
	}
	n, _ := cr.Value.Uint()
	id := uint32(n)
	if _, live, _ := t.Get(id); live {
		return idset.New(id), nil
	}
	return idset.New(), nil
}

func (t *Table[Row]) evalEq(col Column, idx *columnIndex, cr Criterion) (idset.Set, error) {
	if cr.Value.IsNil() {
		if col.Unique {
			return nil, errors.New("Isnull not implemented for unique indexes")
		}
		if col.Sortable {
			if idx.sortableNull == nil {
				return idset.New(), nil
			}
			return idx.sortableNull.Clone(), nil
		}
		return nil, fmt.Errorf("No index found for column %s", cr.Key)
	}
	if col.Unique {
		if id, ok := idx.unique.Get(cr.Value); ok {
			return idset.New(id), nil
		}
		return idset.New(), nil
	}
	if col.Sortable {
		if ids, ok := idx.sortable.Get(cr.Value); ok {
			return ids.Clone(), nil
		}
		return idset.New(), nil
	}
	return nil, fmt.Errorf("No index found for column %s", cr.Key)
}

func (t *Table[Row]) evalContains(col Column, idx *columnIndex, cr Criterion) (idset.Set, error) {
	if !col.Partial {
		return nil, fmt.Errorf("No index found for column %s", cr.Key)
	}
	s, ok := cr.Value.Text()
	if !ok {
		return nil, fmt.Errorf("Invalid type for column %s", cr.Key)
	}
	if got := idx.partial.Find(s); got != nil {
		return got.Clone(), nil
	}
	return idset.New(), nil
}

func (t *Table[Row]) evalStartsWith(col Column, idx *columnIndex, cr Criterion) (idset.Set, error) {
	if !col.Prefixed {
		return nil, fmt.Errorf("No index found for column %s", cr.Key)
	}
	s, ok := cr.Value.Text()
	if !ok {
		return nil, fmt.Errorf("Invalid type for column %s", cr.Key)
	}
	if got := idx.prefixed.StartsWith(s); got != nil {
		return got.Clone(), nil
	}
	return idset.New(), nil
}

// evalRange dispatches neq/lt/lte/gt/gte/between. Sortable is the
// gate: a unique+sortable column's only allocated ordered tree is the
// unique one, so that is what is scanned; a sortable-only column
// scans its own set-valued tree.
func (t *Table[Row]) evalRange(col Column, idx *columnIndex, cr Criterion) (idset.Set, error) {
	if !col.Sortable {
		return nil, fmt.Errorf("No index found for column %s", cr.Key)
	}
	if col.Unique {
		return rangeFromUniqueTree(idx.unique, cr)
	}
	return rangeFromSortableTree(idx.sortable, cr)
}

func rangeFromUniqueTree(tree *btree.Tree[uint32], cr Criterion) (idset.Set, error) {
	out := idset.New()
	switch cr.Op {
	case OpNeq:
		for _, id := range tree.FindNeq(cr.Value) {
			out.Add(id)
		}
	case OpLt:
		for _, id := range tree.FindLt(cr.Value) {
			out.Add(id)
		}
	case OpLte:
		for _, id := range tree.FindLte(cr.Value) {
			out.Add(id)
		}
	case OpGt:
		for _, id := range tree.FindGt(cr.Value) {
			out.Add(id)
		}
	case OpGte:
		for _, id := range tree.FindGte(cr.Value) {
			out.Add(id)
		}
	case OpBetween:
		lo, hi, ok := cr.Value.Tuple()
		if !ok {
			return nil, fmt.Errorf("Value should be a tuple for column %s", cr.Key)
		}
		for _, id := range tree.FindBetween(lo, hi) {
			out.Add(id)
		}
	}
	return out, nil
}

func rangeFromSortableTree(tree *btree.Tree[idset.Set], cr Criterion) (idset.Set, error) {
	out := idset.New()
	collect := func(sets []idset.Set) {
		for _, s := range sets {
			out.UnionWith(s)
		}
	}
	switch cr.Op {
	case OpNeq:
		collect(tree.FindNeq(cr.Value))
	case OpLt:
		collect(tree.FindLt(cr.Value))
	case OpLte:
		collect(tree.FindLte(cr.Value))
	case OpGt:
		collect(tree.FindGt(cr.Value))
	case OpGte:
		collect(tree.FindGte(cr.Value))
	case OpBetween:
		lo, hi, ok := cr.Value.Tuple()
		if !ok {
			return nil, fmt.Errorf("Value should be a tuple for column %s", cr.Key)
		}
		collect(tree.FindBetween(lo, hi))
	}
	return out, nil
}
