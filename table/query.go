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
	"github.com/memtable/memtable/msort"
	"github.com/memtable/memtable/variant"
)

// Op names a criterion's operator.
type Op string

const (
	OpEq         Op = "eq"
	OpContains   Op = "contains"
	OpStartsWith Op = "startsWith"
	OpNeq        Op = "neq"
	OpLt         Op = "lt"
	OpLte        Op = "lte"
	OpGt         Op = "gt"
	OpGte        Op = "gte"
	OpBetween    Op = "between"
)

// Dir is a sort direction.
type Dir string

const (
	Asc  Dir = "asc"
	Desc Dir = "desc"
)

// Criterion is one predicate of a find/count query.
type Criterion struct {
	Key   string
	Op    Op
	Value variant.Variant
}

// SortBy orders materialized rows by one key; Cmp is supplied by the
// caller and is the sole basis for the post-materialization sort.
type SortBy[Row any] struct {
	Key string
	Dir Dir
	Cmp func(a, b Row) int
}

// Limit pages a result set; it is clamped to the row-vector length.
type Limit struct {
	Offset int
	Size   int
}

// Find evaluates criterias into a set of candidate rows, sorts them,
// and pages the result.
func (t *Table[Row]) Find(criterias []Criterion, sortBy []SortBy[Row], limit *Limit) ([]Row, error) {
	if len(criterias) == 0 {
		ids, err := t.enumerateAll(sortBy)
		if err != nil {
			return nil, err
		}
		return applyLimit(t.materialize(ids), limit), nil
	}

	ids, err := t.resolveCriteria(criterias)
	if err != nil {
		return nil, err
	}
	rows := t.materialize(ids)
	rows = applySort(rows, sortBy)
	return applyLimit(rows, limit), nil
}

// FindOne returns the first row matching criterias, if any.
func (t *Table[Row]) FindOne(criterias []Criterion) (Row, bool, error) {
	rows, err := t.Find(criterias, nil, &Limit{Offset: 0, Size: 1})
	var zero Row
	if err != nil {
		return zero, false, err
	}
	if len(rows) == 0 {
		return zero, false, nil
	}
	return rows[0], true, nil
}

// Count returns the number of live rows matching criterias.
func (t *Table[Row]) Count(criterias []Criterion) (int, error) {
	if len(criterias) == 0 {
		n := 0
		for _, s := range t.rows {
			if s.live {
				n++
			}
		}
		return n, nil
	}
	ids, err := t.resolveCriteria(criterias)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, id := range ids {
		if _, ok, _ := t.Get(id); ok {
			n++
		}
	}
	return n, nil
}

func (t *Table[Row]) materialize(ids []uint32) []Row {
	rows := make([]Row, 0, len(ids))
	for _, id := range ids {
		if row, ok, _ := t.Get(id); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// applySort folds SortBy entries right-to-left: because msort.Sort is
// stable, sorting by the last key first and the first key last leaves
// the leftmost key dominant in the final order.
func applySort[Row any](rows []Row, sortBy []SortBy[Row]) []Row {
	for i := len(sortBy) - 1; i >= 0; i-- {
		sb := sortBy[i]
		msort.Sort(rows, func(a, b Row) bool {
			c := sb.Cmp(a, b)
			if sb.Dir == Desc {
				return c > 0
			}
			return c < 0
		})
	}
	return rows
}

func applyLimit[Row any](rows []Row, limit *Limit) []Row {
	if limit == nil {
		return rows
	}
	off := limit.Offset
	if off < 0 {
		off = 0
	}
	if off >= len(rows) {
		return nil
	}
	size := limit.Size
	if size < 0 {
		size = 0
	}
	end := off + size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[off:end]
}
