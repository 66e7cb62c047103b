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
	"strings"
	"testing"

	"github.com/memtable/memtable/variant"
)

func TestInsertAssignsSequentialIDs(t *testing.T) {
	tb := newPeopleTable()
	for i, name := range []string{"Alice", "Bob", "Carol"} {
		id, err := tb.Insert(tb.NextID(), person{Name: name, Age: 30})
		if err != nil {
			t.Fatalf("Insert(%s) error: %v", name, err)
		}
		if id != uint32(i)+1 {
			t.Fatalf("Insert(%s) id = %d, want %d", name, id, i+1)
		}
	}
}

func TestInsertRejectsNonSequentialID(t *testing.T) {
	tb := newPeopleTable()
	if _, err := tb.Insert(5, person{Name: "Alice"}); err == nil {
		t.Fatal("expected error inserting id 5 into an empty table")
	}
	if _, err := tb.Insert(0, person{Name: "Alice"}); err == nil {
		t.Fatal("expected error inserting id 0")
	}
}

func TestInsertRejectsDuplicateUniqueKey(t *testing.T) {
	tb := newPeopleTable()
	mustInsert(tb, person{Name: "Alice", Age: 30})
	if _, err := tb.Insert(tb.NextID(), person{Name: "alice", Age: 40}); err == nil {
		t.Fatal("expected duplicate unique key error")
	} else if !strings.Contains(err.Error(), "Duplicated unique key") {
		t.Fatalf("error = %v, want a duplicated-unique-key error", err)
	}
}

func TestGetMissingAndTombstoned(t *testing.T) {
	tb := newPeopleTable()
	id := mustInsert(tb, person{Name: "Alice", Age: 30})
	if _, found, _ := tb.Get(id + 1); found {
		t.Fatal("Get of never-inserted id reported found")
	}
	if err := tb.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := tb.Get(id); found {
		t.Fatal("Get of tombstoned id reported found")
	}
}

func TestDeleteIsNotReusedByInsert(t *testing.T) {
	tb := newPeopleTable()
	id := mustInsert(tb, person{Name: "Alice", Age: 30})
	if err := tb.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	next := tb.NextID()
	if next != id+1 {
		t.Fatalf("NextID() after delete = %d, want %d (ids are never reused)", next, id+1)
	}
}

func TestReplaceUpdatesIndexes(t *testing.T) {
	tb := newPeopleTable()
	id := mustInsert(tb, person{Name: "Alice", Age: 30})
	mustInsert(tb, person{Name: "Bob", Age: 40})

	if err := tb.Replace(id, person{Name: "Alice", Age: 31}); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	row, found, _ := tb.Get(id)
	if !found || row.Age != 31 {
		t.Fatalf("Get after Replace = %+v, found=%v", row, found)
	}

	rows, err := tb.Find([]Criterion{{Key: "age", Op: OpEq, Value: nat(31)}}, nil, nil)
	if err != nil || len(rows) != 1 {
		t.Fatalf("Find(age=31) = %v, %v", rows, err)
	}
}

func TestReplaceRollsBackOnUniqueConflict(t *testing.T) {
	tb := newPeopleTable()
	id := mustInsert(tb, person{Name: "Alice", Age: 30})
	mustInsert(tb, person{Name: "Bob", Age: 40})

	if err := tb.Replace(id, person{Name: "bob", Age: 99}); err == nil {
		t.Fatal("expected Replace to fail on duplicate unique key")
	}

	row, found, _ := tb.Get(id)
	if !found || row.Name != "Alice" || row.Age != 30 {
		t.Fatalf("Replace failure left row mutated: %+v, found=%v", row, found)
	}
	rows, err := tb.Find([]Criterion{{Key: "name", Op: OpEq, Value: str("alice")}}, nil, nil)
	if err != nil || len(rows) != 1 {
		t.Fatalf("old indexed value should still resolve: %v, %v", rows, err)
	}
}

func TestDeleteUnknownIDErrors(t *testing.T) {
	tb := newPeopleTable()
	if err := tb.Delete(1); err == nil {
		t.Fatal("expected error deleting from empty table")
	}
}

func TestDeleteTombstonedRowReportsPrimaryKeyNotFound(t *testing.T) {
	tb := newPeopleTable()
	id := mustInsert(tb, person{Name: "Alice", Age: 30})
	if err := tb.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	err := tb.Delete(id)
	if err == nil || !strings.Contains(err.Error(), "Primary key not found: 1") {
		t.Fatalf("second Delete error = %v, want Primary key not found", err)
	}
}

func TestReplaceMissingRowReportsNotFound(t *testing.T) {
	tb := newPeopleTable()
	id := mustInsert(tb, person{Name: "Alice", Age: 30})
	mustDelete(t, tb, id)
	err := tb.Replace(id, person{Name: "Alice", Age: 31})
	if err == nil || !strings.Contains(err.Error(), "Not found") {
		t.Fatalf("Replace on tombstoned row error = %v, want Not found", err)
	}
}

func mustDelete(t *testing.T, tb *Table[person], id uint32) {
	t.Helper()
	if err := tb.Delete(id); err != nil {
		t.Fatalf("Delete(%d): %v", id, err)
	}
}

func TestValidateRejectsNullArrayElement(t *testing.T) {
	tb := newPeopleTable()
	m := map[string]variant.Variant{
		"name": variant.Text("dave"),
		"age":  variant.Nil,
		"tags": variant.Array([]variant.Variant{str("eng"), variant.Nil}),
	}
	errs := tb.validate(m)
	found := false
	for _, e := range errs {
		if strings.Contains(e, "tags can't be null") {
			found = true
		}
	}
	if !found {
		t.Fatalf("validate errors = %v, want a \"tags can't be null\" entry for the nil array element", errs)
	}
}
