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
	"reflect"
	"testing"
)

func TestBackupSkipsTombstones(t *testing.T) {
	tb := seedPeople(t)
	id := mustInsert(tb, person{Name: "Zara", Age: 22})
	if err := tb.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	entries := tb.Backup()
	if len(entries) != 3 {
		t.Fatalf("Backup() returned %d rows, want 3 (tombstone excluded)", len(entries))
	}
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	tb := seedPeople(t)
	mid := mustInsert(tb, person{Name: "Zara", Age: 22})
	tb.Delete(mid)
	mustInsert(tb, person{Name: "Eve", Age: 50})

	entries := tb.Backup()

	restored := newPeopleTable()
	if err := restored.Restore(entries); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if restored.NextID() != tb.NextID() {
		t.Fatalf("NextID after restore = %d, want %d (tombstone gap preserved)", restored.NextID(), tb.NextID())
	}
	if _, found, _ := restored.Get(mid); found {
		t.Fatalf("restored table resurrected a tombstoned row at id %d", mid)
	}

	wantRows, err := tb.Find(nil, nil, nil)
	if err != nil {
		t.Fatalf("Find on original: %v", err)
	}
	gotRows, err := restored.Find(nil, nil, nil)
	if err != nil {
		t.Fatalf("Find on restored: %v", err)
	}
	if !reflect.DeepEqual(wantRows, gotRows) {
		t.Fatalf("Find mismatch after restore: got %+v, want %+v", gotRows, wantRows)
	}

	// Every index the original built must also resolve identically
	// after restore.
	rows, err := restored.Find([]Criterion{{Key: "name", Op: OpStartsWith, Value: str("e")}}, nil, nil)
	if err != nil || len(rows) != 1 || rows[0].Name != "Eve" {
		t.Fatalf("restored startsWith query = %v, %v", rows, err)
	}
}

func TestRestoreRejectsOnFingerprintMismatch(t *testing.T) {
	tb := seedPeople(t)
	entries := tb.Backup()

	otherSchema := personSchema()
	otherSchema.Version = 2
	restored := New[person](otherSchema, serializePerson, deserializePerson)

	err := restored.RestoreWithFingerprint(entries, tb.Schema().Fingerprint())
	if err == nil {
		t.Fatal("expected fingerprint mismatch error")
	}
}

func TestRestoreWithMatchingFingerprintSucceeds(t *testing.T) {
	tb := seedPeople(t)
	entries := tb.Backup()
	want := tb.Schema().Fingerprint()

	restored := newPeopleTable()
	if err := restored.RestoreWithFingerprint(entries, want); err != nil {
		t.Fatalf("RestoreWithFingerprint: %v", err)
	}
	if n, _ := restored.Count(nil); n != 3 {
		t.Fatalf("Count after restore = %d, want 3", n)
	}
}
