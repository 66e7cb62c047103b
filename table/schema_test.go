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

import "testing"

func TestFingerprintStableAndSensitive(t *testing.T) {
	a := personSchema()
	b := personSchema()
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("two identically-built schemas fingerprinted differently")
	}

	b.Version = 2
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatal("bumping version did not change the fingerprint")
	}

	c := personSchema()
	c.Columns[1].Unique = false
	if a.Fingerprint() == c.Fingerprint() {
		t.Fatal("changing a column flag did not change the fingerprint")
	}
}

func TestColumnByName(t *testing.T) {
	s := personSchema()
	if c, ok := s.ColumnByName("age"); !ok || !c.Sortable {
		t.Fatalf("ColumnByName(age) = %+v, %v", c, ok)
	}
	if _, ok := s.ColumnByName("nope"); ok {
		t.Fatal("ColumnByName matched a nonexistent column")
	}
}

func TestLoadSchemaJSON(t *testing.T) {
	doc := []byte(`{
		"name": "people",
		"version": 1,
		"columns": [
			{"name": "_id", "primary": true},
			{"name": "name", "unique": true}
		]
	}`)
	s, err := LoadSchema(doc, FormatJSON)
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}
	if s.Name != "people" || len(s.Columns) != 2 {
		t.Fatalf("LoadSchema = %+v", s)
	}
}

func TestLoadSchemaYAML(t *testing.T) {
	doc := []byte("name: people\nversion: 1\ncolumns:\n  - name: _id\n    primary: true\n  - name: name\n    unique: true\n")
	s, err := LoadSchema(doc, FormatYAML)
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}
	if s.Name != "people" || len(s.Columns) != 2 {
		t.Fatalf("LoadSchema = %+v", s)
	}
}

func TestLoadSchemaRejectsMissingPrimary(t *testing.T) {
	doc := []byte(`{"name": "bad", "columns": [{"name": "x"}]}`)
	if _, err := LoadSchema(doc, FormatJSON); err == nil {
		t.Fatal("expected error for schema with no primary column")
	}
}
