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
	"sort"
	"strings"

	"github.com/memtable/memtable/variant"
)

// person is the row type shared by this package's tests: a little
// "name, age, tags" table exercising every index kind.
type person struct {
	Name string
	Age  uint64
	Tags []string
}

func personSchema() Schema {
	return Schema{
		Name:    "people",
		Version: 1,
		Columns: []Column{
			{Name: "_id", Primary: true},
			{Name: "name", Unique: true, Partial: true, Prefixed: true},
			{Name: "age", Sortable: true, Nullable: true},
			{Name: "tags", Multiple: true, Sortable: true, Nullable: true},
		},
	}
}

func serializePerson(p person, forIndexing bool) map[string]variant.Variant {
	m := map[string]variant.Variant{
		"name": variant.Text(foldCase(p.Name, forIndexing)),
	}
	if p.Age != 0 {
		m["age"] = variant.Nat64(p.Age)
	} else {
		m["age"] = variant.Nil
	}
	if len(p.Tags) > 0 {
		tags := make([]variant.Variant, len(p.Tags))
		for i, tg := range p.Tags {
			tags[i] = variant.Text(foldCase(tg, forIndexing))
		}
		m["tags"] = variant.Array(tags)
	} else {
		m["tags"] = variant.Nil
	}
	return m
}

// foldCase demonstrates the forIndexing=true/false split: indexing
// sees a case-folded projection, backup sees the canonical one.
func foldCase(s string, forIndexing bool) string {
	if forIndexing {
		return strings.ToLower(s)
	}
	return s
}

func deserializePerson(m map[string]variant.Variant) person {
	p := person{}
	if s, ok := m["name"].Text(); ok {
		p.Name = s
	}
	if n, ok := m["age"].Uint(); ok {
		p.Age = n
	}
	if arr, ok := m["tags"].Array(); ok {
		for _, v := range arr {
			if s, ok := v.Text(); ok {
				p.Tags = append(p.Tags, s)
			}
		}
	}
	return p
}

func newPeopleTable() *Table[person] {
	return New[person](personSchema(), serializePerson, deserializePerson)
}

func mustInsert(t *Table[person], p person) uint32 {
	id, err := t.Insert(t.NextID(), p)
	if err != nil {
		panic(err)
	}
	return id
}

func nat(n uint64) variant.Variant { return variant.Nat64(n) }
func str(s string) variant.Variant { return variant.Text(s) }

func sortedNames(rows []person) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	sort.Strings(out)
	return out
}
