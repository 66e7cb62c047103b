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

package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/memtable/memtable/table"
	"github.com/memtable/memtable/variant"
)

// mapRow is the CLI's row type: schema.Columns only declares
// structural attributes (unique/sortable/...), not value types, so a
// host application always supplies its own serialize/deserialize.
// tablectl's is the identity, since it has no generated row struct to
// project.
type mapRow = map[string]variant.Variant

func serializeMapRow(row mapRow, forIndexing bool) map[string]variant.Variant { return row }

func deserializeMapRow(m map[string]variant.Variant) mapRow { return m }

// decodeTextBackup parses tablectl's line-oriented backup format: one
// row per line, tab-separated "column=kind:value" fields, e.g.
// "_id=nat32:1\tname=text:alice\tage=nat64:30".
func decodeTextBackup(data []byte) ([][]table.Entry, error) {
	var out [][]table.Entry
	for lineNo, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		var row []table.Entry
		for _, field := range strings.Split(line, "\t") {
			col, spec, ok := strings.Cut(field, "=")
			if !ok {
				return nil, fmt.Errorf("line %d: field %q missing '='", lineNo+1, field)
			}
			v, err := decodeValue(spec)
			if err != nil {
				return nil, fmt.Errorf("line %d: column %s: %w", lineNo+1, col, err)
			}
			row = append(row, table.Entry{Column: col, Value: v})
		}
		out = append(out, row)
	}
	return out, nil
}

func decodeValue(spec string) (variant.Variant, error) {
	kind, raw, ok := strings.Cut(spec, ":")
	if !ok {
		return variant.Variant{}, fmt.Errorf("value %q missing kind prefix", spec)
	}
	switch kind {
	case "nil":
		return variant.Nil, nil
	case "text":
		return variant.Text(raw), nil
	case "bool":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.Bool(b), nil
	case "nat32":
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.Nat32(uint32(n)), nil
	case "nat64", "nat":
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.Nat64(n), nil
	case "int64", "int":
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.Int64(n), nil
	case "float":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return variant.Variant{}, err
		}
		return variant.Float(f), nil
	default:
		return variant.Variant{}, fmt.Errorf("unknown value kind %q", kind)
	}
}

// textOrNat interprets a CLI-supplied query value: a decimal literal
// is treated as Nat64, anything else as Text.
func textOrNat(value string) variant.Variant {
	if n, err := strconv.ParseUint(value, 10, 64); err == nil {
		return variant.Nat64(n)
	}
	return variant.Text(value)
}

func formatRow(r mapRow) string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, r[k].String()))
	}
	return strings.Join(parts, " ")
}
