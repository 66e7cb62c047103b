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
	"encoding/json"
	"fmt"

	"sigs.k8s.io/yaml"
)

// Format selects the document syntax LoadSchema parses.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// LoadSchema parses a schema definition document, in the same
// definition.json/definition.yaml convenience-loader style as
// cmd/sdb. A Schema can always be built by hand instead; this exists
// only for config-file-driven callers.
func LoadSchema(data []byte, format Format) (Schema, error) {
	var s Schema
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &s); err != nil {
			return Schema{}, fmt.Errorf("decoding schema: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Schema{}, fmt.Errorf("decoding schema: %w", err)
		}
	default:
		return Schema{}, fmt.Errorf("unknown schema format %d", format)
	}
	if s.Name == "" {
		return Schema{}, fmt.Errorf("schema definition is missing a name")
	}
	hasPrimary := false
	for _, c := range s.Columns {
		if c.Primary {
			hasPrimary = true
			break
		}
	}
	if !hasPrimary {
		return Schema{}, fmt.Errorf("schema %s declares no primary column", s.Name)
	}
	return s, nil
}
