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

// Package table composes package variant, package btree, package
// suffix and package prefix into the indexed table engine: a schema
// describes a row's columns, a caller-supplied pair of adapters
// projects rows to and from variant.Variant maps, and Table enforces
// uniqueness/nullability/size invariants while fanning each row out
// to the per-column indexes those invariants and the criteria
// pipeline need.
package table
