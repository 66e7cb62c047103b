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

// tablectl is a small operator CLI over package table: it can
// validate a schema document, load a table from a schema plus a
// backup file and run one query against it, or re-frame a backup file
// with a different compression setting.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/memtable/memtable/table"
	"github.com/memtable/memtable/table/codec"
)

var dashv bool

func init() {
	flag.BoolVar(&dashv, "v", false, "verbose")
}

func exitf(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
	os.Exit(1)
}

func logf(f string, args ...interface{}) {
	if dashv {
		fmt.Fprintf(os.Stderr, f+"\n", args...)
	}
}

func readFile(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		exitf("%s", err)
	}
	return data
}

func formatFor(path string) table.Format {
	if len(path) > 5 && (path[len(path)-5:] == ".yaml" || path[len(path)-4:] == ".yml") {
		return table.FormatYAML
	}
	return table.FormatJSON
}

// entry point for 'tablectl schema <definition.json|definition.yaml>'
func schemaCmd(path string) {
	data := readFile(path)
	s, err := table.LoadSchema(data, formatFor(path))
	if err != nil {
		exitf("loading schema: %s", err)
	}
	fp := s.Fingerprint()
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		exitf("marshaling schema: %s", err)
	}
	fmt.Printf("%s\nfingerprint: %x\n", out, fp)
}

// entry point for 'tablectl load <definition> <backup> <key> <value>'
func loadCmd(defPath, backupPath, key, value string) {
	s, err := table.LoadSchema(readFile(defPath), formatFor(defPath))
	if err != nil {
		exitf("loading schema: %s", err)
	}
	entries, err := decodeTextBackup(readFile(backupPath))
	if err != nil {
		exitf("decoding backup: %s", err)
	}

	t := table.New[mapRow](s, serializeMapRow, deserializeMapRow)
	if err := t.Restore(entries); err != nil {
		exitf("restoring: %s", err)
	}
	logf("restored %d table entries", len(entries))

	rows, err := t.Find([]table.Criterion{{Key: key, Op: table.OpEq, Value: textOrNat(value)}}, nil, nil)
	if err != nil {
		exitf("query: %s", err)
	}
	for _, r := range rows {
		fmt.Println(formatRow(r))
	}
}

// entry point for 'tablectl dump <in> <out> [-z]'
func dumpCmd(in, out string, compress bool) {
	blob := readFile(in)
	data, err := codec.DecodeBackup(blob)
	if err != nil {
		exitf("decoding frame: %s", err)
	}
	reframed := codec.EncodeBackup(data, compress)
	if err := os.WriteFile(out, reframed, 0o644); err != nil {
		exitf("writing %s: %s", out, err)
	}
	logf("re-framed %d bytes (compress=%v) -> %d bytes", len(data), compress, len(reframed))
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "usage:\n")
		fmt.Fprintf(os.Stderr, "    %s schema <definition.json|.yaml>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "    %s load <definition> <backup> <key> <value>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "    %s dump <in> <out> [-z]\n", os.Args[0])
		os.Exit(1)
	}

	switch args[0] {
	case "schema":
		if len(args) != 2 {
			exitf("usage: schema <definition.json|.yaml>")
		}
		schemaCmd(args[1])
	case "load":
		if len(args) != 5 {
			exitf("usage: load <definition> <backup> <key> <value>")
		}
		loadCmd(args[1], args[2], args[3], args[4])
	case "dump":
		if len(args) < 3 {
			exitf("usage: dump <in> <out> [-z]")
		}
		compress := len(args) > 3 && args[3] == "-z"
		dumpCmd(args[1], args[2], compress)
	default:
		exitf("unknown subcommand %q", args[0])
	}
}
