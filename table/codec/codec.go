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

// Package codec frames a table.Backup()'s serialized bytes for
// storage or transmission, optionally zstd-compressing them. It is a
// pure transport concern: it never looks at row contents, only at the
// byte slice the caller already produced by marshaling the backup
// sequence.
package codec

import (
	"encoding/binary"
	"fmt"
	"runtime"

	"github.com/klauspost/compress/zstd"
)

// magic identifies a memtable backup frame; version allows the frame
// layout itself to evolve independently of the schema it carries.
const (
	magic        = "MTBK"
	frameVersion = 1

	flagPlain      byte = 0
	flagZstd       byte = 1
	headerLen           = len(magic) + 1 /*version*/ + 1 /*flag*/ + 8 /*uncompressed length*/
)

var encoder *zstd.Encoder

func init() {
	e, err := zstd.NewWriter(nil)
	if err != nil {
		panic(err)
	}
	encoder = e
}

// EncodeBackup frames data, optionally zstd-compressing it.
func EncodeBackup(data []byte, compress bool) []byte {
	out := make([]byte, 0, headerLen+len(data))
	out = append(out, magic...)
	out = append(out, frameVersion)

	flag := flagPlain
	payload := data
	if compress {
		flag = flagZstd
		payload = encoder.EncodeAll(data, nil)
	}
	out = append(out, flag)

	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(data)))
	out = append(out, lenBuf[:]...)
	out = append(out, payload...)
	return out
}

// DecodeBackup reverses EncodeBackup, returning the original
// (uncompressed) bytes.
func DecodeBackup(blob []byte) ([]byte, error) {
	if len(blob) < headerLen {
		return nil, fmt.Errorf("codec: frame too short (%d bytes)", len(blob))
	}
	if string(blob[:len(magic)]) != magic {
		return nil, fmt.Errorf("codec: bad magic")
	}
	i := len(magic)
	version := blob[i]
	i++
	if version != frameVersion {
		return nil, fmt.Errorf("codec: unsupported frame version %d", version)
	}
	flag := blob[i]
	i++
	uncompressedLen := binary.LittleEndian.Uint64(blob[i : i+8])
	i += 8
	payload := blob[i:]

	switch flag {
	case flagPlain:
		if uint64(len(payload)) != uncompressedLen {
			return nil, fmt.Errorf("codec: length mismatch: header says %d, got %d", uncompressedLen, len(payload))
		}
		return payload, nil
	case flagZstd:
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(runtime.GOMAXPROCS(0)))
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		out, err := dec.DecodeAll(payload, make([]byte, 0, uncompressedLen))
		if err != nil {
			return nil, fmt.Errorf("codec: zstd decode: %w", err)
		}
		if uint64(len(out)) != uncompressedLen {
			return nil, fmt.Errorf("codec: length mismatch: header says %d, got %d", uncompressedLen, len(out))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("codec: unknown compression flag %d", flag)
	}
}
