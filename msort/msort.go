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

// Package msort implements a plain stable merge sort over a generic
// growable sequence, driven by a caller-supplied less function. It is
// the sole sorting primitive used by the table engine to apply
// SortBy entries: because merge sort is stable, a multi-key sort is
// obtained by sorting once per key from the least-significant key to
// the most-significant, rather than by a composite comparator.
package msort

// Sort stably sorts data in place according to less. It is a
// top-down merge sort; no multi-threaded, chunked sorting machinery
// is needed here since table rows are sorted in memory after criteria
// have already reduced the candidate set.
func Sort[T any](data []T, less func(a, b T) bool) {
	if len(data) < 2 {
		return
	}
	buf := make([]T, len(data))
	mergeSort(data, buf, less)
}

func mergeSort[T any](data, buf []T, less func(a, b T) bool) {
	n := len(data)
	if n < 2 {
		return
	}
	mid := n / 2
	left, right := data[:mid], data[mid:]
	mergeSort(left, buf[:mid], less)
	mergeSort(right, buf[mid:], less)
	merge(data, left, right, buf, less)
}

func merge[T any](dst []T, left, right, buf []T, less func(a, b T) bool) {
	copy(buf[:len(left)], left)
	lbuf := buf[:len(left)]
	i, j, k := 0, 0, 0
	for i < len(lbuf) && j < len(right) {
		// right[j] must be strictly less than lbuf[i] to take
		// precedence; ties favor the left run, preserving stability.
		if less(right[j], lbuf[i]) {
			dst[k] = right[j]
			j++
		} else {
			dst[k] = lbuf[i]
			i++
		}
		k++
	}
	for i < len(lbuf) {
		dst[k] = lbuf[i]
		i++
		k++
	}
	for j < len(right) {
		dst[k] = right[j]
		j++
		k++
	}
}
