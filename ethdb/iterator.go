// Copyright 2018 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package ethdb

// Iterator walks key/value pairs in ascending key order. Key and Value are
// only valid until the next call to Next. An iterator is bound to a single
// goroutine and must be released once done, exhausted or not.
// Iterator 按键升序遍历键值对。使用完毕后无论是否遍历完都必须释放。
type Iterator interface {
	// Next advances to the next pair and reports whether there is one. After
	// a failure it keeps returning false.
	Next() bool

	// Error returns the failure that stopped the iteration, if any.
	Error() error

	Key() []byte
	Value() []byte

	// Release frees the iterator. It may be called more than once.
	Release()
}

// Iteratee is a store that can be iterated.
type Iteratee interface {
	// NewIterator walks the keys with the given prefix, starting at
	// prefix+start.
	NewIterator(prefix []byte, start []byte) Iterator
}
