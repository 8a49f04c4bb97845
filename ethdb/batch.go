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

// Batch buffers writes until Write flushes them to the host store in one
// atomic step. It is not safe for concurrent use.
// Batch 缓冲写入，直到 Write 一次性原子地刷入宿主存储。不可并发使用。
type Batch interface {
	KeyValueWriter

	// ValueSize returns the number of bytes queued so far.
	ValueSize() int

	// Write flushes the queued writes.
	Write() error
}

// Batcher is a store that hands out batches.
type Batcher interface {
	NewBatch() Batch
}
