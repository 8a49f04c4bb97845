// Copyright 2015 The go-ethereum Authors
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

package vm

import (
	"math"
	"sync"

	"github.com/emberchain/ember/common"
	"github.com/holiman/uint256"
)

// maxPooledMemory caps the capacity of buffers handed back to the pool.
const maxPooledMemory = 16 << 10

var memoryPool = sync.Pool{
	New: func() any { return new(Memory) },
}

// Memory is the byte addressed scratch space of one call frame. It grows in
// whole words and never shrinks while the frame runs; every access is
// preceded by a Resize that covers it.
// Memory 是单个调用帧按字节寻址的临时空间，按整字增长，帧运行期间从不收缩。每次访问前都会先调用 Resize。
type Memory struct {
	data []byte
}

// NewMemory takes a cleared memory from the pool.
func NewMemory() *Memory {
	return memoryPool.Get().(*Memory)
}

// Free hands the memory back to the pool. Large buffers are left to the GC.
func (m *Memory) Free() {
	if cap(m.data) > maxPooledMemory {
		return
	}
	m.data = m.data[:0]
	memoryPool.Put(m)
}

// Len returns the current size in bytes.
func (m *Memory) Len() int { return len(m.data) }

// Resize zero-extends the memory to size bytes.
// Resize 将内存用零扩展到 size 字节。
func (m *Memory) Resize(size uint64) {
	if have := uint64(len(m.data)); have < size {
		m.data = append(m.data, make([]byte, size-have)...)
	}
}

// Write copies value into memory[offset:offset+size]. A zero size is a no-op
// whatever the offset.
func (m *Memory) Write(offset, size uint64, value []byte) {
	if size == 0 {
		return
	}
	if offset+size > uint64(len(m.data)) {
		panic("memory write beyond resized area")
	}
	copy(m.data[offset:offset+size], value)
}

// WriteWord stores val as a big-endian 32 byte word at offset.
// WriteWord 在 offset 处以 32 字节大端字写入 val。
func (m *Memory) WriteWord(offset uint64, val *uint256.Int) {
	if offset+32 > uint64(len(m.data)) {
		panic("memory write beyond resized area")
	}
	val.PutUint256(m.data[offset:])
}

// Copy returns an independent copy of memory[offset:offset+size].
func (m *Memory) Copy(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	return common.CopyBytes(m.data[offset : offset+size])
}

// Slice returns memory[offset:offset+size] without copying. The result is
// only valid until the next Resize.
func (m *Memory) Slice(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	return m.data[offset : offset+size]
}

// memoryEnd returns offset+size as the memory size an access needs, and
// whether it overflows 64 bits. Empty accesses need no memory at all.
// memoryEnd 返回访问所需的内存大小 offset+size，以及是否溢出 64 位。空访问不需要内存。
func memoryEnd(offset *uint256.Int, size uint64) (uint64, bool) {
	if size == 0 {
		return 0, false
	}
	if !offset.IsUint64() {
		return 0, true
	}
	end := offset.Uint64() + size
	return end, end < size
}

// calcMemSize64 is memoryEnd for a size taken off the stack.
func calcMemSize64(offset, size *uint256.Int) (uint64, bool) {
	if !size.IsUint64() {
		return 0, true
	}
	return memoryEnd(offset, size.Uint64())
}

// toWordSize rounds a byte size up to whole 32 byte words.
func toWordSize(size uint64) uint64 {
	if size > math.MaxUint64-31 {
		return math.MaxUint64/32 + 1
	}
	return (size + 31) / 32
}

// paddedSlice returns data[start:start+size] right-padded with zeroes to
// size bytes. Out of range starts read as zeroes.
// paddedSlice 返回 data[start:start+size]，不足 size 字节时右侧补零，越界部分读作零。
func paddedSlice(data []byte, start, size uint64) []byte {
	n := uint64(len(data))
	start = min(start, n)
	end := n
	if size < n-start {
		end = start + size
	}
	return common.RightPadBytes(data[start:end], int(size))
}
