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
	"bytes"
	"math"
	"testing"

	"github.com/holiman/uint256"
)

func TestMemoryWrite(t *testing.T) {
	mem := NewMemory()
	defer mem.Free()

	mem.Resize(toWordSize(33) * 32)
	if mem.Len() != 64 {
		t.Fatalf("memory size mismatch: have %d, want 64", mem.Len())
	}
	mem.WriteWord(0, uint256.NewInt(0x2a))
	mem.Write(40, 3, []byte{1, 2, 3})
	mem.Write(1000, 0, nil) // empty writes ignore the offset

	if have := mem.Copy(31, 1); !bytes.Equal(have, []byte{0x2a}) {
		t.Errorf("word mismatch: have %x", have)
	}
	if have := mem.Slice(40, 3); !bytes.Equal(have, []byte{1, 2, 3}) {
		t.Errorf("slice mismatch: have %x", have)
	}
	cpy := mem.Copy(40, 3)
	cpy[0] = 0xff
	if mem.Slice(40, 1)[0] != 1 {
		t.Error("copy aliases memory")
	}
}

func TestMemoryEnd(t *testing.T) {
	tests := []struct {
		offset   *uint256.Int
		size     uint64
		want     uint64
		overflow bool
	}{
		{uint256.NewInt(10), 0, 0, false},
		{new(uint256.Int).Lsh(uint256.NewInt(1), 100), 0, 0, false},
		{uint256.NewInt(10), 32, 42, false},
		{uint256.NewInt(math.MaxUint64), 1, 0, true},
		{new(uint256.Int).Lsh(uint256.NewInt(1), 100), 1, 0, true},
	}
	for i, tt := range tests {
		have, overflow := memoryEnd(tt.offset, tt.size)
		if overflow != tt.overflow || (!overflow && have != tt.want) {
			t.Errorf("test %d: have %d/%v, want %d/%v", i, have, overflow, tt.want, tt.overflow)
		}
	}
}

func TestPaddedSlice(t *testing.T) {
	data := []byte{1, 2, 3}
	tests := []struct {
		start, size uint64
		want        []byte
	}{
		{0, 2, []byte{1, 2}},
		{1, 4, []byte{2, 3, 0, 0}},
		{5, 2, []byte{0, 0}},
		{math.MaxUint64, 1, []byte{0}},
		{2, 0, []byte{}},
	}
	for i, tt := range tests {
		if have := paddedSlice(data, tt.start, tt.size); !bytes.Equal(have, tt.want) {
			t.Errorf("test %d: have %x, want %x", i, have, tt.want)
		}
	}
}
