// Copyright 2014 The go-ethereum Authors
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

// bitvec is a bit vector which maps bytes in a program.
// An unset bit means the byte is an opcode, a set bit means
// it's data (i.e. argument of PUSHxx).
// bitvec 是一个位向量，未置位表示该字节是操作码，已置位表示该字节是 PUSH 的立即数。
type bitvec []byte

func (bits bitvec) set(pos uint64) {
	bits[pos/8] |= 1 << (pos % 8)
}

// setRange marks n consecutive bytes starting at pos as data.
func (bits bitvec) setRange(pos uint64, n uint64) {
	for ; n > 0 && pos%8 != 0; n, pos = n-1, pos+1 {
		bits.set(pos)
	}
	for ; n >= 8; n, pos = n-8, pos+8 {
		bits[pos/8] = 0xff
	}
	for ; n > 0; n, pos = n-1, pos+1 {
		bits.set(pos)
	}
}

// codeSegment checks if the position is in a code segment.
// codeSegment 检查指定位置是否在代码段中。
func (bits bitvec) codeSegment(pos uint64) bool {
	return ((bits[pos/8] >> (pos % 8)) & 1) == 0
}

// codeBitmap collects data locations in code.
// codeBitmap 收集代码中的数据位置。
func codeBitmap(code []byte) bitvec {
	// The bitmap is 4 bytes longer than necessary, in case the code
	// ends with a PUSH32, the algorithm will set bits on the
	// bitvector outside the bounds of the actual code.
	bits := make(bitvec, len(code)/8+1+4)
	for pc := uint64(0); pc < uint64(len(code)); {
		op := OpCode(code[pc])
		pc++
		if !op.IsPush() {
			continue
		}
		numbits := uint64(op - PUSH1 + 1)
		bits.setRange(pc, numbits)
		pc += numbits
	}
	return bits
}
