// Copyright 2024 The go-ethereum Authors
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

// Package program is a utility to create bytecode for tests and for the
// command line tool. It is not a compiler: construction errors panic, so
// avoid feeding it untrusted input.
//
// Package program 是为测试和命令行工具构造字节码的工具。它不是编译器：构造错误会 panic。
package program

import (
	"fmt"
	"math/big"

	"github.com/emberchain/ember/core/vm"
	"github.com/holiman/uint256"
)

// Program is a simple bytecode container.
// Program 是一个简单的字节码容器。
type Program struct {
	code []byte
}

// New creates a new Program
func New() *Program {
	return &Program{
		code: make([]byte, 0),
	}
}

// add adds the op to the code.
func (p *Program) add(op byte) *Program {
	p.code = append(p.code, op)
	return p
}

// doPush creates a PUSHX instruction and pushes the given val.
// - If the val is nil, it pushes zero
// - If the val is bigger than 32 bytes, it panics
func (p *Program) doPush(val *uint256.Int) {
	if val == nil {
		val = new(uint256.Int)
	}
	valBytes := val.Bytes()
	if len(valBytes) == 0 {
		valBytes = append(valBytes, 0)
	}
	bLen := len(valBytes)
	p.add(byte(vm.PUSH1) - 1 + byte(bLen))
	p.Append(valBytes)
}

// Append appends the given data to the code.
func (p *Program) Append(data []byte) *Program {
	p.code = append(p.code, data...)
	return p
}

// Bytes returns the Program bytecode. OBS: This is not a copy.
func (p *Program) Bytes() []byte {
	return p.code
}

// SetBytes sets the Program bytecode.
func (p *Program) SetBytes(code []byte) {
	p.code = code
}

// Hex returns the Program bytecode as a hex string.
func (p *Program) Hex() string {
	return fmt.Sprintf("%02x", p.Bytes())
}

// Op appends the given opcode(s).
func (p *Program) Op(ops ...vm.OpCode) *Program {
	for _, op := range ops {
		p.add(byte(op))
	}
	return p
}

// Push creates a PUSHX instruction with the data provided. Zero is pushed as
// [PUSH1 0]; use Push0 for the one byte form.
// Push 使用给定数据创建 PUSHX 指令。零值以 [PUSH1 0] 形式压入。
func (p *Program) Push(val any) *Program {
	switch v := val.(type) {
	case int:
		p.doPush(new(uint256.Int).SetUint64(uint64(v)))
	case uint64:
		p.doPush(new(uint256.Int).SetUint64(v))
	case uint32:
		p.doPush(new(uint256.Int).SetUint64(uint64(v)))
	case uint16:
		p.doPush(new(uint256.Int).SetUint64(uint64(v)))
	case *big.Int:
		p.doPush(uint256.MustFromBig(v))
	case *uint256.Int:
		p.doPush(v)
	case uint256.Int:
		p.doPush(&v)
	case []byte:
		p.doPush(new(uint256.Int).SetBytes(v))
	case byte:
		p.doPush(new(uint256.Int).SetUint64(uint64(v)))
	case interface{ Bytes() []byte }:
		// Addresses and hashes, by value or by pointer.
		p.doPush(new(uint256.Int).SetBytes(v.Bytes()))
	case nil:
		p.doPush(nil)
	default:
		panic(fmt.Sprintf("unsupported type %T", v))
	}
	return p
}

// Push0 implements PUSH0 (0x5f).
func (p *Program) Push0() *Program {
	return p.Op(vm.PUSH0)
}

// ExtcodeCopy performs an extcodecopy invocation.
func (p *Program) ExtcodeCopy(address, memOffset, codeOffset, length any) *Program {
	p.Push(length)
	p.Push(codeOffset)
	p.Push(memOffset)
	p.Push(address)
	return p.Op(vm.EXTCODECOPY)
}

// Label returns the PC (of the next instruction).
func (p *Program) Label() uint64 {
	return uint64(len(p.code))
}

// Jumpdest adds a JUMPDEST op, and returns the PC of that instruction.
// Jumpdest 添加 JUMPDEST 操作并返回该指令的 PC。
func (p *Program) Jumpdest() (*Program, uint64) {
	here := p.Label()
	p.Op(vm.JUMPDEST)
	return p, here
}

// Jump pushes the destination and adds a JUMP.
func (p *Program) Jump(loc any) *Program {
	p.Push(loc)
	p.Op(vm.JUMP)
	return p
}

// JumpIf implements JUMPI.
func (p *Program) JumpIf(loc any, condition any) *Program {
	p.Push(condition)
	p.Push(loc)
	p.Op(vm.JUMPI)
	return p
}

// Size returns the current size of the bytecode.
func (p *Program) Size() int {
	return len(p.code)
}

// InputToStack loads the 32-byte calldata word at inputOffset onto the stack.
// InputToStack 把 inputOffset 处 32 字节的调用数据加载到栈上。
func (p *Program) InputToStack(inputOffset uint32) *Program {
	p.Push(inputOffset)
	return p.Op(vm.CALLDATALOAD)
}

// InputAddressToStack stores the input (calldata) to memory as address (20 bytes).
func (p *Program) InputAddressToStack(inputOffset uint32) *Program {
	p.Push(inputOffset)
	p.Op(vm.CALLDATALOAD) // Loads [n -> n + 32] of input data to stack top
	mask, _ := big.NewInt(0).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF", 16)
	p.Push(mask) // turn into address
	return p.Op(vm.AND)
}

// Mstore stores the provided data (into the memory area starting at memStart).
// Mstore 将数据存入以 memStart 开始的内存区域。
func (p *Program) Mstore(data []byte, memStart uint32) *Program {
	var idx = 0
	// We need to store it in chunks of 32 bytes
	for ; idx+32 <= len(data); idx += 32 {
		chunk := data[idx : idx+32]
		p.Push(chunk)
		p.Push(uint32(idx) + memStart)
		p.Op(vm.MSTORE)
	}
	// Remainders become stored using MSTORE8
	for ; idx < len(data); idx++ {
		b := data[idx]
		p.Push(b)
		p.Push(uint32(idx) + memStart)
		p.Op(vm.MSTORE8)
	}
	return p
}

// MemToStorage copies the given memory area into SSTORE slots. It expects data
// to be aligned to 32 byte, and does not zero out remainders.
func (p *Program) MemToStorage(memStart, memSize, startSlot int) *Program {
	for idx := memStart; idx < (memStart + memSize); idx += 32 {
		p.Push(idx)
		p.Op(vm.MLOAD)
		p.Push(startSlot)
		p.Op(vm.SSTORE)
		startSlot++
	}
	return p
}

// ReturnViaCodeCopy utilises CODECOPY to place the given data in the bytecode of
// p, loads into memory (offset 0) and returns the code.
// This is a typical "constructor".
// Note: since all indexing is calculated immediately, the preceding bytecode
// must not be expanded or shortened.
// ReturnViaCodeCopy 是典型的“构造函数”：通过 CODECOPY 把 data 复制到内存并返回。
func (p *Program) ReturnViaCodeCopy(data []byte) *Program {
	p.Push(len(data))
	// PUSH2 always fits the offset, code is limited well below 0xffff
	p.Op(vm.PUSH2)
	offsetPos := p.Size()
	p.Append([]byte{0, 0})
	p.Push(0)
	p.Op(vm.CODECOPY)
	p.Return(0, len(data))
	offset := p.Size()
	p.Append(data)
	// Now, go back and fix the offset
	p.code[offsetPos] = byte(offset >> 8)
	p.code[offsetPos+1] = byte(offset)
	return p
}

// Sstore stores the given value to the given slot.
// OBS! Does not verify that the value indeed fits into 32 bytes.
func (p *Program) Sstore(slot any, value any) *Program {
	p.Push(value)
	p.Push(slot)
	return p.Op(vm.SSTORE)
}

// Sload leaves the value of the given slot on the stack.
func (p *Program) Sload(slot any) *Program {
	p.Push(slot)
	return p.Op(vm.SLOAD)
}

// Log emits LOGn of memory[offset:offset+size] with the given topics, the
// first topic ending up as topic 0.
// Log 以给定主题发出 memory[offset:offset+size] 的 LOGn。
func (p *Program) Log(offset, size int, topics ...any) *Program {
	if len(topics) > 4 {
		panic("at most 4 topics")
	}
	for i := len(topics) - 1; i >= 0; i-- {
		p.Push(topics[i])
	}
	p.Push(size)
	p.Push(offset)
	return p.Op(vm.LOG0 + vm.OpCode(len(topics)))
}

// Return implements RETURN
func (p *Program) Return(offset, len int) *Program {
	p.Push(len)
	p.Push(offset)
	return p.Op(vm.RETURN)
}

// ReturnData loads the given data into memory, and does a return with it
func (p *Program) ReturnData(data []byte) *Program {
	p.Mstore(data, 0)
	return p.Return(0, len(data))
}

// Revert implements REVERT
func (p *Program) Revert(offset, len int) *Program {
	p.Push(len)
	p.Push(offset)
	return p.Op(vm.REVERT)
}

// RevertData loads the given data into memory and reverts with it as payload.
func (p *Program) RevertData(data []byte) *Program {
	p.Mstore(data, 0)
	return p.Revert(0, len(data))
}

// Selfdestruct pushes beneficiary and invokes selfdestruct.
func (p *Program) Selfdestruct(beneficiary any) *Program {
	p.Push(beneficiary)
	return p.Op(vm.SELFDESTRUCT)
}
