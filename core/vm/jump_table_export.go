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

// DefaultInstructionSet returns a copy of the instruction set the interpreter
// runs with.
// DefaultInstructionSet 返回解释器使用的指令集的副本。
func DefaultInstructionSet() JumpTable {
	return newInstructionSet()
}

// Stack returns the minimum and maximum stack requirements.
// Stack 返回最小和最大栈要求。
func (op *operation) Stack() (int, int) {
	return op.minStack, op.maxStack
}

// ConstantGas returns the flat gas charged before the operation executes.
func (op *operation) ConstantGas() uint64 {
	return op.constantGas
}

// Undefined reports whether the byte has no instruction assigned and aborts
// execution with ErrInvalidOpCode.
// Undefined 报告该字节是否未分配指令，执行时会以 ErrInvalidOpCode 中止。
func (op *operation) Undefined() bool {
	return op.undefined
}

// Pushes returns the number of items the operation leaves on the stack in
// exchange for the ones it pops.
func (op *operation) Pushes() int {
	return maxStack(op.minStack, 0) - op.maxStack
}
