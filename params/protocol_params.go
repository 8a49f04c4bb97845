// Copyright 2016 The go-ethereum Authors
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

package params

const (
	TxGas uint64 = 21000 // Per transaction not creating a contract or calling code.
	// TxGas 是普通转账交易的固定 gas 费用。

	StackLimit uint64 = 1024 // Maximum size of VM stack allowed.
	// StackLimit 是 VM 栈允许的最大大小。

	CallCreateDepth uint64 = 1024 // Maximum depth of call/create stack.

	// CallGasCap is the gas handed to read-only simulations when the caller does
	// not pick a limit.
	// CallGasCap 是只读模拟调用默认使用的 gas。
	CallGasCap uint64 = 1_000_000

	MaxCodeSize     = 24576           // Maximum bytecode to permit for a contract
	MaxInitCodeSize = 2 * MaxCodeSize // Maximum initcode to permit in a creation transaction

	// MaxMemorySize bounds the memory a single execution context may allocate.
	// Gas does not price memory expansion, so the bound is enforced directly.
	// MaxMemorySize 限制单个执行上下文可分配的内存。
	MaxMemorySize uint64 = 32 * 1024 * 1024
)

// Static gas prices of the instruction set. Memory expansion and storage access
// are not priced separately.
// 指令集的静态 gas 价格。
const (
	GasQuickStep   uint64 = 2
	GasFastestStep uint64 = 3
	GasFastStep    uint64 = 5
	GasMidStep     uint64 = 8
	GasSlowStep    uint64 = 10
	GasExtStep     uint64 = 20

	ExpGas          uint64 = 10    // EXP instruction.
	Keccak256Gas    uint64 = 30    // Once per KECCAK256 operation.
	BalanceGas      uint64 = 400   // BALANCE instruction.
	ExtcodeGas      uint64 = 700   // EXTCODESIZE, EXTCODECOPY and EXTCODEHASH.
	SloadGas        uint64 = 200   // SLOAD instruction.
	SstoreGas       uint64 = 20000 // SSTORE instruction.
	JumpdestGas     uint64 = 1     // Once per JUMPDEST operation.
	SelfBalanceGas  uint64 = 5     // SELFBALANCE instruction.
	LogGas          uint64 = 375   // Per LOG* operation, multiplied by the topic count plus one.
	CreateGas       uint64 = 32000 // CREATE and CREATE2.
	CallGas         uint64 = 700   // CALL, CALLCODE, DELEGATECALL and STATICCALL.
	SelfdestructGas uint64 = 5000  // SELFDESTRUCT instruction.
	BlockhashGas    uint64 = 20    // BLOCKHASH instruction.
)
