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

import (
	"errors"

	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/crypto"
	"github.com/emberchain/ember/log"
	"github.com/emberchain/ember/params"
)

// ScopeContext contains the things that are per-call, such as stack and memory,
// but not transients like pc and gas
// ScopeContext 包含每次调用的内容，例如栈和内存，但不包括 pc 和 gas 这类瞬态内容
type ScopeContext struct {
	Memory   *Memory
	Stack    *Stack
	Contract *Contract
}

// EVMInterpreter represents an EVM interpreter
// EVMInterpreter 表示一个 EVM 解释器
type EVMInterpreter struct {
	evm   *EVM
	table *JumpTable

	hasher    crypto.KeccakState // Keccak256 hasher instance shared across opcodes
	hasherBuf common.Hash        // Keccak256 hasher result array shared across opcodes

	returnData []byte // Return data of the last REVERT, or nil
}

// NewEVMInterpreter returns a new instance of the Interpreter.
// NewEVMInterpreter 返回一个新的解释器实例。
func NewEVMInterpreter(evm *EVM) *EVMInterpreter {
	return &EVMInterpreter{evm: evm, table: &defaultInstructionSet}
}

// Run loops and evaluates the contract's code with the given input data and
// returns the return byte-slice and an error if one occurred.
//
// Every instruction is checked against its stack bounds and its gas cost
// before it executes, so a failing instruction leaves no partial effect.
// Any error other than ErrExecutionReverted should be considered a
// revert-and-consume-all-gas operation.
// Run 循环执行合约代码并返回结果。每条指令在执行前都会检查栈边界和 gas，
// 因此失败的指令不会留下部分效果。除 ErrExecutionReverted 外的错误都应视为回滚并消耗所有 gas。
func (in *EVMInterpreter) Run(contract *Contract, input []byte) (ret []byte, err error) {
	// Increment the call depth which is restricted to 1024
	in.evm.depth++
	defer func() { in.evm.depth-- }()

	// Reset the previous call's return data.
	in.returnData = nil

	// Don't bother with the execution if there's no code.
	// 如果没有代码，就不执行。
	if len(contract.Code) == 0 {
		return nil, nil
	}
	var (
		op          OpCode
		mem         = NewMemory()
		stack       = newstack()
		callContext = &ScopeContext{
			Memory:   mem,
			Stack:    stack,
			Contract: contract,
		}
		// For optimisation reason we're using uint64 as the program counter.
		// It's theoretically possible to go above 2^64. The YP defines the PC
		// to be uint256. Practically much less so feasible.
		pc  = uint64(0)
		res []byte
	)
	defer func() {
		returnStack(stack)
		mem.Free()
	}()
	contract.Input = input

	defer func() {
		if err != nil {
			log.Trace("Execution aborted", "address", contract.Address(), "pc", pc, "op", op, "gas", contract.Gas, "err", err)
		}
	}()

	// The Interpreter main run loop. This loop runs until either an explicit
	// STOP, RETURN or SELFDESTRUCT is executed, or an error occurred during
	// the execution of one of the operations.
	// 解释器主循环，直到执行 STOP、RETURN 或 SELFDESTRUCT，或某个操作出错。
	for {
		op = contract.GetOp(pc)
		operation := in.table[op]

		// Validate stack
		// 验证栈
		if sLen := stack.len(); sLen < operation.minStack {
			return nil, &ErrStackUnderflow{stackLen: sLen, required: operation.minStack}
		} else if sLen > operation.maxStack {
			return nil, &ErrStackOverflow{stackLen: sLen, limit: operation.maxStack}
		}
		if !contract.UseGas(operation.constantGas) {
			return nil, ErrOutOfGas
		}
		if operation.memorySize != nil {
			memSize, overflow := operation.memorySize(stack)
			if overflow {
				return nil, ErrGasUintOverflow
			}
			// memory is expanded in words of 32 bytes.
			// 内存以 32 字节的字为单位扩展。
			if memSize > 0 {
				if memSize > params.MaxMemorySize {
					return nil, ErrMemoryLimitExceeded
				}
				mem.Resize(toWordSize(memSize) * 32)
			}
		}
		// execute the operation
		// 执行操作
		res, err = operation.execute(&pc, in, callContext)
		if err != nil {
			break
		}
		pc++
	}
	if errors.Is(err, errStopToken) {
		err = nil // clear stop token error
	}
	return res, err
}
