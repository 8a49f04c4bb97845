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

package core

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/core/types"
	"github.com/emberchain/ember/core/vm"
	"github.com/emberchain/ember/params"
	"github.com/holiman/uint256"
)

// ExecutionResult includes all output after executing given evm
// message no matter the execution itself is successful or not.
// ExecutionResult 包含执行给定 EVM 消息后的所有输出，无论执行本身是否成功。
type ExecutionResult struct {
	UsedGas    uint64 // Total used gas
	Err        error  // Any error encountered during the execution(listed in core/vm/errors.go)
	ReturnData []byte // Returned data from evm(function result or data supplied with revert opcode)
}

// Unwrap returns the internal evm error which allows us for further
// analysis outside.
func (result *ExecutionResult) Unwrap() error {
	return result.Err
}

// Failed returns the indicator whether the execution is successful or not
// Failed 返回执行是否成功
func (result *ExecutionResult) Failed() bool { return result.Err != nil }

// Return is a helper function to help caller distinguish between revert reason
// and function return. Return returns the data after execution if no error occurs.
func (result *ExecutionResult) Return() []byte {
	if result.Err != nil {
		return nil
	}
	return common.CopyBytes(result.ReturnData)
}

// Revert returns the concrete revert reason if the execution is aborted by `REVERT`
// opcode. Note the reason can be nil if no data supplied with revert opcode.
// Revert 返回由 REVERT 中止执行时的具体原因。如果 REVERT 没有提供数据，原因可能是 nil。
func (result *ExecutionResult) Revert() []byte {
	if !errors.Is(result.Err, vm.ErrExecutionReverted) {
		return nil
	}
	return common.CopyBytes(result.ReturnData)
}

// IntrinsicGas computes the fixed charge of a message before any code runs.
// Only plain value transfers pay one; creations and code calls pay for the
// opcodes they execute and nothing else.
// IntrinsicGas 计算消息在运行代码前的固定费用。只有普通转账需要支付，创建与代码调用只为执行的操作码付费。
func IntrinsicGas(isTransfer bool) uint64 {
	if isTransfer {
		return params.TxGas
	}
	return 0
}

// A Message contains the data derived from a single transaction that is relevant to state
// processing.
// Message 包含从单个交易中派生的与状态处理相关的数据。
type Message struct {
	To        *common.Address
	From      common.Address
	Nonce     uint64
	Value     *big.Int
	GasLimit  uint64
	GasPrice  *big.Int
	GasFeeCap *big.Int
	GasTipCap *big.Int
	Data      []byte

	// When SkipNonceChecks is true, the message nonce is not checked against the
	// account nonce in state.
	// This field will be set to true for read-only simulations.
	// SkipNonceChecks 为 true 时不检查消息 nonce，只读模拟时设置。
	SkipNonceChecks bool

	// RunCode runs the recipient's code even when the message carries no
	// input. Without it an empty input is a plain transfer.
	// RunCode 为 true 时即使没有输入也运行接收者的代码，否则空输入视为普通转账。
	RunCode bool
}

// TransactionToMessage converts a transaction into a Message. If baseFee is
// provided, the gas price is the effective price of the transaction under it.
// TransactionToMessage 将交易转换为 Message。提供 baseFee 时，gas 价格为该基础费用下的有效价格。
func TransactionToMessage(tx *types.Transaction, baseFee *big.Int) *Message {
	msg := &Message{
		From:      tx.From(),
		Nonce:     tx.Nonce(),
		GasLimit:  tx.Gas(),
		GasPrice:  tx.GasPrice(),
		GasFeeCap: tx.GasFeeCap(),
		GasTipCap: tx.GasTipCap(),
		To:        tx.To(),
		Value:     tx.Value(),
		Data:      tx.Data(),
	}
	if baseFee != nil {
		msg.GasPrice = tx.EffectiveGasPrice(baseFee)
	}
	return msg
}

// ApplyMessage computes the new state by applying the given message
// against the old state within the environment.
//
// ApplyMessage returns the bytes returned by any EVM execution (if it took place),
// the gas used and an error if it failed. An error always indicates a core error
// meaning that the message would always fail for that particular state and is
// rejected without touching it.
//
// ApplyMessage 在给定环境中对旧状态应用消息。返回的 error 总是表示核心错误，
// 即该消息在此状态下必然失败，且不会修改状态。
func ApplyMessage(evm *vm.EVM, msg *Message, gp *GasPool) (*ExecutionResult, error) {
	evm.SetTxContext(NewEVMTxContext(msg))
	return newStateTransition(evm, msg, gp).execute()
}

// stateTransition represents a state transition.
//
// == The State Transitioning Model
//
//  1. Nonce handling
//  2. Pre pay gas
//  3. Plain transfers pay the intrinsic gas and move value only
//  4. Creations run the data as init code and keep the result as code
//  5. Calls move value and run the recipient's code with the data as input
//  6. Refund the unused gas; the rest is burnt
//
// stateTransition 表示一次状态转换：处理 nonce，预付 gas，按转账 / 创建 / 调用分支执行，最后退还未用 gas，其余销毁。
type stateTransition struct {
	gp           *GasPool
	msg          *Message
	gasRemaining uint64
	initialGas   uint64
	state        vm.StateDB
	evm          *vm.EVM
}

// newStateTransition initialises and returns a new state transition object.
func newStateTransition(evm *vm.EVM, msg *Message, gp *GasPool) *stateTransition {
	return &stateTransition{
		gp:    gp,
		evm:   evm,
		msg:   msg,
		state: evm.StateDB,
	}
}

// isTransfer reports whether the message moves value only: it has a recipient
// and either targets an account without code or carries no input and does not
// ask for the code to run.
// isTransfer 报告消息是否只是转账：有接收者，且目标账户没有代码，或没有输入且未要求运行代码。
func (st *stateTransition) isTransfer() bool {
	if st.msg.To == nil {
		return false
	}
	if st.state.GetCodeSize(*st.msg.To) == 0 {
		return true
	}
	return len(st.msg.Data) == 0 && !st.msg.RunCode
}

func (st *stateTransition) buyGas() error {
	mgval := new(big.Int).SetUint64(st.msg.GasLimit)
	mgval.Mul(mgval, st.msg.GasPrice)
	balanceCheck := new(big.Int).Add(mgval, st.msg.Value)

	balanceCheckU256, overflow := uint256.FromBig(balanceCheck)
	if overflow {
		return fmt.Errorf("%w: address %v required balance exceeds 256 bits", ErrInsufficientFunds, st.msg.From.Hex())
	}
	if have, want := st.state.GetBalance(st.msg.From), balanceCheckU256; have.Cmp(want) < 0 {
		return fmt.Errorf("%w: address %v have %v want %v", ErrInsufficientFunds, st.msg.From.Hex(), have, want)
	}
	if err := st.gp.SubGas(st.msg.GasLimit); err != nil {
		return err
	}
	st.gasRemaining = st.msg.GasLimit
	st.initialGas = st.msg.GasLimit

	mgvalU256, _ := uint256.FromBig(mgval)
	st.state.SubBalance(st.msg.From, mgvalU256)
	return nil
}

// preCheck validates the nonce and buys the gas. The fee fields are not
// checked: the effective price already folds them into the amount paid.
// preCheck 校验 nonce 并购买 gas。费用字段不做检查，有效价格已将其折算为实际支付的金额。
func (st *stateTransition) preCheck() error {
	msg := st.msg
	if !msg.SkipNonceChecks {
		// Make sure this transaction's nonce is correct.
		stNonce := st.state.GetNonce(msg.From)
		if msgNonce := msg.Nonce; stNonce < msgNonce {
			return fmt.Errorf("%w: address %v, tx: %d state: %d", ErrNonceTooHigh,
				msg.From.Hex(), msgNonce, stNonce)
		} else if stNonce > msgNonce {
			return fmt.Errorf("%w: address %v, tx: %d state: %d", ErrNonceTooLow,
				msg.From.Hex(), msgNonce, stNonce)
		} else if stNonce+1 < stNonce {
			return fmt.Errorf("%w: address %v, nonce: %d", ErrNonceMax,
				msg.From.Hex(), stNonce)
		}
	}
	return st.buyGas()
}

// execute will transition the state by applying the current message and
// returning the evm execution result with following fields.
//
//   - used gas: total gas used
//   - returndata: the returned data from evm
//   - concrete execution error: various EVM errors which abort the execution, e.g.
//     ErrOutOfGas, ErrExecutionReverted
//
// execute 应用当前消息转换状态，并返回 EVM 执行结果：已用 gas、返回数据和具体的执行错误。
func (st *stateTransition) execute() (*ExecutionResult, error) {
	// First check this message satisfies all consensus rules before
	// applying the message. The rules include these clauses
	//
	// 1. the nonce of the message caller is correct
	// 2. caller has enough balance to cover transaction fee(gaslimit * gasprice) and value
	// 3. the amount of gas required is available in the block
	// 4. the purchased gas is enough to cover intrinsic usage
	// 5. the init code of a creation fits the size limit
	//
	// The fee is always the effective gas price of the message, a fee cap
	// below the base fee just lowers it.
	//
	// 在应用消息之前，检查 nonce、余额、区块 gas、内在 gas 以及初始化代码大小。
	msg := st.msg
	if msg.Value == nil {
		msg.Value = new(big.Int)
	}
	if msg.GasPrice == nil {
		msg.GasPrice = new(big.Int)
	}
	if msg.GasFeeCap == nil {
		msg.GasFeeCap = new(big.Int).Set(msg.GasPrice)
	}
	if msg.GasTipCap == nil {
		msg.GasTipCap = new(big.Int).Set(msg.GasPrice)
	}
	var (
		contractCreation = msg.To == nil
		transfer         = st.isTransfer()
	)
	// Check clause 4 ahead of buying gas, a plain transfer without enough
	// gas is rejected before the sender pays anything.
	if gas := IntrinsicGas(transfer); msg.GasLimit < gas {
		return nil, fmt.Errorf("%w: have %d, want %d", ErrIntrinsicGas, msg.GasLimit, gas)
	}
	if contractCreation && len(msg.Data) > params.MaxInitCodeSize {
		return nil, fmt.Errorf("%w: code size %v limit %v", ErrMaxInitCodeSizeExceeded, len(msg.Data), params.MaxInitCodeSize)
	}
	// Check clauses 1-3, buy gas if everything is correct
	if err := st.preCheck(); err != nil {
		return nil, err
	}
	// buyGas rejected any value beyond 256 bits.
	value := uint256.MustFromBig(msg.Value)

	var (
		ret   []byte
		vmerr error // vm errors do not effect consensus and are therefore not assigned to err
	)
	switch {
	case contractCreation:
		// The nonce is bumped by the EVM, after the address was derived from it.
		ret, _, st.gasRemaining, vmerr = st.evm.Create(msg.From, msg.Data, st.gasRemaining, value)

	case transfer:
		st.state.SetNonce(msg.From, st.state.GetNonce(msg.From)+1)
		st.gasRemaining -= IntrinsicGas(true)
		st.evm.Context.Transfer(st.state, msg.From, *msg.To, value)

	default:
		// Increment the nonce for the next transaction.
		// 为下一笔交易递增 nonce。
		st.state.SetNonce(msg.From, st.state.GetNonce(msg.From)+1)
		ret, st.gasRemaining, vmerr = st.evm.Call(msg.From, *msg.To, msg.Data, st.gasRemaining, value)
	}
	st.refundGas()

	return &ExecutionResult{
		UsedGas:    st.gasUsed(),
		Err:        vmerr,
		ReturnData: ret,
	}, nil
}

// refundGas returns the unused gas to the sender at the original rate and to
// the block pool. The fee of the used gas is burnt.
// refundGas 按原价将未用 gas 退还给发送者并归还区块 gas 池，已用 gas 的费用被销毁。
func (st *stateTransition) refundGas() {
	remaining := uint256.NewInt(st.gasRemaining)
	remaining.Mul(remaining, uint256.MustFromBig(st.msg.GasPrice))
	st.state.AddBalance(st.msg.From, remaining)

	st.gp.AddGas(st.gasRemaining)
}

// gasUsed returns the amount of gas used up by the state transition.
func (st *stateTransition) gasUsed() uint64 {
	return st.initialGas - st.gasRemaining
}
