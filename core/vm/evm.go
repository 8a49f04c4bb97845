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
	"math/big"

	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/core/types"
	"github.com/emberchain/ember/crypto"
	"github.com/emberchain/ember/params"
	"github.com/holiman/uint256"
)

type (
	// CanTransferFunc is the signature of a transfer guard function
	// CanTransferFunc 是转账检查函数的签名
	CanTransferFunc func(StateDB, common.Address, *uint256.Int) bool
	// TransferFunc is the signature of a transfer function
	// TransferFunc 是转账函数的签名
	TransferFunc func(StateDB, common.Address, common.Address, *uint256.Int)
	// GetHashFunc returns the n'th block hash in the blockchain
	// and is used by the BLOCKHASH EVM op code.
	// GetHashFunc 返回区块链中第 n 个区块的哈希，由 BLOCKHASH 操作码使用。
	GetHashFunc func(uint64) common.Hash
)

// BlockContext provides the EVM with auxiliary information. Once provided
// it shouldn't be modified.
// BlockContext 为 EVM 提供辅助信息，提供后不应再修改。
type BlockContext struct {
	// CanTransfer returns whether the account contains
	// sufficient ether to transfer the value
	CanTransfer CanTransferFunc
	// Transfer transfers ether from one account to the other
	Transfer TransferFunc
	// GetHash returns the hash corresponding to n
	GetHash GetHashFunc

	// Block information
	// 块信息
	Coinbase    common.Address // Provides information for COINBASE
	GasLimit    uint64         // Provides information for GASLIMIT
	BlockNumber *big.Int       // Provides information for NUMBER
	Time        uint64         // Provides information for TIME
	BaseFee     *big.Int       // Provides information for BASEFEE
	Random      *common.Hash   // Provides information for PREVRANDAO
}

// TxContext provides the EVM with information about a transaction.
// All fields can change between transactions.
// TxContext 提供关于交易的信息。所有字段在交易之间可以改变。
type TxContext struct {
	Origin   common.Address // Provides information for ORIGIN
	GasPrice *big.Int       // Provides information for GASPRICE
}

// Config are the configuration options for the EVM.
// Config 是 EVM 的配置选项。
type Config struct {
	NoBaseFee bool // Forces the baseFee to 0 for zero priced messages, used by read-only simulations 只读模拟时对零价格消息将基础费用置为 0
}

// EVM is the virtual machine base object and provides the necessary tools to
// run a contract on the given state with the provided context. Any error
// returned from Call or Create other than ErrExecutionReverted means the
// state was reverted and all gas consumed.
//
// The EVM should never be reused across goroutines and is not thread safe.
// EVM 是虚拟机的基础对象。除 ErrExecutionReverted 外的错误都意味着状态已回滚且 gas 全部消耗。
// EVM 不是线程安全的。
type EVM struct {
	// Context provides auxiliary blockchain related information
	Context BlockContext
	TxContext
	// StateDB gives access to the underlying state
	StateDB StateDB
	// depth is the current call stack
	// depth 是当前的调用栈深度
	depth int

	chainConfig *params.ChainConfig
	Config      Config

	interpreter *EVMInterpreter

	// jumpDests caches the JUMPDEST analysis of deployed code by code hash.
	// jumpDests 按代码哈希缓存已部署代码的 JUMPDEST 分析结果。
	jumpDests map[common.Hash]bitvec
}

// NewEVM constructs an EVM instance with the supplied block context, state
// database and config. The transaction context is installed with SetTxContext.
// NewEVM 使用提供的块上下文、状态数据库和配置构造 EVM 实例。
func NewEVM(blockCtx BlockContext, statedb StateDB, chainConfig *params.ChainConfig, config Config) *EVM {
	evm := &EVM{
		Context:     blockCtx,
		StateDB:     statedb,
		Config:      config,
		chainConfig: chainConfig,
		jumpDests:   make(map[common.Hash]bitvec),
	}
	evm.interpreter = NewEVMInterpreter(evm)
	return evm
}

// SetTxContext resets the EVM with a new transaction context.
// SetTxContext 使用新的交易上下文重置 EVM。
func (evm *EVM) SetTxContext(txCtx TxContext) {
	// Zero priced messages pay no base fee.
	if evm.Config.NoBaseFee && (txCtx.GasPrice == nil || txCtx.GasPrice.Sign() == 0) {
		evm.Context.BaseFee = new(big.Int)
	}
	evm.TxContext = txCtx
}

// Interpreter returns the current interpreter
func (evm *EVM) Interpreter() *EVMInterpreter {
	return evm.interpreter
}

// ChainConfig returns the environment's chain configuration
func (evm *EVM) ChainConfig() *params.ChainConfig { return evm.chainConfig }

// Call executes the contract associated with the addr with the given input as
// parameters. It also handles the value transfer and reverts the state in
// case of an execution error.
// Call 执行与 addr 关联的合约，处理转账，并在执行出错时回滚状态。
func (evm *EVM) Call(caller common.Address, addr common.Address, input []byte, gas uint64, value *uint256.Int) (ret []byte, leftOverGas uint64, err error) {
	// Fail if we're trying to execute above the call depth limit
	if evm.depth > int(params.CallCreateDepth) {
		return nil, gas, ErrDepth
	}
	// Fail if we're trying to transfer more than the available balance
	// 余额不足以转账时失败
	if !value.IsZero() && !evm.Context.CanTransfer(evm.StateDB, caller, value) {
		return nil, gas, ErrInsufficientBalance
	}
	snapshot := evm.StateDB.Snapshot()

	if !evm.StateDB.Exist(addr) {
		if value.IsZero() {
			// Calling a non-existing account with no value is a no-op.
			// 向不存在的账户发起零值调用不做任何事。
			return nil, gas, nil
		}
		evm.StateDB.CreateAccount(addr)
	}
	evm.Context.Transfer(evm.StateDB, caller, addr, value)

	if code := evm.StateDB.GetCode(addr); len(code) > 0 {
		contract := NewContract(caller, addr, value, gas, evm.jumpDests)
		contract.SetCallCode(evm.StateDB.GetCodeHash(addr), code)
		ret, err = evm.interpreter.Run(contract, input)
		gas = contract.Gas
	}
	// When an error was returned by the EVM, revert to the snapshot and
	// consume any gas remaining, except for the revert case.
	// 出错时回滚到快照，除 REVERT 外消耗所有剩余 gas。
	if err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
		if !errors.Is(err, ErrExecutionReverted) {
			gas = 0
		}
	}
	return ret, gas, err
}

// create creates a new contract using code as deployment code.
// create 使用 code 作为部署代码创建新合约。
func (evm *EVM) create(caller common.Address, code []byte, gas uint64, value *uint256.Int, address common.Address) (ret []byte, createAddress common.Address, leftOverGas uint64, err error) {
	// Depth check execution. Fail if we're trying to execute above the limit.
	if evm.depth > int(params.CallCreateDepth) {
		return nil, common.Address{}, gas, ErrDepth
	}
	if !evm.Context.CanTransfer(evm.StateDB, caller, value) {
		return nil, common.Address{}, gas, ErrInsufficientBalance
	}
	nonce := evm.StateDB.GetNonce(caller)
	if nonce+1 < nonce {
		return nil, common.Address{}, gas, ErrNonceUintOverflow
	}
	// The nonce bump survives a failed deployment.
	// 即使部署失败，nonce 的递增也会保留。
	evm.StateDB.SetNonce(caller, nonce+1)

	// Ensure there's no existing contract already at the designated address.
	// 确保目标地址上没有已存在的合约。
	contractHash := evm.StateDB.GetCodeHash(address)
	if evm.StateDB.GetNonce(address) != 0 || (contractHash != (common.Hash{}) && contractHash != types.EmptyCodeHash) {
		return nil, common.Address{}, 0, ErrContractAddressCollision
	}
	snapshot := evm.StateDB.Snapshot()
	evm.StateDB.CreateAccount(address)
	evm.Context.Transfer(evm.StateDB, caller, address, value)

	contract := NewContract(caller, address, value, gas, evm.jumpDests)
	contract.SetCallCode(common.Hash{}, code)
	contract.IsDeployment = true

	ret, err = evm.initNewContract(contract, address)
	if err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
		if !errors.Is(err, ErrExecutionReverted) {
			contract.Gas = 0
		}
	}
	return ret, address, contract.Gas, err
}

// initNewContract runs a new contract's creation code and stores the returned
// runtime code at the new address.
// initNewContract 运行新合约的创建代码，并把返回的运行时代码保存到新地址。
func (evm *EVM) initNewContract(contract *Contract, address common.Address) ([]byte, error) {
	ret, err := evm.interpreter.Run(contract, nil)
	if err != nil {
		return ret, err
	}
	if len(ret) > params.MaxCodeSize {
		return ret, ErrMaxCodeSizeExceeded
	}
	evm.StateDB.SetCode(address, ret)
	return ret, nil
}

// Create creates a new contract using code as deployment code. The address is
// derived from the caller and its nonce before the increment.
// Create 使用 code 作为部署代码创建新合约，地址由调用者及其递增前的 nonce 派生。
func (evm *EVM) Create(caller common.Address, code []byte, gas uint64, value *uint256.Int) (ret []byte, contractAddr common.Address, leftOverGas uint64, err error) {
	contractAddr = crypto.CreateAddress(caller, evm.StateDB.GetNonce(caller))
	return evm.create(caller, code, gas, value, contractAddr)
}
