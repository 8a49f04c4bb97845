// Copyright 2021 The go-ethereum Authors
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
	"sync"
	"sync/atomic"
	"time"

	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/core/rawdb"
	"github.com/emberchain/ember/core/state"
	"github.com/emberchain/ember/core/types"
	"github.com/emberchain/ember/core/vm"
	"github.com/emberchain/ember/crypto"
	"github.com/emberchain/ember/ethdb"
	"github.com/emberchain/ember/log"
	"github.com/emberchain/ember/params"
	"github.com/holiman/uint256"
)

const (
	// ChainVersion ensures that an incompatible database is refused at startup
	// instead of being misread.
	//
	// Changelog:
	//
	// - Version 1
	//  The first version, flat account and storage keys plus per-block
	//  transaction, receipt and head pointers.
	ChainVersion uint64 = 1
)

// CacheConfig contains the configuration values for the caches of the state
// database.
// CacheConfig 包含状态数据库缓存的配置值。
type CacheConfig struct {
	StateCleanLimit int // Memory allowance (MB) to use for caching accounts and slots in memory
}

// DefaultCacheConfig are the cache settings used when none are supplied.
var DefaultCacheConfig = &CacheConfig{
	StateCleanLimit: 64,
}

// Chain is the single-node execution chain. It owns the database and applies
// transactions one at a time, each sealed into its own block. Mutations are
// serialized behind the chain lock; read-only work runs concurrently on
// throwaway state overlays and never reaches the database.
//
// Chain 是单节点执行链。它拥有数据库并逐笔应用交易，每笔交易单独成块。
// 修改在链锁之后串行执行；只读操作在一次性的状态覆盖层上并发运行，不会写入数据库。
type Chain struct {
	chainConfig *params.ChainConfig
	cacheConfig *CacheConfig
	vmConfig    vm.Config

	db      ethdb.KeyValueStore
	stateDB *state.CachingDB

	chainmu sync.RWMutex  // guards head and every state mutation
	head    atomic.Uint64 // number of the latest sealed block
	clock   func() time.Time

	closed atomic.Bool
}

// NewChain returns a fully initialised chain using the information available
// in the database. If the database holds no chain yet, it is initialised with
// the given genesis (DefaultGenesis when nil) and chain config
// (params.DefaultChainConfig when nil).
//
// NewChain 使用数据库中的信息返回完全初始化的链。数据库中没有链时，使用给定的创世配置和链配置初始化。
func NewChain(db ethdb.KeyValueStore, cacheConfig *CacheConfig, genesis *Genesis, config *params.ChainConfig) (*Chain, error) {
	if cacheConfig == nil {
		cacheConfig = DefaultCacheConfig
	}
	sdb := state.NewDatabase(db, cacheConfig.StateCleanLimit)
	chainConfig, err := SetupGenesis(sdb, genesis, config)
	if err != nil {
		return nil, err
	}
	c := &Chain{
		chainConfig: chainConfig,
		cacheConfig: cacheConfig,
		db:          db,
		stateDB:     sdb,
		clock:       time.Now,
	}
	head, _ := rawdb.ReadHeadBlockNumber(db)
	c.head.Store(head)

	log.Info("Initialised chain configuration", "chainid", chainConfig.ChainID, "basefee", chainConfig.BaseFee, "gaslimit", chainConfig.GasLimit)
	log.Info("Loaded most recent local block", "number", head)
	return c, nil
}

// SetClock replaces the source of block timestamps.
// SetClock 替换区块时间戳的来源。
func (c *Chain) SetClock(clock func() time.Time) {
	c.chainmu.Lock()
	defer c.chainmu.Unlock()
	c.clock = clock
}

// Config retrieves the chain's configuration.
func (c *Chain) Config() *params.ChainConfig { return c.chainConfig }

// BlockNumber returns the number of the latest sealed block.
// BlockNumber 返回最新已封装区块的编号。
func (c *Chain) BlockNumber() uint64 { return c.head.Load() }

// blockContext assembles the EVM environment of the block following the head.
func (c *Chain) blockContext(baseFee *big.Int) vm.BlockContext {
	number := c.head.Load() + 1
	ctx := NewEVMBlockContext(number, uint64(c.clock().Unix()), c.chainConfig, GetHashFn(c.db, number))
	if baseFee != nil {
		ctx.BaseFee = new(big.Int).Set(baseFee)
	}
	return ctx
}

// Execute applies the transaction on top of the chain head under the given
// base fee (the configured one when nil), seals it into a new block and
// returns its receipt. A transaction failing the pre-checks, e.g. for lack of
// funds, is rejected with an error: it produces no receipt and leaves the
// state untouched. Execution failures are reported in the receipt status.
//
// Execute 在链头之上以给定的基础费用应用交易，将其封装到新区块并返回收据。
// 未通过预检查的交易（例如余额不足）以错误形式被拒绝：不产生收据，也不修改状态。执行失败体现在收据状态中。
func (c *Chain) Execute(tx *types.Transaction, baseFee *big.Int) (*types.Receipt, error) {
	c.chainmu.Lock()
	defer c.chainmu.Unlock()

	if c.closed.Load() {
		return nil, ErrChainClosed
	}
	if baseFee == nil {
		baseFee = c.chainConfig.BaseFee
	}
	var (
		hash     = tx.Hash()
		number   = c.head.Load() + 1
		statedb  = state.New(c.stateDB)
		blockCtx = c.blockContext(baseFee)
		evm      = vm.NewEVM(blockCtx, statedb, c.chainConfig, c.vmConfig)
		msg      = TransactionToMessage(tx, baseFee)
	)
	statedb.SetTxContext(hash, 0)

	// The creation address derives from the nonce before the transaction.
	var contractAddr common.Address
	if tx.IsCreation() {
		contractAddr = crypto.CreateAddress(msg.From, statedb.GetNonce(msg.From))
	}
	result, err := ApplyMessage(evm, msg, NewGasPool(c.chainConfig.GasLimit))
	if err != nil {
		log.Debug("Rejected transaction", "hash", hash, "from", msg.From, "err", err)
		return nil, err
	}
	receipt := types.NewReceipt(result.Failed(), result.UsedGas)
	receipt.Type = tx.Type()
	receipt.TxHash = hash
	receipt.GasUsed = result.UsedGas
	receipt.EffectiveGasPrice = new(big.Int).Set(msg.GasPrice)
	receipt.From = msg.From
	receipt.To = tx.To()
	receipt.Logs = statedb.GetLogs(hash, number)
	receipt.BlockNumber = number
	receipt.TransactionIndex = 0
	if tx.IsCreation() {
		receipt.ContractAddress = contractAddr
	}
	if receipt.Logs == nil {
		receipt.Logs = []*types.Log{}
	}
	// The block goes to disk in the batch of its state, a crash never
	// leaves one without the other.
	err = statedb.Commit(func(w ethdb.KeyValueWriter) {
		rawdb.WriteTransaction(w, tx)
		rawdb.WriteReceipt(w, receipt)
		rawdb.WriteBlockTxHash(w, number, hash)
		rawdb.WriteHeadBlockNumber(w, number)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write block %d: %w", number, err)
	}
	c.head.Store(number)

	if result.Failed() {
		log.Debug("Executed failing transaction", "hash", hash, "number", number, "gas", result.UsedGas, "err", result.Err)
	} else {
		log.Debug("Executed transaction", "hash", hash, "number", number, "gas", result.UsedGas, "logs", len(receipt.Logs))
	}
	return receipt, nil
}

// doCall runs the message on a throwaway state overlay of the head state.
// Nothing it does is visible outside the call.
// doCall 在链头状态的一次性覆盖层上运行消息，其效果在调用之外不可见。
func (c *Chain) doCall(msg *Message) (*ExecutionResult, error) {
	c.chainmu.RLock()
	defer c.chainmu.RUnlock()

	if c.closed.Load() {
		return nil, ErrChainClosed
	}
	if msg.GasLimit == 0 {
		msg.GasLimit = params.CallGasCap
	}
	msg.SkipNonceChecks = true

	var (
		statedb  = state.New(c.stateDB)
		blockCtx = c.blockContext(nil)
		evm      = vm.NewEVM(blockCtx, statedb, c.chainConfig, vm.Config{NoBaseFee: true})
		gp       = NewGasPool(max(msg.GasLimit, c.chainConfig.GasLimit))
	)
	return ApplyMessage(evm, msg, gp)
}

// Simulate runs the target's code with the calldata and value on behalf of
// sender without committing anything, and returns the returned bytes. The code
// runs for empty calldata too. A reverting call returns the revert payload
// together with the error.
//
// Simulate 以 sender 的身份用给定的调用数据和金额运行目标代码，不提交任何修改，并返回返回数据。
// 回滚的调用会同时返回回滚载荷和错误。
func (c *Chain) Simulate(sender, target common.Address, calldata []byte, value *big.Int) ([]byte, error) {
	if value == nil {
		value = new(big.Int)
	}
	result, err := c.doCall(&Message{
		From:  sender,
		To:    &target,
		Value:   value,
		Data:    common.CopyBytes(calldata),
		RunCode: true,
	})
	if err != nil {
		return nil, err
	}
	if result.Failed() {
		return result.Revert(), result.Err
	}
	return result.Return(), nil
}

// EstimateGas returns the gas the message uses when applied on top of the
// chain head. Failing executions are reported as errors.
// EstimateGas 返回消息在链头之上执行所用的 gas，执行失败以错误形式返回。
func (c *Chain) EstimateGas(msg *Message) (uint64, error) {
	result, err := c.doCall(msg)
	if err != nil {
		return 0, err
	}
	if result.Failed() {
		if errors.Is(result.Err, vm.ErrOutOfGas) {
			return 0, fmt.Errorf("gas required exceeds allowance (%d)", msg.GasLimit)
		}
		return 0, result.Err
	}
	return result.UsedGas, nil
}

// headState returns a fresh read view of the committed state.
func (c *Chain) headState() *state.StateDB {
	return state.New(c.stateDB)
}

// Code returns the contract code stored at addr.
// Code 返回 addr 处存储的合约代码。
func (c *Chain) Code(addr common.Address) []byte {
	c.chainmu.RLock()
	defer c.chainmu.RUnlock()
	return c.headState().GetCode(addr)
}

// Storage returns the value of the storage slot of addr, zero when unset.
// Storage 返回 addr 的存储槽的值，未设置时为零。
func (c *Chain) Storage(addr common.Address, slot common.Hash) common.Hash {
	c.chainmu.RLock()
	defer c.chainmu.RUnlock()
	return c.headState().GetState(addr, slot)
}

// Balance returns the balance of addr in wei.
func (c *Chain) Balance(addr common.Address) *uint256.Int {
	c.chainmu.RLock()
	defer c.chainmu.RUnlock()
	return new(uint256.Int).Set(c.headState().GetBalance(addr))
}

// Nonce returns the nonce of addr.
func (c *Chain) Nonce(addr common.Address) uint64 {
	c.chainmu.RLock()
	defer c.chainmu.RUnlock()
	return c.headState().GetNonce(addr)
}

// GetReceipt retrieves the receipt of a sealed transaction, nil if unknown.
// GetReceipt 检索已封装交易的收据，未知时返回 nil。
func (c *Chain) GetReceipt(hash common.Hash) *types.Receipt {
	return rawdb.ReadReceipt(c.db, hash)
}

// GetTransaction retrieves a sealed transaction, nil if unknown.
func (c *Chain) GetTransaction(hash common.Hash) *types.Transaction {
	return rawdb.ReadTransaction(c.db, hash)
}

// StateDump returns every account of the head state with its code and storage.
// StateDump 返回链头状态中的所有账户及其代码和存储。
func (c *Chain) StateDump() state.Dump {
	c.chainmu.RLock()
	defer c.chainmu.RUnlock()
	return c.headState().RawDump(nil)
}

// Close stops the chain and closes the database. It waits for the running
// transaction to finish.
// Close 停止链并关闭数据库，会等待正在执行的交易完成。
func (c *Chain) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrChainClosed
	}
	c.chainmu.Lock()
	defer c.chainmu.Unlock()

	log.Info("Chain stopped", "head", c.head.Load())
	return c.db.Close()
}
