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
	"math/big"

	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/core/rawdb"
	"github.com/emberchain/ember/core/vm"
	"github.com/emberchain/ember/ethdb"
	"github.com/emberchain/ember/params"
	"github.com/holiman/uint256"
)

// NewEVMBlockContext creates a new context for use in the EVM. Every sealed
// transaction is its own block, so the context is built from the block number
// and timestamp rather than from a header.
// NewEVMBlockContext 创建一个新的 EVM 上下文。每笔交易单独成块，因此上下文由块号和时间戳构建，而非区块头。
func NewEVMBlockContext(number uint64, time uint64, config *params.ChainConfig, getHash vm.GetHashFunc) vm.BlockContext {
	var (
		baseFee *big.Int
		random  common.Hash // no beacon randomness on a single node
	)
	if config.BaseFee != nil {
		baseFee = new(big.Int).Set(config.BaseFee)
	}
	return vm.BlockContext{
		CanTransfer: CanTransfer,
		Transfer:    Transfer,
		GetHash:     getHash,
		Coinbase:    config.Coinbase,
		BlockNumber: new(big.Int).SetUint64(number),
		Time:        time,
		BaseFee:     baseFee,
		GasLimit:    config.GasLimit,
		Random:      &random,
	}
}

// NewEVMTxContext creates a new transaction context for a single transaction.
// NewEVMTxContext 为单笔交易创建一个新的交易上下文。
func NewEVMTxContext(msg *Message) vm.TxContext {
	ctx := vm.TxContext{Origin: msg.From}
	if msg.GasPrice != nil {
		ctx.GasPrice = new(big.Int).Set(msg.GasPrice)
	}
	return ctx
}

// GetHashFn returns a GetHashFunc which retrieves block hashes by number. The
// hash of a block is the hash of the transaction sealed in it; blocks at or
// above current are unknown.
// GetHashFn 返回按块号检索块哈希的 GetHashFunc。块哈希即该块中交易的哈希。
func GetHashFn(db ethdb.KeyValueReader, current uint64) vm.GetHashFunc {
	cache := make(map[uint64]common.Hash)

	return func(n uint64) common.Hash {
		if n >= current {
			return common.Hash{}
		}
		if hash, ok := cache[n]; ok {
			return hash
		}
		hash, _ := rawdb.ReadBlockTxHash(db, n)
		cache[n] = hash
		return hash
	}
}

// CanTransfer checks whether there are enough funds in the address' account to make a transfer.
// This does not take the necessary gas in to account to make the transfer valid.
// CanTransfer 检查地址账户中是否有足够的资金进行转账，不考虑所需的 Gas。
func CanTransfer(db vm.StateDB, addr common.Address, amount *uint256.Int) bool {
	return db.GetBalance(addr).Cmp(amount) >= 0
}

// Transfer subtracts amount from sender and adds amount to recipient using the given Db
// Transfer 使用给定的数据库从发送者减去金额并添加到接收者
func Transfer(db vm.StateDB, sender, recipient common.Address, amount *uint256.Int) {
	db.SubBalance(sender, amount)
	db.AddBalance(recipient, amount)
}
