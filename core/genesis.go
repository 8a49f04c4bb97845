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

	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/core/rawdb"
	"github.com/emberchain/ember/core/state"
	"github.com/emberchain/ember/core/types"
	"github.com/emberchain/ember/ethdb"
	"github.com/emberchain/ember/log"
	"github.com/emberchain/ember/params"
	"github.com/holiman/uint256"
)

// Genesis specifies the initial state of the chain: block zero carries no
// transaction, only the allocation of pre-funded accounts.
// Genesis 指定链的初始状态：区块 0 不含交易，只有预分配账户。
type Genesis struct {
	Timestamp uint64 `toml:",omitempty"`
	Alloc     types.GenesisAlloc
}

// genesisBalance is the allocation of every default development account.
var genesisBalance = new(big.Int).Mul(big.NewInt(10_000), big.NewInt(params.Ether))

// DefaultGenesis returns the development genesis: five accounts holding
// 10000 ether each.
// DefaultGenesis 返回开发网络的创世配置：五个账户各持有 10000 ether。
func DefaultGenesis() *Genesis {
	addrs := []string{
		"0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb7",
		"0x5aAeb6053f3E94C9b9A09f33669435E7Ef1BeAed",
		"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
		"0xD1220A0cf4B5b0E3D6f8c8e5b5f5b5b0E3D6f8c8",
	}
	alloc := make(types.GenesisAlloc, 0, len(addrs))
	for _, addr := range addrs {
		alloc = append(alloc, types.Account{
			Address: common.HexToAddress(addr),
			Balance: new(big.Int).Set(genesisBalance),
		})
	}
	return &Genesis{Alloc: alloc}
}

// Commit writes the genesis allocation and the chain configuration into the
// database and marks block zero as the chain head.
// Commit 将创世分配和链配置写入数据库，并将区块 0 标记为链头。
func (g *Genesis) Commit(sdb state.Database, config *params.ChainConfig) error {
	if config == nil {
		return errors.New("genesis has no chain config")
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if err := g.Alloc.Validate(); err != nil {
		return err
	}
	statedb := state.New(sdb)
	for _, account := range g.Alloc {
		if account.Balance != nil {
			balance, overflow := uint256.FromBig(account.Balance)
			if overflow {
				return fmt.Errorf("genesis balance of %v exceeds 256 bits", account.Address)
			}
			statedb.SetBalance(account.Address, balance)
		}
		statedb.SetNonce(account.Address, account.Nonce)
		if len(account.Code) > 0 {
			statedb.SetCode(account.Address, account.Code)
		}
	}
	err := statedb.Commit(func(w ethdb.KeyValueWriter) {
		rawdb.WriteChainConfig(w, config)
		rawdb.WriteDatabaseVersion(w, ChainVersion)
		rawdb.WriteHeadBlockNumber(w, 0)
	})
	if err != nil {
		return fmt.Errorf("failed to commit genesis state: %w", err)
	}
	return nil
}

// SetupGenesis initialises the chain in db if it holds none yet, using the
// given genesis or DefaultGenesis when it is nil. For an existing chain the
// configured chain id must match the stored one. The returned config is the
// one the chain runs with.
//
// SetupGenesis 在数据库中没有链时用给定的创世配置初始化它（为 nil 时使用 DefaultGenesis）。
// 已存在的链要求配置的链 ID 与存储的一致。
func SetupGenesis(sdb state.Database, genesis *Genesis, config *params.ChainConfig) (*params.ChainConfig, error) {
	if config == nil {
		config = params.DefaultChainConfig
	}
	db := sdb.DiskDB()
	head, ok := rawdb.ReadHeadBlockNumber(db)
	if !ok {
		if genesis == nil {
			log.Info("Writing default genesis", "accounts", len(DefaultGenesis().Alloc))
			genesis = DefaultGenesis()
		} else {
			log.Info("Writing custom genesis", "accounts", len(genesis.Alloc))
		}
		if err := genesis.Commit(sdb, config); err != nil {
			return nil, err
		}
		return config.Copy(), nil
	}
	if version := rawdb.ReadDatabaseVersion(db); version == nil {
		return nil, fmt.Errorf("missing database version, want %d", ChainVersion)
	} else if *version != ChainVersion {
		return nil, fmt.Errorf("unsupported database version %d, want %d", *version, ChainVersion)
	}
	stored := rawdb.ReadChainConfig(db)
	if stored == nil {
		return nil, ErrNoGenesis
	}
	if stored.ChainID.Cmp(config.ChainID) != 0 {
		return nil, fmt.Errorf("%w: have %v, stored %v", ErrChainIDMismatch, config.ChainID, stored.ChainID)
	}
	// The remaining constants may change across restarts.
	if config.BaseFee.Cmp(stored.BaseFee) != 0 || config.GasLimit != stored.GasLimit || config.Coinbase != stored.Coinbase {
		log.Warn("Chain config updated", "head", head, "basefee", config.BaseFee, "gaslimit", config.GasLimit)
		rawdb.WriteChainConfig(db, config)
	}
	return config.Copy(), nil
}
