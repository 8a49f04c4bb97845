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

package types

import (
	"fmt"
	"math/big"

	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/common/hexutil"
)

// Account represents a pre-funded account of the genesis state. The address
// is carried in the struct so an allocation reads naturally as an array of
// tables in the TOML configuration file.
// Account 表示创世状态中的预分配账户。地址放在结构体中，便于在 TOML 配置中写成表数组。
type Account struct {
	Address common.Address
	Balance *big.Int      // wei
	Nonce   uint64        `toml:",omitempty"`
	Code    hexutil.Bytes `toml:",omitempty"`
}

// GenesisAlloc specifies the initial state of the chain.
// GenesisAlloc 指定链的初始状态。
type GenesisAlloc []Account

// Validate checks that every address is allocated at most once and carries a
// non-negative balance.
// Validate 检查每个地址最多分配一次，并且余额非负。
func (ga GenesisAlloc) Validate() error {
	seen := make(map[common.Address]struct{}, len(ga))
	for _, acc := range ga {
		if _, dup := seen[acc.Address]; dup {
			return fmt.Errorf("duplicate genesis account %v", acc.Address)
		}
		seen[acc.Address] = struct{}{}
		if acc.Balance != nil && acc.Balance.Sign() < 0 {
			return fmt.Errorf("negative balance for genesis account %v", acc.Address)
		}
	}
	return nil
}
