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

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/emberchain/ember/common"
)

// Chain-wide constants of the default development network.
// 默认开发网络的链级常量。
var (
	DefaultChainID  = big.NewInt(999999999)
	DefaultBaseFee  = big.NewInt(20 * GWei)
	DefaultGasLimit = uint64(15_000_000)
)

// DefaultChainConfig contains the chain parameters used when no configuration
// file overrides them.
// DefaultChainConfig 包含在没有配置文件覆盖时使用的链参数。
var DefaultChainConfig = &ChainConfig{
	ChainID:  DefaultChainID,
	BaseFee:  DefaultBaseFee,
	GasLimit: DefaultGasLimit,
}

// ChainConfig is the core config which determines the chain-level constants the
// execution environment exposes to running code.
//
// ChainConfig 是核心配置，决定执行环境向运行中的代码暴露的链级常量。
type ChainConfig struct {
	ChainID  *big.Int       `json:"chainId"`            // chainId identifies the current chain (CHAINID opcode)
	BaseFee  *big.Int       `json:"baseFee"`            // base fee of every block (BASEFEE opcode, fee-market pricing)
	GasLimit uint64         `json:"gasLimit"`           // block gas limit (GASLIMIT opcode, upper bound of a transaction's gas)
	Coinbase common.Address `json:"coinbase,omitempty"` // block beneficiary (COINBASE opcode)
}

var (
	errMissingChainID = errors.New("chain config: missing chain id")
	errMissingBaseFee = errors.New("chain config: missing base fee")
	errZeroGasLimit   = errors.New("chain config: zero block gas limit")
)

// Validate checks that every mandatory field is set.
// Validate 检查所有必填字段是否已设置。
func (c *ChainConfig) Validate() error {
	switch {
	case c.ChainID == nil || c.ChainID.Sign() <= 0:
		return errMissingChainID
	case c.BaseFee == nil || c.BaseFee.Sign() < 0:
		return errMissingBaseFee
	case c.GasLimit == 0:
		return errZeroGasLimit
	}
	return nil
}

// Copy returns a deep copy of the config.
func (c *ChainConfig) Copy() *ChainConfig {
	cpy := *c
	if c.ChainID != nil {
		cpy.ChainID = new(big.Int).Set(c.ChainID)
	}
	if c.BaseFee != nil {
		cpy.BaseFee = new(big.Int).Set(c.BaseFee)
	}
	return &cpy
}

// Description returns a human-readable description of ChainConfig.
// Description 返回 ChainConfig 的可读描述。
func (c *ChainConfig) Description() string {
	var banner string

	banner += fmt.Sprintf("Chain ID:  %v\n", c.ChainID)
	banner += "Consensus: instant seal (single writer)\n"
	banner += "\n"
	banner += fmt.Sprintf(" - Base fee:        %v wei\n", c.BaseFee)
	banner += fmt.Sprintf(" - Block gas limit: %d\n", c.GasLimit)
	banner += fmt.Sprintf(" - Coinbase:        %v\n", c.Coinbase)
	return banner
}
