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
)

var (
	// ErrNoGenesis is returned when the database holds no chain and no genesis
	// was supplied to create one.
	ErrNoGenesis = errors.New("genesis not found in chain")

	// ErrChainClosed is returned by every chain operation after Close.
	// ErrChainClosed 在 Close 之后由所有链操作返回。
	ErrChainClosed = errors.New("chain closed")

	// ErrChainIDMismatch is returned when the configured chain id differs from
	// the one the database was initialised with.
	ErrChainIDMismatch = errors.New("chain id mismatch with stored config")
)

// List of transaction pre-checking errors. Every transaction is checked before
// it touches the state; a failing check rejects the transaction without a
// receipt and without consuming its nonce.
//
// 交易预检查错误列表。每笔交易在修改状态前都会被检查；检查失败的交易被拒绝，不产生收据，也不消耗 nonce。
var (
	// ErrNonceTooLow is returned if the nonce of a transaction is lower than the
	// one present in the local chain.
	// ErrNonceTooLow 在交易的 nonce 低于本地链中已存在的 nonce 时返回。
	ErrNonceTooLow = errors.New("nonce too low")

	// ErrNonceTooHigh is returned if the nonce of a transaction is higher than the
	// next one expected based on the local chain.
	ErrNonceTooHigh = errors.New("nonce too high")

	// ErrNonceMax is returned if the nonce of a transaction sender account has
	// maximum allowed value and would become invalid if incremented.
	ErrNonceMax = errors.New("nonce has max value")

	// ErrGasLimitReached is returned by the gas pool if the amount of gas required
	// by a transaction is higher than what's left in the block.
	// ErrGasLimitReached 在交易所需的 gas 高于区块剩余 gas 时由 gas 池返回。
	ErrGasLimitReached = errors.New("gas limit reached")

	// ErrMaxInitCodeSizeExceeded is returned if creation transaction provides the init code bigger
	// than init code size limit.
	ErrMaxInitCodeSizeExceeded = errors.New("max initcode size exceeded")

	// ErrInsufficientFunds is returned if the total cost of executing a transaction
	// is higher than the balance of the user's account.
	// ErrInsufficientFunds 在执行交易的总成本高于用户账户余额时返回。
	ErrInsufficientFunds = errors.New("insufficient funds for gas * price + value")

	// ErrIntrinsicGas is returned if a plain transfer is specified to use less
	// gas than the fixed transfer cost.
	// ErrIntrinsicGas 在普通转账指定的 gas 低于固定转账成本时返回。
	ErrIntrinsicGas = errors.New("intrinsic gas too low")
)
