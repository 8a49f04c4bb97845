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
	"testing"

	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/core/state"
	"github.com/emberchain/ember/core/types"
	"github.com/emberchain/ember/core/vm"
	"github.com/emberchain/ember/params"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionToMessagePrice(t *testing.T) {
	baseFee := big.NewInt(20 * params.GWei)
	tests := []struct {
		name string
		tx   types.TxData
		want *big.Int
	}{
		{"legacy", &types.LegacyTx{GasPrice: big.NewInt(25 * params.GWei)}, big.NewInt(25 * params.GWei)},
		{"tip below cap", &types.DynamicFeeTx{GasTipCap: big.NewInt(2 * params.GWei), GasFeeCap: big.NewInt(30 * params.GWei)}, big.NewInt(22 * params.GWei)},
		{"capped", &types.DynamicFeeTx{GasTipCap: big.NewInt(5 * params.GWei), GasFeeCap: big.NewInt(23 * params.GWei)}, big.NewInt(23 * params.GWei)},
		{"cap below base fee", &types.DynamicFeeTx{GasTipCap: big.NewInt(1), GasFeeCap: big.NewInt(params.GWei)}, big.NewInt(params.GWei)},
		{"legacy below base fee", &types.LegacyTx{GasPrice: big.NewInt(1)}, big.NewInt(1)},
	}
	for _, tt := range tests {
		msg := TransactionToMessage(types.NewTx(tt.tx), baseFee)
		assert.Zero(t, tt.want.Cmp(msg.GasPrice), "%s: have %v want %v", tt.name, msg.GasPrice, tt.want)
	}
}

func TestExecutionResult(t *testing.T) {
	ok := &ExecutionResult{ReturnData: []byte{1}}
	assert.False(t, ok.Failed())
	assert.Equal(t, []byte{1}, ok.Return())
	assert.Nil(t, ok.Revert())

	reverted := &ExecutionResult{ReturnData: []byte{2}, Err: vm.ErrExecutionReverted}
	assert.True(t, reverted.Failed())
	assert.Nil(t, reverted.Return())
	assert.Equal(t, []byte{2}, reverted.Revert())

	oog := &ExecutionResult{Err: vm.ErrOutOfGas}
	assert.Nil(t, oog.Revert())
	assert.ErrorIs(t, oog.Unwrap(), vm.ErrOutOfGas)
}

func TestApplyMessageRefundsUnusedGas(t *testing.T) {
	var (
		statedb = state.New(state.NewDatabaseForTesting())
		sender  = common.HexToAddress("0x01")
		to      = common.HexToAddress("0x02")
		price   = big.NewInt(params.GWei)
	)
	statedb.SetBalance(sender, uint256.NewInt(params.Ether))

	blockCtx := NewEVMBlockContext(1, 0, params.DefaultChainConfig, nil)
	blockCtx.BaseFee = new(big.Int)
	evm := vm.NewEVM(blockCtx, statedb, params.DefaultChainConfig, vm.Config{})

	gp := NewGasPool(100_000)
	msg := &Message{From: sender, To: &to, Value: big.NewInt(3), GasLimit: 50_000, GasPrice: price}
	result, err := ApplyMessage(evm, msg, gp)
	require.NoError(t, err)
	assert.Equal(t, params.TxGas, result.UsedGas)
	assert.Equal(t, uint64(100_000-params.TxGas), gp.Gas())

	want := uint256.NewInt(params.Ether)
	want.Sub(want, uint256.NewInt(3))
	want.Sub(want, new(uint256.Int).Mul(uint256.NewInt(params.TxGas), uint256.NewInt(params.GWei)))
	assert.Equal(t, want, statedb.GetBalance(sender))
	assert.Equal(t, uint256.NewInt(3), statedb.GetBalance(to))
	assert.Equal(t, uint64(1), statedb.GetNonce(sender))
}

func TestGasPool(t *testing.T) {
	gp := NewGasPool(10)
	require.NoError(t, gp.SubGas(4))
	assert.ErrorIs(t, gp.SubGas(7), ErrGasLimitReached)
	gp.AddGas(1)
	assert.Equal(t, uint64(7), gp.Gas())
}

func TestApplyMessageRunCode(t *testing.T) {
	var (
		statedb  = state.New(state.NewDatabaseForTesting())
		sender   = common.HexToAddress("0x01")
		contract = common.HexToAddress("0x02")
	)
	// PUSH1 0x2a PUSH1 0 MSTORE PUSH1 32 PUSH1 0 RETURN
	statedb.SetCode(contract, []byte{0x60, 0x2a, 0x60, 0x00, 0x52, 0x60, 0x20, 0x60, 0x00, 0xf3})

	for _, runCode := range []bool{false, true} {
		blockCtx := NewEVMBlockContext(1, 0, params.DefaultChainConfig, nil)
		evm := vm.NewEVM(blockCtx, statedb, params.DefaultChainConfig, vm.Config{NoBaseFee: true})
		msg := &Message{From: sender, To: &contract, GasLimit: 100_000, SkipNonceChecks: true, RunCode: runCode}

		result, err := ApplyMessage(evm, msg, NewGasPool(100_000))
		require.NoError(t, err)
		require.False(t, result.Failed())
		if runCode {
			assert.Equal(t, common.LeftPadBytes([]byte{0x2a}, 32), result.ReturnData)
			assert.Less(t, result.UsedGas, params.TxGas)
		} else {
			assert.Empty(t, result.ReturnData)
			assert.Equal(t, params.TxGas, result.UsedGas)
		}
		assert.Zero(t, evm.Context.BaseFee.Sign(), "zero priced messages pay no base fee")
	}
}
