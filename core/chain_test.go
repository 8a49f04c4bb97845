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
	"bytes"
	"math/big"
	"path/filepath"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/core/rawdb"
	"github.com/emberchain/ember/core/types"
	"github.com/emberchain/ember/core/vm"
	"github.com/emberchain/ember/core/vm/program"
	"github.com/emberchain/ember/crypto"
	"github.com/emberchain/ember/params"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var (
	testAddr  = common.HexToAddress("0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb7")
	otherAddr = common.HexToAddress("0x00000000000000000000000000000000000b0b0b")
	testPrice = big.NewInt(20 * params.GWei)
	testTime  = time.Unix(1_700_000_000, 0)
)

func newTestChain(t *testing.T) *Chain {
	t.Helper()
	chain, err := NewChain(rawdb.NewMemoryDatabase(), nil, nil, nil)
	require.NoError(t, err)
	chain.SetClock(func() time.Time { return testTime })
	t.Cleanup(func() { chain.Close() })
	return chain
}

func legacyTx(nonce uint64, from common.Address, to *common.Address, value *big.Int, gas uint64, data []byte) *types.Transaction {
	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: testPrice,
		Gas:      gas,
		From:     from,
		To:       to,
		Value:    value,
		Data:     data,
	})
}

func ether(n int64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(uint64(n)), uint256.NewInt(params.Ether))
}

// feeOf returns gas * price as a uint256.
func feeOf(gas uint64, price *big.Int) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(gas), uint256.MustFromBig(price))
}

// deploy sends a creation transaction and returns its receipt.
func deploy(t *testing.T, chain *Chain, initcode []byte) *types.Receipt {
	t.Helper()
	tx := legacyTx(chain.Nonce(testAddr), testAddr, nil, new(big.Int), 200_000, initcode)
	receipt, err := chain.Execute(tx, nil)
	require.NoError(t, err)
	return receipt
}

func word(v uint64) []byte {
	return common.LeftPadBytes(new(big.Int).SetUint64(v).Bytes(), 32)
}

// storeAndEcho stores its first calldata word in slot 0 and returns it.
var storeAndEcho = program.New().
	InputToStack(0).Push(0).Op(vm.SSTORE).
	Sload(0).Push(0).Op(vm.MSTORE).
	Return(0, 32).Bytes()

func TestGenesisAllocation(t *testing.T) {
	chain := newTestChain(t)

	assert.Equal(t, uint64(0), chain.BlockNumber())
	for _, account := range DefaultGenesis().Alloc {
		assert.Equal(t, ether(10_000), chain.Balance(account.Address), "account %v", account.Address)
		assert.Equal(t, uint64(0), chain.Nonce(account.Address))
	}
	assert.True(t, chain.Balance(otherAddr).IsZero())
	assert.Equal(t, params.DefaultChainID, chain.Config().ChainID)
}

func TestExecuteTransfer(t *testing.T) {
	chain := newTestChain(t)

	tx := legacyTx(0, testAddr, &otherAddr, big.NewInt(params.Ether), params.TxGas, nil)
	receipt, err := chain.Execute(tx, nil)
	require.NoError(t, err)

	assert.True(t, receipt.Succeeded())
	assert.Equal(t, params.TxGas, receipt.GasUsed)
	assert.Equal(t, uint64(1), receipt.BlockNumber)
	assert.Equal(t, tx.Hash(), receipt.TxHash)
	assert.Equal(t, common.Address{}, receipt.ContractAddress)
	assert.Empty(t, receipt.Logs)

	want := new(uint256.Int).Sub(ether(10_000), ether(1))
	want.Sub(want, feeOf(params.TxGas, testPrice))
	assert.Equal(t, want, chain.Balance(testAddr))
	assert.Equal(t, ether(1), chain.Balance(otherAddr))
	assert.Equal(t, uint64(1), chain.Nonce(testAddr))
	assert.Equal(t, uint64(1), chain.BlockNumber())

	stored := chain.GetReceipt(tx.Hash())
	require.NotNil(t, stored)
	assert.Equal(t, receipt.Status, stored.Status)
	assert.Equal(t, receipt.GasUsed, stored.GasUsed)
	require.NotNil(t, chain.GetTransaction(tx.Hash()))
	assert.Equal(t, tx.Hash(), chain.GetTransaction(tx.Hash()).Hash())
}

func TestExecuteRejections(t *testing.T) {
	poor := common.HexToAddress("0x000000000000000000000000000000000000dead")
	tests := []struct {
		name string
		tx   *types.Transaction
		err  error
	}{
		{"insufficient funds", legacyTx(0, poor, &otherAddr, big.NewInt(1), params.TxGas, nil), ErrInsufficientFunds},
		{"value above balance", legacyTx(0, testAddr, &otherAddr, ether(20_000).ToBig(), params.TxGas, nil), ErrInsufficientFunds},
		{"intrinsic gas", legacyTx(0, testAddr, &otherAddr, big.NewInt(1), params.TxGas-1, nil), ErrIntrinsicGas},
		{"nonce too high", legacyTx(5, testAddr, &otherAddr, big.NewInt(1), params.TxGas, nil), ErrNonceTooHigh},
		{"block gas limit", legacyTx(0, testAddr, &otherAddr, big.NewInt(1), params.DefaultGasLimit+1, nil), ErrGasLimitReached},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := newTestChain(t)
			before := chain.StateDump()

			receipt, err := chain.Execute(tt.tx, nil)
			require.ErrorIs(t, err, tt.err)
			assert.Nil(t, receipt)
			assert.Equal(t, uint64(0), chain.BlockNumber())
			assert.Nil(t, chain.GetReceipt(tt.tx.Hash()))
			if after := chain.StateDump(); !assert.Equal(t, before, after) {
				t.Logf("state changed by rejected transaction:\n%s", spew.Sdump(after))
			}
		})
	}
}

func TestReplayRejected(t *testing.T) {
	chain := newTestChain(t)

	tx := legacyTx(0, testAddr, &otherAddr, big.NewInt(1), params.TxGas, nil)
	first, err := chain.Execute(tx, nil)
	require.NoError(t, err)

	_, err = chain.Execute(tx, nil)
	require.ErrorIs(t, err, ErrNonceTooLow)
	stored := chain.GetReceipt(tx.Hash())
	require.NotNil(t, stored)
	assert.Equal(t, first.BlockNumber, stored.BlockNumber)
	assert.Equal(t, uint64(1), chain.BlockNumber())
}

// Prices below the base fee are paid as they are: the effective price of a
// dynamic fee transaction is min(baseFee+tip, feeCap), a legacy one pays its
// declared price.
func TestExecuteLowPrices(t *testing.T) {
	tests := []struct {
		name  string
		tx    types.TxData
		price *big.Int
	}{
		{"fee cap below base fee", &types.DynamicFeeTx{
			GasTipCap: big.NewInt(1), GasFeeCap: big.NewInt(params.GWei),
		}, big.NewInt(params.GWei)},
		{"tip above fee cap", &types.DynamicFeeTx{
			GasTipCap: big.NewInt(40 * params.GWei), GasFeeCap: big.NewInt(30 * params.GWei),
		}, big.NewInt(30 * params.GWei)},
		{"legacy price of one wei", &types.LegacyTx{GasPrice: big.NewInt(1)}, big.NewInt(1)},
		{"zero price", &types.LegacyTx{GasPrice: new(big.Int)}, new(big.Int)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := newTestChain(t)
			switch tx := tt.tx.(type) {
			case *types.DynamicFeeTx:
				tx.Gas, tx.From, tx.To, tx.Value = params.TxGas, testAddr, &otherAddr, big.NewInt(1)
			case *types.LegacyTx:
				tx.Gas, tx.From, tx.To, tx.Value = params.TxGas, testAddr, &otherAddr, big.NewInt(1)
			}
			receipt, err := chain.Execute(types.NewTx(tt.tx), nil)
			require.NoError(t, err)
			require.True(t, receipt.Succeeded())
			assert.Zero(t, tt.price.Cmp(receipt.EffectiveGasPrice), "have %v want %v", receipt.EffectiveGasPrice, tt.price)

			want := new(uint256.Int).Sub(ether(10_000), uint256.NewInt(1))
			want.Sub(want, feeOf(params.TxGas, tt.price))
			assert.Equal(t, want, chain.Balance(testAddr))
			assert.Equal(t, uint64(1), chain.BlockNumber())
		})
	}
}

// An account holding code may still originate transactions.
func TestExecuteFromContract(t *testing.T) {
	chain := newTestChain(t)
	contract := deploy(t, chain, program.New().ReturnViaCodeCopy(storeAndEcho).Bytes()).ContractAddress

	tx := types.NewTx(&types.LegacyTx{
		GasPrice: new(big.Int),
		Gas:      params.TxGas,
		From:     contract,
		To:       &otherAddr,
		Value:    new(big.Int),
	})
	receipt, err := chain.Execute(tx, nil)
	require.NoError(t, err)
	assert.True(t, receipt.Succeeded())
	assert.Equal(t, uint64(1), chain.Nonce(contract))
	assert.Equal(t, storeAndEcho, chain.Code(contract))
}

func TestDeployAndCall(t *testing.T) {
	chain := newTestChain(t)

	initcode := program.New().ReturnViaCodeCopy(storeAndEcho).Bytes()
	tx := types.NewTx(&types.DynamicFeeTx{
		Nonce:     0,
		GasTipCap: big.NewInt(params.GWei),
		GasFeeCap: big.NewInt(30 * params.GWei),
		Gas:       200_000,
		From:      testAddr,
		Data:      initcode,
		Value:     new(big.Int),
	})
	receipt, err := chain.Execute(tx, nil)
	require.NoError(t, err)
	require.True(t, receipt.Succeeded())

	contract := crypto.CreateAddress(testAddr, 0)
	assert.Equal(t, contract, receipt.ContractAddress)
	assert.Equal(t, storeAndEcho, chain.Code(contract))
	assert.Equal(t, uint64(1), chain.Nonce(testAddr))
	assert.Less(t, receipt.GasUsed, uint64(200_000))
	// baseFee (20 gwei) + tip (1 gwei) stays below the 30 gwei cap
	assert.Zero(t, big.NewInt(21*params.GWei).Cmp(receipt.EffectiveGasPrice))
	want := new(uint256.Int).Sub(ether(10_000), feeOf(receipt.GasUsed, receipt.EffectiveGasPrice))
	assert.Equal(t, want, chain.Balance(testAddr))

	// Call the contract and check the slot landed in its storage only.
	receipt, err = chain.Execute(legacyTx(1, testAddr, &contract, new(big.Int), 100_000, word(66)), nil)
	require.NoError(t, err)
	require.True(t, receipt.Succeeded())
	assert.Equal(t, common.BytesToHash(word(66)), chain.Storage(contract, common.Hash{}))
	assert.Equal(t, common.Hash{}, chain.Storage(otherAddr, common.Hash{}))
	assert.Equal(t, uint64(2), chain.Nonce(testAddr))

	// Repeated reads of an unmodified slot are stable.
	for i := 0; i < 3; i++ {
		assert.Equal(t, common.BytesToHash(word(66)), chain.Storage(contract, common.Hash{}))
	}
}

func TestCallWithoutInputIsTransfer(t *testing.T) {
	chain := newTestChain(t)
	contract := deploy(t, chain, program.New().ReturnViaCodeCopy(storeAndEcho).Bytes()).ContractAddress

	receipt, err := chain.Execute(legacyTx(1, testAddr, &contract, big.NewInt(5), 50_000, nil), nil)
	require.NoError(t, err)
	assert.True(t, receipt.Succeeded())
	assert.Equal(t, params.TxGas, receipt.GasUsed)
	assert.Equal(t, uint256.NewInt(5), chain.Balance(contract))
	assert.Equal(t, common.Hash{}, chain.Storage(contract, common.Hash{}))
}

func TestRevertRollsBackStorage(t *testing.T) {
	chain := newTestChain(t)

	runtime := program.New().Sstore(0, 1).RevertData([]byte("nope")).Bytes()
	contract := deploy(t, chain, program.New().ReturnViaCodeCopy(runtime).Bytes()).ContractAddress
	before := chain.Balance(testAddr)

	receipt, err := chain.Execute(legacyTx(1, testAddr, &contract, big.NewInt(7), 100_000, []byte{1}), nil)
	require.NoError(t, err)
	assert.False(t, receipt.Succeeded())
	assert.Less(t, receipt.GasUsed, uint64(100_000), "revert keeps the remaining gas")
	assert.Equal(t, common.Hash{}, chain.Storage(contract, common.Hash{}))
	assert.True(t, chain.Balance(contract).IsZero(), "value transfer must be rolled back")
	assert.Equal(t, uint64(2), chain.Nonce(testAddr))
	assert.Empty(t, receipt.Logs)

	want := new(uint256.Int).Sub(before, feeOf(receipt.GasUsed, testPrice))
	assert.Equal(t, want, chain.Balance(testAddr))

	ret, err := chain.Simulate(testAddr, contract, []byte{1}, nil)
	require.ErrorIs(t, err, vm.ErrExecutionReverted)
	assert.Equal(t, []byte("nope"), ret)
}

func TestFailedCreationConsumesNonce(t *testing.T) {
	chain := newTestChain(t)

	tx := legacyTx(0, testAddr, nil, new(big.Int), 80_000, []byte{byte(vm.INVALID)})
	receipt, err := chain.Execute(tx, nil)
	require.NoError(t, err)

	contract := crypto.CreateAddress(testAddr, 0)
	assert.False(t, receipt.Succeeded())
	assert.Equal(t, uint64(80_000), receipt.GasUsed, "failure consumes all gas")
	assert.Equal(t, contract, receipt.ContractAddress)
	assert.Empty(t, chain.Code(contract))
	assert.Equal(t, uint64(1), chain.Nonce(testAddr))

	// The next creation lands on the next address.
	receipt = deploy(t, chain, program.New().ReturnViaCodeCopy(storeAndEcho).Bytes())
	assert.Equal(t, crypto.CreateAddress(testAddr, 1), receipt.ContractAddress)
	assert.NotEqual(t, contract, receipt.ContractAddress)
}

func TestReceiptLogs(t *testing.T) {
	chain := newTestChain(t)

	topic := common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")
	runtime := program.New().Mstore([]byte("hello"), 0).Log(0, 5, topic).Op(vm.STOP).Bytes()
	contract := deploy(t, chain, program.New().ReturnViaCodeCopy(runtime).Bytes()).ContractAddress

	tx := legacyTx(1, testAddr, &contract, new(big.Int), 100_000, []byte{1})
	receipt, err := chain.Execute(tx, nil)
	require.NoError(t, err)
	require.True(t, receipt.Succeeded())
	require.Len(t, receipt.Logs, 1)

	lg := receipt.Logs[0]
	assert.Equal(t, contract, lg.Address)
	assert.Equal(t, []common.Hash{topic}, lg.Topics)
	assert.Equal(t, []byte("hello"), lg.Data)
	assert.Equal(t, uint64(2), lg.BlockNumber)
	assert.Equal(t, tx.Hash(), lg.TxHash)

	stored := chain.GetReceipt(tx.Hash())
	require.NotNil(t, stored)
	require.Len(t, stored.Logs, 1)
	assert.Equal(t, lg.Data, stored.Logs[0].Data)
}

func TestSimulateLeavesStateUntouched(t *testing.T) {
	chain := newTestChain(t)
	contract := deploy(t, chain, program.New().ReturnViaCodeCopy(storeAndEcho).Bytes()).ContractAddress

	before := chain.StateDump()
	ret, err := chain.Simulate(testAddr, contract, word(77), big.NewInt(params.Ether))
	require.NoError(t, err)
	assert.Equal(t, word(77), ret)

	after := chain.StateDump()
	if !assert.Equal(t, before, after) {
		t.Logf("before:\n%s\nafter:\n%s", spew.Sdump(before), spew.Sdump(after))
	}
	assert.Equal(t, common.Hash{}, chain.Storage(contract, common.Hash{}))
	assert.Equal(t, uint64(1), chain.BlockNumber())
}

func TestSimulateWithoutCalldata(t *testing.T) {
	chain := newTestChain(t)

	// Returns the word 300 regardless of its input.
	runtime := program.New().Mstore(word(300), 0).Return(0, 32).Bytes()
	contract := deploy(t, chain, program.New().ReturnViaCodeCopy(runtime).Bytes()).ContractAddress

	for _, calldata := range [][]byte{nil, {}} {
		ret, err := chain.Simulate(testAddr, contract, calldata, nil)
		require.NoError(t, err)
		assert.Equal(t, word(300), ret)
	}
	// Execute keeps treating an empty input as a plain transfer.
	receipt, err := chain.Execute(legacyTx(1, testAddr, &contract, new(big.Int), 50_000, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, params.TxGas, receipt.GasUsed)
}

func TestSimulateEnvironment(t *testing.T) {
	chain := newTestChain(t)

	// Returns [CHAINID, TIMESTAMP, NUMBER, BLOCKHASH(1)] as four words.
	runtime := program.New().
		Op(vm.CHAINID).Push(0).Op(vm.MSTORE).
		Op(vm.TIMESTAMP).Push(32).Op(vm.MSTORE).
		Op(vm.NUMBER).Push(64).Op(vm.MSTORE).
		Push(1).Op(vm.BLOCKHASH).Push(96).Op(vm.MSTORE).
		Return(0, 128).Bytes()
	receipt := deploy(t, chain, program.New().ReturnViaCodeCopy(runtime).Bytes())
	contract := receipt.ContractAddress

	ret, err := chain.Simulate(otherAddr, contract, []byte{1}, nil)
	require.NoError(t, err)
	require.Len(t, ret, 128)

	assert.Equal(t, word(params.DefaultChainID.Uint64()), ret[:32])
	assert.Equal(t, word(uint64(testTime.Unix())), ret[32:64])
	assert.Equal(t, word(2), ret[64:96])
	assert.Equal(t, receipt.TxHash.Bytes(), ret[96:128])
}

func TestEstimateGas(t *testing.T) {
	chain := newTestChain(t)

	gas, err := chain.EstimateGas(&Message{From: testAddr, To: &otherAddr, Value: big.NewInt(1)})
	require.NoError(t, err)
	assert.Equal(t, params.TxGas, gas)

	contract := deploy(t, chain, program.New().ReturnViaCodeCopy(storeAndEcho).Bytes()).ContractAddress
	gas, err = chain.EstimateGas(&Message{From: testAddr, To: &contract, Data: word(1)})
	require.NoError(t, err)
	assert.Greater(t, gas, params.SstoreGas)

	_, err = chain.EstimateGas(&Message{From: testAddr, To: &contract, Data: word(1), GasLimit: 100})
	assert.Error(t, err)
}

func TestConcurrentExecution(t *testing.T) {
	chain := newTestChain(t)

	const perSender = 10
	var (
		senders = DefaultGenesis().Alloc
		g       errgroup.Group
	)
	for i, sender := range senders {
		from := sender.Address
		to := common.BytesToAddress([]byte{0xee, byte(i)})
		g.Go(func() error {
			for nonce := uint64(0); nonce < perSender; nonce++ {
				if _, err := chain.Execute(legacyTx(nonce, from, &to, big.NewInt(1), params.TxGas, nil), nil); err != nil {
					return err
				}
			}
			return nil
		})
		// Readers run alongside the writers.
		g.Go(func() error {
			for j := 0; j < perSender; j++ {
				if _, err := chain.Simulate(from, to, nil, nil); err != nil {
					return err
				}
				chain.Balance(from)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, uint64(len(senders)*perSender), chain.BlockNumber())
	for i, sender := range senders {
		assert.Equal(t, uint64(perSender), chain.Nonce(sender.Address))
		assert.Equal(t, uint256.NewInt(perSender), chain.Balance(common.BytesToAddress([]byte{0xee, byte(i)})))
	}
}

func TestChainReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chaindata")

	db, err := rawdb.NewLevelDBDatabase(dir, 16, 16, false)
	require.NoError(t, err)
	chain, err := NewChain(db, nil, nil, nil)
	require.NoError(t, err)

	contract := deploy(t, chain, program.New().ReturnViaCodeCopy(storeAndEcho).Bytes()).ContractAddress
	tx := legacyTx(1, testAddr, &contract, new(big.Int), 100_000, word(42))
	_, err = chain.Execute(tx, nil)
	require.NoError(t, err)
	balance := chain.Balance(testAddr)
	require.NoError(t, chain.Close())

	_, err = chain.Execute(tx, nil)
	require.ErrorIs(t, err, ErrChainClosed)

	db, err = rawdb.NewLevelDBDatabase(dir, 16, 16, false)
	require.NoError(t, err)
	chain, err = NewChain(db, nil, nil, nil)
	require.NoError(t, err)
	defer chain.Close()

	assert.Equal(t, uint64(2), chain.BlockNumber())
	assert.Equal(t, balance, chain.Balance(testAddr))
	assert.Equal(t, uint64(2), chain.Nonce(testAddr))
	assert.True(t, bytes.Equal(storeAndEcho, chain.Code(contract)))
	assert.Equal(t, common.BytesToHash(word(42)), chain.Storage(contract, common.Hash{}))
	assert.NotNil(t, chain.GetReceipt(tx.Hash()))
}

func TestChainIDMismatch(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chaindata")

	db, err := rawdb.NewPebbleDBDatabase(dir, 16, 16, false)
	require.NoError(t, err)
	chain, err := NewChain(db, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, chain.Close())

	db, err = rawdb.NewPebbleDBDatabase(dir, 16, 16, false)
	require.NoError(t, err)
	defer db.Close()

	config := params.DefaultChainConfig.Copy()
	config.ChainID = big.NewInt(1)
	_, err = NewChain(db, nil, nil, config)
	require.ErrorIs(t, err, ErrChainIDMismatch)
}
