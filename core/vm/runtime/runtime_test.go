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

package runtime

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/core/state"
	"github.com/emberchain/ember/core/vm"
	"github.com/emberchain/ember/core/vm/program"
	"github.com/emberchain/ember/crypto"
	"github.com/emberchain/ember/params"
	"github.com/holiman/uint256"
)

func TestDefaults(t *testing.T) {
	cfg := new(Config)
	setDefaults(cfg)

	if cfg.ChainConfig != params.DefaultChainConfig {
		t.Error("expected the default chain config")
	}
	if cfg.GasLimit == 0 {
		t.Error("expected gas limit to be set")
	}
	if cfg.GasPrice == nil || cfg.Value == nil || cfg.BlockNumber == nil {
		t.Error("expected big values to be set")
	}
	if cfg.BaseFee.Cmp(params.DefaultChainConfig.BaseFee) != 0 {
		t.Errorf("base fee mismatch: have %v, want %v", cfg.BaseFee, params.DefaultChainConfig.BaseFee)
	}
	if cfg.GetHashFn(0) == (common.Hash{}) {
		t.Error("expected a hash function")
	}
}

func TestExecute(t *testing.T) {
	code := program.New().
		Push(100).Push(200).Op(vm.ADD).
		Push(0).Op(vm.MSTORE).
		Return(0, 32).Bytes()

	ret, _, err := Execute(code, nil, nil)
	if err != nil {
		t.Fatal("didn't expect error", err)
	}
	if num := new(big.Int).SetBytes(ret); num.Cmp(big.NewInt(300)) != 0 {
		t.Error("Expected 300, got", num)
	}
}

func TestExecuteInput(t *testing.T) {
	code := program.New().InputToStack(0).Push(1).Op(vm.ADD).Push(0).Op(vm.MSTORE).Return(0, 32).Bytes()
	input := uint256.NewInt(41).Bytes32()

	ret, _, err := Execute(code, input[:], nil)
	if err != nil {
		t.Fatal("didn't expect error", err)
	}
	if num := new(big.Int).SetBytes(ret); num.Uint64() != 42 {
		t.Error("Expected 42, got", num)
	}
}

func TestCall(t *testing.T) {
	statedb := state.New(state.NewDatabaseForTesting())
	address := common.HexToAddress("0x0a")
	statedb.SetCode(address, program.New().Sstore(0, 66).Sload(0).Push(0).Op(vm.MSTORE).Return(0, 32).Bytes())

	ret, _, err := Call(address, nil, &Config{State: statedb})
	if err != nil {
		t.Fatal("didn't expect error", err)
	}
	if num := new(big.Int).SetBytes(ret); num.Uint64() != 66 {
		t.Error("Expected 66, got", num)
	}
	if have := statedb.GetState(address, common.Hash{}); have != common.BigToHash(big.NewInt(66)) {
		t.Errorf("slot mismatch: %x", have)
	}
}

func TestCreate(t *testing.T) {
	runtimeCode := program.New().Push(1).Push(0).Op(vm.MSTORE).Return(0, 32).Bytes()
	initCode := program.New().ReturnViaCodeCopy(runtimeCode).Bytes()
	origin := common.HexToAddress("0x01")

	cfg := &Config{Origin: origin}
	ret, addr, _, err := Create(initCode, cfg)
	if err != nil {
		t.Fatal("didn't expect error", err)
	}
	if !bytes.Equal(ret, runtimeCode) {
		t.Fatalf("deployed code mismatch: have %x, want %x", ret, runtimeCode)
	}
	if want := crypto.CreateAddress(origin, 0); addr != want {
		t.Fatalf("address mismatch: have %v, want %v", addr, want)
	}
	out, _, err := Call(addr, nil, cfg)
	if err != nil {
		t.Fatal("didn't expect error", err)
	}
	if num := new(big.Int).SetBytes(out); num.Uint64() != 1 {
		t.Error("Expected 1, got", num)
	}
}

func TestRevertData(t *testing.T) {
	code := program.New().Sstore(1, 1).RevertData([]byte("nope")).Bytes()

	ret, statedb, err := Execute(code, nil, nil)
	if !errors.Is(err, vm.ErrExecutionReverted) {
		t.Fatalf("error mismatch: have %v, want %v", err, vm.ErrExecutionReverted)
	}
	if string(ret) != "nope" {
		t.Fatalf("revert payload mismatch: %q", ret)
	}
	address := common.BytesToAddress([]byte("contract"))
	if have := statedb.GetState(address, common.BigToHash(big.NewInt(1))); have != (common.Hash{}) {
		t.Fatalf("reverted write survived: %x", have)
	}
}

func TestLoopOutOfGas(t *testing.T) {
	p, loop := program.New().Jumpdest()
	code := p.Jump(loop).Bytes()

	_, _, err := Execute(code, nil, &Config{GasLimit: 10_000})
	if !errors.Is(err, vm.ErrOutOfGas) {
		t.Fatalf("error mismatch: have %v, want %v", err, vm.ErrOutOfGas)
	}
}

func BenchmarkSimpleLoop(b *testing.B) {
	p, lbl := program.New().Jumpdest()
	code := p.Push(1).Op(vm.POP).Jump(lbl).Bytes()
	cfg := &Config{GasLimit: 1_000_000}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Execute(code, nil, cfg)
	}
}
