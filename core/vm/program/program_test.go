// Copyright 2024 The go-ethereum Authors
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

package program

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/core/vm"
	"github.com/holiman/uint256"
)

func TestPush(t *testing.T) {
	tests := []struct {
		input    any
		expected string
	}{
		// native ints
		{0, "6000"},
		{0xfff, "610fff"},
		{nil, "6000"},
		{uint8(1), "6001"},
		{uint16(1), "6001"},
		{uint32(1), "6001"},
		{uint64(1), "6001"},
		// bigints
		{big.NewInt(0), "6000"},
		{big.NewInt(1), "6001"},
		{big.NewInt(0xfff), "610fff"},
		// uint256
		{uint256.NewInt(1), "6001"},
		{uint256.Int{1, 0, 0, 0}, "6001"},
		// Addresses
		{common.HexToAddress("0xdeadbeef"), "63deadbeef"},
		{&common.Address{}, "6000"},
	}
	for i, tc := range tests {
		have := New().Push(tc.input).Hex()
		if have != tc.expected {
			t.Errorf("test %d: got %v expected %v", i, have, tc.expected)
		}
	}
}

func TestJumpIf(t *testing.T) {
	p, dest := New().Jumpdest()
	have := p.JumpIf(dest, 1).Hex()
	if want := "5b6001600057"; have != want {
		t.Errorf("have %v want %v", have, want)
	}
}

func TestMstoreChunks(t *testing.T) {
	data := make([]byte, 33)
	data[32] = 0xff
	code := New().Mstore(data, 0).Bytes()
	// One MSTORE of a zero word, then one MSTORE8.
	want := []byte{byte(vm.PUSH1), 0, byte(vm.PUSH1), 0, byte(vm.MSTORE), byte(vm.PUSH1), 0xff, byte(vm.PUSH1), 32, byte(vm.MSTORE8)}
	if !bytes.Equal(code, want) {
		t.Errorf("have %x want %x", code, want)
	}
}

func TestLogTopicOrder(t *testing.T) {
	have := New().Log(0, 32, 1, 2).Hex()
	// topics are pushed in reverse so topic 0 ends up right below size
	if want := "6002600160206000a2"; have != want {
		t.Errorf("have %v want %v", have, want)
	}
}
