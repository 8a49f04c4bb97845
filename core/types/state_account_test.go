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
	"bytes"
	"testing"

	"github.com/holiman/uint256"
)

func TestSlimAccountRoundTrip(t *testing.T) {
	// An empty account encodes its code hash as an empty string
	// 空账户的代码哈希编码为空字符串
	slimData := SlimAccountRLP(*NewEmptyStateAccount())
	acct, err := FullAccount(slimData)
	if err != nil {
		t.Fatalf("Failed to decode slim RLP: %v", err)
	}
	if acct.Nonce != 0 {
		t.Errorf("Expected Nonce to be 0, got %d", acct.Nonce)
	}
	if !acct.Balance.IsZero() {
		t.Errorf("Expected zero balance, got %v", acct.Balance)
	}
	if !bytes.Equal(acct.CodeHash, EmptyCodeHash[:]) {
		t.Errorf("Expected CodeHash to be EmptyCodeHash, got %x", acct.CodeHash)
	}

	// A funded contract account keeps every field
	want := &StateAccount{
		Nonce:    7,
		Balance:  new(uint256.Int).Lsh(uint256.NewInt(1), 200),
		CodeHash: bytes.Repeat([]byte{0xab}, 32),
	}
	have, err := FullAccount(SlimAccountRLP(*want))
	if err != nil {
		t.Fatalf("Failed to decode slim RLP: %v", err)
	}
	if have.Nonce != want.Nonce || !have.Balance.Eq(want.Balance) || !bytes.Equal(have.CodeHash, want.CodeHash) {
		t.Errorf("account mismatch: have %+v, want %+v", have, want)
	}
}

func TestStateAccountCopy(t *testing.T) {
	orig := &StateAccount{Nonce: 1, Balance: uint256.NewInt(10), CodeHash: []byte{1, 2, 3}}
	cpy := orig.Copy()
	cpy.Balance.SetUint64(20)
	cpy.CodeHash[0] = 9
	if orig.Balance.Uint64() != 10 || orig.CodeHash[0] != 1 {
		t.Fatalf("copy shares memory with original: %+v", orig)
	}
}

func TestFullAccountMalformed(t *testing.T) {
	if _, err := FullAccount([]byte{0xc1, 0x01}); err == nil {
		t.Fatal("expected error for short account list")
	}
}
