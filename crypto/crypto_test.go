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

package crypto

import (
	"bytes"
	"testing"

	"github.com/emberchain/ember/common"
)

// These tests are sanity checks.
// They should ensure that we don't e.g. use Sha3-224 instead of Sha3-256
// and that the sha3 library uses keccak-f permutation.
func TestKeccak256Hash(t *testing.T) {
	msg := []byte("abc")
	exp := common.FromHex("4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45")
	checkhash(t, "Sha3-256-array", func(in []byte) []byte { h := Keccak256Hash(in); return h[:] }, msg, exp)
}

func TestKeccak256Hasher(t *testing.T) {
	msg := []byte("abc")
	exp := common.FromHex("4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45")
	hasher := NewKeccakState()
	checkhash(t, "Sha3-256-array", func(in []byte) []byte { h := HashData(hasher, in); return h[:] }, msg, exp)
	checkhash(t, "Sha3-256-pooled", func(in []byte) []byte { h := HashPooled(in); return h[:] }, msg, exp)
}

func TestEmptyCodeHash(t *testing.T) {
	want := common.HexToHash("c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")
	if EmptyCodeHash != want {
		t.Fatalf("empty code hash mismatch: have %x, want %x", EmptyCodeHash, want)
	}
}

func TestCreateAddress(t *testing.T) {
	sender := common.HexToAddress("0x6ac7ea33f8831ea9dcc53393aaa88b25a785dbf0")
	tests := []struct {
		nonce uint64
		want  common.Address
	}{
		{0, common.HexToAddress("0xcd234a471b72ba2f1ccf0a70fcaba648a5eecd8d")},
		{1, common.HexToAddress("0x343c43a37d37dff08ae8c4a11544c718abb4fcf8")},
		{2, common.HexToAddress("0xf778b86fa74e846c4f0a1fbd1335fe81c00a0c91")},
	}
	for _, tt := range tests {
		if have := CreateAddress(sender, tt.nonce); have != tt.want {
			t.Errorf("nonce %d: have %v, want %v", tt.nonce, have, tt.want)
		}
	}
	if CreateAddress(sender, 7) != CreateAddress(sender, 7) {
		t.Fatal("address derivation is not deterministic")
	}
}

func checkhash(t *testing.T, name string, f func([]byte) []byte, msg, exp []byte) {
	sum := f(msg)
	if !bytes.Equal(exp, sum) {
		t.Fatalf("hash %s mismatch: want: %x have: %x", name, exp, sum)
	}
}
