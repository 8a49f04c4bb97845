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

package types

import (
	"math/big"
	"testing"

	"github.com/emberchain/ember/common"
)

var (
	testFrom = common.HexToAddress("0x6ac7ea33f8831ea9dcc53393aaa88b25a785dbf0")
	testTo   = common.HexToAddress("0xb94f5374fce5edbc8e2a8697c15331677e6ebf0b")
)

func TestEffectiveGasPrice(t *testing.T) {
	gwei := big.NewInt(1_000_000_000)
	baseFee := new(big.Int).Mul(big.NewInt(20), gwei)

	tests := []struct {
		name string
		tx   TxData
		want *big.Int
	}{
		{
			name: "legacy",
			tx:   &LegacyTx{GasPrice: big.NewInt(7)},
			want: big.NewInt(7),
		},
		{
			name: "tip under cap",
			tx:   &DynamicFeeTx{GasTipCap: new(big.Int).Mul(big.NewInt(2), gwei), GasFeeCap: new(big.Int).Mul(big.NewInt(30), gwei)},
			want: new(big.Int).Mul(big.NewInt(22), gwei),
		},
		{
			name: "capped by fee cap",
			tx:   &DynamicFeeTx{GasTipCap: new(big.Int).Mul(big.NewInt(5), gwei), GasFeeCap: new(big.Int).Mul(big.NewInt(21), gwei)},
			want: new(big.Int).Mul(big.NewInt(21), gwei),
		},
		{
			name: "fee cap below base fee",
			tx:   &DynamicFeeTx{GasTipCap: big.NewInt(1), GasFeeCap: gwei},
			want: gwei,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			have := NewTx(tt.tx).EffectiveGasPrice(baseFee)
			if have.Cmp(tt.want) != 0 {
				t.Fatalf("wrong effective price: have %v, want %v", have, tt.want)
			}
		})
	}
}

func TestTransactionEncodingRoundTrip(t *testing.T) {
	txs := []*Transaction{
		NewTx(&LegacyTx{Nonce: 3, GasPrice: big.NewInt(10), Gas: 50000, From: testFrom, To: &testTo, Value: big.NewInt(1), Data: []byte{0xca, 0xfe}}),
		NewTx(&LegacyTx{Nonce: 0, GasPrice: big.NewInt(1), Gas: 100000, From: testFrom, Data: []byte{0x60, 0x00}}),
		NewTx(&DynamicFeeTx{Nonce: 9, GasTipCap: big.NewInt(2), GasFeeCap: big.NewInt(30), Gas: 21000, From: testFrom, To: &testTo, Value: big.NewInt(1000)}),
	}
	for i, tx := range txs {
		enc, err := tx.MarshalBinary()
		if err != nil {
			t.Fatalf("tx %d: encode failed: %v", i, err)
		}
		var dec Transaction
		if err := dec.UnmarshalBinary(enc); err != nil {
			t.Fatalf("tx %d: decode failed: %v", i, err)
		}
		if dec.Hash() != tx.Hash() {
			t.Errorf("tx %d: hash mismatch: have %x, want %x", i, dec.Hash(), tx.Hash())
		}
		if dec.Type() != tx.Type() || dec.From() != tx.From() || dec.Nonce() != tx.Nonce() {
			t.Errorf("tx %d: field mismatch", i)
		}
		if dec.IsCreation() != tx.IsCreation() {
			t.Errorf("tx %d: creation flag mismatch", i)
		}
		if !tx.IsCreation() && *dec.To() != *tx.To() {
			t.Errorf("tx %d: recipient mismatch: have %x, want %x", i, dec.To(), tx.To())
		}
	}
}

func TestTransactionAccessors(t *testing.T) {
	tx := NewTx(&DynamicFeeTx{GasTipCap: big.NewInt(2), GasFeeCap: big.NewInt(30), Gas: 21000, From: testFrom, Value: big.NewInt(5)})
	if !tx.IsCreation() {
		t.Error("nil recipient should be a creation")
	}
	if !tx.IsDynamicFee() {
		t.Error("expected dynamic fee transaction")
	}
	// Cost is priced at the fee cap
	if want := big.NewInt(21000*30 + 5); tx.Cost().Cmp(want) != 0 {
		t.Errorf("wrong cost: have %v, want %v", tx.Cost(), want)
	}
	// Mutating the returned value must not leak into the transaction
	tx.Value().SetInt64(100)
	if tx.Value().Int64() != 5 {
		t.Error("Value leaked internal state")
	}
}

func TestUnmarshalUnsupportedType(t *testing.T) {
	var tx Transaction
	if err := tx.UnmarshalBinary([]byte{0x05, 0xc0}); err == nil {
		t.Fatal("expected error for unknown type")
	}
	if err := tx.UnmarshalBinary(nil); err != errEmptyTypedTx {
		t.Fatalf("wrong error: %v", err)
	}
}
