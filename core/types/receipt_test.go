// Copyright 2015 The go-ethereum Authors
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
	"reflect"
	"testing"

	"github.com/emberchain/ember/common"
)

func TestReceiptStorageRoundTrip(t *testing.T) {
	want := &Receipt{
		Type:              DynamicFeeTxType,
		Status:            ReceiptStatusSuccessful,
		CumulativeGasUsed: 43000,
		Logs: []*Log{
			{
				Address:     testTo,
				Topics:      []common.Hash{common.HexToHash("0x01"), common.HexToHash("0x02")},
				Data:        []byte{0x01, 0x00, 0xff},
				BlockNumber: 4,
				TxHash:      common.HexToHash("0xdead"),
				Index:       1,
			},
		},
		TxHash:            common.HexToHash("0xdead"),
		ContractAddress:   common.HexToAddress("0xcd234a471b72ba2f1ccf0a70fcaba648a5eecd8d"),
		GasUsed:           22000,
		EffectiveGasPrice: big.NewInt(20_000_000_000),
		From:              testFrom,
		To:                &testTo,
		BlockNumber:       4,
		TransactionIndex:  0,
	}
	var have Receipt
	if err := have.UnmarshalStorage(want.MarshalStorage()); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !reflect.DeepEqual(&have, want) {
		t.Fatalf("receipt mismatch:\nhave %+v\nwant %+v", have, *want)
	}
}

func TestReceiptStorageNoLogs(t *testing.T) {
	want := NewReceipt(true, 21000)
	want.EffectiveGasPrice = big.NewInt(1)
	var have Receipt
	if err := have.UnmarshalStorage(want.MarshalStorage()); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if have.Succeeded() {
		t.Error("failed receipt decoded as success")
	}
	if len(have.Logs) != 0 || have.To != nil {
		t.Errorf("unexpected fields: %+v", have)
	}
}
