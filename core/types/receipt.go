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
	"fmt"
	"math/big"

	"github.com/emberchain/ember/common"
	"github.com/umbracle/fastrlp"
)

const (
	// ReceiptStatusFailed is the status code of a transaction if execution failed.
	// ReceiptStatusFailed 是交易执行失败时的状态码。
	ReceiptStatusFailed = uint64(0)

	// ReceiptStatusSuccessful is the status code of a transaction if execution succeeded.
	// ReceiptStatusSuccessful 是交易执行成功时的状态码。
	ReceiptStatusSuccessful = uint64(1)
)

var receiptArenaPool fastrlp.ArenaPool

// Receipt represents the results of a transaction.
// Receipt 表示交易的结果。
type Receipt struct {
	// Consensus fields
	Type              uint8
	Status            uint64
	CumulativeGasUsed uint64
	Logs              []*Log

	// Implementation fields: These fields are added by the node when processing
	// a transaction.
	TxHash            common.Hash
	ContractAddress   common.Address // zero unless the transaction created a contract
	GasUsed           uint64
	EffectiveGasPrice *big.Int
	From              common.Address
	To                *common.Address

	// Inclusion information: These fields provide information about the inclusion of the
	// transaction corresponding to this receipt.
	BlockNumber      uint64
	TransactionIndex uint
}

// NewReceipt creates a barebone transaction receipt, copying the init fields.
func NewReceipt(failed bool, cumulativeGasUsed uint64) *Receipt {
	r := &Receipt{
		Type:              LegacyTxType,
		CumulativeGasUsed: cumulativeGasUsed,
	}
	if failed {
		r.Status = ReceiptStatusFailed
	} else {
		r.Status = ReceiptStatusSuccessful
	}
	return r
}

// Succeeded reports whether the transaction ran to completion.
func (r *Receipt) Succeeded() bool {
	return r.Status == ReceiptStatusSuccessful
}

// MarshalStorage encodes every field of the receipt, derived fields included,
// for the receipt store.
// MarshalStorage 编码收据的全部字段（包括派生字段）以便存储。
func (r *Receipt) MarshalStorage() []byte {
	a := receiptArenaPool.Get()
	defer receiptArenaPool.Put(a)

	vv := a.NewArray()
	vv.Set(a.NewUint(uint64(r.Type)))
	vv.Set(a.NewUint(r.Status))
	vv.Set(a.NewUint(r.CumulativeGasUsed))
	if len(r.Logs) == 0 {
		vv.Set(a.NewNullArray())
	} else {
		logs := a.NewArray()
		for _, l := range r.Logs {
			logs.Set(l.marshalWith(a))
		}
		vv.Set(logs)
	}
	vv.Set(a.NewCopyBytes(r.TxHash.Bytes()))
	vv.Set(a.NewCopyBytes(r.ContractAddress.Bytes()))
	vv.Set(a.NewUint(r.GasUsed))
	if r.EffectiveGasPrice != nil {
		vv.Set(a.NewBigInt(r.EffectiveGasPrice))
	} else {
		vv.Set(a.NewBigInt(new(big.Int)))
	}
	vv.Set(a.NewCopyBytes(r.From.Bytes()))
	vv.Set(encodeTo(a, r.To))
	vv.Set(a.NewUint(r.BlockNumber))
	vv.Set(a.NewUint(uint64(r.TransactionIndex)))
	return vv.MarshalTo(nil)
}

// UnmarshalStorage decodes a receipt written by MarshalStorage.
func (r *Receipt) UnmarshalStorage(input []byte) error {
	p := fastrlp.DefaultParserPool.Get()
	defer fastrlp.DefaultParserPool.Put(p)

	v, err := p.Parse(input)
	if err != nil {
		return err
	}
	elems, err := v.GetElems()
	if err != nil {
		return err
	}
	if len(elems) != 12 {
		return fmt.Errorf("incorrect number of elements to decode receipt, expected 12 but found %d", len(elems))
	}
	typ, err := elems[0].GetUint64()
	if err != nil {
		return err
	}
	r.Type = uint8(typ)
	if r.Status, err = elems[1].GetUint64(); err != nil {
		return err
	}
	if r.CumulativeGasUsed, err = elems[2].GetUint64(); err != nil {
		return err
	}
	logs, err := elems[3].GetElems()
	if err != nil {
		return err
	}
	r.Logs = make([]*Log, len(logs))
	for i, elem := range logs {
		r.Logs[i] = new(Log)
		if err := r.Logs[i].unmarshalFrom(elem); err != nil {
			return err
		}
	}
	if err := elems[4].GetHash(r.TxHash[:]); err != nil {
		return err
	}
	if err := elems[5].GetAddr(r.ContractAddress[:]); err != nil {
		return err
	}
	if r.GasUsed, err = elems[6].GetUint64(); err != nil {
		return err
	}
	if r.EffectiveGasPrice, err = decodeBig(elems[7]); err != nil {
		return err
	}
	if err := elems[8].GetAddr(r.From[:]); err != nil {
		return err
	}
	if r.To, err = decodeTo(elems[9]); err != nil {
		return err
	}
	if r.BlockNumber, err = elems[10].GetUint64(); err != nil {
		return err
	}
	index, err := elems[11].GetUint64()
	if err != nil {
		return err
	}
	r.TransactionIndex = uint(index)
	return nil
}

// Receipts is a wrapper around a Receipt array.
type Receipts []*Receipt

// Len returns the number of receipts in this list.
func (rs Receipts) Len() int { return len(rs) }
