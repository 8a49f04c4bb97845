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
	"fmt"
	"math/big"

	"github.com/emberchain/ember/common"
	"github.com/umbracle/fastrlp"
)

// LegacyTx is the transaction data of the original Ethereum transactions,
// priced with a single flat gas price.
// LegacyTx 是原始以太坊交易的数据，使用单一的 Gas 价格。
type LegacyTx struct {
	Nonce    uint64          // nonce of sender account
	GasPrice *big.Int        // wei per gas
	Gas      uint64          // gas limit
	From     common.Address  // sender of the transaction
	To       *common.Address // nil means contract creation
	Value    *big.Int        // wei amount
	Data     []byte          // contract invocation input data
}

// copy creates a deep copy of the transaction data and initializes all fields.
func (tx *LegacyTx) copy() TxData {
	cpy := &LegacyTx{
		Nonce: tx.Nonce,
		From:  tx.From,
		To:    copyAddressPtr(tx.To),
		Data:  common.CopyBytes(tx.Data),
		Gas:   tx.Gas,
		// These are initialized below.
		Value:    new(big.Int),
		GasPrice: new(big.Int),
	}
	if tx.Value != nil {
		cpy.Value.Set(tx.Value)
	}
	if tx.GasPrice != nil {
		cpy.GasPrice.Set(tx.GasPrice)
	}
	return cpy
}

// accessors for innerTx.
func (tx *LegacyTx) txType() byte         { return LegacyTxType }
func (tx *LegacyTx) from() common.Address { return tx.From }
func (tx *LegacyTx) data() []byte         { return tx.Data }
func (tx *LegacyTx) gas() uint64          { return tx.Gas }
func (tx *LegacyTx) gasPrice() *big.Int   { return tx.GasPrice }
func (tx *LegacyTx) gasTipCap() *big.Int  { return tx.GasPrice }
func (tx *LegacyTx) gasFeeCap() *big.Int  { return tx.GasPrice }
func (tx *LegacyTx) value() *big.Int      { return tx.Value }
func (tx *LegacyTx) nonce() uint64        { return tx.Nonce }
func (tx *LegacyTx) to() *common.Address  { return tx.To }

func (tx *LegacyTx) effectiveGasPrice(dst *big.Int, baseFee *big.Int) *big.Int {
	return dst.Set(tx.GasPrice)
}

func (tx *LegacyTx) encode(a *fastrlp.Arena) *fastrlp.Value {
	vv := a.NewArray()
	vv.Set(a.NewUint(tx.Nonce))
	vv.Set(a.NewBigInt(tx.GasPrice))
	vv.Set(a.NewUint(tx.Gas))
	vv.Set(a.NewCopyBytes(tx.From.Bytes()))
	vv.Set(encodeTo(a, tx.To))
	vv.Set(a.NewBigInt(tx.Value))
	vv.Set(a.NewCopyBytes(tx.Data))
	return vv
}

func (tx *LegacyTx) decode(elems []*fastrlp.Value) error {
	if len(elems) != 7 {
		return fmt.Errorf("incorrect number of elements to decode legacy transaction, expected 7 but found %d", len(elems))
	}
	var err error
	if tx.Nonce, err = elems[0].GetUint64(); err != nil {
		return err
	}
	if tx.GasPrice, err = decodeBig(elems[1]); err != nil {
		return err
	}
	if tx.Gas, err = elems[2].GetUint64(); err != nil {
		return err
	}
	if err = elems[3].GetAddr(tx.From[:]); err != nil {
		return err
	}
	if tx.To, err = decodeTo(elems[4]); err != nil {
		return err
	}
	if tx.Value, err = decodeBig(elems[5]); err != nil {
		return err
	}
	if tx.Data, err = elems[6].GetBytes(nil); err != nil {
		return err
	}
	return nil
}
