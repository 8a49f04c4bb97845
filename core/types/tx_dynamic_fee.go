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
	"fmt"
	"math/big"

	"github.com/emberchain/ember/common"
	"github.com/umbracle/fastrlp"
)

// 实际 Gas 价格 = min(GasFeeCap, baseFee + GasTipCap)。

// DynamicFeeTx represents a fee-market transaction, priced with a fee cap and
// a priority tip on top of the block base fee.
// DynamicFeeTx 表示费用市场交易，在区块基础费用之上使用费用上限和优先费定价。
type DynamicFeeTx struct {
	Nonce     uint64
	GasTipCap *big.Int // a.k.a. maxPriorityFeePerGas
	GasFeeCap *big.Int // a.k.a. maxFeePerGas
	Gas       uint64
	From      common.Address
	To        *common.Address // nil means contract creation
	Value     *big.Int
	Data      []byte
}

// copy creates a deep copy of the transaction data and initializes all fields.
func (tx *DynamicFeeTx) copy() TxData {
	cpy := &DynamicFeeTx{
		Nonce: tx.Nonce,
		From:  tx.From,
		To:    copyAddressPtr(tx.To),
		Data:  common.CopyBytes(tx.Data),
		Gas:   tx.Gas,
		// These are copied below.
		Value:     new(big.Int),
		GasTipCap: new(big.Int),
		GasFeeCap: new(big.Int),
	}
	if tx.Value != nil {
		cpy.Value.Set(tx.Value)
	}
	if tx.GasTipCap != nil {
		cpy.GasTipCap.Set(tx.GasTipCap)
	}
	if tx.GasFeeCap != nil {
		cpy.GasFeeCap.Set(tx.GasFeeCap)
	}
	return cpy
}

// accessors for innerTx.
func (tx *DynamicFeeTx) txType() byte         { return DynamicFeeTxType }
func (tx *DynamicFeeTx) from() common.Address { return tx.From }
func (tx *DynamicFeeTx) data() []byte         { return tx.Data }
func (tx *DynamicFeeTx) gas() uint64          { return tx.Gas }
func (tx *DynamicFeeTx) gasFeeCap() *big.Int  { return tx.GasFeeCap }
func (tx *DynamicFeeTx) gasTipCap() *big.Int  { return tx.GasTipCap }
func (tx *DynamicFeeTx) gasPrice() *big.Int   { return tx.GasFeeCap }
func (tx *DynamicFeeTx) value() *big.Int      { return tx.Value }
func (tx *DynamicFeeTx) nonce() uint64        { return tx.Nonce }
func (tx *DynamicFeeTx) to() *common.Address  { return tx.To }

// effectiveGasPrice returns baseFee + min(GasTipCap, GasFeeCap - baseFee),
// which never exceeds GasFeeCap.
func (tx *DynamicFeeTx) effectiveGasPrice(dst *big.Int, baseFee *big.Int) *big.Int {
	if baseFee == nil {
		return dst.Set(tx.GasFeeCap)
	}
	tip := dst.Sub(tx.GasFeeCap, baseFee)
	if tip.Cmp(tx.GasTipCap) > 0 {
		tip.Set(tx.GasTipCap)
	}
	return tip.Add(tip, baseFee)
}

func (tx *DynamicFeeTx) encode(a *fastrlp.Arena) *fastrlp.Value {
	vv := a.NewArray()
	vv.Set(a.NewUint(tx.Nonce))
	vv.Set(a.NewBigInt(tx.GasTipCap))
	vv.Set(a.NewBigInt(tx.GasFeeCap))
	vv.Set(a.NewUint(tx.Gas))
	vv.Set(a.NewCopyBytes(tx.From.Bytes()))
	vv.Set(encodeTo(a, tx.To))
	vv.Set(a.NewBigInt(tx.Value))
	vv.Set(a.NewCopyBytes(tx.Data))
	return vv
}

func (tx *DynamicFeeTx) decode(elems []*fastrlp.Value) error {
	if len(elems) != 8 {
		return fmt.Errorf("incorrect number of elements to decode dynamic fee transaction, expected 8 but found %d", len(elems))
	}
	var err error
	if tx.Nonce, err = elems[0].GetUint64(); err != nil {
		return err
	}
	if tx.GasTipCap, err = decodeBig(elems[1]); err != nil {
		return err
	}
	if tx.GasFeeCap, err = decodeBig(elems[2]); err != nil {
		return err
	}
	if tx.Gas, err = elems[3].GetUint64(); err != nil {
		return err
	}
	if err = elems[4].GetAddr(tx.From[:]); err != nil {
		return err
	}
	if tx.To, err = decodeTo(elems[5]); err != nil {
		return err
	}
	if tx.Value, err = decodeBig(elems[6]); err != nil {
		return err
	}
	if tx.Data, err = elems[7].GetBytes(nil); err != nil {
		return err
	}
	return nil
}
