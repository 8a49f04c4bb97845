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
	"errors"
	"fmt"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/crypto"
	"github.com/umbracle/fastrlp"
)

var (
	ErrTxTypeNotSupported = errors.New("transaction type not supported")
	errShortTypedTx       = errors.New("typed transaction too short")
	errEmptyTypedTx       = errors.New("empty typed transaction bytes")
)

// Transaction types.
// 交易类型。
const (
	LegacyTxType     = 0x00
	DynamicFeeTxType = 0x02
)

// txArenaPool pools the arenas used to encode transactions.
var txArenaPool fastrlp.ArenaPool

// Transaction is an Ethereum transaction. The sender is carried explicitly:
// there is no signature to recover it from.
// Transaction 表示一笔交易，发送者显式携带，无需从签名中恢复。
type Transaction struct {
	inner TxData    // Consensus contents of a transaction
	time  time.Time // Time first seen locally

	// caches
	hash atomic.Pointer[common.Hash]
}

// NewTx creates a new transaction.
func NewTx(inner TxData) *Transaction {
	tx := new(Transaction)
	tx.setDecoded(inner.copy())
	return tx
}

// TxData is the underlying data of a transaction.
//
// This is implemented by DynamicFeeTx and LegacyTx.
// TxData 是交易的底层数据。
type TxData interface {
	txType() byte // returns the type ID
	copy() TxData // creates a deep copy and initializes all fields

	from() common.Address
	data() []byte
	gas() uint64
	gasPrice() *big.Int
	gasTipCap() *big.Int
	gasFeeCap() *big.Int
	value() *big.Int
	nonce() uint64
	to() *common.Address

	// effectiveGasPrice computes the gas price paid by the transaction, given
	// the inclusion block baseFee.
	//
	// The returned *big.Int is an independent copy of the computed value, and
	// implementations can use 'dst' to store the result.
	effectiveGasPrice(dst *big.Int, baseFee *big.Int) *big.Int

	encode(a *fastrlp.Arena) *fastrlp.Value
	decode(elems []*fastrlp.Value) error
}

// MarshalBinary returns the canonical encoding of the transaction.
// For legacy transactions, it returns the RLP encoding. For typed
// transactions, it returns the type byte followed by the RLP encoding.
// MarshalBinary 返回交易的规范编码。
func (tx *Transaction) MarshalBinary() ([]byte, error) {
	a := txArenaPool.Get()
	defer txArenaPool.Put(a)

	var dst []byte
	if tx.Type() != LegacyTxType {
		dst = append(dst, tx.Type())
	}
	return tx.inner.encode(a).MarshalTo(dst), nil
}

// UnmarshalBinary decodes the canonical encoding of transactions.
// It supports legacy RLP transactions and the dynamic fee envelope.
func (tx *Transaction) UnmarshalBinary(b []byte) error {
	if len(b) == 0 {
		return errEmptyTypedTx
	}
	var (
		inner TxData
		body  = b
	)
	switch {
	case b[0] > 0x7f:
		inner = new(LegacyTx)
	case b[0] == DynamicFeeTxType:
		if len(b) <= 1 {
			return errShortTypedTx
		}
		inner, body = new(DynamicFeeTx), b[1:]
	default:
		return fmt.Errorf("%w: %d", ErrTxTypeNotSupported, b[0])
	}
	p := fastrlp.DefaultParserPool.Get()
	defer fastrlp.DefaultParserPool.Put(p)

	v, err := p.Parse(body)
	if err != nil {
		return err
	}
	elems, err := v.GetElems()
	if err != nil {
		return err
	}
	if err := inner.decode(elems); err != nil {
		return err
	}
	tx.setDecoded(inner)
	return nil
}

// setDecoded sets the inner transaction after decoding.
func (tx *Transaction) setDecoded(inner TxData) {
	tx.inner = inner
	tx.time = time.Now()
}

// Type returns the transaction type.
func (tx *Transaction) Type() uint8 {
	return tx.inner.txType()
}

// From returns the sender of the transaction.
// From 返回交易的发送者。
func (tx *Transaction) From() common.Address { return tx.inner.from() }

// Data returns the input data of the transaction.
func (tx *Transaction) Data() []byte { return tx.inner.data() }

// Gas returns the gas limit of the transaction.
func (tx *Transaction) Gas() uint64 { return tx.inner.gas() }

// GasPrice returns the gas price of the transaction.
func (tx *Transaction) GasPrice() *big.Int { return new(big.Int).Set(tx.inner.gasPrice()) }

// GasTipCap returns the gasTipCap per gas of the transaction.
func (tx *Transaction) GasTipCap() *big.Int { return new(big.Int).Set(tx.inner.gasTipCap()) }

// GasFeeCap returns the fee cap per gas of the transaction.
func (tx *Transaction) GasFeeCap() *big.Int { return new(big.Int).Set(tx.inner.gasFeeCap()) }

// Value returns the ether amount of the transaction.
func (tx *Transaction) Value() *big.Int { return new(big.Int).Set(tx.inner.value()) }

// Nonce returns the sender account nonce of the transaction.
func (tx *Transaction) Nonce() uint64 { return tx.inner.nonce() }

// To returns the recipient address of the transaction.
// For contract-creation transactions, To returns nil.
// To 返回交易的接收地址，合约创建交易返回 nil。
func (tx *Transaction) To() *common.Address {
	return copyAddressPtr(tx.inner.to())
}

// IsCreation reports whether the transaction deploys a contract.
func (tx *Transaction) IsCreation() bool { return tx.inner.to() == nil }

// IsDynamicFee reports whether the transaction is priced with a fee cap and tip.
func (tx *Transaction) IsDynamicFee() bool { return tx.Type() == DynamicFeeTxType }

// Time returns the time when the transaction was first seen locally.
func (tx *Transaction) Time() time.Time { return tx.time }

// Cost returns (gas * gasPrice) + value.
func (tx *Transaction) Cost() *big.Int {
	total := new(big.Int).Mul(tx.GasPrice(), new(big.Int).SetUint64(tx.Gas()))
	total.Add(total, tx.Value())
	return total
}

// EffectiveGasPrice returns the price per gas the sender pays once the
// transaction is included under the given base fee: the lesser of
// baseFee+tip and the fee cap for dynamic fee transactions, the flat gas
// price otherwise.
// EffectiveGasPrice 返回交易在给定基础费用下实际支付的每单位 Gas 价格。
func (tx *Transaction) EffectiveGasPrice(baseFee *big.Int) *big.Int {
	return tx.inner.effectiveGasPrice(new(big.Int), baseFee)
}

// Hash returns the transaction hash.
// Hash 返回交易哈希，即编码的 Keccak-256 值。
func (tx *Transaction) Hash() common.Hash {
	if hash := tx.hash.Load(); hash != nil {
		return *hash
	}
	enc, _ := tx.MarshalBinary()
	h := crypto.Keccak256Hash(enc)
	tx.hash.Store(&h)
	return h
}

// Transactions is a Transaction slice type for basic sorting.
type Transactions []*Transaction

// Len returns the length of s.
func (s Transactions) Len() int { return len(s) }

// copyAddressPtr copies an address.
func copyAddressPtr(a *common.Address) *common.Address {
	if a == nil {
		return nil
	}
	cpy := *a
	return &cpy
}

// encodeTo appends the recipient, the empty string standing for creation.
func encodeTo(a *fastrlp.Arena, to *common.Address) *fastrlp.Value {
	if to == nil {
		return a.NewNull()
	}
	return a.NewCopyBytes(to.Bytes())
}

// decodeTo reads back a recipient written by encodeTo.
func decodeTo(v *fastrlp.Value) (*common.Address, error) {
	b, err := v.Bytes()
	if err != nil {
		return nil, err
	}
	switch len(b) {
	case 0:
		return nil, nil
	case common.AddressLength:
		addr := common.BytesToAddress(b)
		return &addr, nil
	default:
		return nil, fmt.Errorf("invalid recipient length %d", len(b))
	}
}

// decodeBig reads a big integer element, allocating the result.
func decodeBig(v *fastrlp.Value) (*big.Int, error) {
	b := new(big.Int)
	if err := v.GetBigInt(b); err != nil {
		return nil, err
	}
	return b, nil
}
