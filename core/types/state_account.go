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
	"fmt"

	"github.com/emberchain/ember/common"
	"github.com/holiman/uint256"
	"github.com/umbracle/fastrlp"
)

var accountArenaPool fastrlp.ArenaPool

// StateAccount is the persisted representation of accounts. Contract storage
// lives beside the account under its own keys, so no storage root is kept.
//
// StateAccount 是账户的持久化表示。合约存储单独保存，因此不保留存储根。
type StateAccount struct {
	Nonce    uint64       // 账户的交易计数器
	Balance  *uint256.Int // 账户余额
	CodeHash []byte       // 合约代码的哈希，对于外部账户是空代码哈希。
}

// NewEmptyStateAccount constructs an empty state account.
// NewEmptyStateAccount 构造一个空的账户状态。
func NewEmptyStateAccount() *StateAccount {
	return &StateAccount{
		Balance:  new(uint256.Int),
		CodeHash: EmptyCodeHash.Bytes(),
	}
}

// Copy returns a deep-copied state account object.
// Copy 返回一个深拷贝的账户状态对象。
func (acct *StateAccount) Copy() *StateAccount {
	var balance *uint256.Int
	if acct.Balance != nil {
		balance = new(uint256.Int).Set(acct.Balance)
	}
	return &StateAccount{
		Nonce:    acct.Nonce,
		Balance:  balance,
		CodeHash: common.CopyBytes(acct.CodeHash),
	}
}

// SlimAccountRLP encodes the state account in 'slim RLP' format, which
// replaces the empty code hash with an empty byte slice.
//
// SlimAccountRLP 以“slim RLP”格式编码状态账户。
func SlimAccountRLP(account StateAccount) []byte {
	a := accountArenaPool.Get()
	defer accountArenaPool.Put(a)

	balance := account.Balance
	if balance == nil {
		balance = new(uint256.Int)
	}
	vv := a.NewArray()
	vv.Set(a.NewUint(account.Nonce))
	vv.Set(a.NewCopyBytes(balance.Bytes()))
	if bytes.Equal(account.CodeHash, EmptyCodeHash[:]) {
		vv.Set(a.NewNull())
	} else {
		vv.Set(a.NewCopyBytes(account.CodeHash))
	}
	return vv.MarshalTo(nil)
}

// FullAccount decodes the data on the 'slim RLP' format and returns
// the full account.
//
// FullAccount 解码“slim RLP”格式的数据并返回完整的账户。
func FullAccount(data []byte) (*StateAccount, error) {
	p := fastrlp.DefaultParserPool.Get()
	defer fastrlp.DefaultParserPool.Put(p)

	v, err := p.Parse(data)
	if err != nil {
		return nil, err
	}
	elems, err := v.GetElems()
	if err != nil {
		return nil, err
	}
	if len(elems) != 3 {
		return nil, fmt.Errorf("incorrect number of elements to decode account, expected 3 but found %d", len(elems))
	}
	var account StateAccount
	if account.Nonce, err = elems[0].GetUint64(); err != nil {
		return nil, err
	}
	balance, err := elems[1].Bytes()
	if err != nil {
		return nil, err
	}
	if len(balance) > 32 {
		return nil, fmt.Errorf("balance too large: %d bytes", len(balance))
	}
	account.Balance = new(uint256.Int).SetBytes(balance)

	// Interpret the code hash in slim format.
	// 解释slim格式中的代码哈希。
	codeHash, err := elems[2].Bytes()
	if err != nil {
		return nil, err
	}
	if len(codeHash) == 0 {
		account.CodeHash = EmptyCodeHash[:]
	} else {
		account.CodeHash = common.CopyBytes(codeHash)
	}
	return &account, nil
}
