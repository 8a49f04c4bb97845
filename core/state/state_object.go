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

package state

import (
	"bytes"
	"maps"

	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/core/types"
	"github.com/emberchain/ember/crypto"
	"github.com/holiman/uint256"
)

// Storage 表示存储映射，键和值均为 common.Hash 类型。
type Storage map[common.Hash]common.Hash

// Copy 创建并返回 Storage 的深拷贝。
func (s Storage) Copy() Storage {
	return maps.Clone(s)
}

// stateObject represents an account which is being modified.
//
// The usage pattern is as follows:
// - First you need to obtain a state object.
// - Account values as well as storages can be accessed and modified through the object.
// - Finally, call commit to fold the pending changes into the committed view.
//
// stateObject 表示正在修改的账户。
type stateObject struct {
	db      *StateDB
	address common.Address      // address of the account 账户的地址
	origin  *types.StateAccount // Account original data without any change applied, nil means it was not existent 原始账户数据
	data    types.StateAccount  // Account data with all mutations applied 应用所有变更后的账户数据

	// Write caches. 写缓存。
	code []byte // contract bytecode, which gets set when code is loaded 合约字节码

	originStorage Storage // Storage entries read from (or committed to) the database 已读取或已提交的存储条目
	dirtyStorage  Storage // Storage entries modified since the last commit 自上次提交以来修改的存储条目

	// Cache flags. 缓存标志。
	dirtyCode bool // true if the code was updated 如果代码被更新，则为 true

	// Flag whether the account was marked as self-destructed. The self-destructed
	// account is still accessible in the scope of same transaction.
	// 标志账户是否被标记为自毁。自毁账户在同一交易范围内仍可访问。
	selfDestructed bool

	// created is set when the account was (re)created since the last commit,
	// its persisted storage is ignored and wiped on commit.
	// created 表示账户自上次提交以来被（重新）创建，其持久化存储将被忽略并在提交时清除。
	created bool
}

// empty returns whether the account is considered empty.
// empty 返回账户是否被视为空。
func (s *stateObject) empty() bool {
	return s.data.Nonce == 0 && s.data.Balance.IsZero() && bytes.Equal(s.data.CodeHash, types.EmptyCodeHash.Bytes())
}

// newObject creates a state object.
// newObject 创建一个状态对象。
func newObject(db *StateDB, address common.Address, acct *types.StateAccount) *stateObject {
	origin := acct
	if acct == nil {
		acct = types.NewEmptyStateAccount()
	}
	return &stateObject{
		db:            db,
		address:       address,
		origin:        origin,
		data:          *acct,
		originStorage: make(Storage),
		dirtyStorage:  make(Storage),
	}
}

func (s *stateObject) markSelfdestructed() {
	s.selfDestructed = true
}

// GetState retrieves a value associated with the given storage key.
// GetState 检索与给定存储键关联的值。
func (s *stateObject) GetState(key common.Hash) common.Hash {
	value, _ := s.getState(key)
	return value
}

// getState retrieves a value associated with the given storage key, along with
// its original value.
func (s *stateObject) getState(key common.Hash) (common.Hash, common.Hash) {
	origin := s.GetCommittedState(key)
	value, dirty := s.dirtyStorage[key]
	if dirty {
		return value, origin
	}
	return origin, origin
}

// GetCommittedState retrieves the value associated with the specific key
// without any mutations caused in the current execution.
// GetCommittedState 检索与特定键关联的值，不包括当前执行中的任何变更。
func (s *stateObject) GetCommittedState(key common.Hash) common.Hash {
	if value, cached := s.originStorage[key]; cached {
		return value
	}
	// A freshly created account has no persisted storage to consult
	if s.created {
		return common.Hash{}
	}
	value, err := s.db.reader.Storage(s.address, key)
	if err != nil {
		s.db.setError(err)
		return common.Hash{}
	}
	s.originStorage[key] = value
	return value
}

// SetState updates a value in account storage.
// SetState 更新账户存储中的值。
func (s *stateObject) SetState(key, value common.Hash) {
	prev, _ := s.getState(key)
	if prev == value {
		return
	}
	_, hadDirty := s.dirtyStorage[key]
	s.db.journal.storageChange(s.address, key, prev, hadDirty)
	s.setState(key, value)
}

func (s *stateObject) setState(key, value common.Hash) {
	s.dirtyStorage[key] = value
}

// revertState restores a slot to its value before the journalled change.
// revertState 将存储槽恢复为日志记录变更之前的值。
func (s *stateObject) revertState(key, prev common.Hash, hadDirty bool) {
	if !hadDirty {
		delete(s.dirtyStorage, key)
		return
	}
	s.dirtyStorage[key] = prev
}

// commit folds the dirty storage into the committed view and marks the account
// as persisted.
// commit 将脏存储合并到已提交视图中，并将账户标记为已持久化。
func (s *stateObject) commit() {
	for key, value := range s.dirtyStorage {
		s.originStorage[key] = value
	}
	s.dirtyStorage = make(Storage)
	s.dirtyCode = false
	s.created = false
	s.origin = s.data.Copy()
}

// AddBalance adds amount to s's balance.
// AddBalance 将金额添加到账户余额。
func (s *stateObject) AddBalance(amount *uint256.Int) uint256.Int {
	prev := *s.Balance()
	if amount.IsZero() {
		return prev
	}
	s.SetBalance(new(uint256.Int).Add(s.Balance(), amount))
	return prev
}

// SubBalance removes amount from s's balance.
// SubBalance 从账户余额中减去金额。
func (s *stateObject) SubBalance(amount *uint256.Int) uint256.Int {
	prev := *s.Balance()
	if amount.IsZero() {
		return prev
	}
	s.SetBalance(new(uint256.Int).Sub(s.Balance(), amount))
	return prev
}

// SetBalance sets the balance for the object, and returns the previous balance.
func (s *stateObject) SetBalance(amount *uint256.Int) uint256.Int {
	prev := *s.data.Balance
	s.db.journal.balanceChange(s.address, s.data.Balance)
	s.setBalance(amount)
	return prev
}

func (s *stateObject) setBalance(amount *uint256.Int) {
	s.data.Balance = amount
}

func (s *stateObject) deepCopy(db *StateDB) *stateObject {
	obj := &stateObject{
		db:             db,
		address:        s.address,
		origin:         s.origin,
		data:           s.data,
		code:           s.code,
		originStorage:  s.originStorage.Copy(),
		dirtyStorage:   s.dirtyStorage.Copy(),
		dirtyCode:      s.dirtyCode,
		selfDestructed: s.selfDestructed,
		created:        s.created,
	}
	obj.data.Balance = new(uint256.Int).Set(s.data.Balance)
	obj.data.CodeHash = common.CopyBytes(s.data.CodeHash)
	if s.origin != nil {
		obj.origin = s.origin.Copy()
	}
	return obj
}

//
// Attribute accessors
// 属性访问器
//

// Address returns the address of the contract/account
func (s *stateObject) Address() common.Address {
	return s.address
}

// Code returns the contract code associated with this object, if any.
// Code 返回与此对象关联的合约代码（如果有）。
func (s *stateObject) Code() []byte {
	if len(s.code) != 0 {
		return s.code
	}
	if bytes.Equal(s.CodeHash(), types.EmptyCodeHash.Bytes()) {
		return nil
	}
	code, err := s.db.reader.Code(s.address, common.BytesToHash(s.CodeHash()))
	if err != nil {
		s.db.setError(err)
		return nil
	}
	s.code = code
	return code
}

// CodeSize returns the size of the contract code associated with this object,
// or zero if none.
// CodeSize 返回与此对象关联的合约代码大小，如果没有则为零。
func (s *stateObject) CodeSize() int {
	if len(s.code) != 0 {
		return len(s.code)
	}
	if bytes.Equal(s.CodeHash(), types.EmptyCodeHash.Bytes()) {
		return 0
	}
	size, err := s.db.reader.CodeSize(s.address, common.BytesToHash(s.CodeHash()))
	if err != nil {
		s.db.setError(err)
	}
	return size
}

// SetCode installs new contract code, returning the previous code.
// SetCode 安装新的合约代码，并返回之前的代码。
func (s *stateObject) SetCode(code []byte) (prev []byte) {
	prev = s.Code()
	s.db.journal.setCode(s.address, prev, s.CodeHash(), s.dirtyCode)
	s.setCode(crypto.Keccak256Hash(code), code)
	return prev
}

func (s *stateObject) setCode(codeHash common.Hash, code []byte) {
	s.code = code
	s.data.CodeHash = codeHash[:]
	s.dirtyCode = true
}

// SetNonce 设置账户的 nonce。
func (s *stateObject) SetNonce(nonce uint64) {
	s.db.journal.nonceChange(s.address, s.data.Nonce)
	s.setNonce(nonce)
}

func (s *stateObject) setNonce(nonce uint64) {
	s.data.Nonce = nonce
}

// CodeHash 返回账户的代码哈希。
func (s *stateObject) CodeHash() []byte {
	return s.data.CodeHash
}

// Balance 返回账户余额。
func (s *stateObject) Balance() *uint256.Int {
	return s.data.Balance
}

// Nonce 返回账户的 nonce。
func (s *stateObject) Nonce() uint64 {
	return s.data.Nonce
}
