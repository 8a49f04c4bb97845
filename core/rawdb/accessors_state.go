// Copyright 2018 The go-ethereum Authors
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

package rawdb

import (
	"bytes"

	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/core/types"
	"github.com/emberchain/ember/ethdb"
	"github.com/emberchain/ember/log"
)

// ReadAccount retrieves the account stored under the given address, or nil
// if the account was never written.
// ReadAccount 读取给定地址下存储的账户，如果不存在则返回 nil。
func ReadAccount(db ethdb.KeyValueReader, addr common.Address) *types.StateAccount {
	data, _ := db.Get(accountKey(addr))
	if len(data) == 0 {
		return nil
	}
	account, err := types.FullAccount(data)
	if err != nil {
		log.Error("Invalid account encoding", "address", addr, "err", err)
		return nil
	}
	return account
}

// ReadAccountRLP retrieves the slim encoding of the account, which is what the
// state clean cache holds.
func ReadAccountRLP(db ethdb.KeyValueReader, addr common.Address) []byte {
	data, _ := db.Get(accountKey(addr))
	return data
}

// WriteAccount stores the account under the given address.
// WriteAccount 将账户存储在给定地址下。
func WriteAccount(db ethdb.KeyValueWriter, addr common.Address, account *types.StateAccount) {
	if err := db.Put(accountKey(addr), types.SlimAccountRLP(*account)); err != nil {
		log.Crit("Failed to store account", "err", err)
	}
}

// DeleteAccount removes the account stored under the given address.
func DeleteAccount(db ethdb.KeyValueWriter, addr common.Address) {
	if err := db.Delete(accountKey(addr)); err != nil {
		log.Crit("Failed to delete account", "err", err)
	}
}

// ReadStorage retrieves the value of the given storage slot. Absent slots
// read as the zero hash.
// ReadStorage 读取给定存储槽的值，缺失的槽读为零。
func ReadStorage(db ethdb.KeyValueReader, addr common.Address, slot common.Hash) common.Hash {
	data, _ := db.Get(storageKey(addr, slot))
	return common.BytesToHash(data)
}

// ReadStorageRaw retrieves the trimmed value bytes of the given storage slot.
func ReadStorageRaw(db ethdb.KeyValueReader, addr common.Address, slot common.Hash) []byte {
	data, _ := db.Get(storageKey(addr, slot))
	return data
}

// WriteStorage stores a non-zero storage slot value, leading zero bytes
// trimmed. A zero value removes the slot instead.
// WriteStorage 存储非零的存储槽值，零值则删除该槽。
func WriteStorage(db ethdb.KeyValueWriter, addr common.Address, slot common.Hash, value common.Hash) {
	if value == (common.Hash{}) {
		DeleteStorage(db, addr, slot)
		return
	}
	if err := db.Put(storageKey(addr, slot), bytes.TrimLeft(value[:], "\x00")); err != nil {
		log.Crit("Failed to store storage slot", "err", err)
	}
}

// DeleteStorage removes the given storage slot.
func DeleteStorage(db ethdb.KeyValueWriter, addr common.Address, slot common.Hash) {
	if err := db.Delete(storageKey(addr, slot)); err != nil {
		log.Crit("Failed to delete storage slot", "err", err)
	}
}

// IterateStorage walks every stored slot of the given account in key order.
// IterateStorage 按键顺序遍历给定账户的所有存储槽。
func IterateStorage(db ethdb.Iteratee, addr common.Address, fn func(slot, value common.Hash) bool) error {
	prefix := storagePrefix(addr)
	it := db.NewIterator(prefix, nil)
	defer it.Release()

	for it.Next() {
		key := it.Key()
		if len(key) != len(prefix)+common.HashLength {
			continue
		}
		if !fn(common.BytesToHash(key[len(prefix):]), common.BytesToHash(it.Value())) {
			break
		}
	}
	return it.Error()
}

// IterateAccounts walks every stored account in address order.
func IterateAccounts(db ethdb.Iteratee, fn func(addr common.Address, account *types.StateAccount) bool) error {
	it := db.NewIterator(AccountPrefix, nil)
	defer it.Release()

	for it.Next() {
		key := it.Key()
		if len(key) != len(AccountPrefix)+common.AddressLength {
			continue
		}
		account, err := types.FullAccount(it.Value())
		if err != nil {
			return err
		}
		if !fn(common.BytesToAddress(key[len(AccountPrefix):]), account) {
			break
		}
	}
	return it.Error()
}

// ReadCode retrieves the contract code of the provided code hash.
// 读取提供代码哈希的合约代码。
func ReadCode(db ethdb.KeyValueReader, hash common.Hash) []byte {
	data, _ := db.Get(codeKey(hash))
	return data
}

// HasCode checks if the contract code corresponding to the
// provided code hash is present in the db.
// HasCode 检查数据库中是否存在与提供的代码哈希对应的合约代码。
func HasCode(db ethdb.KeyValueReader, hash common.Hash) bool {
	ok, _ := db.Has(codeKey(hash))
	return ok
}

// WriteCode writes the provided contract code database.
// WriteCode 将提供的合约代码写入数据库。
func WriteCode(db ethdb.KeyValueWriter, hash common.Hash, code []byte) {
	if err := db.Put(codeKey(hash), code); err != nil {
		log.Crit("Failed to store contract code", "err", err)
	}
}
