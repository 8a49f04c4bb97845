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
	"fmt"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/core/rawdb"
	"github.com/emberchain/ember/core/types"
	"github.com/emberchain/ember/ethdb"
	"github.com/emberchain/ember/log"
	lru "github.com/hashicorp/golang-lru"
)

const (
	// Number of codehash->size associations to keep.
	// 保留的代码哈希到大小关联的数量。
	codeSizeCacheSize = 100000

	// Number of contract codes to keep in the clean code cache.
	// 干净代码缓存中保留的合约代码数量。
	codeCacheSize = 4096

	// Minimum size in megabytes of the clean account/storage cache.
	minCleanCache = 1
)

// Database wraps access to the persisted state: accounts, storage slots and
// contract code.
// Database 封装了对持久化状态的访问：账户、存储槽和合约代码。
type Database interface {
	// Reader returns a reader over the committed state.
	Reader() Reader

	// DiskDB returns the underlying key-value disk database.
	DiskDB() ethdb.KeyValueStore

	// commit flushes a state update to disk.
	commit(update *stateUpdate) error
}

// CachingDB is an implementation of Database interface. It keeps the recently
// read accounts and storage slots in a fastcache clean cache and contract code
// in LRU caches.
// CachingDB 是 Database 接口的实现，使用 fastcache 缓存最近读取的账户和存储槽。
type CachingDB struct {
	disk          ethdb.KeyValueStore
	clean         *fastcache.Cache // address -> slim account, address+slot -> trimmed value
	codeCache     *lru.Cache       // code hash -> code
	codeSizeCache *lru.Cache       // code hash -> code size
}

// NewDatabase creates a state database with a clean cache of the given size
// in megabytes.
// NewDatabase 创建一个具有给定大小（MB）干净缓存的状态数据库。
func NewDatabase(disk ethdb.KeyValueStore, cacheMB int) *CachingDB {
	if cacheMB < minCleanCache {
		cacheMB = minCleanCache
	}
	codeCache, _ := lru.New(codeCacheSize)
	codeSizeCache, _ := lru.New(codeSizeCacheSize)
	return &CachingDB{
		disk:          disk,
		clean:         fastcache.New(cacheMB * 1024 * 1024),
		codeCache:     codeCache,
		codeSizeCache: codeSizeCache,
	}
}

// NewDatabaseForTesting is similar to NewDatabase, but it initializes the
// caching db by using an ephemeral memory db with default config for testing.
func NewDatabaseForTesting() *CachingDB {
	return NewDatabase(rawdb.NewMemoryDatabase(), 16)
}

// Reader implements Database, returning a reader over the committed state.
func (db *CachingDB) Reader() Reader {
	return db
}

// DiskDB returns the underlying key-value disk database.
func (db *CachingDB) DiskDB() ethdb.KeyValueStore {
	return db.disk
}

// Account implements Reader, retrieving the account from the clean cache
// or the disk.
func (db *CachingDB) Account(addr common.Address) (*types.StateAccount, error) {
	blob, found := db.clean.HasGet(nil, addr.Bytes())
	if !found {
		blob = rawdb.ReadAccountRLP(db.disk, addr)
		db.clean.Set(addr.Bytes(), blob)
	}
	if len(blob) == 0 {
		return nil, nil
	}
	return types.FullAccount(blob)
}

// Storage implements Reader, retrieving the slot from the clean cache or
// the disk.
func (db *CachingDB) Storage(addr common.Address, slot common.Hash) (common.Hash, error) {
	key := storageCacheKey(addr, slot)
	blob, found := db.clean.HasGet(nil, key)
	if !found {
		blob = rawdb.ReadStorageRaw(db.disk, addr, slot)
		db.clean.Set(key, blob)
	}
	if len(blob) > common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid storage slot %x of %x: %d bytes", slot, addr, len(blob))
	}
	return common.BytesToHash(blob), nil
}

// Code implements Reader, retrieving a particular contract's code.
func (db *CachingDB) Code(addr common.Address, codeHash common.Hash) ([]byte, error) {
	if cached, ok := db.codeCache.Get(codeHash); ok {
		code := cached.([]byte)
		if len(code) > 0 {
			return code, nil
		}
	}
	code := rawdb.ReadCode(db.disk, codeHash)
	if len(code) > 0 {
		db.codeCache.Add(codeHash, code)
		db.codeSizeCache.Add(codeHash, len(code))
		return code, nil
	}
	return nil, fmt.Errorf("%w: %x", errCodeNotFound, codeHash)
}

// CodeSize implements Reader, retrieving a particular contracts
// code's size.
func (db *CachingDB) CodeSize(addr common.Address, codeHash common.Hash) (int, error) {
	if cached, ok := db.codeSizeCache.Get(codeHash); ok {
		return cached.(int), nil
	}
	code, err := db.Code(addr, codeHash)
	return len(code), err
}

// commit writes the state update to disk in a single batch and refreshes the
// caches once the write succeeded.
// commit 将状态更新以单个批次写入磁盘，写入成功后刷新缓存。
func (db *CachingDB) commit(update *stateUpdate) error {
	if update.empty() {
		return nil
	}
	var (
		batch   = db.disk.NewBatch()
		cleared []common.Address
		slots   []common.Hash
	)
	// Wipe the storage of destructed and recreated accounts first, new slot
	// values are applied on top.
	for addr := range update.wipes.Iter() {
		err := rawdb.IterateStorage(db.disk, addr, func(slot, _ common.Hash) bool {
			rawdb.DeleteStorage(batch, addr, slot)
			cleared, slots = append(cleared, addr), append(slots, slot)
			return true
		})
		if err != nil {
			return err
		}
	}
	for addr, account := range update.accounts {
		if account == nil {
			rawdb.DeleteAccount(batch, addr)
			continue
		}
		rawdb.WriteAccount(batch, addr, account)
	}
	for addr, storage := range update.storages {
		for slot, value := range storage {
			rawdb.WriteStorage(batch, addr, slot, value)
		}
	}
	for hash, code := range update.codes {
		rawdb.WriteCode(batch, hash, code.blob)
	}
	if update.extra != nil {
		update.extra(batch)
	}
	size := batch.ValueSize()
	if err := batch.Write(); err != nil {
		return err
	}
	// The disk is updated, bring the caches in line
	for i, addr := range cleared {
		db.clean.Del(storageCacheKey(addr, slots[i]))
	}
	for addr, account := range update.accounts {
		if account == nil {
			db.clean.Set(addr.Bytes(), nil)
			continue
		}
		db.clean.Set(addr.Bytes(), types.SlimAccountRLP(*account))
	}
	for addr, storage := range update.storages {
		for slot, value := range storage {
			db.clean.Set(storageCacheKey(addr, slot), trimLeftZeroes(value[:]))
		}
	}
	for hash, code := range update.codes {
		db.codeCache.Add(hash, code.blob)
		db.codeSizeCache.Add(hash, len(code.blob))
	}
	log.Trace("Committed state", "accounts", len(update.accounts), "codes", len(update.codes), "wipes", update.wipes.Cardinality(), "size", common.StorageSize(size))
	return nil
}

// storageCacheKey = address + slot
func storageCacheKey(addr common.Address, slot common.Hash) []byte {
	key := make([]byte, common.AddressLength+common.HashLength)
	copy(key, addr.Bytes())
	copy(key[common.AddressLength:], slot.Bytes())
	return key
}

// trimLeftZeroes returns a subslice of s without leading zeroes
func trimLeftZeroes(s []byte) []byte {
	for i, v := range s {
		if v != 0 {
			return s[i:]
		}
	}
	return nil
}
