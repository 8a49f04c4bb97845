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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/ethdb"
	"github.com/emberchain/ember/ethdb/leveldb"
	"github.com/emberchain/ember/ethdb/memorydb"
	"github.com/emberchain/ember/ethdb/pebble"
	"github.com/emberchain/ember/log"
	"github.com/olekukonko/tablewriter"
)

const (
	DBPebble  = "pebble"
	DBLeveldb = "leveldb"
)

// NewMemoryDatabase creates an ephemeral in-memory key-value database.
// NewMemoryDatabase 创建一个临时的内存键值数据库。
func NewMemoryDatabase() ethdb.KeyValueStore {
	return memorydb.New()
}

// NewLevelDBDatabase creates a persistent key-value database backed by leveldb.
func NewLevelDBDatabase(file string, cache int, handles int, readonly bool) (ethdb.KeyValueStore, error) {
	db, err := leveldb.New(file, cache, handles, readonly)
	if err != nil {
		return nil, err
	}
	log.Info("Using LevelDB as the backing database")
	return db, nil
}

// NewPebbleDBDatabase creates a persistent key-value database backed by pebble.
func NewPebbleDBDatabase(file string, cache int, handles int, readonly bool) (ethdb.KeyValueStore, error) {
	db, err := pebble.New(file, cache, handles, readonly)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// PreexistingDatabase checks the given data directory whether a database is already
// instantiated at that location, and if so, returns the type of database (or the
// empty string).
// PreexistingDatabase 检查给定的数据目录是否已经存在数据库实例，如果存在，则返回数据库的类型（否则返回空字符串）。
func PreexistingDatabase(path string) string {
	if _, err := os.Stat(filepath.Join(path, "CURRENT")); err != nil {
		return "" // No pre-existing db
	}
	if matches, err := filepath.Glob(filepath.Join(path, "OPTIONS*")); len(matches) > 0 || err != nil {
		if err != nil {
			panic(err) // only possible if the pattern is malformed
		}
		return DBPebble
	}
	return DBLeveldb
}

// OpenOptions contains the options to apply when opening a database.
// OpenOptions 包含打开数据库时要应用的选项。
type OpenOptions struct {
	Type      string // "leveldb" | "pebble" | "memory"
	Directory string // the datadir
	Cache     int    // the capacity(in megabytes) of the data caching
	Handles   int    // number of files to be open simultaneously
	ReadOnly  bool
}

// Open opens a key-value database as configured.
//
//	                      type == null          type != null
//	                   +----------------------------------------
//	db is non-existent |  pebble default  |  specified type
//	db is existent     |  from db         |  specified type (if compatible)
func Open(o OpenOptions) (ethdb.KeyValueStore, error) {
	if o.Type == "memory" || o.Directory == "" {
		log.Info("Using an in-memory database")
		return NewMemoryDatabase(), nil
	}
	// Reject any unsupported database type
	if len(o.Type) != 0 && o.Type != DBLeveldb && o.Type != DBPebble {
		return nil, fmt.Errorf("unknown db.engine %v", o.Type)
	}
	// Retrieve any pre-existing database's type and use that or the requested one
	// as long as there's no conflict between the two types
	existingDb := PreexistingDatabase(o.Directory)
	if len(existingDb) != 0 && len(o.Type) != 0 && o.Type != existingDb {
		return nil, fmt.Errorf("db.engine choice was %v but found pre-existing %v database in specified data directory", o.Type, existingDb)
	}
	if o.Type == DBPebble || existingDb == DBPebble {
		log.Info("Using pebble as the backing database")
		return NewPebbleDBDatabase(o.Directory, o.Cache, o.Handles, o.ReadOnly)
	}
	if o.Type == DBLeveldb || existingDb == DBLeveldb {
		return NewLevelDBDatabase(o.Directory, o.Cache, o.Handles, o.ReadOnly)
	}
	// No pre-existing database, no user-requested one either. Default to Pebble.
	log.Info("Defaulting to pebble as the backing database")
	return NewPebbleDBDatabase(o.Directory, o.Cache, o.Handles, o.ReadOnly)
}

type counter uint64

func (c counter) String() string {
	return fmt.Sprintf("%d", c)
}

// stat stores sizes and count for a parameter
type stat struct {
	size  common.StorageSize
	count counter
}

// Add size to the stat and increase the counter by 1
func (s *stat) Add(size common.StorageSize) {
	s.size += size
	s.count++
}

func (s *stat) Size() string {
	return s.size.String()
}

func (s *stat) Count() string {
	return s.count.String()
}

// InspectDatabase traverses the entire database and reports the size of every
// category of data as a table written to out.
// InspectDatabase 遍历整个数据库并检查所有不同类别数据的大小。
func InspectDatabase(db ethdb.Iteratee, out io.Writer) error {
	it := db.NewIterator(nil, nil)
	defer it.Release()

	var (
		count  int64
		start  = time.Now()
		logged = time.Now()

		accounts     stat
		storage      stat
		codes        stat
		blockTxs     stat
		transactions stat
		receipts     stat
		metadata     stat
		unaccounted  stat

		total common.StorageSize
	)
	for it.Next() {
		var (
			key  = it.Key()
			size = common.StorageSize(len(key) + len(it.Value()))
		)
		total += size
		switch {
		case bytes.HasPrefix(key, AccountPrefix) && len(key) == len(AccountPrefix)+common.AddressLength:
			accounts.Add(size)
		case bytes.HasPrefix(key, StoragePrefix) && len(key) == len(StoragePrefix)+common.AddressLength+common.HashLength:
			storage.Add(size)
		case bytes.HasPrefix(key, CodePrefix) && len(key) == len(CodePrefix)+common.HashLength:
			codes.Add(size)
		case bytes.HasPrefix(key, blockTxPrefix) && len(key) == len(blockTxPrefix)+8:
			blockTxs.Add(size)
		case bytes.HasPrefix(key, txPrefix) && len(key) == len(txPrefix)+common.HashLength:
			transactions.Add(size)
		case bytes.HasPrefix(key, receiptPrefix) && len(key) == len(receiptPrefix)+common.HashLength:
			receipts.Add(size)
		case bytes.Equal(key, databaseVersionKey), bytes.Equal(key, headBlockKey), bytes.Equal(key, configKey), bytes.Equal(key, uncleanShutdownKey):
			metadata.Add(size)
		default:
			unaccounted.Add(size)
		}
		count++
		if count%1000 == 0 && time.Since(logged) > 8*time.Second {
			log.Info("Inspecting database", "count", count, "elapsed", time.Since(start))
			logged = time.Now()
		}
	}
	if err := it.Error(); err != nil {
		return err
	}
	stats := [][]string{
		{"Key-Value store", "Accounts", accounts.Size(), accounts.Count()},
		{"Key-Value store", "Storage slots", storage.Size(), storage.Count()},
		{"Key-Value store", "Contract codes", codes.Size(), codes.Count()},
		{"Key-Value store", "Block number->tx hash", blockTxs.Size(), blockTxs.Count()},
		{"Key-Value store", "Transactions", transactions.Size(), transactions.Count()},
		{"Key-Value store", "Receipts", receipts.Size(), receipts.Count()},
		{"Key-Value store", "Singleton metadata", metadata.Size(), metadata.Count()},
	}
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Database", "Category", "Size", "Items"})
	table.SetFooter([]string{"", "Total", total.String(), " "})
	table.AppendBulk(stats)
	table.Render()

	if unaccounted.size > 0 {
		log.Error("Database contains unaccounted data", "size", unaccounted.size, "count", unaccounted.count)
	}
	return nil
}

// ReadChainMetadata returns a set of key/value pairs that contains information
// about the database chain status. This can be used for diagnostic purposes
// when investigating the state of the node.
// ReadChainMetadata 返回一组键/值对，包含有关数据库链状态的信息。
func ReadChainMetadata(db ethdb.KeyValueReader) [][]string {
	pp := func(val *uint64) string {
		if val == nil {
			return "<nil>"
		}
		return fmt.Sprintf("%d (%#x)", *val, *val)
	}
	var head *uint64
	if number, ok := ReadHeadBlockNumber(db); ok {
		head = &number
	}
	data := [][]string{
		{"databaseVersion", pp(ReadDatabaseVersion(db))},
		{"headBlockNumber", pp(head)},
	}
	if cfg := ReadChainConfig(db); cfg != nil {
		data = append(data, []string{"chainId", cfg.ChainID.String()})
	}
	return data
}
