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

// Package rawdb contains a collection of low level database accessors.
package rawdb

import (
	"encoding/binary"

	"github.com/emberchain/ember/common"
)

// The fields below define the low level database schema prefixing.
var (
	// databaseVersionKey tracks the current database version.
	databaseVersionKey = []byte("DatabaseVersion")

	// headBlockKey tracks the number of the latest sealed block.
	headBlockKey = []byte("LastBlock")

	// configKey holds the chain configuration the database was initialised with.
	configKey = []byte("ember-config")

	// uncleanShutdownKey tracks the list of local crashes
	uncleanShutdownKey = []byte("unclean-shutdown")

	// Data item prefixes (use single byte to avoid mixing data types, avoid `i`, used for indexes).
	AccountPrefix = []byte("a") // AccountPrefix + address -> slim account
	StoragePrefix = []byte("o") // StoragePrefix + address + slot -> trimmed slot value
	CodePrefix    = []byte("c") // CodePrefix + code hash -> contract code

	blockTxPrefix = []byte("b") // blockTxPrefix + num (uint64 big endian) -> tx hash
	txPrefix      = []byte("t") // txPrefix + tx hash -> transaction
	receiptPrefix = []byte("r") // receiptPrefix + tx hash -> receipt
)

// encodeBlockNumber encodes a block number as big endian uint64
func encodeBlockNumber(number uint64) []byte {
	enc := make([]byte, 8)
	binary.BigEndian.PutUint64(enc, number)
	return enc
}

// accountKey = AccountPrefix + address
func accountKey(addr common.Address) []byte {
	return append(common.CopyBytes(AccountPrefix), addr.Bytes()...)
}

// storageKey = StoragePrefix + address + slot
func storageKey(addr common.Address, slot common.Hash) []byte {
	buf := make([]byte, len(StoragePrefix)+common.AddressLength+common.HashLength)
	n := copy(buf, StoragePrefix)
	n += copy(buf[n:], addr.Bytes())
	copy(buf[n:], slot.Bytes())
	return buf
}

// storagePrefix = StoragePrefix + address
func storagePrefix(addr common.Address) []byte {
	return append(common.CopyBytes(StoragePrefix), addr.Bytes()...)
}

// codeKey = CodePrefix + hash
func codeKey(hash common.Hash) []byte {
	return append(common.CopyBytes(CodePrefix), hash.Bytes()...)
}

// blockTxKey = blockTxPrefix + num (uint64 big endian)
func blockTxKey(number uint64) []byte {
	return append(common.CopyBytes(blockTxPrefix), encodeBlockNumber(number)...)
}

// txKey = txPrefix + hash
func txKey(hash common.Hash) []byte {
	return append(common.CopyBytes(txPrefix), hash.Bytes()...)
}

// receiptKey = receiptPrefix + hash
func receiptKey(hash common.Hash) []byte {
	return append(common.CopyBytes(receiptPrefix), hash.Bytes()...)
}
