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
	"encoding/binary"

	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/core/types"
	"github.com/emberchain/ember/ethdb"
	"github.com/emberchain/ember/log"
)

// ReadHeadBlockNumber retrieves the number of the latest sealed block, and
// whether one was ever written.
// ReadHeadBlockNumber 读取最新区块号。
func ReadHeadBlockNumber(db ethdb.KeyValueReader) (uint64, bool) {
	data, _ := db.Get(headBlockKey)
	if len(data) != 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(data), true
}

// WriteHeadBlockNumber stores the number of the latest sealed block.
func WriteHeadBlockNumber(db ethdb.KeyValueWriter, number uint64) {
	if err := db.Put(headBlockKey, encodeBlockNumber(number)); err != nil {
		log.Crit("Failed to store last block number", "err", err)
	}
}

// ReadBlockTxHash retrieves the hash of the single transaction sealed in the
// given block.
func ReadBlockTxHash(db ethdb.KeyValueReader, number uint64) (common.Hash, bool) {
	data, _ := db.Get(blockTxKey(number))
	if len(data) != common.HashLength {
		return common.Hash{}, false
	}
	return common.BytesToHash(data), true
}

// WriteBlockTxHash stores the hash of the transaction sealed in the given block.
func WriteBlockTxHash(db ethdb.KeyValueWriter, number uint64, hash common.Hash) {
	if err := db.Put(blockTxKey(number), hash.Bytes()); err != nil {
		log.Crit("Failed to store block transaction", "err", err)
	}
}

// ReadTransaction retrieves a transaction by hash.
// ReadTransaction 通过哈希读取交易。
func ReadTransaction(db ethdb.KeyValueReader, hash common.Hash) *types.Transaction {
	data, _ := db.Get(txKey(hash))
	if len(data) == 0 {
		return nil
	}
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(data); err != nil {
		log.Error("Invalid transaction encoding", "hash", hash, "err", err)
		return nil
	}
	return tx
}

// WriteTransaction stores a transaction keyed by its hash.
func WriteTransaction(db ethdb.KeyValueWriter, tx *types.Transaction) {
	data, err := tx.MarshalBinary()
	if err != nil {
		log.Crit("Failed to encode transaction", "err", err)
	}
	if err := db.Put(txKey(tx.Hash()), data); err != nil {
		log.Crit("Failed to store transaction", "err", err)
	}
}

// ReadReceipt retrieves the receipt of the transaction with the given hash.
// ReadReceipt 读取给定交易哈希的收据。
func ReadReceipt(db ethdb.KeyValueReader, hash common.Hash) *types.Receipt {
	data, _ := db.Get(receiptKey(hash))
	if len(data) == 0 {
		return nil
	}
	receipt := new(types.Receipt)
	if err := receipt.UnmarshalStorage(data); err != nil {
		log.Error("Invalid receipt encoding", "hash", hash, "err", err)
		return nil
	}
	return receipt
}

// WriteReceipt stores a receipt keyed by its transaction hash.
func WriteReceipt(db ethdb.KeyValueWriter, receipt *types.Receipt) {
	if err := db.Put(receiptKey(receipt.TxHash), receipt.MarshalStorage()); err != nil {
		log.Crit("Failed to store transaction receipt", "err", err)
	}
}
