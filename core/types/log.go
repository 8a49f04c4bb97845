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

	"github.com/emberchain/ember/common"
	"github.com/umbracle/fastrlp"
)

// Log represents a contract log event. These events are generated by the LOG opcode and
// stored/indexed by the node.
// Log 表示合约日志事件，由 LOG 操作码生成。
type Log struct {
	// Consensus fields:
	// address of the contract that generated the event
	Address common.Address
	// list of topics provided by the contract.
	Topics []common.Hash
	// supplied by the contract, usually ABI-encoded
	Data []byte

	// Derived fields. These fields are filled in by the node
	// but not secured by consensus.
	// block in which the transaction was included
	BlockNumber uint64
	// hash of the transaction
	TxHash common.Hash
	// index of the log in the block
	Index uint
}

func (l *Log) marshalWith(a *fastrlp.Arena) *fastrlp.Value {
	vv := a.NewArray()
	vv.Set(a.NewCopyBytes(l.Address.Bytes()))
	topics := a.NewArray()
	for _, t := range l.Topics {
		topics.Set(a.NewCopyBytes(t.Bytes()))
	}
	vv.Set(topics)
	vv.Set(a.NewCopyBytes(l.Data))
	vv.Set(a.NewUint(l.BlockNumber))
	vv.Set(a.NewCopyBytes(l.TxHash.Bytes()))
	vv.Set(a.NewUint(uint64(l.Index)))
	return vv
}

func (l *Log) unmarshalFrom(v *fastrlp.Value) error {
	elems, err := v.GetElems()
	if err != nil {
		return err
	}
	if len(elems) != 6 {
		return fmt.Errorf("incorrect number of elements to decode log, expected 6 but found %d", len(elems))
	}
	if err := elems[0].GetAddr(l.Address[:]); err != nil {
		return err
	}
	topics, err := elems[1].GetElems()
	if err != nil {
		return err
	}
	l.Topics = make([]common.Hash, len(topics))
	for i, topic := range topics {
		if err := topic.GetHash(l.Topics[i][:]); err != nil {
			return err
		}
	}
	if l.Data, err = elems[2].GetBytes(nil); err != nil {
		return err
	}
	if l.BlockNumber, err = elems[3].GetUint64(); err != nil {
		return err
	}
	if err := elems[4].GetHash(l.TxHash[:]); err != nil {
		return err
	}
	index, err := elems[5].GetUint64()
	if err != nil {
		return err
	}
	l.Index = uint(index)
	return nil
}
