// Copyright 2015 The go-ethereum Authors
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
	"encoding/json"
	"sort"

	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/core/rawdb"
	"github.com/emberchain/ember/core/types"
	"github.com/emberchain/ember/log"
)

// DumpConfig is a set of options to control what portions of the state will be
// iterated and collected.
// DumpConfig 是一组选项，用于控制将迭代和收集状态的哪些部分。
type DumpConfig struct {
	SkipCode    bool   // Whether to skip contract code.
	SkipStorage bool   // Whether to skip contract storage.
	Max         uint64 // Maximum number of accounts to dump, 0 means all.
}

// DumpCollector interface which the state calls during iteration
// DumpCollector 是状态在迭代期间调用的接口。
type DumpCollector interface {
	// OnAccount is called once for each account in the state
	OnAccount(common.Address, DumpAccount)
}

// DumpAccount represents an account in the state.
// DumpAccount 代表状态中的一个账户。
type DumpAccount struct {
	Balance  string                 `json:"balance"`
	Nonce    uint64                 `json:"nonce"`
	CodeHash string                 `json:"codeHash"`
	Code     string                 `json:"code,omitempty"`
	Storage  map[common.Hash]string `json:"storage,omitempty"`
}

// Dump represents the full dump in a collected format, as one large map.
// Dump 代表以收集格式的完整转储，作为一个大的 map。
type Dump struct {
	Accounts map[common.Address]DumpAccount `json:"accounts"`
}

// OnAccount implements DumpCollector interface
func (d *Dump) OnAccount(addr common.Address, account DumpAccount) {
	d.Accounts[addr] = account
}

// iterativeDump is a DumpCollector-implementation which dumps output line-by-line iteratively.
// iterativeDump 以迭代方式逐行转储输出。
type iterativeDump struct {
	*json.Encoder
}

type iterativeAccount struct {
	DumpAccount
	Address common.Address `json:"address"`
}

// OnAccount implements DumpCollector interface
func (d iterativeDump) OnAccount(addr common.Address, account DumpAccount) {
	d.Encode(iterativeAccount{DumpAccount: account, Address: addr})
}

// DumpToCollector iterates the state according to the given options and inserts
// the items into a collector for aggregation or serialization. The live objects
// take precedence over the persisted accounts, so uncommitted modifications are
// part of the dump as well.
//
// DumpToCollector 根据给定选项迭代状态，并将条目插入收集器。活动对象优先于持久化账户。
func (s *StateDB) DumpToCollector(c DumpCollector, conf *DumpConfig) {
	if conf == nil {
		conf = new(DumpConfig)
	}
	addrs := make(map[common.Address]struct{})
	err := rawdb.IterateAccounts(s.db.DiskDB(), func(addr common.Address, _ *types.StateAccount) bool {
		addrs[addr] = struct{}{}
		return true
	})
	if err != nil {
		log.Error("Failed to iterate accounts", "err", err)
		return
	}
	for addr := range s.stateObjects {
		addrs[addr] = struct{}{}
	}
	sorted := make([]common.Address, 0, len(addrs))
	for addr := range addrs {
		sorted = append(sorted, addr)
	}
	sort.Slice(sorted, func(i, j int) bool { return bytes.Compare(sorted[i][:], sorted[j][:]) < 0 })

	var accounts uint64
	for _, addr := range sorted {
		obj := s.getStateObject(addr)
		if obj == nil {
			continue
		}
		account := DumpAccount{
			Balance:  obj.Balance().ToBig().String(),
			Nonce:    obj.Nonce(),
			CodeHash: common.BytesToHash(obj.CodeHash()).Hex(),
		}
		if !conf.SkipCode {
			if code := obj.Code(); len(code) > 0 {
				account.Code = "0x" + common.Bytes2Hex(code)
			}
		}
		if !conf.SkipStorage {
			account.Storage = s.dumpStorage(obj)
		}
		c.OnAccount(addr, account)
		accounts++
		if conf.Max > 0 && accounts >= conf.Max {
			break
		}
	}
	log.Debug("State dump completed", "accounts", accounts)
}

// dumpStorage collects the non-zero slots of an account, overlaying the
// uncommitted writes on top of the persisted slots.
func (s *StateDB) dumpStorage(obj *stateObject) map[common.Hash]string {
	storage := make(map[common.Hash]string)
	if !obj.created {
		err := rawdb.IterateStorage(s.db.DiskDB(), obj.address, func(slot, value common.Hash) bool {
			storage[slot] = value.Hex()
			return true
		})
		if err != nil {
			s.setError(err)
		}
	}
	for slot, value := range obj.originStorage {
		storage[slot] = value.Hex()
	}
	for slot, value := range obj.dirtyStorage {
		storage[slot] = value.Hex()
	}
	for slot, value := range storage {
		if value == (common.Hash{}).Hex() {
			delete(storage, slot)
		}
	}
	if len(storage) == 0 {
		return nil
	}
	return storage
}

// RawDump returns the state. If the processing is aborted e.g. due to options
// reaching Max, the `Next` key is set on the returned Dump.
// RawDump 返回收集的状态。
func (s *StateDB) RawDump(opts *DumpConfig) Dump {
	dump := &Dump{
		Accounts: make(map[common.Address]DumpAccount),
	}
	s.DumpToCollector(dump, opts)
	return *dump
}

// Dump returns a JSON string representing the entire state as a single json-object
// Dump 返回表示整个状态的 JSON 字符串
func (s *StateDB) Dump(opts *DumpConfig) []byte {
	dump := s.RawDump(opts)
	json, err := json.MarshalIndent(dump, "", "    ")
	if err != nil {
		log.Error("Error dumping state", "err", err)
	}
	return json
}

// IterativeDump dumps out accounts as json-objects, delimited by linebreaks on stdout
// IterativeDump 将账户作为 JSON 对象逐行输出。
func (s *StateDB) IterativeDump(opts *DumpConfig, output *json.Encoder) {
	s.DumpToCollector(iterativeDump{output}, opts)
}
