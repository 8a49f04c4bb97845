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
	"maps"
	"slices"
	"sort"

	"github.com/emberchain/ember/common"
	"github.com/holiman/uint256"
)

// 状态回滚：
// 执行可能因 Gas 不足或异常中止，journal 确保状态恢复到调用开始时的状态。

type revision struct {
	id           int // 修订版本的唯一标识符
	journalIndex int // 日志中对应的索引位置
}

// journalEntry is a modification entry in the state change journal that can be
// reverted on demand.
// journalEntry 是状态变更日志中的修改条目，可以按需撤销。
type journalEntry interface {
	// revert undoes the changes introduced by this journal entry.
	revert(*StateDB)

	// dirtied returns the address modified by this journal entry.
	dirtied() *common.Address

	// copy returns a deep-copied journal entry.
	copy() journalEntry
}

// journal contains the list of state modifications applied since the last state
// commit. These are tracked to be able to be reverted in the case of an execution
// exception or request for reversal.
// journal 包含自上次状态提交以来应用的状态修改列表。
type journal struct {
	entries []journalEntry         // Current changes tracked by the journal
	dirties map[common.Address]int // Dirty accounts and the number of changes

	validRevisions []revision
	nextRevisionId int
}

// newJournal creates a new initialized journal.
func newJournal() *journal {
	return &journal{
		dirties: make(map[common.Address]int),
	}
}

// reset clears the journal, after this operation the journal can be used anew.
// It is semantically similar to calling 'newJournal', but the underlying slices
// can be reused.
func (j *journal) reset() {
	j.entries = j.entries[:0]
	j.validRevisions = j.validRevisions[:0]
	clear(j.dirties)
	j.nextRevisionId = 0
}

// snapshot returns an identifier for the current revision of the state.
// snapshot 返回当前状态修订版本的标识符。
func (j *journal) snapshot() int {
	id := j.nextRevisionId
	j.nextRevisionId++
	j.validRevisions = append(j.validRevisions, revision{id, j.length()})
	return id
}

// revertToSnapshot reverts all state changes made since the given revision.
// revertToSnapshot 撤销自给定修订版本以来所做的所有状态更改。
func (j *journal) revertToSnapshot(revid int, s *StateDB) {
	// Find the snapshot in the stack of valid snapshots.
	idx := sort.Search(len(j.validRevisions), func(i int) bool {
		return j.validRevisions[i].id >= revid
	})
	if idx == len(j.validRevisions) || j.validRevisions[idx].id != revid {
		panic(fmt.Errorf("revision id %v cannot be reverted", revid))
	}
	snapshot := j.validRevisions[idx].journalIndex

	// Replay the journal to undo changes and remove invalidated snapshots
	j.revert(s, snapshot)
	j.validRevisions = j.validRevisions[:idx]
}

// append inserts a new modification entry to the end of the change journal.
func (j *journal) append(entry journalEntry) {
	j.entries = append(j.entries, entry)
	if addr := entry.dirtied(); addr != nil {
		j.dirties[*addr]++
	}
}

// revert undoes a batch of journalled modifications along with any reverted
// dirty handling too.
func (j *journal) revert(statedb *StateDB, snapshot int) {
	for i := len(j.entries) - 1; i >= snapshot; i-- {
		// Undo the changes made by the operation
		j.entries[i].revert(statedb)

		// Drop any dirty tracking induced by the change
		if addr := j.entries[i].dirtied(); addr != nil {
			if j.dirties[*addr]--; j.dirties[*addr] == 0 {
				delete(j.dirties, *addr)
			}
		}
	}
	j.entries = j.entries[:snapshot]
}

// length returns the current number of entries in the journal.
func (j *journal) length() int {
	return len(j.entries)
}

// copy returns a deep-copied journal.
func (j *journal) copy() *journal {
	entries := make([]journalEntry, 0, j.length())
	for i := 0; i < j.length(); i++ {
		entries = append(entries, j.entries[i].copy())
	}
	return &journal{
		entries:        entries,
		dirties:        maps.Clone(j.dirties),
		validRevisions: slices.Clone(j.validRevisions),
		nextRevisionId: j.nextRevisionId,
	}
}

func (j *journal) logChange(txHash common.Hash) {
	j.append(addLogChange{txhash: txHash})
}

func (j *journal) createObject(addr common.Address, prev *stateObject) {
	j.append(createObjectChange{account: addr, prev: prev})
}

func (j *journal) destruct(addr common.Address, prev bool, prevBalance *uint256.Int) {
	j.append(selfDestructChange{
		account:     addr,
		prev:        prev,
		prevbalance: prevBalance.Clone(),
	})
}

func (j *journal) storageChange(addr common.Address, key, prev common.Hash, hadDirty bool) {
	j.append(storageChange{
		account:   addr,
		key:       key,
		prevvalue: prev,
		hadDirty:  hadDirty,
	})
}

func (j *journal) balanceChange(addr common.Address, previous *uint256.Int) {
	j.append(balanceChange{
		account: addr,
		prev:    previous.Clone(),
	})
}

func (j *journal) setCode(addr common.Address, prevCode []byte, prevHash []byte, prevDirty bool) {
	j.append(codeChange{
		account:   addr,
		prevcode:  prevCode,
		prevhash:  prevHash,
		prevDirty: prevDirty,
	})
}

func (j *journal) nonceChange(addr common.Address, prev uint64) {
	j.append(nonceChange{
		account: addr,
		prev:    prev,
	})
}

type (
	// Changes to the account trie.
	createObjectChange struct {
		account common.Address
		prev    *stateObject // object replaced by the creation, if any
	}
	selfDestructChange struct {
		account     common.Address
		prev        bool // whether account had already self-destructed
		prevbalance *uint256.Int
	}

	// Changes to individual accounts.
	balanceChange struct {
		account common.Address
		prev    *uint256.Int
	}
	nonceChange struct {
		account common.Address
		prev    uint64
	}
	storageChange struct {
		account   common.Address
		key       common.Hash
		prevvalue common.Hash
		hadDirty  bool // whether the slot was already dirty before the change
	}
	codeChange struct {
		account   common.Address
		prevcode  []byte
		prevhash  []byte
		prevDirty bool
	}
	addLogChange struct {
		txhash common.Hash
	}
)

func (ch createObjectChange) revert(s *StateDB) {
	if ch.prev == nil {
		delete(s.stateObjects, ch.account)
		return
	}
	s.stateObjects[ch.account] = ch.prev
}

func (ch createObjectChange) dirtied() *common.Address {
	return &ch.account
}

func (ch createObjectChange) copy() journalEntry {
	cpy := createObjectChange{account: ch.account}
	if ch.prev != nil {
		cpy.prev = ch.prev.deepCopy(ch.prev.db)
	}
	return cpy
}

func (ch selfDestructChange) revert(s *StateDB) {
	obj := s.getStateObject(ch.account)
	if obj != nil {
		obj.selfDestructed = ch.prev
		obj.setBalance(ch.prevbalance)
	}
}

func (ch selfDestructChange) dirtied() *common.Address {
	return &ch.account
}

func (ch selfDestructChange) copy() journalEntry {
	return selfDestructChange{
		account:     ch.account,
		prev:        ch.prev,
		prevbalance: new(uint256.Int).Set(ch.prevbalance),
	}
}

func (ch balanceChange) revert(s *StateDB) {
	s.getStateObject(ch.account).setBalance(ch.prev)
}

func (ch balanceChange) dirtied() *common.Address {
	return &ch.account
}

func (ch balanceChange) copy() journalEntry {
	return balanceChange{
		account: ch.account,
		prev:    new(uint256.Int).Set(ch.prev),
	}
}

func (ch nonceChange) revert(s *StateDB) {
	s.getStateObject(ch.account).setNonce(ch.prev)
}

func (ch nonceChange) dirtied() *common.Address {
	return &ch.account
}

func (ch nonceChange) copy() journalEntry {
	return nonceChange{
		account: ch.account,
		prev:    ch.prev,
	}
}

func (ch codeChange) revert(s *StateDB) {
	obj := s.getStateObject(ch.account)
	obj.setCode(common.BytesToHash(ch.prevhash), ch.prevcode)
	obj.dirtyCode = ch.prevDirty
}

func (ch codeChange) dirtied() *common.Address {
	return &ch.account
}

func (ch codeChange) copy() journalEntry {
	return codeChange{
		account:   ch.account,
		prevcode:  common.CopyBytes(ch.prevcode),
		prevhash:  common.CopyBytes(ch.prevhash),
		prevDirty: ch.prevDirty,
	}
}

func (ch storageChange) revert(s *StateDB) {
	s.getStateObject(ch.account).revertState(ch.key, ch.prevvalue, ch.hadDirty)
}

func (ch storageChange) dirtied() *common.Address {
	return &ch.account
}

func (ch storageChange) copy() journalEntry {
	return storageChange{
		account:   ch.account,
		key:       ch.key,
		prevvalue: ch.prevvalue,
		hadDirty:  ch.hadDirty,
	}
}

func (ch addLogChange) revert(s *StateDB) {
	logs := s.logs[ch.txhash]
	if len(logs) == 1 {
		delete(s.logs, ch.txhash)
	} else {
		s.logs[ch.txhash] = logs[:len(logs)-1]
	}
	s.logSize--
}

func (ch addLogChange) dirtied() *common.Address {
	return nil
}

func (ch addLogChange) copy() journalEntry {
	return addLogChange{
		txhash: ch.txhash,
	}
}
