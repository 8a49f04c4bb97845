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

// Package state provides a caching, journalled layer atop the persisted
// account and contract storage.
package state

import (
	"fmt"
	"maps"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/core/types"
	"github.com/emberchain/ember/ethdb"
	"github.com/emberchain/ember/log"
	"github.com/holiman/uint256"
)

// StateDB structs within the state package are used to store anything
// about accounts and contract storage:
// * Contracts
// * Accounts
//
// Once the state is committed, the modifications are flushed to the disk
// database in a single batch and the caches are refreshed.
//
// StateDB 用于存储账户和合约存储的所有信息。状态提交后，修改会以单个批次写入磁盘数据库。
type StateDB struct {
	db     Database
	reader Reader

	// This map holds 'live' objects, which will get modified while
	// processing a state transition.
	// 这个映射保存“活动”对象，在处理状态转换时会被修改。
	stateObjects map[common.Address]*stateObject

	// This map holds 'deleted' objects. An object with the same address
	// might also occur in the 'live' objects map due to account
	// resurrection. The account value is tracked as the original value
	// before the transition.
	// 这个映射保存“已删除”对象。由于账户复活，同一地址的对象也可能出现在活动对象映射中。
	stateObjectsDestruct map[common.Address]*stateObject

	// This set tracks the accounts changed since the last commit.
	// 该集合跟踪自上次提交以来发生变化的账户。
	mutations mapset.Set[common.Address]

	// DB error.
	// State objects are used by the consensus core and VM which are
	// unable to deal with database-level errors. Any error that occurs
	// during a database read is memoized here and will eventually be
	// returned by StateDB.Commit.
	dbErr error

	thash   common.Hash
	txIndex int
	logs    map[common.Hash][]*types.Log
	logSize uint

	// Journal of state modifications. This is the backbone of
	// Snapshot and RevertToSnapshot.
	// 状态修改日志，是 Snapshot 和 RevertToSnapshot 的基础。
	journal *journal
}

// New creates a new state on top of the given state database.
// New 在给定的状态数据库之上创建一个新状态。
func New(db Database) *StateDB {
	return &StateDB{
		db:                   db,
		reader:               db.Reader(),
		stateObjects:         make(map[common.Address]*stateObject),
		stateObjectsDestruct: make(map[common.Address]*stateObject),
		mutations:            mapset.NewThreadUnsafeSet[common.Address](),
		logs:                 make(map[common.Hash][]*types.Log),
		journal:              newJournal(),
	}
}

// setError remembers the first non-nil error it is called with.
func (s *StateDB) setError(err error) {
	if s.dbErr == nil {
		s.dbErr = err
	}
}

// Error returns the memorized database failure occurred earlier.
func (s *StateDB) Error() error {
	return s.dbErr
}

// Database retrieves the low level database supporting the state.
func (s *StateDB) Database() Database {
	return s.db
}

// AddLog records a log emitted by the running transaction.
// AddLog 记录正在执行的交易产生的日志。
func (s *StateDB) AddLog(log *types.Log) {
	s.journal.logChange(s.thash)

	log.TxHash = s.thash
	log.Index = s.logSize
	s.logs[s.thash] = append(s.logs[s.thash], log)
	s.logSize++
}

// GetLogs returns the logs matching the specified transaction hash, and annotates
// them with the given blockNumber.
// GetLogs 返回与指定交易哈希匹配的日志，并用给定的区块号注释它们。
func (s *StateDB) GetLogs(hash common.Hash, blockNumber uint64) []*types.Log {
	logs := s.logs[hash]
	for _, l := range logs {
		l.BlockNumber = blockNumber
	}
	return logs
}

// Logs returns all the logs recorded since the last commit.
func (s *StateDB) Logs() []*types.Log {
	logs := make([]*types.Log, 0, s.logSize)
	for _, lgs := range s.logs {
		logs = append(logs, lgs...)
	}
	return logs
}

// SetTxContext sets the current transaction hash and index which are
// used when the EVM emits new state logs.
// SetTxContext 设置当前交易哈希和索引，在 EVM 产生新日志时使用。
func (s *StateDB) SetTxContext(thash common.Hash, ti int) {
	s.thash = thash
	s.txIndex = ti
}

// TxIndex returns the current transaction index set by SetTxContext.
func (s *StateDB) TxIndex() int {
	return s.txIndex
}

// Exist reports whether the given account address exists in the state.
// Notably this also returns true for self-destructed accounts.
// Exist 报告给定账户地址是否存在于状态中。
func (s *StateDB) Exist(addr common.Address) bool {
	return s.getStateObject(addr) != nil
}

// Empty returns whether the state object is either non-existent
// or empty (balance = nonce = code = 0).
// Empty 返回状态对象是否不存在或为空。
func (s *StateDB) Empty(addr common.Address) bool {
	so := s.getStateObject(addr)
	return so == nil || so.empty()
}

// GetBalance retrieves the balance from the given address or 0 if object not found
// GetBalance 检索给定地址的余额，如果对象未找到则返回 0。
func (s *StateDB) GetBalance(addr common.Address) *uint256.Int {
	stateObject := s.getStateObject(addr)
	if stateObject != nil {
		return stateObject.Balance()
	}
	return common.U2560
}

// GetNonce retrieves the nonce from the given address or 0 if object not found
func (s *StateDB) GetNonce(addr common.Address) uint64 {
	stateObject := s.getStateObject(addr)
	if stateObject != nil {
		return stateObject.Nonce()
	}
	return 0
}

// GetCode 获取账户代码
func (s *StateDB) GetCode(addr common.Address) []byte {
	stateObject := s.getStateObject(addr)
	if stateObject != nil {
		return stateObject.Code()
	}
	return nil
}

// GetCodeSize 获取账户代码大小
func (s *StateDB) GetCodeSize(addr common.Address) int {
	stateObject := s.getStateObject(addr)
	if stateObject != nil {
		return stateObject.CodeSize()
	}
	return 0
}

// GetCodeHash 获取账户代码哈希，不存在的账户返回零哈希。
func (s *StateDB) GetCodeHash(addr common.Address) common.Hash {
	stateObject := s.getStateObject(addr)
	if stateObject != nil {
		return common.BytesToHash(stateObject.CodeHash())
	}
	return common.Hash{}
}

// GetState retrieves the value associated with the specific key.
// GetState 检索与特定键关联的值。
func (s *StateDB) GetState(addr common.Address, hash common.Hash) common.Hash {
	stateObject := s.getStateObject(addr)
	if stateObject != nil {
		return stateObject.GetState(hash)
	}
	return common.Hash{}
}

// GetCommittedState retrieves the value associated with the specific key
// without any mutations caused in the current execution.
func (s *StateDB) GetCommittedState(addr common.Address, hash common.Hash) common.Hash {
	stateObject := s.getStateObject(addr)
	if stateObject != nil {
		return stateObject.GetCommittedState(hash)
	}
	return common.Hash{}
}

// HasSelfDestructed 检查账户是否已自毁
func (s *StateDB) HasSelfDestructed(addr common.Address) bool {
	stateObject := s.getStateObject(addr)
	if stateObject != nil {
		return stateObject.selfDestructed
	}
	return false
}

/*
 * SETTERS
 */

// AddBalance adds amount to the account associated with addr.
// AddBalance 将金额添加到与 addr 关联的账户。
func (s *StateDB) AddBalance(addr common.Address, amount *uint256.Int) uint256.Int {
	stateObject := s.getOrNewStateObject(addr)
	if stateObject == nil {
		return uint256.Int{}
	}
	return stateObject.AddBalance(amount)
}

// SubBalance subtracts amount from the account associated with addr.
// SubBalance 从与 addr 关联的账户中减去金额。
func (s *StateDB) SubBalance(addr common.Address, amount *uint256.Int) uint256.Int {
	stateObject := s.getOrNewStateObject(addr)
	if stateObject == nil {
		return uint256.Int{}
	}
	if amount.IsZero() {
		return *(stateObject.Balance())
	}
	return stateObject.SubBalance(amount)
}

// SetBalance 设置账户余额
func (s *StateDB) SetBalance(addr common.Address, amount *uint256.Int) {
	stateObject := s.getOrNewStateObject(addr)
	if stateObject != nil {
		stateObject.SetBalance(amount)
	}
}

// SetNonce 设置账户 nonce
func (s *StateDB) SetNonce(addr common.Address, nonce uint64) {
	stateObject := s.getOrNewStateObject(addr)
	if stateObject != nil {
		stateObject.SetNonce(nonce)
	}
}

// SetCode 设置账户代码并返回之前的代码
func (s *StateDB) SetCode(addr common.Address, code []byte) (prev []byte) {
	stateObject := s.getOrNewStateObject(addr)
	if stateObject != nil {
		return stateObject.SetCode(code)
	}
	return nil
}

// SetState writes a storage slot. Writing the zero value removes the slot
// once the state is committed.
// SetState 写入存储槽。写入零值会在提交后删除该存储槽。
func (s *StateDB) SetState(addr common.Address, key, value common.Hash) common.Hash {
	if stateObject := s.getOrNewStateObject(addr); stateObject != nil {
		prev := stateObject.GetState(key)
		stateObject.SetState(key, value)
		return prev
	}
	return common.Hash{}
}

// SelfDestruct marks the given account as selfdestructed.
// This clears the account balance.
//
// The account's state object is still available until the state is committed,
// getStateObject will return a non-nil account after SelfDestruct.
// SelfDestruct 将给定账户标记为自毁，并清除账户余额。
func (s *StateDB) SelfDestruct(addr common.Address) uint256.Int {
	stateObject := s.getStateObject(addr)
	var prevBalance uint256.Int
	if stateObject == nil {
		return prevBalance
	}
	prevBalance = *(stateObject.Balance())
	s.journal.destruct(addr, stateObject.selfDestructed, &prevBalance)
	stateObject.markSelfdestructed()
	stateObject.data.Balance = new(uint256.Int)
	return prevBalance
}

//
// Setting, updating & deleting state object methods.
// 设置、更新和删除状态对象的方法。
//

// getStateObject retrieves a state object given by the address, returning nil if
// the object is not found or was deleted in this execution context.
// getStateObject 根据地址检索状态对象，如果未找到或在此执行上下文中已删除则返回 nil。
func (s *StateDB) getStateObject(addr common.Address) *stateObject {
	// Prefer live objects if any is available
	if obj := s.stateObjects[addr]; obj != nil {
		return obj
	}
	// Short circuit if the account is already destructed in this block.
	if _, ok := s.stateObjectsDestruct[addr]; ok {
		return nil
	}
	acct, err := s.reader.Account(addr)
	if err != nil {
		s.setError(fmt.Errorf("getStateObject (%x) error: %w", addr.Bytes(), err))
		return nil
	}
	// Short circuit if the account is not found
	if acct == nil {
		return nil
	}
	// Insert into the live set
	obj := newObject(s, addr, acct)
	s.setStateObject(obj)
	return obj
}

func (s *StateDB) setStateObject(object *stateObject) {
	s.stateObjects[object.Address()] = object
}

// getOrNewStateObject retrieves a state object or create a new state object if nil.
// getOrNewStateObject 检索状态对象，如果为 nil 则创建一个新的状态对象。
func (s *StateDB) getOrNewStateObject(addr common.Address) *stateObject {
	obj := s.getStateObject(addr)
	if obj == nil {
		obj = s.createObject(addr)
	}
	return obj
}

// createObject creates a new state object. The assumption is held there is no
// existing account with the given address, otherwise it will be silently overwritten.
// createObject 创建一个新的状态对象。
func (s *StateDB) createObject(addr common.Address) *stateObject {
	prev := s.stateObjects[addr]
	obj := newObject(s, addr, nil)
	obj.created = true
	s.journal.createObject(addr, prev)
	s.setStateObject(obj)
	return obj
}

// CreateAccount explicitly creates a new state object, assuming that the
// account did not previously exist in the state. If the account already
// exists, this function will silently overwrite it which might lead to a
// consensus bug eventually. The existing balance is carried over.
//
// CreateAccount 显式创建一个新的状态对象，已有的余额会被保留。
func (s *StateDB) CreateAccount(addr common.Address) {
	prev := s.getStateObject(addr)
	obj := s.createObject(addr)
	if prev != nil {
		obj.setBalance(new(uint256.Int).Set(prev.data.Balance))
	}
}

// Copy creates a deep, independent copy of the state.
// Snapshots of the copied state cannot be applied to the copy.
// Copy 创建状态的深度独立副本。
func (s *StateDB) Copy() *StateDB {
	state := &StateDB{
		db:                   s.db,
		reader:               s.reader,
		stateObjects:         make(map[common.Address]*stateObject, len(s.stateObjects)),
		stateObjectsDestruct: make(map[common.Address]*stateObject, len(s.stateObjectsDestruct)),
		mutations:            s.mutations.Clone(),
		dbErr:                s.dbErr,
		thash:                s.thash,
		txIndex:              s.txIndex,
		logs:                 make(map[common.Hash][]*types.Log, len(s.logs)),
		logSize:              s.logSize,
		journal:              s.journal.copy(),
	}
	for addr, obj := range s.stateObjects {
		state.stateObjects[addr] = obj.deepCopy(state)
	}
	for addr, obj := range s.stateObjectsDestruct {
		state.stateObjectsDestruct[addr] = obj.deepCopy(state)
	}
	// Deep copy the logs occurred in the scope of block
	for hash, logs := range s.logs {
		cpy := make([]*types.Log, len(logs))
		for i, l := range logs {
			cpy[i] = new(types.Log)
			*cpy[i] = *l
		}
		state.logs[hash] = cpy
	}
	return state
}

// Snapshot returns an identifier for the current revision of the state.
// Snapshot 返回当前状态修订版本的标识符。
func (s *StateDB) Snapshot() int {
	return s.journal.snapshot()
}

// RevertToSnapshot reverts all state changes made since the given revision.
// RevertToSnapshot 撤销自给定修订版本以来所做的所有状态更改。
func (s *StateDB) RevertToSnapshot(revid int) {
	s.journal.revertToSnapshot(revid, s)
}

// Finalise finalises the state by moving the self-destructed objects into the
// destruct set and clearing the journal. Snapshots taken before Finalise can
// no longer be reverted to.
// Finalise 通过将自毁对象移入销毁集合并清除日志来最终确定状态。
func (s *StateDB) Finalise() {
	for addr := range s.journal.dirties {
		obj, exist := s.stateObjects[addr]
		if !exist {
			// A created object reverted by the journal leaves a dirty entry
			// behind without a live object.
			continue
		}
		if obj.selfDestructed {
			// Keep the original account in the destruct set, the live one is dropped
			if _, ok := s.stateObjectsDestruct[obj.address]; !ok {
				s.stateObjectsDestruct[obj.address] = obj
			}
			delete(s.stateObjects, obj.address)
		}
		s.mutations.Add(addr)
	}
	s.journal.reset()
}

// Commit writes the state mutations into the underlying database. Once the
// call returns, the committed values are visible to every reader of the
// database and the logs recorded so far are dropped.
//
// If extra is non-nil it is handed the same batch as the state, so whatever
// it writes lands on disk atomically with the mutations.
//
// Commit 将状态变更写入底层数据库。extra 不为 nil 时与状态共用同一批次，其写入与状态变更一起原子落盘。
func (s *StateDB) Commit(extra func(ethdb.KeyValueWriter)) error {
	// Short circuit in case any database failure occurred earlier.
	if s.dbErr != nil {
		return fmt.Errorf("commit aborted due to earlier error: %v", s.dbErr)
	}
	s.Finalise()

	update := newStateUpdate()
	update.extra = extra
	for addr := range s.stateObjectsDestruct {
		update.wipes.Add(addr)
		if _, alive := s.stateObjects[addr]; !alive {
			update.accounts[addr] = nil
		}
	}
	for addr := range s.mutations.Iter() {
		obj, alive := s.stateObjects[addr]
		if !alive {
			continue
		}
		if obj.created {
			update.wipes.Add(addr)
		}
		update.accounts[addr] = obj.data.Copy()
		if obj.dirtyCode && len(obj.code) > 0 {
			hash := common.BytesToHash(obj.CodeHash())
			update.codes[hash] = contractCode{hash: hash, blob: obj.code}
		}
		if len(obj.dirtyStorage) > 0 {
			update.storages[addr] = maps.Clone(obj.dirtyStorage)
		}
	}
	if err := s.db.commit(update); err != nil {
		return err
	}
	for addr := range s.mutations.Iter() {
		if obj, alive := s.stateObjects[addr]; alive {
			obj.commit()
		}
	}
	log.Trace("State committed", "mutations", s.mutations.Cardinality(), "destructs", len(s.stateObjectsDestruct), "logs", s.logSize)

	s.mutations.Clear()
	clear(s.stateObjectsDestruct)
	clear(s.logs)
	s.logSize = 0
	return nil
}
