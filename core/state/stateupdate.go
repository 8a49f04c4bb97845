// Copyright 2021 The go-ethereum Authors
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
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/core/types"
	"github.com/emberchain/ember/ethdb"
)

// contractCode represents a contract code with associated metadata.
// contractCode 表示带有相关元数据的合约代码。
type contractCode struct {
	hash common.Hash // hash is the cryptographic hash of the contract code.
	blob []byte      // blob is the binary representation of the contract code.
}

// stateUpdate represents the difference between two states resulting from
// state execution. It is flushed to disk in one batch by Database.commit.
// stateUpdate 表示状态执行产生的两个状态之间的差异。
type stateUpdate struct {
	accounts map[common.Address]*types.StateAccount         // nil means the account was deleted
	storages map[common.Address]map[common.Hash]common.Hash // zero means the slot was cleared
	wipes    mapset.Set[common.Address]                     // accounts whose whole storage is dropped before applying storages
	codes    map[common.Hash]contractCode                   // new contract codes
	extra    func(ethdb.KeyValueWriter)                     // non-state writes sharing the batch, may be nil
}

func newStateUpdate() *stateUpdate {
	return &stateUpdate{
		accounts: make(map[common.Address]*types.StateAccount),
		storages: make(map[common.Address]map[common.Hash]common.Hash),
		wipes:    mapset.NewThreadUnsafeSet[common.Address](),
		codes:    make(map[common.Hash]contractCode),
	}
}

// empty returns a flag indicating the state transition is empty or not.
func (sc *stateUpdate) empty() bool {
	return len(sc.accounts) == 0 && len(sc.codes) == 0 && sc.wipes.Cardinality() == 0 && sc.extra == nil
}
