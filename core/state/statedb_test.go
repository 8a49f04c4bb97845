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
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/core/rawdb"
	"github.com/emberchain/ember/core/types"
	"github.com/emberchain/ember/crypto"
	"github.com/emberchain/ember/ethdb"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	addrA = common.HexToAddress("0x6ac7ea33f8831ea9dcc53393aaa88b25a785dbf0")
	addrB = common.HexToAddress("0xb94f5374fce5edbc8e2a8697c15331677e6ebf0b")
	slot0 = common.Hash{}
	slot1 = common.BytesToHash([]byte{1})
)

func TestSnapshotRevert(t *testing.T) {
	state := New(NewDatabaseForTesting())
	state.AddBalance(addrA, uint256.NewInt(100))
	state.SetNonce(addrA, 3)
	state.SetState(addrA, slot0, common.BytesToHash([]byte{66}))

	id := state.Snapshot()
	state.SubBalance(addrA, uint256.NewInt(40))
	state.SetNonce(addrA, 4)
	state.SetState(addrA, slot0, common.BytesToHash([]byte{67}))
	state.SetState(addrA, slot1, common.BytesToHash([]byte{1}))
	state.SetCode(addrA, []byte{0x60, 0x00})
	state.AddBalance(addrB, uint256.NewInt(1))
	state.AddLog(&types.Log{Address: addrA})

	state.RevertToSnapshot(id)

	assert.Equal(t, uint64(100), state.GetBalance(addrA).Uint64())
	assert.Equal(t, uint64(3), state.GetNonce(addrA))
	assert.Equal(t, common.BytesToHash([]byte{66}), state.GetState(addrA, slot0))
	assert.Equal(t, common.Hash{}, state.GetState(addrA, slot1))
	assert.Nil(t, state.GetCode(addrA))
	assert.Equal(t, types.EmptyCodeHash, state.GetCodeHash(addrA))
	assert.False(t, state.Exist(addrB), "created account survived revert")
	assert.Empty(t, state.Logs())
}

func TestNestedSnapshots(t *testing.T) {
	state := New(NewDatabaseForTesting())
	outer := state.Snapshot()
	state.SetState(addrA, slot0, common.BytesToHash([]byte{1}))
	inner := state.Snapshot()
	state.SetState(addrA, slot0, common.BytesToHash([]byte{2}))

	state.RevertToSnapshot(inner)
	assert.Equal(t, common.BytesToHash([]byte{1}), state.GetState(addrA, slot0))

	state.RevertToSnapshot(outer)
	assert.Equal(t, common.Hash{}, state.GetState(addrA, slot0))

	assert.Panics(t, func() { state.RevertToSnapshot(inner) }, "reverting to an invalidated snapshot")
}

func TestCommitPersists(t *testing.T) {
	db := NewDatabaseForTesting()
	state := New(db)
	code := []byte{0x60, 0x2a, 0x60, 0x00, 0x55}

	state.AddBalance(addrA, uint256.NewInt(1000))
	state.SetNonce(addrA, 7)
	state.SetCode(addrA, code)
	state.SetState(addrA, slot1, common.BytesToHash([]byte{0x2a}))
	require.NoError(t, state.Commit(nil))

	// A fresh state over the same database sees the committed values
	fresh := New(db)
	assert.Equal(t, uint64(1000), fresh.GetBalance(addrA).Uint64())
	assert.Equal(t, uint64(7), fresh.GetNonce(addrA))
	assert.Equal(t, code, fresh.GetCode(addrA))
	assert.Equal(t, len(code), fresh.GetCodeSize(addrA))
	assert.Equal(t, crypto.Keccak256Hash(code), fresh.GetCodeHash(addrA))
	assert.Equal(t, common.BytesToHash([]byte{0x2a}), fresh.GetState(addrA, slot1))

	// Bypass the caches, the disk must hold the same values
	acct := rawdb.ReadAccount(db.DiskDB(), addrA)
	require.NotNil(t, acct)
	assert.Equal(t, uint64(7), acct.Nonce)
	assert.Equal(t, common.BytesToHash([]byte{0x2a}), rawdb.ReadStorage(db.DiskDB(), addrA, slot1))
}

// countingStore counts the batches written to the wrapped store.
type countingStore struct {
	ethdb.KeyValueStore
	writes int
}

func (s *countingStore) NewBatch() ethdb.Batch {
	return &countingBatch{Batch: s.KeyValueStore.NewBatch(), store: s}
}

type countingBatch struct {
	ethdb.Batch
	store *countingStore
}

func (b *countingBatch) Write() error {
	b.store.writes++
	return b.Batch.Write()
}

func TestCommitSharesBatch(t *testing.T) {
	disk := &countingStore{KeyValueStore: rawdb.NewMemoryDatabase()}
	state := New(NewDatabase(disk, 16))

	state.AddBalance(addrA, uint256.NewInt(5))
	state.SetState(addrA, slot0, common.BytesToHash([]byte{9}))
	err := state.Commit(func(w ethdb.KeyValueWriter) {
		require.NoError(t, w.Put([]byte("marker"), []byte{1}))
	})
	require.NoError(t, err)
	assert.Equal(t, 1, disk.writes, "state and extra writes must share one batch")

	marker, err := disk.Get([]byte("marker"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, marker)
	assert.NotNil(t, rawdb.ReadAccount(disk, addrA))

	// Extra writes go out even without state mutations.
	require.NoError(t, state.Commit(func(w ethdb.KeyValueWriter) {
		require.NoError(t, w.Put([]byte("marker"), []byte{2}))
	}))
	assert.Equal(t, 2, disk.writes)
	marker, err = disk.Get([]byte("marker"))
	require.NoError(t, err)
	assert.Equal(t, []byte{2}, marker)

	require.NoError(t, state.Commit(nil))
	assert.Equal(t, 2, disk.writes, "empty commit writes nothing")
}

func TestZeroWriteDeletesSlot(t *testing.T) {
	db := NewDatabaseForTesting()
	state := New(db)
	state.SetState(addrA, slot0, common.BytesToHash([]byte{9}))
	require.NoError(t, state.Commit(nil))
	require.NotNil(t, rawdb.ReadStorageRaw(db.DiskDB(), addrA, slot0))

	state.SetState(addrA, slot0, common.Hash{})
	require.NoError(t, state.Commit(nil))
	assert.Nil(t, rawdb.ReadStorageRaw(db.DiskDB(), addrA, slot0))
	assert.Equal(t, common.Hash{}, New(db).GetState(addrA, slot0))
}

func TestRepeatedReadsAreStable(t *testing.T) {
	db := NewDatabaseForTesting()
	state := New(db)
	state.SetState(addrA, slot1, common.BytesToHash([]byte{5}))
	require.NoError(t, state.Commit(nil))

	fresh := New(db)
	first := fresh.GetState(addrA, slot1)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, fresh.GetState(addrA, slot1))
	}
	assert.Equal(t, common.Hash{}, fresh.GetState(addrB, slot1), "slot leaked across accounts")
}

func TestSelfDestructWipesStorage(t *testing.T) {
	db := NewDatabaseForTesting()
	state := New(db)
	state.AddBalance(addrA, uint256.NewInt(50))
	state.SetState(addrA, slot0, common.BytesToHash([]byte{1}))
	state.SetState(addrA, slot1, common.BytesToHash([]byte{2}))
	require.NoError(t, state.Commit(nil))

	prev := state.SelfDestruct(addrA)
	assert.Equal(t, uint64(50), prev.Uint64())
	assert.True(t, state.HasSelfDestructed(addrA))
	assert.True(t, state.Exist(addrA), "self-destructed account is accessible until finalised")
	require.NoError(t, state.Commit(nil))

	assert.False(t, state.Exist(addrA))
	assert.Nil(t, rawdb.ReadAccount(db.DiskDB(), addrA))
	assert.Nil(t, rawdb.ReadStorageRaw(db.DiskDB(), addrA, slot0))
	assert.Nil(t, rawdb.ReadStorageRaw(db.DiskDB(), addrA, slot1))
	assert.Equal(t, common.Hash{}, New(db).GetState(addrA, slot1))
}

func TestCreateAccountKeepsBalance(t *testing.T) {
	state := New(NewDatabaseForTesting())
	state.AddBalance(addrA, uint256.NewInt(10))
	state.SetState(addrA, slot0, common.BytesToHash([]byte{1}))
	state.CreateAccount(addrA)

	assert.Equal(t, uint64(10), state.GetBalance(addrA).Uint64())
	assert.Equal(t, common.Hash{}, state.GetState(addrA, slot0))
}

func TestCopyIsIndependent(t *testing.T) {
	db := NewDatabaseForTesting()
	orig := New(db)
	orig.AddBalance(addrA, uint256.NewInt(10))
	orig.SetState(addrA, slot0, common.BytesToHash([]byte{1}))

	cpy := orig.Copy()
	cpy.AddBalance(addrA, uint256.NewInt(5))
	cpy.SetState(addrA, slot0, common.BytesToHash([]byte{2}))
	cpy.AddBalance(addrB, uint256.NewInt(1))

	assert.Equal(t, uint64(10), orig.GetBalance(addrA).Uint64())
	assert.Equal(t, common.BytesToHash([]byte{1}), orig.GetState(addrA, slot0))
	assert.False(t, orig.Exist(addrB))
	assert.Equal(t, uint64(15), cpy.GetBalance(addrA).Uint64())
}

func TestDumpMatchesCommittedState(t *testing.T) {
	db := NewDatabaseForTesting()
	state := New(db)
	state.AddBalance(addrA, uint256.NewInt(10))
	state.SetCode(addrB, []byte{0x00})
	state.SetState(addrB, slot1, common.BytesToHash([]byte{3}))
	before := state.RawDump(nil)
	require.NoError(t, state.Commit(nil))

	after := New(db).RawDump(nil)
	if !assert.Equal(t, before, after) {
		t.Logf("before: %s\nafter: %s", spew.Sdump(before), spew.Sdump(after))
	}
	require.Len(t, after.Accounts, 2)
	assert.Equal(t, "10", after.Accounts[addrA].Balance)
	assert.Equal(t, "0x00", after.Accounts[addrB].Code)
	assert.Equal(t, common.BytesToHash([]byte{3}).Hex(), after.Accounts[addrB].Storage[slot1])
}
