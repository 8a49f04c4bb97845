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

package memorydb

import (
	"testing"

	"github.com/emberchain/ember/ethdb"
	"github.com/emberchain/ember/ethdb/dbtest"
)

func TestMemoryDB(t *testing.T) {
	t.Run("DatabaseSuite", func(t *testing.T) {
		dbtest.TestDatabaseSuite(t, func() ethdb.KeyValueStore {
			return New()
		})
	})
}

// TestIteratorSnapshot checks that an iterator is unaffected by writes made
// after it was created.
func TestIteratorSnapshot(t *testing.T) {
	db := New()
	db.Put([]byte("a1"), []byte("x"))
	db.Put([]byte("a2"), []byte("y"))

	it := db.NewIterator([]byte("a"), nil)
	db.Put([]byte("a3"), []byte("z"))
	db.Delete([]byte("a1"))

	var n int
	for it.Next() {
		n++
	}
	it.Release()
	if n != 2 {
		t.Fatalf("iterator saw %d entries, want 2", n)
	}
	if db.Len() != 2 {
		t.Fatalf("wrong length: have %d, want 2", db.Len())
	}
}
