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

package pebble

import (
	"path/filepath"
	"testing"

	"github.com/emberchain/ember/ethdb"
	"github.com/emberchain/ember/ethdb/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPebbleDB(t *testing.T) {
	t.Run("DatabaseSuite", func(t *testing.T) {
		dbtest.TestDatabaseSuite(t, func() ethdb.KeyValueStore {
			db, err := New(t.TempDir(), 16, 16, false)
			if err != nil {
				t.Fatal(err)
			}
			return db
		})
	})
}

func TestUpperBound(t *testing.T) {
	// Normal prefix
	assert.Equal(t, []byte{0x01, 0x03}, upperBound([]byte{0x01, 0x02}), "upper bound should increment last byte")

	// Prefix with 0xff
	assert.Equal(t, []byte{0x02}, upperBound([]byte{0x01, 0xff}), "upper bound should increment previous byte")

	// All 0xff prefix
	assert.Nil(t, upperBound([]byte{0xff, 0xff}), "upper bound should be nil for all 0xff")

	// Empty prefix
	assert.Nil(t, upperBound([]byte{}), "upper bound should be nil for empty prefix")
}

func TestReopenPersists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chaindata")

	db, err := New(dir, 16, 16, false)
	require.NoError(t, err)
	require.NoError(t, db.Put([]byte("code"), []byte{0x60, 0x00}))
	require.NoError(t, db.Close())
	require.NoError(t, db.Close(), "double close should be allowed")

	db, err = New(dir, 16, 16, true)
	require.NoError(t, err)
	defer db.Close()

	val, err := db.Get([]byte("code"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x00}, val)
	assert.Equal(t, dir, db.Path())

	stat, err := db.Stat()
	require.NoError(t, err)
	assert.NotEmpty(t, stat)
}
