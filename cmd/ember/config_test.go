// Copyright 2014 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/emberchain/ember/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[Chain]
ChainID = 1337
BaseFee = 7
GasLimit = 30000000
Coinbase = "0x00000000000000000000000000000000000000cb"

[Node]
DataDir = "/tmp/ember-test"
DBEngine = "leveldb"
DatabaseCache = 64

[Genesis]
Timestamp = 1700000000

[[Genesis.Alloc]]
Address = "0x0000000000000000000000000000000000000001"
Balance = 1000000

[[Genesis.Alloc]]
Address = "0x0000000000000000000000000000000000000002"
Balance = 5
Nonce = 3
Code = "0x6001"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))
	return file
}

func TestLoadConfig(t *testing.T) {
	var cfg emberConfig
	require.NoError(t, loadConfig(writeConfig(t, testConfig), &cfg))

	assert.Equal(t, int64(1337), cfg.Chain.ChainID.Int64())
	assert.Equal(t, int64(7), cfg.Chain.BaseFee.Int64())
	assert.Equal(t, uint64(30000000), cfg.Chain.GasLimit)
	assert.Equal(t, common.HexToAddress("0xcb"), cfg.Chain.Coinbase)
	assert.NoError(t, cfg.Chain.Validate())

	assert.Equal(t, "/tmp/ember-test", cfg.Node.DataDir)
	assert.Equal(t, "leveldb", cfg.Node.DBEngine)
	assert.Equal(t, 64, cfg.Node.DatabaseCache)

	assert.Equal(t, uint64(1700000000), cfg.Genesis.Timestamp)
	require.Len(t, cfg.Genesis.Alloc, 2)
	assert.Equal(t, common.HexToAddress("0x01"), cfg.Genesis.Alloc[0].Address)
	assert.Equal(t, int64(1000000), cfg.Genesis.Alloc[0].Balance.Int64())
	assert.Equal(t, uint64(3), cfg.Genesis.Alloc[1].Nonce)
	assert.Equal(t, []byte{0x60, 0x01}, []byte(cfg.Genesis.Alloc[1].Code))
	assert.NoError(t, cfg.Genesis.Alloc.Validate())
}

func TestLoadConfigUnknownField(t *testing.T) {
	var cfg emberConfig
	err := loadConfig(writeConfig(t, "[Node]\nHTTPPort = 8545\n"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTPPort")
	assert.Contains(t, err.Error(), "config.toml")
}

func TestLoadConfigDeprecatedField(t *testing.T) {
	var cfg emberConfig
	require.NoError(t, loadConfig(writeConfig(t, "[Node]\nTrieCleanCache = 10\n"), &cfg))
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg emberConfig
	assert.Error(t, loadConfig(filepath.Join(t.TempDir(), "absent.toml"), &cfg))
}
