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

package node

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/emberchain/ember/log"
)

const datadirChainData = "chaindata" // Path within the instance directory to the chain database

// Config represents a small collection of configuration values to fine tune the
// resources of a node.
// Config 是用于调整节点资源的一小组配置值。
type Config struct {
	// Name sets the instance name of the node. It must not contain the / character
	// and names the instance directory. If no value is specified, the basename of
	// the current executable is used.
	Name string `toml:"-"`

	// Version should be set to the version number of the program.
	Version string `toml:"-"`

	// DataDir is the file system folder the node should use for any data storage
	// requirements. An empty DataDir keeps the chain in memory.
	// DataDir 是节点存放数据的目录。为空时链保存在内存中。
	DataDir string

	// DBEngine selects the key-value backend: "leveldb", "pebble" or "memory".
	// When empty, the engine of an existing database is used and pebble otherwise.
	DBEngine string `toml:",omitempty"`

	// DatabaseCache is the memory allowance of the database in megabytes.
	DatabaseCache int

	// DatabaseHandles is the number of files the database may keep open.
	DatabaseHandles int `toml:"-"`

	// Logger is a custom logger to use with the node.
	Logger log.Logger `toml:",omitempty"`
}

// ResolvePath resolves path in the instance directory.
// ResolvePath 在实例目录中解析路径。
func (c *Config) ResolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if c.DataDir == "" {
		return ""
	}
	return filepath.Join(c.instanceDir(), path)
}

// ChainDataDir returns the directory of the chain database, or the empty
// string for an in-memory node.
func (c *Config) ChainDataDir() string {
	return c.ResolvePath(datadirChainData)
}

func (c *Config) name() string {
	if c.Name == "" {
		progname := strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe")
		if progname == "" {
			panic("empty executable name, set Config.Name")
		}
		return progname
	}
	return c.Name
}

func (c *Config) instanceDir() string {
	if c.DataDir == "" {
		return ""
	}
	return filepath.Join(c.DataDir, c.name())
}
