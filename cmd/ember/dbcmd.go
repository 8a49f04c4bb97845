// Copyright 2021 The go-ethereum Authors
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
	"fmt"
	"os"

	"github.com/emberchain/ember/cmd/utils"
	"github.com/emberchain/ember/core/rawdb"
	"github.com/emberchain/ember/ethdb"
	"github.com/emberchain/ember/internal/flags"
	"github.com/emberchain/ember/log"
	"github.com/emberchain/ember/node"
	"github.com/urfave/cli/v2"
)

var (
	dbCommand = &cli.Command{
		Name:      "db",
		Usage:     "Low level database operations",
		ArgsUsage: "",
		Subcommands: []*cli.Command{
			dbInspectCmd,
			dbStatCmd,
		},
	}
	dbInspectCmd = &cli.Command{
		Action:    inspect,
		Name:      "inspect",
		ArgsUsage: " ",
		Flags:     flags.Merge(utils.DatabaseFlags, []cli.Flag{configFileFlag}),
		Usage:     "Inspect the storage size for each type of data in the database",
	}
	dbStatCmd = &cli.Command{
		Action: dbStats,
		Name:   "stats",
		Usage:  "Print leveldb or pebble statistics",
		Flags:  flags.Merge(utils.DatabaseFlags, []cli.Flag{configFileFlag}),
	}
)

// openChainDatabase opens the chain database of the configured data directory
// without setting up a chain on top of it. The returned node holds the
// directory lock and must be closed after the database.
func openChainDatabase(ctx *cli.Context, readonly bool) (*node.Node, ethdb.KeyValueStore) {
	cfg := loadBaseConfig(ctx)
	stack, err := node.New(&cfg.Node)
	if err != nil {
		utils.Fatalf("Failed to create the node: %v", err)
	}
	db, err := rawdb.Open(rawdb.OpenOptions{
		Type:      cfg.Node.DBEngine,
		Directory: cfg.Node.ChainDataDir(),
		Cache:     cfg.Node.DatabaseCache,
		Handles:   cfg.Node.DatabaseHandles,
		ReadOnly:  readonly,
	})
	if err != nil {
		stack.Close()
		utils.Fatalf("Failed to open database: %v", err)
	}
	return stack, db
}

func inspect(ctx *cli.Context) error {
	stack, db := openChainDatabase(ctx, true)
	defer stack.Close()
	defer db.Close()

	return rawdb.InspectDatabase(db, os.Stdout)
}

func dbStats(ctx *cli.Context) error {
	stack, db := openChainDatabase(ctx, true)
	defer stack.Close()
	defer db.Close()

	showDBStats(db)
	return nil
}

func showDBStats(db ethdb.KeyValueStater) {
	stats, err := db.Stat()
	if err != nil {
		log.Warn("Failed to read database stats", "error", err)
		return
	}
	fmt.Println(stats)
}
