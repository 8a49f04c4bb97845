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

// ember is the command-line client of the ember execution chain.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/emberchain/ember/cmd/utils"
	"github.com/emberchain/ember/internal/debug"
	"github.com/emberchain/ember/internal/flags"
	"github.com/emberchain/ember/log"
	"github.com/urfave/cli/v2"
)

const (
	clientIdentifier = "ember" // Client identifier used for the data directory
)

var (
	// flags that configure the node
	nodeFlags = flags.Merge(utils.DatabaseFlags, utils.ChainFlags)
)

var app = flags.NewApp("the ember command line interface")

func init() {
	// Initialize the CLI app and start ember
	app.Action = ember
	app.Commands = []*cli.Command{
		// See chaincmd.go:
		executeCommand,
		callCommand,
		accountCommand,
		dumpCommand,
		// See dbcmd.go:
		dbCommand,
		// See config.go:
		dumpConfigCommand,
		// See misccmd.go:
		versionCommand,
	}
	sort.Sort(cli.CommandsByName(app.Commands))

	app.Flags = flags.Merge(
		nodeFlags,
		[]cli.Flag{configFileFlag},
		debug.Flags,
	)
	flags.AutoEnvVars(app.Flags, "EMBER")

	app.Before = func(ctx *cli.Context) error {
		flags.MigrateGlobalFlags(ctx)
		if err := debug.Setup(ctx); err != nil {
			return err
		}
		flags.CheckEnvVars(ctx, app.Flags, "EMBER")
		return nil
	}
	app.After = func(ctx *cli.Context) error {
		debug.Exit()
		return nil
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ember is the main entry point into the system if no special subcommand is run.
// It opens the chain, keeps it online and waits for an interrupt to shut it
// down cleanly.
// ember 是未指定子命令时的主入口：打开链并保持运行，直到收到中断信号后干净地关闭。
func ember(ctx *cli.Context) error {
	if args := ctx.Args().Slice(); len(args) > 0 {
		return fmt.Errorf("invalid command: %s", args[0])
	}
	stack, _, cfg := makeConfigNode(ctx)
	defer stack.Close()

	log.Info("Starting ember", "datadir", stack.DataDir(), "head", stack.Chain().BlockNumber())
	log.Info("Initialised chain configuration", "config", "\n"+cfg.Chain.Description())

	utils.StartNode(stack)
	stack.Wait()
	return nil
}
