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
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/emberchain/ember/cmd/utils"
	"github.com/emberchain/ember/core"
	"github.com/emberchain/ember/internal/flags"
	"github.com/emberchain/ember/internal/version"
	"github.com/emberchain/ember/log"
	"github.com/emberchain/ember/node"
	"github.com/emberchain/ember/params"
	"github.com/naoina/toml"
	"github.com/urfave/cli/v2"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.ChainCategory,
	}

	dumpConfigCommand = &cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Export configuration values in a TOML format",
		ArgsUsage:   "<dumpfile (optional)>",
		Flags:       flags.Merge(nodeFlags, []cli.Flag{configFileFlag}),
		Description: `Export configuration values in TOML format (to stdout by default).`,
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		id := fmt.Sprintf("%s.%s", rt.String(), field)
		if deprecatedConfigFields[id] {
			log.Warn(fmt.Sprintf("Config field '%s' is deprecated and won't have any effect.", id))
			return nil
		}
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// 已废弃的配置项，读取时仅告警。
var deprecatedConfigFields = map[string]bool{
	"node.Config.TrieCleanCache": true,
	"params.ChainConfig.Clique":  true,
}

// emberConfig is the layout of the TOML configuration file.
type emberConfig struct {
	Chain   params.ChainConfig
	Node    node.Config
	Genesis core.Genesis
}

func loadConfig(file string, cfg *emberConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

func defaultNodeConfig() node.Config {
	git, _ := version.VCS()
	cfg := node.DefaultConfig
	cfg.Name = clientIdentifier
	cfg.Version = version.WithCommit(git.Commit, git.Date)
	return cfg
}

// loadBaseConfig loads the emberConfig based on the given command line
// parameters and config file.
func loadBaseConfig(ctx *cli.Context) emberConfig {
	// Load defaults
	cfg := emberConfig{
		Chain:   *params.DefaultChainConfig.Copy(),
		Node:    defaultNodeConfig(),
		Genesis: *core.DefaultGenesis(),
	}

	// Load config file.
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			utils.Fatalf("%v", err)
		}
	}

	// Apply flags.
	utils.SetNodeConfig(ctx, &cfg.Node)
	utils.SetChainConfig(ctx, &cfg.Chain)
	return cfg
}

// makeConfigNode loads the configuration and creates a node holding the chain.
// makeConfigNode 加载配置并创建持有链的节点。
func makeConfigNode(ctx *cli.Context) (*node.Node, *core.Chain, emberConfig) {
	cfg := loadBaseConfig(ctx)
	stack, err := node.New(&cfg.Node)
	if err != nil {
		utils.Fatalf("Failed to create the node: %v", err)
	}
	chain, err := stack.OpenChain(&cfg.Genesis, &cfg.Chain)
	if err != nil {
		stack.Close()
		utils.Fatalf("Failed to open the chain: %v", err)
	}
	return stack, chain, cfg
}

// makeFullNode creates and starts a node, returning it together with its chain.
func makeFullNode(ctx *cli.Context) (*node.Node, *core.Chain) {
	stack, chain, _ := makeConfigNode(ctx)
	if err := stack.Start(); err != nil {
		utils.Fatalf("Failed to start the node: %v", err)
	}
	return stack, chain
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg := loadBaseConfig(ctx)
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := os.Stdout
	if ctx.NArg() > 0 {
		dump, err = os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer dump.Close()
	}
	_, err = dump.Write(out)
	return err
}
