// Copyright 2015 The go-ethereum Authors
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

// Package utils contains internal helper functions for ember commands.
package utils

import (
	"fmt"
	"math/big"
	"os"
	"runtime"
	"strings"

	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/common/hexutil"
	"github.com/emberchain/ember/core/rawdb"
	"github.com/emberchain/ember/internal/flags"
	"github.com/emberchain/ember/log"
	"github.com/emberchain/ember/node"
	"github.com/emberchain/ember/params"
	"github.com/shirou/gopsutil/mem"
	"github.com/urfave/cli/v2"
)

// These are all the command line flags we support.
// If you add to this list, please remember to include the
// flag in the appropriate command definition.
//
// The flags are defined here so their names and help texts
// are the same for all commands.

var (
	// General settings
	DataDirFlag = &flags.DirectoryFlag{
		Name:     "datadir",
		Usage:    "Data directory for the databases",
		Value:    flags.DirectoryString(node.DefaultDataDir()),
		Category: flags.DatabaseCategory,
	}
	DBEngineFlag = &cli.StringFlag{
		Name:     "db.engine",
		Usage:    "Backing database implementation to use ('pebble', 'leveldb' or 'memory')",
		Value:    node.DefaultConfig.DBEngine,
		Category: flags.DatabaseCategory,
	}
	CacheFlag = &cli.IntFlag{
		Name:     "cache",
		Usage:    "Megabytes of memory allocated to database caching",
		Value:    node.DefaultConfig.DatabaseCache,
		Category: flags.DatabaseCategory,
	}

	// Chain settings
	ChainIDFlag = &cli.Uint64Flag{
		Name:     "chainid",
		Usage:    "Chain id reported by the CHAINID opcode",
		Value:    params.DefaultChainID.Uint64(),
		Category: flags.ChainCategory,
	}
	BaseFeeFlag = &flags.BigFlag{
		Name:     "basefee",
		Usage:    "Base fee per gas of every block (wei)",
		Value:    new(big.Int).Set(params.DefaultBaseFee),
		Category: flags.ChainCategory,
	}
	GasLimitFlag = &cli.Uint64Flag{
		Name:     "gaslimit",
		Usage:    "Block gas limit",
		Value:    params.DefaultGasLimit,
		Category: flags.ChainCategory,
	}
	CoinbaseFlag = &cli.StringFlag{
		Name:     "coinbase",
		Usage:    "Block beneficiary reported by the COINBASE opcode",
		Category: flags.ChainCategory,
	}

	// Transaction settings
	FromFlag = &cli.StringFlag{
		Name:     "from",
		Usage:    "Sender address",
		Category: flags.TxCategory,
	}
	ToFlag = &cli.StringFlag{
		Name:     "to",
		Usage:    "Recipient address, leave empty to create a contract",
		Category: flags.TxCategory,
	}
	ValueFlag = &flags.BigFlag{
		Name:     "value",
		Usage:    "Value to transfer (wei)",
		Category: flags.TxCategory,
	}
	InputFlag = &cli.StringFlag{
		Name:     "input",
		Usage:    "Hex encoded calldata or init code",
		Category: flags.TxCategory,
	}
	GasFlag = &cli.Uint64Flag{
		Name:     "gas",
		Usage:    "Gas limit of the transaction",
		Value:    1_000_000,
		Category: flags.TxCategory,
	}
	GasPriceFlag = &flags.BigFlag{
		Name:     "gasprice",
		Usage:    "Gas price of a legacy transaction (wei)",
		Category: flags.TxCategory,
	}
	TipCapFlag = &flags.BigFlag{
		Name:     "tipcap",
		Usage:    "Max priority fee per gas, selects a dynamic fee transaction (wei)",
		Category: flags.TxCategory,
	}
	FeeCapFlag = &flags.BigFlag{
		Name:     "feecap",
		Usage:    "Max fee per gas of a dynamic fee transaction (wei)",
		Category: flags.TxCategory,
	}
	NonceFlag = &cli.Uint64Flag{
		Name:     "nonce",
		Usage:    "Transaction nonce, defaults to the sender's current nonce",
		Category: flags.TxCategory,
	}
)

var (
	// DatabaseFlags is the flag group of all database flags.
	DatabaseFlags = []cli.Flag{
		DataDirFlag,
		DBEngineFlag,
		CacheFlag,
	}
	// ChainFlags is the flag group of the chain constants.
	ChainFlags = []cli.Flag{
		ChainIDFlag,
		BaseFeeFlag,
		GasLimitFlag,
		CoinbaseFlag,
	}
	// TxFlags is the flag group describing a transaction.
	TxFlags = []cli.Flag{
		FromFlag,
		ToFlag,
		ValueFlag,
		InputFlag,
		GasFlag,
		GasPriceFlag,
		TipCapFlag,
		FeeCapFlag,
		NonceFlag,
	}
)

// Fatalf formats a message to standard error and exits the program.
// The message is also printed to standard output if standard error
// is redirected to a different file.
func Fatalf(format string, args ...interface{}) {
	w := os.Stderr
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stdout
		}
	}
	fmt.Fprintf(w, "Fatal: "+format+"\n", args...)
	os.Exit(1)
}

// SetNodeConfig applies node-related command line flags to the config.
// SetNodeConfig 将节点相关的命令行参数应用到配置中。
func SetNodeConfig(ctx *cli.Context, cfg *node.Config) {
	if ctx.IsSet(DataDirFlag.Name) {
		cfg.DataDir = ctx.String(DataDirFlag.Name)
	}
	if ctx.IsSet(DBEngineFlag.Name) {
		dbEngine := ctx.String(DBEngineFlag.Name)
		if dbEngine != rawdb.DBLeveldb && dbEngine != rawdb.DBPebble && dbEngine != "memory" {
			Fatalf("Invalid choice for db.engine '%s', allowed 'leveldb', 'pebble' or 'memory'", dbEngine)
		}
		log.Info(fmt.Sprintf("Using %s as db engine", dbEngine))
		cfg.DBEngine = dbEngine
	}
	if ctx.IsSet(CacheFlag.Name) {
		cfg.DatabaseCache = ctx.Int(CacheFlag.Name)
	}
	cfg.DatabaseCache = capCache(cfg.DatabaseCache)
	cfg.DatabaseHandles = MakeDatabaseHandles(0)
}

// capCache caps the requested cache allowance at a third of the system memory.
func capCache(cache int) int {
	mem, err := mem.VirtualMemory()
	if err != nil {
		log.Debug("Failed to retrieve system memory", "err", err)
		return cache
	}
	allowance := int(mem.Total / 1024 / 1024 / 3)
	if cache > allowance {
		log.Warn("Sanitizing cache to Go's GC limits", "provided", cache, "updated", allowance)
		return allowance
	}
	return cache
}

// MakeDatabaseHandles returns the number of file descriptors to allot to the
// database. A limit of zero selects the node default.
func MakeDatabaseHandles(limit int) int {
	if limit <= 0 {
		return node.DefaultConfig.DatabaseHandles
	}
	return limit
}

// SetChainConfig applies the chain constant flags to the config.
// SetChainConfig 将链常量参数应用到链配置中。
func SetChainConfig(ctx *cli.Context, cfg *params.ChainConfig) {
	if ctx.IsSet(ChainIDFlag.Name) {
		cfg.ChainID = new(big.Int).SetUint64(ctx.Uint64(ChainIDFlag.Name))
	}
	if ctx.IsSet(BaseFeeFlag.Name) {
		cfg.BaseFee = new(big.Int).Set(flags.GlobalBig(ctx, BaseFeeFlag.Name))
	}
	if ctx.IsSet(GasLimitFlag.Name) {
		cfg.GasLimit = ctx.Uint64(GasLimitFlag.Name)
	}
	if ctx.IsSet(CoinbaseFlag.Name) {
		addr, err := ParseAddress(ctx.String(CoinbaseFlag.Name))
		if err != nil {
			Fatalf("Invalid coinbase: %v", err)
		}
		cfg.Coinbase = addr
	}
}

// ParseAddress parses a hex encoded account address, requiring the full
// twenty bytes.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

// ParseInput decodes hex input with or without the 0x prefix.
func ParseInput(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}
