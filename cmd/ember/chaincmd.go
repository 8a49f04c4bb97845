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
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/emberchain/ember/cmd/utils"
	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/common/hexutil"
	"github.com/emberchain/ember/core"
	"github.com/emberchain/ember/core/types"
	"github.com/emberchain/ember/core/vm"
	"github.com/emberchain/ember/internal/flags"
	"github.com/emberchain/ember/log"
	"github.com/urfave/cli/v2"
)

var (
	slotFlag = &cli.StringFlag{
		Name:  "slot",
		Usage: "Storage slot to read, as 32 byte hex",
	}

	executeCommand = &cli.Command{
		Action:    executeTx,
		Name:      "execute",
		Aliases:   []string{"send"},
		Usage:     "Execute a transaction on top of the chain head",
		ArgsUsage: " ",
		Flags:     flags.Merge(nodeFlags, utils.TxFlags, []cli.Flag{configFileFlag}),
		Description: `
The execute command applies one transaction at the given base fee, seals it
into a new block and prints the receipt as JSON. A transaction failing the
pre-checks (nonce, balance, fee caps) is rejected without touching the state.`,
	}
	callCommand = &cli.Command{
		Action:    callContract,
		Name:      "call",
		Usage:     "Run contract code without committing any state change",
		ArgsUsage: " ",
		Flags:     flags.Merge(nodeFlags, utils.TxFlags, []cli.Flag{configFileFlag}),
		Description: `
The call command runs the code at --to with --input and --value on behalf of
--from and prints the returned bytes. Nothing is written to the chain.`,
	}
	accountCommand = &cli.Command{
		Action:    showAccount,
		Name:      "account",
		Usage:     "Print the balance, nonce, code and storage of an account",
		ArgsUsage: "<address>",
		Flags:     flags.Merge(nodeFlags, []cli.Flag{configFileFlag, slotFlag}),
	}
	dumpCommand = &cli.Command{
		Action:    dumpState,
		Name:      "dump",
		Usage:     "Dump the state of the chain head as JSON",
		ArgsUsage: " ",
		Flags:     flags.Merge(nodeFlags, []cli.Flag{configFileFlag}),
	}
)

// txArgs holds the transaction fields gathered from the command line.
type txArgs struct {
	from  common.Address
	to    *common.Address
	value *big.Int
	input []byte
}

func parseTxArgs(ctx *cli.Context) (*txArgs, error) {
	args := &txArgs{value: new(big.Int)}
	if !ctx.IsSet(utils.FromFlag.Name) {
		return nil, errors.New("missing --from")
	}
	from, err := utils.ParseAddress(ctx.String(utils.FromFlag.Name))
	if err != nil {
		return nil, fmt.Errorf("invalid sender: %w", err)
	}
	args.from = from
	if ctx.IsSet(utils.ToFlag.Name) {
		to, err := utils.ParseAddress(ctx.String(utils.ToFlag.Name))
		if err != nil {
			return nil, fmt.Errorf("invalid recipient: %w", err)
		}
		args.to = &to
	}
	if ctx.IsSet(utils.ValueFlag.Name) {
		args.value.Set(flags.GlobalBig(ctx, utils.ValueFlag.Name))
	}
	if args.input, err = utils.ParseInput(ctx.String(utils.InputFlag.Name)); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	return args, nil
}

// makeTransaction assembles a legacy transaction, or a dynamic fee one when a
// tip or fee cap is given. Unset prices default to the base fee.
// makeTransaction 构造交易：指定了小费或费用上限时为动态费用交易，否则为传统交易。
func makeTransaction(ctx *cli.Context, chain *core.Chain, baseFee *big.Int) (*types.Transaction, error) {
	args, err := parseTxArgs(ctx)
	if err != nil {
		return nil, err
	}
	nonce := chain.Nonce(args.from)
	if ctx.IsSet(utils.NonceFlag.Name) {
		nonce = ctx.Uint64(utils.NonceFlag.Name)
	}
	gas := ctx.Uint64(utils.GasFlag.Name)

	if ctx.IsSet(utils.TipCapFlag.Name) || ctx.IsSet(utils.FeeCapFlag.Name) {
		tip, feeCap := new(big.Int), new(big.Int).Set(baseFee)
		if ctx.IsSet(utils.TipCapFlag.Name) {
			tip.Set(flags.GlobalBig(ctx, utils.TipCapFlag.Name))
		}
		if ctx.IsSet(utils.FeeCapFlag.Name) {
			feeCap.Set(flags.GlobalBig(ctx, utils.FeeCapFlag.Name))
		} else {
			feeCap.Add(feeCap, tip)
		}
		return types.NewTx(&types.DynamicFeeTx{
			Nonce:     nonce,
			GasTipCap: tip,
			GasFeeCap: feeCap,
			Gas:       gas,
			From:      args.from,
			To:        args.to,
			Value:     args.value,
			Data:      args.input,
		}), nil
	}
	price := new(big.Int).Set(baseFee)
	if ctx.IsSet(utils.GasPriceFlag.Name) {
		price.Set(flags.GlobalBig(ctx, utils.GasPriceFlag.Name))
	}
	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: price,
		Gas:      gas,
		From:     args.from,
		To:       args.to,
		Value:    args.value,
		Data:     args.input,
	}), nil
}

func executeTx(ctx *cli.Context) error {
	stack, chain, _ := makeConfigNode(ctx)
	defer stack.Close()

	baseFee := chain.Config().BaseFee
	tx, err := makeTransaction(ctx, chain, baseFee)
	if err != nil {
		return err
	}
	receipt, err := chain.Execute(tx, baseFee)
	if err != nil {
		return fmt.Errorf("transaction rejected: %w", err)
	}
	log.Info("Executed transaction", "hash", receipt.TxHash, "block", receipt.BlockNumber, "status", receipt.Status, "gas", receipt.GasUsed)
	return printJSON(receipt)
}

func callContract(ctx *cli.Context) error {
	stack, chain, _ := makeConfigNode(ctx)
	defer stack.Close()

	args, err := parseTxArgs(ctx)
	if err != nil {
		return err
	}
	if args.to == nil {
		return errors.New("missing --to")
	}
	ret, err := chain.Simulate(args.from, *args.to, args.input, args.value)
	if err != nil {
		if errors.Is(err, vm.ErrExecutionReverted) {
			return fmt.Errorf("%w: %s", err, hexutil.Encode(ret))
		}
		return err
	}
	fmt.Println(hexutil.Encode(ret))
	return nil
}

func showAccount(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected one address argument")
	}
	addr, err := utils.ParseAddress(ctx.Args().First())
	if err != nil {
		return err
	}
	var slot *common.Hash
	if ctx.IsSet(slotFlag.Name) {
		raw, err := utils.ParseInput(ctx.String(slotFlag.Name))
		if err != nil || len(raw) > common.HashLength {
			return fmt.Errorf("invalid storage slot %q", ctx.String(slotFlag.Name))
		}
		h := common.BytesToHash(raw)
		slot = &h
	}
	stack, chain, _ := makeConfigNode(ctx)
	defer stack.Close()

	fmt.Println("Address:", addr)
	fmt.Println("Balance:", chain.Balance(addr).Dec())
	fmt.Println("Nonce:  ", chain.Nonce(addr))
	fmt.Println("Code:   ", hexutil.Encode(chain.Code(addr)))
	if slot != nil {
		fmt.Printf("Storage: %x => %x\n", *slot, chain.Storage(addr, *slot))
	}
	return nil
}

func dumpState(ctx *cli.Context) error {
	stack, chain, _ := makeConfigNode(ctx)
	defer stack.Close()

	return printJSON(chain.StateDump())
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
