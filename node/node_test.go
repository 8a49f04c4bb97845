// Copyright 2015 The go-ethereum Authors
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
	"errors"
	"math/big"
	"testing"

	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNodeConfig(datadir string) *Config {
	return &Config{
		Name:            "test node",
		DataDir:         datadir,
		DatabaseCache:   16,
		DatabaseHandles: 16,
	}
}

// recordingLifecycle records the calls it receives.
type recordingLifecycle struct {
	name    string
	calls   *[]string
	stopErr error
}

func (l *recordingLifecycle) Start() error {
	*l.calls = append(*l.calls, "start "+l.name)
	return nil
}

func (l *recordingLifecycle) Stop() error {
	*l.calls = append(*l.calls, "stop "+l.name)
	return l.stopErr
}

// Tests that an empty node can be started and stopped repeatedly.
func TestNodeLifeCycle(t *testing.T) {
	stack, err := New(testNodeConfig(""))
	require.NoError(t, err)

	_, err = stack.OpenChain(nil, nil)
	require.NoError(t, err)

	require.NoError(t, stack.Start())
	assert.ErrorIs(t, stack.Start(), ErrNodeRunning)
	require.NoError(t, stack.Close())
	assert.ErrorIs(t, stack.Close(), ErrNodeStopped)
	assert.ErrorIs(t, stack.Start(), ErrNodeStopped)
}

func TestNodeStartWithoutChain(t *testing.T) {
	stack, err := New(testNodeConfig(""))
	require.NoError(t, err)
	defer stack.Close()

	assert.ErrorIs(t, stack.Start(), ErrChainNotReady)
}

// Tests that if the data dir is already in use, an appropriate error is returned.
func TestNodeUsedDataDir(t *testing.T) {
	dir := t.TempDir()

	original, err := New(testNodeConfig(dir))
	require.NoError(t, err)
	defer original.Close()

	_, err = New(testNodeConfig(dir))
	assert.ErrorIs(t, err, ErrDatadirUsed)
}

func TestLifecycleOrder(t *testing.T) {
	var calls []string

	stack, err := New(testNodeConfig(""))
	require.NoError(t, err)
	_, err = stack.OpenChain(nil, nil)
	require.NoError(t, err)

	stack.RegisterLifecycle(&recordingLifecycle{name: "a", calls: &calls})
	stack.RegisterLifecycle(&recordingLifecycle{name: "b", calls: &calls})
	require.NoError(t, stack.Start())
	require.NoError(t, stack.Close())

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, calls)
}

func TestCloseCollectsErrors(t *testing.T) {
	var (
		calls []string
		errA  = errors.New("a failed")
		errB  = errors.New("b failed")
	)
	stack, err := New(testNodeConfig(t.TempDir()))
	require.NoError(t, err)
	_, err = stack.OpenChain(nil, nil)
	require.NoError(t, err)

	stack.RegisterLifecycle(&recordingLifecycle{name: "a", calls: &calls, stopErr: errA})
	stack.RegisterLifecycle(&recordingLifecycle{name: "b", calls: &calls, stopErr: errB})
	require.NoError(t, stack.Start())

	err = stack.Close()
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)

	// Every resource is released regardless: the datadir can be reused.
	again, err := New(testNodeConfig(stack.DataDir()))
	require.NoError(t, err)
	require.NoError(t, again.Close())
}

func TestChainSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	recipient := common.HexToAddress("0x1234")

	stack, err := New(testNodeConfig(dir))
	require.NoError(t, err)
	chain, err := stack.OpenChain(nil, nil)
	require.NoError(t, err)
	require.NoError(t, stack.Start())

	_, err = chain.Simulate(recipient, recipient, nil, big.NewInt(0))
	require.NoError(t, err)
	require.NoError(t, stack.Close())

	stack, err = New(testNodeConfig(dir))
	require.NoError(t, err)
	defer stack.Close()

	_, err = stack.OpenChain(nil, params.DefaultChainConfig)
	require.NoError(t, err)
	_, err = stack.OpenChain(nil, nil)
	assert.ErrorIs(t, err, ErrChainOpened)
	assert.Equal(t, uint64(0), stack.Chain().BlockNumber())
}
