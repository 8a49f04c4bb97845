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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/emberchain/ember/core"
	"github.com/emberchain/ember/core/rawdb"
	"github.com/emberchain/ember/internal/shutdowncheck"
	"github.com/emberchain/ember/log"
	"github.com/emberchain/ember/params"
	"github.com/gofrs/flock"
	"github.com/hashicorp/go-multierror"
)

// Node is a container owning the data directory, the chain and the services
// registered around it.
// Node 是持有数据目录、链以及围绕它注册的服务的容器。
type Node struct {
	config        *Config
	log           log.Logger
	dirLock       *flock.Flock  // prevents concurrent use of instance directory
	stop          chan struct{} // Channel to wait for termination notifications
	startStopLock sync.Mutex    // Start/Stop are protected by an additional lock
	state         int           // Tracks state of node lifecycle

	lock       sync.Mutex
	lifecycles []Lifecycle // All registered services that have a lifecycle
	chain      *core.Chain
}

const (
	initializingState = iota
	runningState
	closedState
)

// New creates a new node and locks its instance directory.
// New 创建新节点并锁定其实例目录。
func New(conf *Config) (*Node, error) {
	// Copy config and resolve the datadir so future changes to the current
	// working directory don't affect the node.
	confCopy := *conf
	conf = &confCopy
	if conf.DataDir != "" {
		absdatadir, err := filepath.Abs(conf.DataDir)
		if err != nil {
			return nil, err
		}
		conf.DataDir = absdatadir
	}
	if conf.Logger == nil {
		conf.Logger = log.New()
	}
	// Ensure that the instance name doesn't cause weird conflicts with
	// other files in the data directory.
	if strings.ContainsAny(conf.Name, `/\`) {
		return nil, errors.New(`Config.Name must not contain '/' or '\'`)
	}
	if conf.Name == datadirChainData {
		return nil, errors.New(`Config.Name cannot be "` + datadirChainData + `"`)
	}
	node := &Node{
		config: conf,
		log:    conf.Logger,
		stop:   make(chan struct{}),
	}
	// Acquire the instance directory lock.
	if err := node.openDataDir(); err != nil {
		return nil, err
	}
	return node, nil
}

// OpenChain opens the chain database inside the instance directory, or in
// memory for an ephemeral node, and the chain on top of it. The chain is
// owned by the node and closed with it.
// OpenChain 在实例目录中（临时节点则在内存中）打开链数据库及其上的链，链由节点持有并随节点关闭。
func (n *Node) OpenChain(genesis *core.Genesis, config *params.ChainConfig) (*core.Chain, error) {
	n.lock.Lock()
	defer n.lock.Unlock()

	switch {
	case n.state == closedState:
		return nil, ErrNodeStopped
	case n.chain != nil:
		return nil, ErrChainOpened
	}
	db, err := rawdb.Open(rawdb.OpenOptions{
		Type:      n.config.DBEngine,
		Directory: n.config.ChainDataDir(),
		Cache:     n.config.DatabaseCache,
		Handles:   n.config.DatabaseHandles,
	})
	if err != nil {
		return nil, err
	}
	chain, err := core.NewChain(db, core.DefaultCacheConfig, genesis, config)
	if err != nil {
		db.Close()
		return nil, err
	}
	n.chain = chain
	n.lifecycles = append(n.lifecycles, shutdowncheck.NewShutdownTracker(db))
	return chain, nil
}

// Chain returns the chain opened by OpenChain, or nil.
func (n *Node) Chain() *core.Chain {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.chain
}

// Start starts all registered lifecycles.
// Start 启动所有已注册的生命周期。
func (n *Node) Start() error {
	n.startStopLock.Lock()
	defer n.startStopLock.Unlock()

	n.lock.Lock()
	switch n.state {
	case runningState:
		n.lock.Unlock()
		return ErrNodeRunning
	case closedState:
		n.lock.Unlock()
		return ErrNodeStopped
	}
	if n.chain == nil {
		n.lock.Unlock()
		return ErrChainNotReady
	}
	n.state = runningState
	lifecycles := make([]Lifecycle, len(n.lifecycles))
	copy(lifecycles, n.lifecycles)
	n.lock.Unlock()

	// Start all registered lifecycles.
	var started []Lifecycle
	var err error
	for _, lifecycle := range lifecycles {
		if err = lifecycle.Start(); err != nil {
			break
		}
		started = append(started, lifecycle)
	}
	// Check if any lifecycle failed to start.
	if err != nil {
		n.stopServices(started)
		n.doClose(nil)
	}
	return err
}

// Close stops the Node and releases resources acquired in
// Node constructor New.
// Close 停止节点并释放 New 中获取的资源。
func (n *Node) Close() error {
	n.startStopLock.Lock()
	defer n.startStopLock.Unlock()

	n.lock.Lock()
	state := n.state
	n.lock.Unlock()
	switch state {
	case initializingState:
		// The node was never started.
		return n.doClose(nil)
	case runningState:
		// The node was started, release resources acquired by Start().
		var errs error
		if err := n.stopServices(n.lifecycles); err != nil {
			errs = multierror.Append(errs, err)
		}
		return n.doClose(errs)
	case closedState:
		return ErrNodeStopped
	default:
		panic(fmt.Sprintf("node is in unknown state %d", state))
	}
}

// doClose releases resources acquired by New(), collecting errors.
func (n *Node) doClose(errs error) error {
	// Close the chain. This needs the lock because it needs to
	// synchronize with OpenChain.
	n.lock.Lock()
	n.state = closedState
	if n.chain != nil {
		if err := n.chain.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	n.lock.Unlock()

	// Release instance directory lock.
	if err := n.closeDataDir(); err != nil {
		errs = multierror.Append(errs, err)
	}
	// Unblock n.Wait.
	close(n.stop)
	return errs
}

// stopServices terminates running lifecycles in reverse order.
func (n *Node) stopServices(running []Lifecycle) error {
	var errs error
	for i := len(running) - 1; i >= 0; i-- {
		if err := running[i].Stop(); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%T: %w", running[i], err))
		}
	}
	return errs
}

func (n *Node) openDataDir() error {
	if n.config.DataDir == "" {
		return nil // ephemeral
	}
	instdir := n.config.instanceDir()
	if err := os.MkdirAll(instdir, 0700); err != nil {
		return err
	}
	// Lock the instance directory to prevent concurrent use by another instance as well as
	// accidental use of the instance directory as a database.
	n.dirLock = flock.New(filepath.Join(instdir, "LOCK"))

	if locked, err := n.dirLock.TryLock(); err != nil {
		return convertFileLockError(err)
	} else if !locked {
		return ErrDatadirUsed
	}
	return nil
}

func (n *Node) closeDataDir() error {
	if n.dirLock == nil || !n.dirLock.Locked() {
		return nil
	}
	if err := n.dirLock.Unlock(); err != nil {
		n.log.Error("Can't release datadir lock", "err", err)
		return err
	}
	return nil
}

// Wait blocks until the node is closed.
func (n *Node) Wait() {
	<-n.stop
}

// RegisterLifecycle registers the given Lifecycle on the node.
// RegisterLifecycle 在节点上注册给定的生命周期。
func (n *Node) RegisterLifecycle(lifecycle Lifecycle) {
	n.lock.Lock()
	defer n.lock.Unlock()

	if n.state != initializingState {
		panic("can't register lifecycle on running/stopped node")
	}
	for _, l := range n.lifecycles {
		if l == lifecycle {
			panic(fmt.Sprintf("attempt to register lifecycle %T more than once", lifecycle))
		}
	}
	n.lifecycles = append(n.lifecycles, lifecycle)
}

// Config returns the configuration of node.
func (n *Node) Config() *Config {
	return n.config
}

// DataDir retrieves the current datadir used by the protocol stack.
func (n *Node) DataDir() string {
	return n.config.DataDir
}

// InstanceDir retrieves the instance directory used by the protocol stack.
func (n *Node) InstanceDir() string {
	return n.config.instanceDir()
}

// ResolvePath returns the absolute path of a resource in the instance directory.
func (n *Node) ResolvePath(x string) string {
	return n.config.ResolvePath(x)
}
