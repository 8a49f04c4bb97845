// Copyright 2021 The go-ethereum Authors
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

package shutdowncheck

import (
	"time"

	"github.com/emberchain/ember/core/rawdb"
	"github.com/emberchain/ember/ethdb"
	"github.com/emberchain/ember/log"
)

// ShutdownTracker reports previous unclean shutdowns of the chain database
// upon start. It is registered as a node lifecycle, so it starts after the
// chain is open and stops just before the database is closed.
// ShutdownTracker 在启动时报告链数据库之前的非正常关机，作为节点生命周期在链打开后启动、数据库关闭前停止。
type ShutdownTracker struct {
	db       ethdb.KeyValueStore
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewShutdownTracker creates a new ShutdownTracker instance and has
// no other side-effect.
func NewShutdownTracker(db ethdb.KeyValueStore) *ShutdownTracker {
	return &ShutdownTracker{
		db:       db,
		interval: 5 * time.Minute,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// MarkStartup pushes a new startup marker to the db and reports previous
// unclean shutdowns.
// MarkStartup 向数据库推送新的启动标记，并报告之前的非正常关机。
func (t *ShutdownTracker) MarkStartup() {
	if uncleanShutdowns, discards, err := rawdb.PushUncleanShutdownMarker(t.db); err != nil {
		log.Error("Could not update unclean-shutdown-marker list", "error", err)
	} else {
		if discards > 0 {
			log.Warn("Old unclean shutdowns found", "count", discards)
		}
		for _, tstamp := range uncleanShutdowns {
			t := time.Unix(int64(tstamp), 0)
			log.Warn("Unclean shutdown detected", "booted", t,
				"age", time.Since(t).Truncate(time.Second))
		}
	}
}

// Start marks the startup and runs a loop that refreshes the current
// marker's timestamp every interval.
// Start 标记启动，并运行一个定期刷新当前标记时间戳的循环。
func (t *ShutdownTracker) Start() error {
	t.MarkStartup()
	go func() {
		defer close(t.doneCh)

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rawdb.UpdateUncleanShutdownMarker(t.db)
			case <-t.stopCh:
				return
			}
		}
	}()
	return nil
}

// Stop will stop the update loop and clear the current marker.
// Stop 停止更新循环并清除当前标记。
func (t *ShutdownTracker) Stop() error {
	close(t.stopCh)
	<-t.doneCh
	rawdb.PopUncleanShutdownMarker(t.db)
	return nil
}
