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
	"syscall"
)

var (
	ErrDatadirUsed   = errors.New("datadir already used by another process") // 数据目录已被其他进程使用
	ErrNodeStopped   = errors.New("node not started")
	ErrNodeRunning   = errors.New("node already running")
	ErrChainOpened   = errors.New("chain already opened")
	ErrChainNotReady = errors.New("chain not opened")

	datadirInUseErrnos = map[uint]bool{11: true, 32: true, 35: true}
)

// convertFileLockError maps the errnos of a held lock to ErrDatadirUsed.
// convertFileLockError 将锁被占用的错误码转换为 ErrDatadirUsed。
func convertFileLockError(err error) error {
	if errno, ok := err.(syscall.Errno); ok && datadirInUseErrnos[uint(errno)] {
		return ErrDatadirUsed
	}
	return err
}
