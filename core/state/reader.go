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

package state

import (
	"errors"

	"github.com/emberchain/ember/common"
	"github.com/emberchain/ember/core/types"
)

var errCodeNotFound = errors.New("contract code not found")

// Reader gives read access to the committed accounts, storage slots and code.
// An unknown account reads as nil and an unset slot as the zero hash.
// Reader 提供对已提交账户、存储槽和代码的读取。未知账户为 nil，未设置的槽为零哈希。
type Reader interface {
	// Account returns a copy of the account at addr, or nil.
	Account(addr common.Address) (*types.StateAccount, error)

	// Storage returns the value of slot in the storage of addr.
	Storage(addr common.Address, slot common.Hash) (common.Hash, error)

	// Code returns the code with the given hash deployed at addr. Code that
	// is not stored is an error.
	Code(addr common.Address, codeHash common.Hash) ([]byte, error)

	// CodeSize returns the length of the code with the given hash.
	CodeSize(addr common.Address, codeHash common.Hash) (int, error)
}
