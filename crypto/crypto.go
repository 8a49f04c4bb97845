// Copyright 2014 The go-ethereum Authors
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

package crypto

import (
	"hash"
	"sync"

	"github.com/emberchain/ember/common"
	"github.com/umbracle/fastrlp"
	"golang.org/x/crypto/sha3"
)

// DigestLength sets the signature digest exact length
// DigestLength 设置摘要的确切长度
const DigestLength = 32

var (
	// EmptyCodeHash is the known hash of the empty EVM bytecode.
	// EmptyCodeHash 是空字节码的哈希。
	EmptyCodeHash = Keccak256Hash(nil) // c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470
)

// KeccakState wraps sha3.state. In addition to the usual hash methods, it also supports
// Read to get a variable amount of data from the hash state. Read is faster than Sum
// because it doesn't copy the internal state, but also modifies the internal state.
//
// KeccakState 封装了 sha3.state。除了通常的哈希方法外，它还支持 Read 方法，
// 以从哈希状态中获取可变数量的数据。
type KeccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

// NewKeccakState creates a new KeccakState
// NewKeccakState 创建一个新的 KeccakState
func NewKeccakState() KeccakState {
	return sha3.NewLegacyKeccak256().(KeccakState)
}

// HashData hashes the provided data using the KeccakState and returns a 32 byte hash
// 使用 KeccakState 对提供的输入数据进行哈希计算，并返回一个 32 字节的哈希值
func HashData(kh KeccakState, data []byte) (h common.Hash) {
	kh.Reset()
	kh.Write(data)
	kh.Read(h[:])
	return h
}

// Keccak256 calculates and returns the Keccak256 hash of the input data.
// 计算并返回输入数据的 Keccak256 哈希值
func Keccak256(data ...[]byte) []byte {
	b := make([]byte, 32)
	d := NewKeccakState()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(b)
	return b
}

// Keccak256Hash calculates and returns the Keccak256 hash of the input data,
// converting it to an internal Hash data structure.
// 计算输入数据的 Keccak256 哈希值，并将其转换为内部的 Hash 数据结构返回
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	d := NewKeccakState()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(h[:])
	return h
}

// addressArenaPool recycles the arenas used to encode [sender, nonce] pairs.
var addressArenaPool fastrlp.ArenaPool

// CreateAddress creates an ethereum address given the bytes and the nonce
// CreateAddress 根据发送者地址和 nonce 生成新合约地址：keccak256(rlp([sender, nonce]))[12:]
func CreateAddress(b common.Address, nonce uint64) common.Address {
	a := addressArenaPool.Get()
	defer addressArenaPool.Put(a)

	v := a.NewArray()
	v.Set(a.NewBytes(b.Bytes()))
	v.Set(a.NewUint(nonce))

	data := v.MarshalTo(nil)
	return common.BytesToAddress(Keccak256(data)[12:])
}

// hasherPool holds LegacyKeccak256 hashers for callers that hash on hot paths.
var hasherPool = sync.Pool{
	New: func() interface{} { return NewKeccakState() },
}

// HashPooled hashes data with a pooled hasher. It is equivalent to Keccak256Hash
// for a single input but avoids allocating a new sponge per call.
func HashPooled(data []byte) common.Hash {
	kh := hasherPool.Get().(KeccakState)
	h := HashData(kh, data)
	hasherPool.Put(kh)
	return h
}
