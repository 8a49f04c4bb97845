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

package vm

import (
	"github.com/emberchain/ember/params"
)

// minStack is the number of items an instruction pops.
// minStack 是指令弹出的元素个数。
func minStack(pops, push int) int {
	return pops
}

// maxStack is the deepest stack an instruction may start from without the
// pushes overflowing params.StackLimit.
// maxStack 是指令开始执行时允许的最大栈深度，保证压栈后不超过 params.StackLimit。
func maxStack(pop, push int) int {
	return int(params.StackLimit) + pop - push
}

func minSwapStack(n int) int {
	return minStack(n, n)
}

func maxSwapStack(n int) int {
	return maxStack(n, n)
}

func minDupStack(n int) int {
	return minStack(n, n+1)
}

func maxDupStack(n int) int {
	return maxStack(n, n+1)
}
