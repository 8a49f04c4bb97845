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

package vm

import (
	"testing"

	"github.com/emberchain/ember/params"
)

func TestInstructionSetComplete(t *testing.T) {
	jt := DefaultInstructionSet()
	for i, op := range jt {
		if op == nil {
			t.Fatalf("op %#x has no entry", i)
		}
		if op.Undefined() {
			if op.ConstantGas() != 0 {
				t.Errorf("undefined op %#x charges gas", i)
			}
			continue
		}
		if lo, hi := op.Stack(); lo > hi {
			t.Errorf("op %v: minStack %d above maxStack %d", OpCode(i), lo, hi)
		}
	}
	for _, op := range []OpCode{CREATE, CALL, CALLCODE, DELEGATECALL, CREATE2, STATICCALL} {
		if jt[op].Undefined() {
			t.Errorf("%v should be defined", op)
		}
		if jt[op].Pushes() != 1 {
			t.Errorf("%v should push one item, pushes %d", op, jt[op].Pushes())
		}
	}
}

func TestFlatGas(t *testing.T) {
	jt := DefaultInstructionSet()
	tests := map[OpCode]uint64{
		ADD:      params.GasFastestStep,
		MUL:      params.GasFastStep,
		ADDMOD:   params.GasMidStep,
		SLOAD:    params.SloadGas,
		SSTORE:   params.SstoreGas,
		JUMPDEST: params.JumpdestGas,
		PUSH32:   params.GasFastestStep,
		LOG2:     3 * params.LogGas,
		CALL:     params.CallGas,
		CREATE:   params.CreateGas,
		RETURN:   0,
	}
	for op, want := range tests {
		if have := jt[op].ConstantGas(); have != want {
			t.Errorf("%v: gas mismatch: have %d, want %d", op, have, want)
		}
	}
}

func TestCodeBitmap(t *testing.T) {
	// PUSH2 0x5b5b, JUMPDEST, PUSH32 <32 bytes>
	code := append([]byte{byte(PUSH2), 0x5b, 0x5b, byte(JUMPDEST), byte(PUSH32)}, make([]byte, 32)...)
	bits := codeBitmap(code)
	for pc, want := range map[uint64]bool{0: true, 1: false, 2: false, 3: true, 4: true, 5: false, 36: false} {
		if have := bits.codeSegment(pc); have != want {
			t.Errorf("pc %d: code segment mismatch: have %v, want %v", pc, have, want)
		}
	}
}
