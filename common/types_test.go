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

package common

import (
	"bytes"
	"testing"
)

func TestBytesConversion(t *testing.T) {
	bytes := []byte{5}
	hash := BytesToHash(bytes)

	var exp Hash
	exp[31] = 5

	if hash != exp {
		t.Errorf("expected %x got %x", exp, hash)
	}
}

func TestAddressCropping(t *testing.T) {
	long := make([]byte, 32)
	long[11] = 0xff // dropped
	long[12] = 0x01
	long[31] = 0x02

	addr := BytesToAddress(long)
	if addr[0] != 0x01 || addr[19] != 0x02 {
		t.Fatalf("unexpected address %x", addr)
	}
}

func TestIsHexAddress(t *testing.T) {
	tests := []struct {
		str string
		exp bool
	}{
		{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"0X5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"0XAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", true},
		{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed1", false},
		{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beae", false},
		{"5aaeb6053f3e94c9b9a09f33669435e7ef1beaed11", false},
		{"0xxaaeb6053f3e94c9b9a09f33669435e7ef1beaed", false},
	}

	for _, test := range tests {
		if result := IsHexAddress(test.str); result != test.exp {
			t.Errorf("IsHexAddress(%s) == %v; expected %v",
				test.str, result, test.exp)
		}
	}
}

func TestAddressTextRoundTrip(t *testing.T) {
	want := HexToAddress("0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb7")
	text, err := want.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var got Address
	if err := got.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("have %v, want %v", got, want)
	}
	if err := got.UnmarshalText([]byte("0x1234")); err == nil {
		t.Fatal("expected length error for short input")
	}
}

func TestPadBytes(t *testing.T) {
	val := []byte{1, 2, 3, 4}
	if padded := LeftPadBytes(val, 8); !bytes.Equal(padded, []byte{0, 0, 0, 0, 1, 2, 3, 4}) {
		t.Errorf("LeftPadBytes: have %x", padded)
	}
	if padded := RightPadBytes(val, 8); !bytes.Equal(padded, []byte{1, 2, 3, 4, 0, 0, 0, 0}) {
		t.Errorf("RightPadBytes: have %x", padded)
	}
	if padded := LeftPadBytes(val, 2); !bytes.Equal(padded, val) {
		t.Errorf("LeftPadBytes should not crop: have %x", padded)
	}
}

func TestFromHexOddLength(t *testing.T) {
	if got := FromHex("0x1"); !bytes.Equal(got, []byte{0x01}) {
		t.Errorf("have %x, want 01", got)
	}
}
