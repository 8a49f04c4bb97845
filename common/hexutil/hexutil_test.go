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

package hexutil

import (
	"bytes"
	"errors"
	"testing"
)

var decodeTests = []struct {
	input   string
	want    []byte
	wantErr error
}{
	{input: "", wantErr: ErrEmptyString},
	{input: "0", wantErr: ErrMissingPrefix},
	{input: "0x0", wantErr: ErrOddLength},
	{input: "0x023", wantErr: ErrOddLength},
	{input: "0xxx", wantErr: ErrSyntax},
	{input: "0x01zz01", wantErr: ErrSyntax},
	{input: "0x", want: []byte{}},
	{input: "0x02", want: []byte{0x02}},
	{input: "0X02", want: []byte{0x02}},
	{input: "0xffffffffff", want: []byte{0xff, 0xff, 0xff, 0xff, 0xff}},
}

func TestDecode(t *testing.T) {
	for _, test := range decodeTests {
		dec, err := Decode(test.input)
		if !errors.Is(err, test.wantErr) {
			t.Errorf("input %q: error mismatch: got %v, want %v", test.input, err, test.wantErr)
			continue
		}
		if err == nil && !bytes.Equal(dec, test.want) {
			t.Errorf("input %q: value mismatch: got %x, want %x", test.input, dec, test.want)
		}
	}
}

func TestBytesText(t *testing.T) {
	var b Bytes
	if err := b.UnmarshalText([]byte("0x6001")); err != nil {
		t.Fatal(err)
	}
	enc, _ := b.MarshalText()
	if string(enc) != "0x6001" {
		t.Fatalf("round trip mismatch: %s", enc)
	}
	if Encode(nil) != "0x" {
		t.Fatalf("empty encoding mismatch: %s", Encode(nil))
	}
}
