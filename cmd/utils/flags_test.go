// Copyright 2014 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package utils

import (
	"testing"

	"github.com/emberchain/ember/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x00000000000000000000000000000000000000aa")
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xaa"), addr)

	_, err = ParseAddress("0xaa")
	assert.Error(t, err)
	_, err = ParseAddress("not an address")
	assert.Error(t, err)
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		in      string
		want    []byte
		wantErr bool
	}{
		{"", nil, false},
		{"0x", []byte{}, false},
		{"0x6001", []byte{0x60, 0x01}, false},
		{"6001", []byte{0x60, 0x01}, false},
		{" 0X6001 ", []byte{0x60, 0x01}, false},
		{"0x600", nil, true},
		{"zz", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseInput(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestCapCache(t *testing.T) {
	assert.Equal(t, 16, capCache(16))
	assert.Less(t, capCache(1<<40), 1<<40)
}

func TestMakeDatabaseHandles(t *testing.T) {
	assert.Equal(t, 128, MakeDatabaseHandles(128))
	assert.Positive(t, MakeDatabaseHandles(0))
}
