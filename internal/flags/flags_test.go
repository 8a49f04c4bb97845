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
package flags

import (
	"math/big"
	"os"
	"os/user"
	"runtime"
	"testing"
)

func TestPathExpansion(t *testing.T) {
	user, _ := user.Current()
	var tests map[string]string

	if runtime.GOOS == "windows" {
		tests = map[string]string{
			`/home/someuser/tmp`: `\home\someuser\tmp`,
			`~/tmp`:              user.HomeDir + `\tmp`,
			`~thisOtherUser/b/`:  `~thisOtherUser\b`,
			`$DDDXXX/a/b`:        `\tmp\a\b`,
			`/a/b/`:              `\a\b`,
		}
	} else {
		tests = map[string]string{
			`/home/someuser/tmp`: `/home/someuser/tmp`,
			`~/tmp`:              user.HomeDir + `/tmp`,
			`~thisOtherUser/b/`:  `~thisOtherUser/b`,
			`$DDDXXX/a/b`:        `/tmp/a/b`,
			`/a/b/`:              `/a/b`,
		}
	}
	os.Setenv(`DDDXXX`, `/tmp`)
	for test, expected := range tests {
		got := expandPath(test)
		if got != expected {
			t.Errorf(`test %s, got %s, expected %s\n`, test, got, expected)
		}
	}
}

func TestParseBig256(t *testing.T) {
	tests := []struct {
		input string
		num   *big.Int
		ok    bool
	}{
		{"", big.NewInt(0), true},
		{"0", big.NewInt(0), true},
		{"0x", big.NewInt(0), false},
		{"12345678", big.NewInt(12345678), true},
		{"0x12345678", big.NewInt(0x12345678), true},
		{"0X12345678", big.NewInt(0x12345678), true},
		{"-1", nil, false},
		{"0xg", nil, false},
		{"115792089237316195423570985008687907853269984665640564039457584007913129639936", nil, false}, // 2^256
	}
	for _, test := range tests {
		num, ok := parseBig256(test.input)
		if ok != test.ok {
			t.Errorf("ParseBig(%q) -> ok = %t, want %t", test.input, ok, test.ok)
			continue
		}
		if ok && num.Cmp(test.num) != 0 {
			t.Errorf("ParseBig(%q) -> %d, want %d", test.input, num, test.num)
		}
	}
}
