// Copyright 2016 The go-ethereum Authors
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
package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestWithCommit(t *testing.T) {
	got := WithCommit("0123456789abcdef", "20241017")
	if !strings.HasPrefix(got, WithMeta+"-01234567") {
		t.Fatalf("unexpected version %q", got)
	}
	if WithCommit("abc", "") != WithMeta {
		t.Fatalf("short commit should be ignored")
	}
}

func TestBuildInfoVCS(t *testing.T) {
	info := &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "deadbeef"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2024-10-17T08:00:00Z"},
	}}
	vcs, ok := buildInfoVCS(info)
	if !ok {
		t.Fatal("expected vcs info")
	}
	if vcs.Commit != "deadbeef" || vcs.Date != "20241017" || !vcs.Dirty {
		t.Fatalf("unexpected vcs info %+v", vcs)
	}
	if _, ok := buildInfoVCS(&debug.BuildInfo{}); ok {
		t.Fatal("empty build info reported vcs data")
	}
}

func TestInfo(t *testing.T) {
	out := Info("ember")
	for _, want := range []string{"ember", "Version: " + WithMeta, "Go Version:"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}
