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

package debug

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emberchain/ember/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runSetup(t *testing.T, args ...string) error {
	t.Helper()
	app := &cli.App{
		Name:   "test",
		Flags:  Flags,
		Action: Setup,
	}
	defer log.SetDefault(log.NewLogger(log.DiscardHandler()))
	defer Exit()
	return app.Run(append([]string{"test"}, args...))
}

func TestSetupLogFile(t *testing.T) {
	logfile := filepath.Join(t.TempDir(), "logs", "ember.log")

	app := &cli.App{
		Name:  "test",
		Flags: Flags,
		Action: func(ctx *cli.Context) error {
			if err := Setup(ctx); err != nil {
				return err
			}
			assert.True(t, log.Root().Enabled(context.Background(), log.LevelDebug))
			assert.False(t, log.Root().Enabled(context.Background(), log.LevelTrace))
			log.Debug("Written to the file", "answer", 42)
			return nil
		},
	}
	defer log.SetDefault(log.NewLogger(log.DiscardHandler()))
	require.NoError(t, app.Run([]string{"test", "--verbosity", "4", "--log.format", "logfmt", "--log.file", logfile}))
	Exit()

	data, err := os.ReadFile(logfile)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "answer=42"), "log file content: %s", data)
}

func TestSetupRejectsUnknownFormat(t *testing.T) {
	err := runSetup(t, "--log.format", "xml")
	assert.ErrorContains(t, err, "unknown log format")
}
