/*
 * Copyright (c) YugabyteDB, Inc.
 */

package drutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestStateHelp(t *testing.T) {
	t.Cleanup(func() { viper.Set("status-help", nil) })

	assert.Check(t, is.Equal(util.DefaultDrStateHelp()[util.HaltedDrState],
		StateHelp(util.HaltedDrState)))
	assert.Check(t, is.Equal("", StateHelp("Unknown")))

	viper.Set("status-help", map[string]interface{}{
		"Halted": "Page the on-call DBA before recovering.",
	})
	assert.Check(t, is.Equal("Page the on-call DBA before recovering.",
		StateHelp(util.HaltedDrState)))
	assert.Check(t, is.Equal(util.DefaultDrStateHelp()[util.ReplicatingDrState],
		StateHelp(util.ReplicatingDrState)))
}

// captureExit replaces the exit of the standard logger with a recorder and
// returns the log output and the recorded exit code, -1 while none was seen
func captureExit(t *testing.T) (*bytes.Buffer, *int) {
	t.Helper()
	color.NoColor = true
	logger := logrus.StandardLogger()
	out := logger.Out
	exit := logger.ExitFunc
	t.Cleanup(func() {
		logger.SetOutput(out)
		logger.ExitFunc = exit
	})

	buf := &bytes.Buffer{}
	code := -1
	logger.SetOutput(buf)
	logger.ExitFunc = func(c int) { code = c }
	return buf, &code
}

func TestFailedDoesNotExit(t *testing.T) {
	buf, code := captureExit(t)

	Failed("Switchover", errors.New("task 1234 failed"))

	assert.Check(t, is.Equal(-1, *code))
	assert.Check(t, is.Contains(buf.String(), "Switchover failed: task 1234 failed"))
	assert.Check(t, is.Contains(buf.String(), "level=error"))
}

func TestFatalExitsNonZero(t *testing.T) {
	buf, code := captureExit(t)

	Fatal(errors.New("no universe named 'east'"))

	assert.Check(t, *code != 0)
	assert.Check(t, is.Contains(buf.String(), "no universe named 'east'"))
	assert.Check(t, is.Contains(buf.String(), "level=fatal"))
}

func TestWriteValue(t *testing.T) {
	raw := map[string]interface{}{
		"uuid":   "dr-1",
		"tables": []interface{}{"t1"},
	}

	out := &bytes.Buffer{}
	assert.NilError(t, WriteValue(out, raw, formatter.JSONFormatKey))
	assert.Check(t, is.Equal(`{"tables":["t1"],"uuid":"dr-1"}`+"\n", out.String()))

	out.Reset()
	assert.NilError(t, WriteValue(out, raw, formatter.PrettyFormatKey))
	assert.Check(t, is.Contains(out.String(), "{\n  \"tables\": [\n    \"t1\"\n  ],"))

	out.Reset()
	assert.NilError(t, WriteValue(out, raw, formatter.TableFormatKey))
	assert.Check(t, is.Contains(out.String(), "uuid: dr-1"))

	out.Reset()
	assert.NilError(t, WriteValue(out, "Replicating", formatter.TableFormatKey))
	assert.Check(t, is.Equal("Replicating\n", out.String()))
}
