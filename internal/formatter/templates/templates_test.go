/*
 * Copyright (c) YugabyteDB, Inc.
 */

package templates

import (
	"bytes"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestParseJSONFunctions(t *testing.T) {
	tm, err := Parse(`{{json .Tables}}`)
	assert.NilError(t, err)

	var b bytes.Buffer
	assert.NilError(t, tm.Execute(&b, map[string][]string{"Tables": {"000033e1", "000033e2"}}))
	want := `["000033e1","000033e2"]`
	assert.Check(t, is.Equal(want, b.String()))
}

func TestParseSprigFunctions(t *testing.T) {
	tm, err := Parse(`{{join "," (splitList ":" .) }}`)
	assert.NilError(t, err)
	var b bytes.Buffer
	assert.NilError(t, tm.Execute(&b, "db1:db2:db3"))
	assert.Check(t, is.Equal("db1,db2,db3", b.String()))
}

func TestNewParse(t *testing.T) {
	tm, err := NewParse("dr", "state is {{ . }}")
	assert.NilError(t, err)

	var b bytes.Buffer
	assert.NilError(t, tm.Execute(&b, "Replicating"))
	assert.Check(t, is.Equal("state is Replicating", b.String()))
}

func TestParseTruncateFunction(t *testing.T) {
	source := "0000412d000030008000000000004000"

	testCases := []struct {
		template string
		expected string
	}{
		{template: `{{truncate . 8}}`, expected: "0000412d"},
		{template: `{{truncate . 32}}`, expected: source},
		{template: `{{truncate . 40}}`, expected: source},
		{template: `{{pad . 2 1}}`, expected: "  " + source + " "},
	}

	for _, testCase := range testCases {
		tm, err := Parse(testCase.template)
		assert.NilError(t, err)

		var b bytes.Buffer
		assert.NilError(t, tm.Execute(&b, source))
		assert.Check(t, is.Equal(testCase.expected, b.String()))
	}
}

func TestHumanBytes(t *testing.T) {
	assert.Check(t, is.Equal("0 B", humanBytes(-5)))
	assert.Check(t, is.Equal("1.0 kB", humanBytes(1000)))
	assert.Check(t, is.Equal("2.5 MB", humanBytes(2500000)))
}

func TestSinceEpochMicros(t *testing.T) {
	assert.Check(t, is.Equal("-", sinceEpochMicros(0)))
	us := time.Now().Add(-2 * time.Hour).UnixMicro()
	assert.Check(t, is.Equal("2 hours ago", sinceEpochMicros(us)))
}

func TestHeaderFunctionsKeepColumnNames(t *testing.T) {
	tm, err := Parse(`{{humanBytes .Size}}`)
	assert.NilError(t, err)
	var b bytes.Buffer
	assert.NilError(t, tm.Funcs(HeaderFunctions).Execute(&b, map[string]string{"Size": "Size"}))
	assert.Check(t, is.Equal("Size", b.String()))
}
