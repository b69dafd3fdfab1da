/*
 * Copyright (c) YugabyteDB, Inc.
 */

package client

import (
	"bytes"
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/dataindataout/yb-day2ops/internal/ybafake"
	"gotest.tools/v3/assert"
)

func newTestClient(t *testing.T, s *ybafake.Server) (*AuthAPIClient, *bytes.Buffer) {
	t.Helper()
	u, err := url.Parse(s.URL)
	assert.NilError(t, err)
	c, err := NewAuthAPIClientInitialize(Config{
		Host:         u,
		APIToken:     ybafake.APIToken,
		CustomerUUID: s.CustomerUUID,
		PollInterval: time.Millisecond,
	})
	assert.NilError(t, err)
	c.WithContext(context.Background())
	out := &bytes.Buffer{}
	c.Progress = out
	return c, out
}
