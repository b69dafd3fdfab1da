/*
 * Copyright (c) YugabyteDB, Inc.
 */

package client

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dataindataout/yb-day2ops/internal/ybafake"
	ybaclient "github.com/yugabyte/platform-go-client"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestParseURL(t *testing.T) {
	u, err := ParseURL("yba.example.com:9000")
	assert.NilError(t, err)
	assert.Check(t, is.Equal("https", u.Scheme))
	assert.Check(t, is.Equal("yba.example.com:9000", u.Host))

	u, err = ParseURL("http://localhost:9000")
	assert.NilError(t, err)
	assert.Check(t, is.Equal("http", u.Scheme))
}

func TestGetCustomerUUIDFromSession(t *testing.T) {
	s := ybafake.NewServer()
	defer s.Close()
	c, _ := newTestClient(t, s)
	c.CustomerUUID = ""

	assert.NilError(t, c.GetCustomerUUID())
	assert.Check(t, is.Equal(s.CustomerUUID, c.CustomerUUID))
}

func TestRequestsCarryAPIToken(t *testing.T) {
	s := ybafake.NewServer()
	defer s.Close()
	c, _ := newTestClient(t, s)
	c.APIClient.GetConfig().DefaultHeader[apiTokenHeader] = "wrong"

	_, err := c.GetSessionInfo()
	var transportErr *TransportError
	assert.Assert(t, errors.As(err, &transportErr))
	assert.Check(t, is.Equal(http.StatusUnauthorized, transportErr.StatusCode))
	assert.Check(t, is.Equal("Invalid token", transportErr.Message))

	// Calls outside of the generated client use the same headers
	_, err = c.GetAllNamespaces("u1")
	assert.Assert(t, errors.As(err, &transportErr))
	assert.Check(t, is.Equal(http.StatusUnauthorized, transportErr.StatusCode))
}

func TestNotFoundResponse(t *testing.T) {
	s := ybafake.NewServer()
	defer s.Close()
	c, _ := newTestClient(t, s)

	_, err := c.GetXClusterConfig("6b1f0d2c-0000-0000-0000-000000000000")
	assert.Check(t, errors.Is(err, ErrNotFound))
}

func TestBadRequestCarriesServerMessage(t *testing.T) {
	s := ybafake.NewServer()
	defer s.Close()
	c, _ := newTestClient(t, s)

	_, err := c.GetDrConfig("missing")
	var transportErr *TransportError
	assert.Assert(t, errors.As(err, &transportErr))
	assert.Check(t, is.Equal(http.StatusBadRequest, transportErr.StatusCode))
	assert.Check(t, is.Equal("Cannot find DR config missing", transportErr.Message))
	assert.Check(t, !errors.Is(err, ErrNotFound))
}

func TestListUniversesByName(t *testing.T) {
	s := ybafake.NewServer()
	defer s.Close()
	east := s.AddUniverse("xcluster east")
	s.AddUniverse("xcluster-central")
	c, _ := newTestClient(t, s)

	r, err := c.ListUniversesByName("xcluster east")
	assert.NilError(t, err)
	assert.Assert(t, is.Len(r, 1))
	assert.Check(t, is.Equal(east, r[0].GetUniverseUUID()))

	r, err = c.ListUniversesByName("nope")
	assert.NilError(t, err)
	assert.Check(t, is.Len(r, 0))
}

func TestMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer ts.Close()
	u, err := url.Parse(ts.URL)
	assert.NilError(t, err)
	c, err := NewAuthAPIClientInitialize(Config{Host: u, APIToken: "t", CustomerUUID: "c"})
	assert.NilError(t, err)
	defer c.Close()

	_, err = c.GetListOfCustomerConfig()
	assert.Check(t, errors.Is(err, ErrMalformedResponse))

	_, err = c.GetAllTables("u1")
	assert.Check(t, errors.Is(err, ErrMalformedResponse))
}

func TestConnectionFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	u, err := url.Parse(ts.URL)
	assert.NilError(t, err)
	ts.Close()
	c, err := NewAuthAPIClientInitialize(Config{Host: u, APIToken: "t", CustomerUUID: "c"})
	assert.NilError(t, err)
	defer c.Close()

	_, err = c.GetDrConfigSafetime("dr")
	var transportErr *TransportError
	assert.Assert(t, errors.As(err, &transportErr))
	assert.Check(t, is.Equal(0, transportErr.StatusCode))
	assert.Check(t, transportErr.Err != nil)
}

func TestEditXClusterConfigSendsStatus(t *testing.T) {
	s := ybafake.NewServer()
	defer s.Close()
	c, _ := newTestClient(t, s)

	_, err := c.EditXClusterConfig("x1",
		ybaclient.XClusterConfigEditFormData{Status: ybaclient.PtrString("Paused")})
	assert.Check(t, errors.Is(err, ErrNotFound))
	reqs := s.Requests()
	assert.Assert(t, is.Len(reqs, 1))
	assert.Check(t, is.Equal(http.MethodPut, reqs[0].Method))
	assert.Check(t, is.Equal(`{"status":"Paused"}`, string(reqs[0].Body)))
}
