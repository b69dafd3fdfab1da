/*
 * Copyright (c) YugabyteDB, Inc.
 */

package dr

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/dataindataout/yb-day2ops/internal/client"
	"github.com/dataindataout/yb-day2ops/internal/ybafake"
	"gotest.tools/v3/assert"
)

const (
	sourceName = "xcluster-east"
	targetName = "xcluster-central"
)

type fixture struct {
	srv      *ybafake.Server
	svc      *Service
	progress *bytes.Buffer

	sourceUUID    string
	targetUUID    string
	storageUUID   string
	db1Source     string
	db2Source     string
	ordersID      string
	customersID   string
	ordersIdxID   string
	eventsID      string
	auditSourceID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{srv: ybafake.NewServer()}
	t.Cleanup(f.srv.Close)

	f.sourceUUID = f.srv.AddUniverse(sourceName)
	f.targetUUID = f.srv.AddUniverse(targetName)
	f.storageUUID = f.srv.AddStorageConfig("s3-backups")
	f.srv.AddCustomerConfig("smtp", "ALERTS")

	f.db1Source = f.srv.AddNamespace(f.sourceUUID, "db1", util.PgSqlTableType)
	f.db2Source = f.srv.AddNamespace(f.sourceUUID, "db2", util.PgSqlTableType)
	f.srv.AddNamespace(f.sourceUUID, "ks1", util.YqlTableType)
	f.srv.AddNamespace(f.targetUUID, "db1", util.PgSqlTableType)
	f.srv.AddNamespace(f.targetUUID, "db2", util.PgSqlTableType)

	f.ordersID = f.srv.AddTable(f.sourceUUID, ybafake.Table{
		Name: "orders", Keyspace: "db1", SizeBytes: 2048})
	f.customersID = f.srv.AddTable(f.sourceUUID, ybafake.Table{
		Name: "customers", Keyspace: "db1"})
	f.ordersIdxID = f.srv.AddTable(f.sourceUUID, ybafake.Table{
		Name: "orders_idx", Keyspace: "db1", Index: true})
	f.eventsID = f.srv.AddTable(f.sourceUUID, ybafake.Table{
		Name: "events", Keyspace: "db2"})
	f.auditSourceID = f.srv.AddTable(f.sourceUUID, ybafake.Table{
		Name: "audit", Keyspace: "db2"})
	f.srv.AddTable(f.sourceUUID, ybafake.Table{
		Name: "kv", Keyspace: "ks1", Type: util.YqlTableType})

	for _, name := range []string{"orders", "customers", "orders_idx"} {
		f.srv.AddTable(f.targetUUID, ybafake.Table{Name: name, Keyspace: "db1"})
	}
	f.srv.AddTable(f.targetUUID, ybafake.Table{Name: "events", Keyspace: "db2"})

	u, err := url.Parse(f.srv.URL)
	assert.NilError(t, err)
	c, err := client.NewAuthAPIClientInitialize(client.Config{
		Host:         u,
		APIToken:     ybafake.APIToken,
		CustomerUUID: f.srv.CustomerUUID,
		PollInterval: time.Millisecond,
	})
	assert.NilError(t, err)
	c.WithContext(context.Background())
	f.progress = &bytes.Buffer{}
	c.Progress = f.progress

	f.svc = NewService(c)
	return f
}

// create sets up a DR config replicating db1 and returns its UUID
func (f *fixture) create(t *testing.T) string {
	t.Helper()
	drUUID, err := f.svc.Create(CreateRequest{
		Source:            sourceName,
		Target:            targetName,
		Databases:         []string{"db1"},
		StorageConfigName: "s3-backups",
	})
	assert.NilError(t, err)
	return drUUID
}

// lastBody decodes the body of the last request with the given method and path suffix
func (f *fixture) lastBody(t *testing.T, method, suffix string, v interface{}) ybafake.Request {
	t.Helper()
	reqs := f.srv.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		r := reqs[i]
		if r.Method == method && strings.HasSuffix(r.Path, suffix) {
			if v != nil {
				assert.NilError(t, json.Unmarshal(r.Body, v))
			}
			return r
		}
	}
	t.Fatalf("no %s request ending with %s", method, suffix)
	return ybafake.Request{}
}
