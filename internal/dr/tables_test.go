/*
 * Copyright (c) YugabyteDB, Inc.
 */

package dr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/dataindataout/yb-day2ops/internal/client"
	ybaclient "github.com/yugabyte/platform-go-client"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func tableIDs(tables []ybaclient.TableInfoResp) []string {
	out := make([]string, 0, len(tables))
	for _, t := range tables {
		out = append(out, t.GetTableID())
	}
	return out
}

func testTable(id, name, keySpace, tableType, relationType string) ybaclient.TableInfoResp {
	return ybaclient.TableInfoResp{
		TableID:      ybaclient.PtrString(id),
		TableName:    ybaclient.PtrString(name),
		KeySpace:     ybaclient.PtrString(keySpace),
		TableType:    ybaclient.PtrString(tableType),
		RelationType: ybaclient.PtrString(relationType),
	}
}

func TestUnreplicatedTables(t *testing.T) {
	all := []ybaclient.TableInfoResp{
		testTable("a", "orders", "db2", util.PgSqlTableType, util.UserTableRelation),
		testTable("b", "accounts", "db2", util.PgSqlTableType, util.UserTableRelation),
		testTable("c", "zeta", "db1", util.PgSqlTableType, util.UserTableRelation),
		testTable("d", "orders_idx", "db1", util.PgSqlTableType, util.IndexTableRelation),
		testTable("e", "kv", "ks1", util.YqlTableType, util.UserTableRelation),
		testTable("f", "replicated", "db1", util.PgSqlTableType, util.UserTableRelation),
	}

	got := UnreplicatedTables(all, []string{"f"}, util.PgSqlTableType)
	assert.Check(t, is.DeepEqual([]string{"c", "b", "a"}, tableIDs(got)))
	assert.Check(t, is.Len(UnreplicatedTables(nil, nil, util.PgSqlTableType), 0))
}

func TestMergeTableIDs(t *testing.T) {
	testCases := []struct {
		current, requested, want []string
	}{
		{[]string{"a", "b"}, []string{"c"}, []string{"a", "b", "c"}},
		{[]string{"a", "b"}, []string{"b", "c", "c"}, []string{"a", "b", "c"}},
		{nil, []string{"x", "x"}, []string{"x"}},
		{[]string{"a"}, nil, []string{"a"}},
	}
	for _, tc := range testCases {
		assert.Check(t, is.DeepEqual(tc.want, MergeTableIDs(tc.current, tc.requested)))
	}
}

func TestAvailableTables(t *testing.T) {
	f := newFixture(t)
	f.create(t)

	got, err := f.svc.AvailableTables(sourceName)
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual([]string{f.auditSourceID, f.eventsID}, tableIDs(got)))

	dr, err := f.svc.DrConfigForSource(sourceName)
	assert.NilError(t, err)
	for _, tbl := range got {
		assert.Check(t, tbl.GetRelationType() != util.IndexTableRelation)
		for _, id := range dr.Tables {
			assert.Check(t, tbl.GetTableID() != id)
		}
	}
}

func TestAvailableTablesWithoutDrConfig(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AvailableTables(sourceName)
	assert.Check(t, errors.Is(err, ErrNoDrConfig))
}

func TestAddTables(t *testing.T) {
	f := newFixture(t)
	drUUID := f.create(t)
	before, ok := f.srv.DrConfig(drUUID)
	assert.Assert(t, ok)

	got, added, err := f.svc.AddTables(sourceName, []string{f.eventsID, f.ordersID, f.eventsID})
	assert.NilError(t, err)
	assert.Check(t, is.Equal(drUUID, got))
	// orders is already replicated
	assert.Check(t, is.Equal(1, added))

	form := ybaclient.DrConfigSetTablesForm{}
	f.lastBody(t, http.MethodPost, "/set_tables", &form)
	assert.Check(t, is.DeepEqual(append(append([]string{}, before.Tables...), f.eventsID),
		form.GetTables()))
	assert.Check(t, form.GetAutoIncludeIndexTables())
	assert.Assert(t, form.BootstrapParams != nil)
	assert.Check(t, is.Equal(f.storageUUID, form.BootstrapParams.BackupRequestParams.StorageConfigUUID))
	assert.Check(t, is.Equal(int32(util.DefaultBootstrapParallelism),
		form.BootstrapParams.BackupRequestParams.GetParallelism()))

	tables, err := f.svc.ResolveDrConfig(sourceName, "tables")
	assert.NilError(t, err)
	have := map[string]bool{}
	for _, id := range tables.([]interface{}) {
		have[id.(string)] = true
	}
	for _, id := range append(before.Tables, f.eventsID) {
		assert.Check(t, have[id], "missing %s", id)
	}
}

func TestAddTablesPreconditions(t *testing.T) {
	f := newFixture(t)
	f.create(t)

	_, _, err := f.svc.AddTables(sourceName, []string{f.ordersID, f.customersID})
	assert.Check(t, errors.Is(err, ErrNoTablesChanged))
	assert.Check(t, errors.Is(err, client.ErrPreconditionFailed))

	_, _, err = f.svc.AddTables(sourceName, []string{f.eventsID, "00000000000000000000000000000bad"})
	assert.Check(t, errors.Is(err, ErrTableNotFound))
	assert.Check(t, is.Contains(err.Error(), "00000000000000000000000000000bad"))

	// index tables follow their base table
	_, _, err = f.svc.AddTables(sourceName, []string{f.ordersIdxID})
	assert.Check(t, errors.Is(err, ErrNoTablesChanged))

	_, _, err = f.svc.AddTables(sourceName, []string{f.auditSourceID})
	assert.Check(t, errors.Is(err, ErrTableMissingOnReplica))
	assert.Check(t, is.Contains(err.Error(), "db2.public.audit"))

	assert.Check(t, is.Equal(0, f.srv.CountRequests(http.MethodPost, "/set_tables")))
}

func TestRemoveTables(t *testing.T) {
	f := newFixture(t)
	drUUID := f.create(t)

	_, err := f.svc.RemoveTables(sourceName, []string{f.customersID})
	assert.NilError(t, err)

	dr, ok := f.srv.DrConfig(drUUID)
	assert.Assert(t, ok)
	for _, id := range dr.Tables {
		assert.Check(t, id != f.customersID)
	}
	assert.Check(t, is.Contains(dr.Tables, f.ordersID))

	_, err = f.svc.RemoveTables(sourceName, []string{f.eventsID})
	assert.Check(t, errors.Is(err, ErrNoTablesChanged))
}
