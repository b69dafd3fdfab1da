/*
 * Copyright (c) YugabyteDB, Inc.
 */

package dr

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/dataindataout/yb-day2ops/internal/client"
	"github.com/dataindataout/yb-day2ops/internal/ybafake"
	ybaclient "github.com/yugabyte/platform-go-client"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestCreate(t *testing.T) {
	f := newFixture(t)

	drUUID := f.create(t)

	dr, ok := f.srv.DrConfig(drUUID)
	assert.Assert(t, ok)
	assert.Check(t, is.Equal(f.sourceUUID, dr.PrimaryUniverseUUID))
	assert.Check(t, is.Equal(f.targetUUID, dr.DrReplicaUniverseUUID))

	form := ybaclient.DrConfigCreateForm{}
	f.lastBody(t, http.MethodPost, "/dr_configs", &form)
	assert.Check(t, is.Equal("DR-config-xcluster-east-to-xcluster-central", form.Name))
	assert.Check(t, is.DeepEqual([]string{f.db1Source}, form.Dbs))
	assert.Check(t, is.Equal(f.storageUUID, form.BootstrapParams.BackupRequestParams.StorageConfigUUID))
	assert.Check(t, is.Equal(int32(util.DefaultBootstrapParallelism),
		form.BootstrapParams.BackupRequestParams.GetParallelism()))
	assert.Check(t, is.Contains(f.progress.String(), "'Create xCluster DR'"))
}

func TestCreateTwiceFailsBeforeTargetLookup(t *testing.T) {
	f := newFixture(t)
	f.create(t)
	f.srv.ResetRequests()

	_, err := f.svc.Create(CreateRequest{
		Source:    sourceName,
		Target:    targetName,
		Databases: []string{"db1"},
	})
	assert.Check(t, errors.Is(err, ErrDrConfigAlreadyExists))
	assert.Check(t, errors.Is(err, client.ErrPreconditionFailed))
	for _, r := range f.srv.Requests() {
		assert.Check(t, !strings.Contains(r.RawQuery, targetName), "unexpected %s?%s", r.Path, r.RawQuery)
		assert.Check(t, is.Equal(http.MethodGet, r.Method))
	}
}

func TestCreatePreconditions(t *testing.T) {
	f := newFixture(t)

	testCases := []struct {
		name string
		req  CreateRequest
		want error
	}{
		{
			name: "no databases",
			req:  CreateRequest{Source: sourceName, Target: targetName},
			want: ErrDatabaseNotFound,
		},
		{
			name: "unknown database",
			req:  CreateRequest{Source: sourceName, Target: targetName, Databases: []string{"db1", "nope"}},
			want: ErrDatabaseNotFound,
		},
		{
			name: "ycql keyspace",
			req:  CreateRequest{Source: sourceName, Target: targetName, Databases: []string{"ks1"}},
			want: ErrDatabaseNotFound,
		},
		{
			name: "unknown storage config",
			req: CreateRequest{Source: sourceName, Target: targetName, Databases: []string{"db1"},
				StorageConfigName: "gcs"},
			want: ErrNoStorageConfig,
		},
		{
			name: "unknown source",
			req:  CreateRequest{Source: "nope", Target: targetName, Databases: []string{"db1"}},
			want: ErrUniverseNotFound,
		},
		{
			name: "unknown target",
			req:  CreateRequest{Source: sourceName, Target: "nope", Databases: []string{"db1"}},
			want: ErrUniverseNotFound,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(tc.req)
			assert.Check(t, errors.Is(err, tc.want), "got %v", err)
			assert.Check(t, errors.Is(err, client.ErrNotFound))
		})
	}
	assert.Check(t, is.Equal(0, f.srv.CountRequests(http.MethodPost, "/dr_configs")))
}

func TestCreateWithoutStorageConfig(t *testing.T) {
	f := newFixture(t)
	f.srv.RemoveCustomerConfig(f.storageUUID)
	f.srv.ResetRequests()

	_, err := f.svc.Create(CreateRequest{
		Source:    sourceName,
		Target:    targetName,
		Databases: []string{"db1"},
	})
	assert.Check(t, errors.Is(err, ErrNoStorageConfig))
	assert.Check(t, is.Len(f.srv.Requests(), 1))
}

func TestCreateUsesFirstStorageConfigWithoutName(t *testing.T) {
	f := newFixture(t)
	f.srv.AddStorageConfig("nfs-backups")

	_, err := f.svc.Create(CreateRequest{
		Source:      sourceName,
		Target:      targetName,
		Databases:   []string{"db1"},
		Parallelism: 4,
		Name:        "east-dr",
	})
	assert.NilError(t, err)
	form := ybaclient.DrConfigCreateForm{}
	f.lastBody(t, http.MethodPost, "/dr_configs", &form)
	assert.Check(t, is.Equal(f.storageUUID, form.BootstrapParams.BackupRequestParams.StorageConfigUUID))
	assert.Check(t, is.Equal(int32(4), form.BootstrapParams.BackupRequestParams.GetParallelism()))
	assert.Check(t, is.Equal("east-dr", form.Name))
}

func TestCreateTaskFailure(t *testing.T) {
	f := newFixture(t)
	f.srv.NextTaskScript([]ybafake.TaskStep{
		{Status: util.RunningTaskStatus, Percent: 30},
		{Status: util.FailureTaskStatus, Percent: 30},
	}, "Failed to create backup")

	_, err := f.svc.Create(CreateRequest{
		Source:    sourceName,
		Target:    targetName,
		Databases: []string{"db1"},
	})
	var failed *client.TaskFailedError
	assert.Assert(t, errors.As(err, &failed))
	assert.Check(t, is.DeepEqual([]string{"Failed to create backup"}, failed.Errors))

	_, err = f.svc.DrConfigForSource(sourceName)
	assert.Check(t, errors.Is(err, ErrNoDrConfig))
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	drUUID := f.create(t)

	got, err := f.svc.Delete(sourceName, true)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(drUUID, got))
	r := f.lastBody(t, http.MethodDelete, "/dr_configs/"+drUUID, nil)
	assert.Check(t, is.Equal("isForceDelete=true", r.RawQuery))

	_, ok := f.srv.DrConfig(drUUID)
	assert.Check(t, !ok)
	_, err = f.svc.Delete(sourceName, false)
	assert.Check(t, errors.Is(err, ErrNoDrConfig))
}

func TestPauseAndResumeAreIdempotent(t *testing.T) {
	f := newFixture(t)
	f.create(t)
	puts := func() int { return f.srv.CountRequests(http.MethodPut, "") }

	dr, err := f.svc.Pause(sourceName)
	assert.NilError(t, err)
	assert.Check(t, dr.Paused)
	assert.Check(t, is.Equal(1, puts()))
	edit := ybaclient.XClusterConfigEditFormData{}
	r := f.lastBody(t, http.MethodPut, "/xcluster_configs/"+dr.XClusterConfigUUID, &edit)
	assert.Check(t, is.Equal(util.PausedXClusterStatus, edit.GetStatus()))
	assert.Check(t, strings.HasSuffix(r.Path, dr.XClusterConfigUUID))

	dr, err = f.svc.Pause(sourceName)
	assert.NilError(t, err)
	assert.Check(t, dr.Paused)
	assert.Check(t, is.Equal(1, puts()))

	dr, err = f.svc.Resume(sourceName)
	assert.NilError(t, err)
	assert.Check(t, !dr.Paused)
	assert.Check(t, is.Equal(util.RunningXClusterStatus, dr.Status))
	assert.Check(t, is.Equal(2, puts()))

	dr, err = f.svc.Resume(sourceName)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(util.RunningXClusterStatus, dr.Status))
	assert.Check(t, is.Equal(2, puts()))
}

func TestPauseWithoutDrConfig(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Pause(sourceName)
	assert.Check(t, errors.Is(err, ErrNoDrConfig))
	_, err = f.svc.Resume(targetName)
	assert.Check(t, errors.Is(err, ErrNoDrConfig))
}

func TestSwitchover(t *testing.T) {
	f := newFixture(t)
	drUUID := f.create(t)

	_, err := f.svc.Switchover(sourceName)
	assert.NilError(t, err)
	form := ybaclient.DrConfigSwitchoverForm{}
	f.lastBody(t, http.MethodPost, "/switchover", &form)
	assert.Check(t, is.Equal(f.targetUUID, form.GetPrimaryUniverseUuid()))
	assert.Check(t, is.Equal(f.sourceUUID, form.GetDrReplicaUniverseUuid()))

	dr, err := f.svc.DrConfigForSource(targetName)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(drUUID, dr.UUID))
	assert.Check(t, is.Equal(f.targetUUID, dr.PrimaryUniverseUUID))
	_, err = f.svc.DrConfigForSource(sourceName)
	assert.Check(t, errors.Is(err, ErrNoDrConfig))
}

func TestSwitchoverTaskFailure(t *testing.T) {
	f := newFixture(t)
	f.create(t)
	f.srv.NextTaskScript([]ybafake.TaskStep{{Status: util.FailureTaskStatus}},
		"replication lag too high")

	_, err := f.svc.Switchover(sourceName)
	var failed *client.TaskFailedError
	assert.Assert(t, errors.As(err, &failed))
	assert.Check(t, is.Contains(err.Error(), "replication lag too high"))
}

func TestFailoverSendsSafetimes(t *testing.T) {
	f := newFixture(t)
	drUUID := f.create(t)
	f.srv.SetSafetimes(drUUID, []ybaclient.NamespaceSafetime{
		{NamespaceId: f.db1Source, NamespaceName: "db1", SafetimeEpochUs: 1718000000123456},
	})

	_, err := f.svc.Failover(sourceName)
	assert.NilError(t, err)

	form := ybaclient.DrConfigFailoverForm{}
	f.lastBody(t, http.MethodPost, "/failover", &form)
	assert.Check(t, is.DeepEqual(map[string]int64{f.db1Source: 1718000000123456},
		form.GetNamespaceIdSafetimeEpochUsMap()))
	assert.Check(t, is.Equal(f.targetUUID, form.GetPrimaryUniverseUuid()))

	reqs := f.srv.Requests()
	last := reqs[len(reqs)-1]
	for i, r := range reqs {
		if strings.HasSuffix(r.Path, "/failover") {
			assert.Check(t, strings.HasSuffix(reqs[i-1].Path, "/safetime"),
				"failover must directly follow the safetime read")
		}
	}
	assert.Check(t, strings.Contains(last.Path, "/tasks/"))

	dr, ok := f.srv.DrConfig(drUUID)
	assert.Assert(t, ok)
	assert.Check(t, is.Equal(util.HaltedDrState, dr.State))
}

func TestFailoverWithoutSafetimes(t *testing.T) {
	f := newFixture(t)
	drUUID := f.create(t)
	f.srv.SetSafetimes(drUUID, []ybaclient.NamespaceSafetime{})

	_, err := f.svc.Failover(sourceName)
	assert.Check(t, errors.Is(err, ErrNoSafetimes))
	assert.Check(t, is.Equal(0, f.srv.CountRequests(http.MethodPost, "/failover")))
}

func TestRecoverAfterFailover(t *testing.T) {
	f := newFixture(t)
	drUUID := f.create(t)
	_, err := f.svc.Failover(sourceName)
	assert.NilError(t, err)

	got, err := f.svc.Recover(targetName, nil, false)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(drUUID, got))

	form := ybaclient.DrConfigRestartForm{}
	r := f.lastBody(t, http.MethodPost, "/restart", &form)
	assert.Check(t, is.Equal("isForceDelete=false", r.RawQuery))
	assert.Check(t, is.Len(form.Dbs, 0))
	assert.Check(t, is.Equal(`{"dbs":[]}`, string(r.Body)))

	dr, ok := f.srv.DrConfig(drUUID)
	assert.Assert(t, ok)
	assert.Check(t, is.Equal(util.ReplicatingDrState, dr.State))
	assert.Check(t, is.Equal(f.targetUUID, dr.PrimaryUniverseUUID))
}

func TestRecoverWithDatabases(t *testing.T) {
	f := newFixture(t)
	f.create(t)

	_, err := f.svc.Recover(sourceName, []string{"db1", "db2"}, true)
	assert.NilError(t, err)
	form := ybaclient.DrConfigRestartForm{}
	r := f.lastBody(t, http.MethodPost, "/restart", &form)
	assert.Check(t, is.Equal("isForceDelete=true", r.RawQuery))
	assert.Check(t, is.DeepEqual([]string{f.db1Source, f.db2Source}, form.Dbs))

	_, err = f.svc.Recover(sourceName, []string{"missing"}, false)
	assert.Check(t, errors.Is(err, ErrDatabaseNotFound))
}

func TestSync(t *testing.T) {
	f := newFixture(t)
	drUUID := f.create(t)

	got, err := f.svc.Sync(sourceName)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(drUUID, got))
	assert.Check(t, is.Equal(1, f.srv.CountRequests(http.MethodPost, "/sync")))
}

func TestSafetimes(t *testing.T) {
	f := newFixture(t)
	f.create(t)

	st, err := f.svc.Safetimes(sourceName)
	assert.NilError(t, err)
	assert.Assert(t, is.Len(st, 1))
	assert.Check(t, is.Equal("db1", st[0].NamespaceName))
	assert.Check(t, st[0].SafetimeEpochUs > 0)
}

func TestNoWaitReturnsAfterSubmission(t *testing.T) {
	f := newFixture(t)
	f.create(t)
	f.srv.ResetRequests()

	var submitted []string
	f.svc.NoWait = true
	f.svc.Submitted = func(task ybaclient.YBPTask, label string) {
		submitted = append(submitted, label)
	}

	_, err := f.svc.Pause(sourceName)
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual([]string{"Pause xCluster Replication"}, submitted))
	for _, r := range f.srv.Requests() {
		assert.Check(t, !strings.Contains(r.Path, "/tasks/"))
	}
}
