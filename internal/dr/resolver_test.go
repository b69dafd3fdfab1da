/*
 * Copyright (c) YugabyteDB, Inc.
 */

package dr

import (
	"errors"
	"testing"

	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/dataindataout/yb-day2ops/internal/client"
	"github.com/dataindataout/yb-day2ops/internal/ybafake"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestResolveWithoutDrConfig(t *testing.T) {
	f := newFixture(t)

	for _, field := range []string{util.AllDrConfigFields, "uuid", "tables"} {
		_, err := f.svc.ResolveDrConfig(sourceName, field)
		assert.Check(t, errors.Is(err, ErrNoDrConfig))
		assert.Check(t, errors.Is(err, client.ErrNotFound))
	}
}

func TestResolveUnknownUniverse(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ResolveDrConfig("missing", util.AllDrConfigFields)
	assert.Check(t, errors.Is(err, ErrUniverseNotFound))
	assert.Check(t, is.Contains(err.Error(), "'missing'"))
}

func TestResolveFieldMatchesWholeConfig(t *testing.T) {
	f := newFixture(t)
	drUUID := f.create(t)

	all, err := f.svc.ResolveDrConfig(sourceName, util.AllDrConfigFields)
	assert.NilError(t, err)
	config, ok := all.(map[string]interface{})
	assert.Assert(t, ok)
	assert.Check(t, is.Equal(drUUID, config["uuid"]))

	for field, want := range config {
		got, err := f.svc.ResolveDrConfig(sourceName, field)
		assert.NilError(t, err)
		assert.Check(t, is.DeepEqual(want, got), "field %s", field)
	}
}

func TestResolveUnknownField(t *testing.T) {
	f := newFixture(t)
	f.create(t)

	_, err := f.svc.ResolveDrConfig(sourceName, "noSuchField")
	assert.Check(t, errors.Is(err, ErrUnknownDrConfigField))
	assert.Check(t, errors.Is(err, client.ErrPreconditionFailed))
}

func TestDescribeUniverse(t *testing.T) {
	f := newFixture(t)
	drUUID := f.create(t)

	u, err := f.svc.DescribeUniverse(targetName)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(f.targetUUID, u.GetUniverseUUID()))
	assert.Check(t, is.DeepEqual([]string{drUUID}, u.GetDrConfigUuidsAsTarget()))
	assert.Check(t, is.Len(u.GetDrConfigUuidsAsSource(), 0))
	assert.Assert(t, u.UniverseDetails != nil)
	assert.Check(t, is.Len(u.UniverseDetails.GetNodeDetailsSet(), 1))
	assert.Check(t, is.Equal(ybafake.SoftwareVersion,
		u.UniverseDetails.Clusters[0].UserIntent.GetYbSoftwareVersion()))
}

func TestStatus(t *testing.T) {
	f := newFixture(t)
	drUUID := f.create(t)

	st, err := f.svc.Status(sourceName)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(drUUID, st.DrConfig.UUID))
	assert.Check(t, is.Equal(util.ReplicatingDrState, st.DrConfig.State))
	assert.Check(t, is.Equal(sourceName, st.PrimaryUniverseName))
	assert.Check(t, is.Equal(targetName, st.DrReplicaUniverseName))
	assert.Check(t, is.Equal(st.DrConfig.XClusterConfigUUID, st.XClusterConfig.GetUuid()))
	assert.Check(t, is.Equal(util.RunningXClusterStatus, st.XClusterConfig.GetStatus()))
}
