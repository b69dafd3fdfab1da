/*
 * Copyright (c) YugabyteDB, Inc.
 */

package universe

import (
	"bytes"
	"testing"

	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/fatih/color"
	ybaclient "github.com/yugabyte/platform-go-client"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func testUniverse() ybaclient.UniverseResp {
	return ybaclient.UniverseResp{
		UniverseUUID:          ybaclient.PtrString("u-east"),
		Name:                  ybaclient.PtrString("xcluster-east"),
		DrConfigUuidsAsSource: &[]string{"dr-1"},
		UniverseDetails: &ybaclient.UniverseDefinitionTaskParamsResp{
			Clusters: []ybaclient.Cluster{{
				ClusterType: "PRIMARY",
				UserIntent: ybaclient.UserIntent{
					YbSoftwareVersion: ybaclient.PtrString("2.20.1.0-b97"),
				},
			}},
			NodeDetailsSet: &[]ybaclient.NodeDetailsResp{
				{
					NodeName:  ybaclient.PtrString("yb-east-n1"),
					State:     ybaclient.PtrString(util.LiveNodeState),
					IsMaster:  ybaclient.PtrBool(true),
					IsTserver: ybaclient.PtrBool(true),
					CloudInfo: &ybaclient.CloudSpecificInfo{
						Cloud:     ybaclient.PtrString("aws"),
						Region:    ybaclient.PtrString("us-east-1"),
						Az:        ybaclient.PtrString("us-east-1a"),
						PrivateIp: ybaclient.PtrString("10.0.0.1"),
					},
				},
				{
					NodeName:  ybaclient.PtrString("yb-east-n2"),
					State:     ybaclient.PtrString(util.StoppedNodeState),
					IsTserver: ybaclient.PtrBool(true),
				},
			},
		},
	}
}

func TestContextFields(t *testing.T) {
	color.NoColor = true
	c := &Context{u: testUniverse()}
	assert.Check(t, is.Equal("2", c.Nodes()))
	assert.Check(t, is.Equal("1", c.LiveNodes()))
	assert.Check(t, is.Equal("dr-1", c.DrAsSource()))
	assert.Check(t, is.Equal("-", c.DrAsTarget()))
	assert.Check(t, is.Equal("-", c.CreationDate()))
	assert.Check(t, is.Equal("2.20.1.0-b97", c.Version()))

	n := &NodeContext{n: c.nodes()[0]}
	assert.Check(t, is.Equal("aws/us-east-1/us-east-1a", n.Placement()))
	assert.Check(t, is.Equal("10.0.0.1", n.IP()))

	n = &NodeContext{n: c.nodes()[1]}
	assert.Check(t, is.Equal("-", n.IP()))
	assert.Check(t, is.Equal("//", n.Placement()))
}

func TestVersionWithoutClusters(t *testing.T) {
	c := &Context{u: ybaclient.UniverseResp{Name: ybaclient.PtrString("empty")}}
	assert.Check(t, is.Equal("-", c.Version()))
	assert.Check(t, is.Equal("0", c.Nodes()))
}

func TestFullUniverseWrite(t *testing.T) {
	color.NoColor = true
	out := &bytes.Buffer{}
	full := NewFullUniverseContext()
	full.Output = out
	full.Format = NewFullUniverseFormat("")
	full.SetFullUniverse(testUniverse())
	assert.NilError(t, full.Write())

	s := out.String()
	for _, want := range []string{
		"General", "xcluster-east", "2.20.1.0-b97", "xCluster DR", "DR Configs as Primary", "dr-1",
		"Nodes", "yb-east-n1", "yb-east-n2", "Stopped", "10.0.0.1",
	} {
		assert.Check(t, is.Contains(s, want))
	}
}
