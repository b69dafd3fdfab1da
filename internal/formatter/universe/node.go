/*
 * Copyright (c) YugabyteDB, Inc.
 */

package universe

import (
	"encoding/json"
	"fmt"

	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/sirupsen/logrus"
	ybaclient "github.com/yugabyte/platform-go-client"
)

const (
	defaultNodeListing = "table {{.NodeName}}\t{{.IP}}\t{{.Placement}}" +
		"\t{{.State}}\t{{.IsMaster}}\t{{.IsTserver}}"

	nodeNameHeader  = "Node Name"
	ipHeader        = "IP"
	placementHeader = "Cloud/Region/Zone"
	isMasterHeader  = "Is Master process running"
	isTserverHeader = "Is Tserver process running"
)

// NodeContext for node outputs
type NodeContext struct {
	formatter.HeaderContext
	formatter.Context
	n ybaclient.NodeDetailsResp
}

// NewNodesFormat for formatting output
func NewNodesFormat(source string) formatter.Format {
	switch source {
	case formatter.TableFormatKey, "":
		format := defaultNodeListing
		return formatter.Format(format)
	default: // custom format or json or pretty
		return formatter.Format(source)
	}
}

// NodeWrite renders the context for a list of Node
func NodeWrite(ctx formatter.Context, nodes []ybaclient.NodeDetailsResp) error {
	if (ctx.Format.IsJSON() || ctx.Format.IsPrettyJSON()) && ctx.Command.IsListCommand() {
		var output []byte
		var err error

		if ctx.Format.IsPrettyJSON() {
			output, err = json.MarshalIndent(nodes, "", "  ")
		} else {
			output, err = json.Marshal(nodes)
		}

		if err != nil {
			logrus.Errorf("Error marshaling universe nodes to json: %v\n", err)
			return err
		}

		_, err = ctx.Output.Write(output)
		return err
	}
	render := func(format func(subContext formatter.SubContext) error) error {
		for _, node := range nodes {
			err := format(&NodeContext{n: node})
			if err != nil {
				logrus.Debugf("Error rendering node: %v", err)
				return err
			}
		}
		return nil
	}
	return ctx.Write(NewNodeContext(), render)
}

// NewNodeContext creates a new context for rendering node
func NewNodeContext() *NodeContext {
	nodeCtx := NodeContext{}
	nodeCtx.Header = formatter.SubHeaderContext{
		"NodeName":  nodeNameHeader,
		"IP":        ipHeader,
		"Placement": placementHeader,
		"State":     formatter.StateHeader,
		"IsMaster":  isMasterHeader,
		"IsTserver": isTserverHeader,
	}
	return &nodeCtx
}

// NodeName of the node
func (c *NodeContext) NodeName() string {
	return c.n.GetNodeName()
}

// IP of the node
func (c *NodeContext) IP() string {
	cloudInfo := c.n.GetCloudInfo()
	if cloudInfo.GetPrivateIp() == "" {
		return "-"
	}
	return cloudInfo.GetPrivateIp()
}

// Placement of the node
func (c *NodeContext) Placement() string {
	cloudInfo := c.n.GetCloudInfo()
	return fmt.Sprintf("%s/%s/%s",
		cloudInfo.GetCloud(), cloudInfo.GetRegion(), cloudInfo.GetAz())
}

// State of the node
func (c *NodeContext) State() string {
	state := c.n.GetState()
	switch state {
	case util.LiveNodeState:
		return formatter.Colorize(state, formatter.GreenColor)
	case util.StoppedNodeState:
		return formatter.Colorize(state, formatter.RedColor)
	default:
		return formatter.Colorize(state, formatter.YellowColor)
	}
}

// IsMaster status of the node
func (c *NodeContext) IsMaster() string {
	return fmt.Sprintf("%t", c.n.GetIsMaster())
}

// IsTserver status of the node
func (c *NodeContext) IsTserver() string {
	return fmt.Sprintf("%t", c.n.GetIsTserver())
}

// MarshalJSON function
func (c *NodeContext) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.n)
}
