/*
 * Copyright (c) YugabyteDB, Inc.
 */

package universe

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/sirupsen/logrus"
	ybaclient "github.com/yugabyte/platform-go-client"
)

const (
	defaultUniverseListing = "table {{.Name}}\t{{.UUID}}\t{{.Version}}" +
		"\t{{.Nodes}}\t{{.LiveNodes}}"
	nodeHeader           = "Number of nodes"
	liveNodeHeader       = "Live nodes"
	versionHeader        = "YugabyteDB Version"
	creationDateHeader   = "Creation Date"
	drAsSourceHeader     = "DR Configs as Primary"
	drAsTargetHeader     = "DR Configs as Replica"
	drAsSourceCountLabel = "Primary of"
	drAsTargetCountLabel = "Replica of"
)

// Context for universe outputs
type Context struct {
	formatter.HeaderContext
	formatter.Context
	u ybaclient.UniverseResp
}

// NewUniverseFormat for formatting output
func NewUniverseFormat(source string) formatter.Format {
	switch source {
	case formatter.TableFormatKey, "":
		format := defaultUniverseListing
		return formatter.Format(format)
	default: // custom format or json or pretty
		return formatter.Format(source)
	}
}

// Write renders the context for a list of Universes
func Write(ctx formatter.Context, universes []ybaclient.UniverseResp) error {
	render := func(format func(subContext formatter.SubContext) error) error {
		for _, universe := range universes {
			err := format(&Context{u: universe})
			if err != nil {
				logrus.Debugf("Error rendering universe: %v", err)
				return err
			}
		}
		return nil
	}
	return ctx.Write(NewUniverseContext(), render)
}

// NewUniverseContext creates a new context for rendering universe
func NewUniverseContext() *Context {
	universeCtx := Context{}
	universeCtx.Header = formatter.SubHeaderContext{
		"Name":            formatter.NameHeader,
		"UUID":            formatter.UUIDHeader,
		"Version":         versionHeader,
		"Nodes":           nodeHeader,
		"LiveNodes":       liveNodeHeader,
		"CreationDate":    creationDateHeader,
		"DrAsSource":      drAsSourceHeader,
		"DrAsTarget":      drAsTargetHeader,
		"DrAsSourceCount": drAsSourceCountLabel,
		"DrAsTargetCount": drAsTargetCountLabel,
	}
	return &universeCtx
}

// UUID fetches Universe UUID
func (c *Context) UUID() string {
	return c.u.GetUniverseUUID()
}

// Name fetches Universe Name
func (c *Context) Name() string {
	return c.u.GetName()
}

// Version fetches YBDB of the primary cluster
func (c *Context) Version() string {
	details := c.u.GetUniverseDetails()
	clusters := details.GetClusters()
	if len(clusters) == 0 {
		return "-"
	}
	primaryCluster := clusters[0]
	userIntent := primaryCluster.GetUserIntent()
	if userIntent.GetYbSoftwareVersion() == "" {
		return "-"
	}
	return userIntent.GetYbSoftwareVersion()
}

func (c *Context) nodes() []ybaclient.NodeDetailsResp {
	details := c.u.GetUniverseDetails()
	return details.GetNodeDetailsSet()
}

// Nodes fetches the number of nodes
func (c *Context) Nodes() string {
	return fmt.Sprintf("%d", len(c.nodes()))
}

// LiveNodes fetches the number of nodes in the Live state, highlighting
// universes that have nodes in any other state
func (c *Context) LiveNodes() string {
	nodes := c.nodes()
	live := 0
	for _, n := range nodes {
		if n.GetState() == util.LiveNodeState {
			live++
		}
	}
	s := fmt.Sprintf("%d", live)
	if live < len(nodes) {
		return formatter.Colorize(s, formatter.RedColor)
	}
	return formatter.Colorize(s, formatter.GreenColor)
}

// CreationDate fetches the creation date
func (c *Context) CreationDate() string {
	if c.u.GetCreationDate() == "" {
		return "-"
	}
	return c.u.GetCreationDate()
}

// DrAsSource fetches the DR configs this universe is the primary of
func (c *Context) DrAsSource() string {
	return joinOrDash(c.u.GetDrConfigUuidsAsSource())
}

// DrAsTarget fetches the DR configs this universe is the replica of
func (c *Context) DrAsTarget() string {
	return joinOrDash(c.u.GetDrConfigUuidsAsTarget())
}

// DrAsSourceCount fetches the number of DR configs this universe is the primary of
func (c *Context) DrAsSourceCount() string {
	return fmt.Sprintf("%d", len(c.u.GetDrConfigUuidsAsSource()))
}

// DrAsTargetCount fetches the number of DR configs this universe is the replica of
func (c *Context) DrAsTargetCount() string {
	return fmt.Sprintf("%d", len(c.u.GetDrConfigUuidsAsTarget()))
}

// MarshalJSON function
func (c *Context) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.u)
}

func joinOrDash(in []string) string {
	if len(in) == 0 {
		return "-"
	}
	return strings.Join(in, ", ")
}
