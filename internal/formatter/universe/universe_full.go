/*
 * Copyright (c) YugabyteDB, Inc.
 */

package universe

import (
	"bytes"
	"encoding/json"
	"text/template"

	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/sirupsen/logrus"
	ybaclient "github.com/yugabyte/platform-go-client"
)

const (
	defaultFullUniverseGeneral = "table {{.Name}}\t{{.UUID}}\t{{.Version}}\t{{.CreationDate}}"
	universeReplication1       = "table {{.DrAsSourceCount}}\t{{.DrAsTargetCount}}"
	universeReplication2       = "table {{.DrAsSource}}"
	universeReplication3       = "table {{.DrAsTarget}}"
)

// FullUniverseContext to render universe details output
type FullUniverseContext struct {
	formatter.HeaderContext
	formatter.Context
	u ybaclient.UniverseResp
}

// SetFullUniverse initializes the context with the universe data
func (fu *FullUniverseContext) SetFullUniverse(universe ybaclient.UniverseResp) {
	fu.u = universe
}

// NewFullUniverseFormat for formatting output
func NewFullUniverseFormat(source string) formatter.Format {
	switch source {
	case formatter.TableFormatKey, "":
		format := defaultUniverseListing
		return formatter.Format(format)
	default: // custom format or json or pretty
		return formatter.Format(source)
	}
}

// Write populates the output table to be displayed in the command line
func (fu *FullUniverseContext) Write() error {
	uc := &Context{u: fu.u}

	sections := []struct {
		title  string
		format string
	}{
		{"", defaultFullUniverseGeneral},
		{"xCluster DR", universeReplication1},
		{"", universeReplication2},
		{"", universeReplication3},
	}
	fu.Output.Write([]byte(formatter.Colorize("General", formatter.GreenColor)))
	fu.Output.Write([]byte("\n"))
	for _, s := range sections {
		tmpl, err := fu.startSubsection(s.format)
		if err != nil {
			logrus.Errorf("%s", err.Error())
			return err
		}
		if s.title != "" {
			fu.subSection(s.title)
		}
		if err := fu.ContextFormat(tmpl, uc); err != nil {
			logrus.Errorf("%s", err.Error())
			return err
		}
		fu.PostFormat(tmpl, NewUniverseContext())
		fu.Output.Write([]byte("\n"))
	}

	nodes := uc.nodes()
	logrus.Debugf("Number of Nodes: %d", len(nodes))
	fu.subSection("Nodes")
	nodeCtx := formatter.Context{
		Output: fu.Output,
		Format: NewNodesFormat(formatter.TableFormatKey),
	}
	return NodeWrite(nodeCtx, nodes)
}

func (fu *FullUniverseContext) startSubsection(format string) (*template.Template, error) {
	fu.Buffer = bytes.NewBufferString("")
	fu.ContextHeader = ""
	fu.Format = formatter.Format(format)
	fu.PreFormat()

	return fu.ParseFormat()
}

func (fu *FullUniverseContext) subSection(name string) {
	fu.Output.Write([]byte("\n"))
	fu.Output.Write([]byte(formatter.Colorize(name, formatter.GreenColor)))
	fu.Output.Write([]byte("\n"))
}

// NewFullUniverseContext creates a new context for rendering universe
func NewFullUniverseContext() *FullUniverseContext {
	universeCtx := FullUniverseContext{}
	universeCtx.Header = formatter.SubHeaderContext{}
	return &universeCtx
}

// MarshalJSON function
func (fu *FullUniverseContext) MarshalJSON() ([]byte, error) {
	return json.Marshal(fu.u)
}
