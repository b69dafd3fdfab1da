/*
 * Copyright (c) YugabyteDB, Inc.
 */

package safetime

import (
	"encoding/json"
	"time"

	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	ybaclient "github.com/yugabyte/platform-go-client"
)

const (
	defaultSafetimeListing = "table {{.NamespaceName}}\t{{.NamespaceID}}\t{{.Safetime}}" +
		"\t{{.Age}}\t{{.Lag}}\t{{.Skew}}\t{{.EstimatedDataLoss}}"

	namespaceNameHeader     = "Database"
	namespaceIDHeader       = "Namespace ID"
	safetimeHeader          = "Safetime (UTC)"
	ageHeader               = "Age"
	lagHeader               = "Safetime Lag"
	skewHeader              = "Safetime Skew"
	estimatedDataLossHeader = "Estimated Data Loss"

	// LagWarningThreshold is the safetime lag above which a namespace is highlighted
	LagWarningThreshold = 30 * time.Second
)

// Context for safetime outputs
type Context struct {
	formatter.HeaderContext
	formatter.Context
	s ybaclient.NamespaceSafetime
}

// NewSafetimeFormat for formatting output
func NewSafetimeFormat(source string) formatter.Format {
	switch source {
	case formatter.TableFormatKey, "":
		format := defaultSafetimeListing
		return formatter.Format(format)
	default: // custom format or json or pretty
		return formatter.Format(source)
	}
}

// Write renders the context for the safetimes of a DR config
func Write(ctx formatter.Context, safetimes []ybaclient.NamespaceSafetime) error {
	if ctx.Format.IsJSON() || ctx.Format.IsPrettyJSON() {
		var output []byte
		var err error

		if ctx.Format.IsPrettyJSON() {
			output, err = json.MarshalIndent(safetimes, "", "  ")
		} else {
			output, err = json.Marshal(safetimes)
		}

		if err != nil {
			logrus.Errorf("Error marshaling safetimes to json: %v\n", err)
			return err
		}

		_, err = ctx.Output.Write(output)
		return err
	}
	render := func(format func(subContext formatter.SubContext) error) error {
		for _, s := range safetimes {
			err := format(&Context{s: s})
			if err != nil {
				logrus.Debugf("Error rendering safetime: %v", err)
				return err
			}
		}
		return nil
	}
	return ctx.Write(NewSafetimeContext(), render)
}

// NewSafetimeContext creates a new context for rendering safetimes
func NewSafetimeContext() *Context {
	safetimeCtx := Context{}
	safetimeCtx.Header = formatter.SubHeaderContext{
		"NamespaceName":     namespaceNameHeader,
		"NamespaceID":       namespaceIDHeader,
		"Safetime":          safetimeHeader,
		"Age":               ageHeader,
		"Lag":               lagHeader,
		"Skew":              skewHeader,
		"EstimatedDataLoss": estimatedDataLossHeader,
	}
	return &safetimeCtx
}

// NamespaceName fetches the database name
func (c *Context) NamespaceName() string {
	return c.s.GetNamespaceName()
}

// NamespaceID fetches the namespace ID
func (c *Context) NamespaceID() string {
	return c.s.GetNamespaceId()
}

// Safetime fetches the safetime as a UTC timestamp
func (c *Context) Safetime() string {
	if c.s.SafetimeEpochUs <= 0 {
		return "-"
	}
	return time.UnixMicro(c.s.SafetimeEpochUs).UTC().Format(time.RFC3339Nano)
}

// Age fetches how long ago the safetime was
func (c *Context) Age() string {
	if c.s.SafetimeEpochUs <= 0 {
		return "-"
	}
	return humanize.Time(time.UnixMicro(c.s.SafetimeEpochUs))
}

// Lag fetches the safetime lag, highlighted above LagWarningThreshold
func (c *Context) Lag() string {
	lag := microsToDuration(c.s.SafetimeLagUs)
	if lag > LagWarningThreshold {
		return formatter.Colorize(lag.String(), formatter.RedColor)
	}
	return lag.String()
}

// Skew fetches the safetime skew
func (c *Context) Skew() string {
	return microsToDuration(c.s.SafetimeSkewUs).String()
}

// EstimatedDataLoss fetches the data loss a failover would cause right now
func (c *Context) EstimatedDataLoss() string {
	if c.s.EstimatedDataLossMs < 0 {
		return "-"
	}
	return time.Duration(c.s.EstimatedDataLossMs * float64(time.Millisecond)).String()
}

// MarshalJSON function
func (c *Context) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.s)
}

func microsToDuration(us int64) time.Duration {
	return (time.Duration(us) * time.Microsecond).Round(time.Millisecond)
}
