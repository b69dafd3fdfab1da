/*
 * Copyright (c) YugabyteDB, Inc.
 */

package drconfig

import (
	"bytes"
	"encoding/json"
	"text/template"

	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/dataindataout/yb-day2ops/internal/model"
	"github.com/sirupsen/logrus"
)

const (
	drConfigDetails1 = "table {{.Paused}}\t{{.PrimaryState}}\t{{.DrReplicaState}}" +
		"\t{{.PrimaryActive}}\t{{.DrReplicaActive}}"
	drConfigDetails2 = "table {{.XClusterConfigUUID}}\t{{.CreateTime}}\t{{.ModifyTime}}"
	drConfigDetails3 = "table {{.StorageConfigUUID}}\t{{.Parallelism}}" +
		"\t{{.DatabaseCount}}\t{{.TableCount}}"
	drConfigDbs    = "table {{.Dbs}}"
	drConfigTables = "table {{.Tables}}"
)

// FullDrConfigContext to render DR config details output
type FullDrConfigContext struct {
	formatter.HeaderContext
	formatter.Context
	d         model.DrConfig
	universes map[string]string
	stateHelp string
}

// SetFullDrConfig initializes the context with the DR config and the names of
// its universes
func (fd *FullDrConfigContext) SetFullDrConfig(d model.DrConfig, universes map[string]string) {
	fd.d = d
	fd.universes = universes
}

// SetStateHelp sets the operator guidance printed after the details
func (fd *FullDrConfigContext) SetStateHelp(help string) {
	fd.stateHelp = help
}

// NewFullDrConfigFormat for formatting output
func NewFullDrConfigFormat(source string) formatter.Format {
	switch source {
	case formatter.TableFormatKey, "":
		format := defaultDrConfigListing
		return formatter.Format(format)
	default: // custom format or json or pretty
		return formatter.Format(source)
	}
}

// Write populates the output table to be displayed in the command line
func (fd *FullDrConfigContext) Write() error {
	dc := &Context{d: fd.d, universes: fd.universes}

	sections := []struct {
		title  string
		format string
	}{
		{"General", defaultDrConfigListing},
		{"DR Config Details", drConfigDetails1},
		{"", drConfigDetails2},
		{"", drConfigDetails3},
		{"Databases", drConfigDbs},
		{"Tables", drConfigTables},
	}
	for i, s := range sections {
		tmpl, err := fd.startSubsection(s.format)
		if err != nil {
			logrus.Errorf("%s", err.Error())
			return err
		}
		switch {
		case i == 0:
			fd.Output.Write([]byte(formatter.Colorize(s.title, formatter.GreenColor)))
			fd.Output.Write([]byte("\n"))
		case s.title != "":
			fd.subSection(s.title)
		}
		if err := fd.ContextFormat(tmpl, dc); err != nil {
			logrus.Errorf("%s", err.Error())
			return err
		}
		fd.PostFormat(tmpl, NewDrConfigContext())
		fd.Output.Write([]byte("\n"))
	}

	if fd.stateHelp != "" {
		fd.subSection("Next Steps")
		fd.Output.Write([]byte(fd.stateHelp))
		fd.Output.Write([]byte("\n"))
	}
	return nil
}

func (fd *FullDrConfigContext) startSubsection(format string) (*template.Template, error) {
	fd.Buffer = bytes.NewBufferString("")
	fd.ContextHeader = ""
	fd.Format = formatter.Format(format)
	fd.PreFormat()

	return fd.ParseFormat()
}

func (fd *FullDrConfigContext) subSection(name string) {
	fd.Output.Write([]byte("\n"))
	fd.Output.Write([]byte(formatter.Colorize(name, formatter.GreenColor)))
	fd.Output.Write([]byte("\n"))
}

// NewFullDrConfigContext creates a new context for rendering a DR config
func NewFullDrConfigContext() *FullDrConfigContext {
	drCtx := FullDrConfigContext{}
	drCtx.Header = formatter.SubHeaderContext{}
	return &drCtx
}

// MarshalJSON function
func (fd *FullDrConfigContext) MarshalJSON() ([]byte, error) {
	return json.Marshal(fd.d)
}
