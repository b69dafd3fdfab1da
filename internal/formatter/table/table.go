/*
 * Copyright (c) YugabyteDB, Inc.
 */

package table

import (
	"encoding/json"
	"fmt"

	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	ybaclient "github.com/yugabyte/platform-go-client"
)

const (
	defaultTableListing = "table {{.TableID}}\t{{.KeySpace}}\t{{.Schema}}" +
		"\t{{.TableName}}\t{{.Size}}"

	tableIDHeader   = "Table ID"
	keySpaceHeader  = "Database"
	schemaHeader    = "Schema"
	tableNameHeader = "Table Name"
	sizeHeader      = "SST Size"
	walSizeHeader   = "WAL Size"
	tableTypeHeader = "Table Type"
	isIndexHeader   = "Index"
)

// Context for table outputs
type Context struct {
	formatter.HeaderContext
	formatter.Context
	t ybaclient.TableInfoResp
}

// NewTableFormat for formatting output
func NewTableFormat(source string) formatter.Format {
	switch source {
	case formatter.TableFormatKey, "":
		format := defaultTableListing
		return formatter.Format(format)
	default: // custom format or json or pretty
		return formatter.Format(source)
	}
}

// Write renders the context for a list of tables
func Write(ctx formatter.Context, tables []ybaclient.TableInfoResp) error {
	if ctx.Format.IsJSON() || ctx.Format.IsPrettyJSON() {
		var output []byte
		var err error

		if ctx.Format.IsPrettyJSON() {
			output, err = json.MarshalIndent(tables, "", "  ")
		} else {
			output, err = json.Marshal(tables)
		}

		if err != nil {
			logrus.Errorf("Error marshaling tables to json: %v\n", err)
			return err
		}

		_, err = ctx.Output.Write(output)
		return err
	}
	render := func(format func(subContext formatter.SubContext) error) error {
		for _, t := range tables {
			err := format(&Context{t: t})
			if err != nil {
				logrus.Debugf("Error rendering table: %v", err)
				return err
			}
		}
		return nil
	}
	return ctx.Write(NewTableContext(), render)
}

// NewTableContext creates a new context for rendering tables
func NewTableContext() *Context {
	tableCtx := Context{}
	tableCtx.Header = formatter.SubHeaderContext{
		"TableID":   tableIDHeader,
		"KeySpace":  keySpaceHeader,
		"Schema":    schemaHeader,
		"TableName": tableNameHeader,
		"Size":      sizeHeader,
		"WalSize":   walSizeHeader,
		"TableType": tableTypeHeader,
		"IsIndex":   isIndexHeader,
	}
	return &tableCtx
}

// TableID fetches the table ID used in DR table sets
func (c *Context) TableID() string {
	return c.t.GetTableID()
}

// KeySpace fetches the database name
func (c *Context) KeySpace() string {
	return c.t.GetKeySpace()
}

// Schema fetches the PostgreSQL schema
func (c *Context) Schema() string {
	if c.t.GetPgSchemaName() == "" {
		return "-"
	}
	return c.t.GetPgSchemaName()
}

// TableName fetches the table name
func (c *Context) TableName() string {
	return c.t.GetTableName()
}

// Size fetches the SST size
func (c *Context) Size() string {
	return humanize.Bytes(uint64(c.t.GetSizeBytes()))
}

// WalSize fetches the WAL size
func (c *Context) WalSize() string {
	return humanize.Bytes(uint64(c.t.GetWalSizeBytes()))
}

// TableType fetches the table type
func (c *Context) TableType() string {
	return c.t.GetTableType()
}

// IsIndex fetches whether the table is an index
func (c *Context) IsIndex() string {
	return fmt.Sprintf("%t", c.t.GetRelationType() == util.IndexTableRelation)
}

// MarshalJSON function
func (c *Context) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.t)
}
