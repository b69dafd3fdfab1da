/*
 * Copyright (c) YugabyteDB, Inc.
 */

package drconfig

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/dataindataout/yb-day2ops/internal/model"
	"github.com/sirupsen/logrus"
)

const (
	defaultDrConfigListing = "table {{.Name}}\t{{.UUID}}\t{{.PrimaryUniverse}}" +
		"\t{{.DrReplicaUniverse}}\t{{.State}}\t{{.Status}}"

	primaryUniverseHeader   = "Primary Universe"
	drReplicaUniverseHeader = "DR Replica Universe"
	primaryStateHeader      = "Primary State"
	drReplicaStateHeader    = "DR Replica State"
	primaryActiveHeader     = "Primary Active"
	drReplicaActiveHeader   = "DR Replica Active"
	xClusterConfigHeader    = "xCluster Config UUID"
	createTimeHeader        = "Create Time"
	modifyTimeHeader        = "Modify Time"
	tablesHeader            = "Tables"
	dbsHeader               = "Databases"
	storageConfigHeader     = "Storage Config UUID"
	parallelismHeader       = "Parallelism"
)

// Context for DR config outputs
type Context struct {
	formatter.HeaderContext
	formatter.Context
	d         model.DrConfig
	universes map[string]string
}

// NewDrConfigFormat for formatting output
func NewDrConfigFormat(source string) formatter.Format {
	switch source {
	case formatter.TableFormatKey, "":
		format := defaultDrConfigListing
		return formatter.Format(format)
	default: // custom format or json or pretty
		return formatter.Format(source)
	}
}

// Write renders the context for a list of DR configs. universes maps
// universe UUIDs to names for the universe columns.
func Write(
	ctx formatter.Context,
	drConfigs []model.DrConfig,
	universes map[string]string,
) error {
	if (ctx.Format.IsJSON() || ctx.Format.IsPrettyJSON()) && ctx.Command.IsListCommand() {
		var output []byte
		var err error

		if ctx.Format.IsPrettyJSON() {
			output, err = json.MarshalIndent(drConfigs, "", "  ")
		} else {
			output, err = json.Marshal(drConfigs)
		}

		if err != nil {
			logrus.Errorf("Error marshaling DR configs to json: %v\n", err)
			return err
		}

		_, err = ctx.Output.Write(output)
		return err
	}
	render := func(format func(subContext formatter.SubContext) error) error {
		for _, d := range drConfigs {
			err := format(&Context{d: d, universes: universes})
			if err != nil {
				logrus.Debugf("Error rendering DR config: %v", err)
				return err
			}
		}
		return nil
	}
	return ctx.Write(NewDrConfigContext(), render)
}

// NewDrConfigContext creates a new context for rendering DR configs
func NewDrConfigContext() *Context {
	drCtx := Context{}
	drCtx.Header = formatter.SubHeaderContext{
		"Name":               formatter.NameHeader,
		"UUID":               formatter.UUIDHeader,
		"PrimaryUniverse":    primaryUniverseHeader,
		"DrReplicaUniverse":  drReplicaUniverseHeader,
		"State":              formatter.StateHeader,
		"Status":             formatter.StatusHeader,
		"Paused":             formatter.PausedHeader,
		"PrimaryState":       primaryStateHeader,
		"DrReplicaState":     drReplicaStateHeader,
		"PrimaryActive":      primaryActiveHeader,
		"DrReplicaActive":    drReplicaActiveHeader,
		"XClusterConfigUUID": xClusterConfigHeader,
		"CreateTime":         createTimeHeader,
		"ModifyTime":         modifyTimeHeader,
		"Tables":             tablesHeader,
		"Dbs":                dbsHeader,
		"StorageConfigUUID":  storageConfigHeader,
		"Parallelism":        parallelismHeader,
		"TableCount":         tablesHeader,
		"DatabaseCount":      dbsHeader,
	}
	return &drCtx
}

func (c *Context) universe(uuid string) string {
	if name, ok := c.universes[uuid]; ok && name != "" {
		return fmt.Sprintf("%s(%s)", name, uuid)
	}
	if uuid == "" {
		return "-"
	}
	return uuid
}

// Name fetches the DR config name
func (c *Context) Name() string {
	return c.d.Name
}

// UUID fetches the DR config UUID
func (c *Context) UUID() string {
	return c.d.UUID
}

// PrimaryUniverse fetches the primary universe
func (c *Context) PrimaryUniverse() string {
	return c.universe(c.d.PrimaryUniverseUUID)
}

// DrReplicaUniverse fetches the DR replica universe
func (c *Context) DrReplicaUniverse() string {
	return c.universe(c.d.DrReplicaUniverseUUID)
}

// State fetches the DR config state
func (c *Context) State() string {
	state := c.d.State
	switch state {
	case util.ReplicatingDrState:
		return formatter.Colorize(state, formatter.GreenColor)
	case util.InitializingDrState,
		util.UpdatingDrState,
		util.SwitchoverInProgressDrState,
		util.FailoverInProgressDrState:
		return formatter.Colorize(state, formatter.YellowColor)
	case util.HaltedDrState, util.FailedDrState:
		return formatter.Colorize(state, formatter.RedColor)
	case "":
		return "-"
	default:
		return state
	}
}

// Status fetches the replication status
func (c *Context) Status() string {
	if c.d.Paused {
		return formatter.Colorize(util.PausedXClusterStatus, formatter.YellowColor)
	}
	status := c.d.Status
	switch status {
	case util.InitializedXClusterStatus, util.RunningXClusterStatus:
		return formatter.Colorize(status, formatter.GreenColor)
	case util.UpdatingXClusterStatus:
		return formatter.Colorize(status, formatter.YellowColor)
	case util.FailedXClusterStatus, util.DeletedUniverseXClusterStatus:
		return formatter.Colorize(status, formatter.RedColor)
	case "":
		return "-"
	default:
		return status
	}
}

// Paused fetches whether replication is paused
func (c *Context) Paused() string {
	return fmt.Sprintf("%t", c.d.Paused)
}

// PrimaryState fetches the primary universe replication state
func (c *Context) PrimaryState() string {
	return orDash(c.d.PrimaryUniverseState)
}

// DrReplicaState fetches the DR replica replication state
func (c *Context) DrReplicaState() string {
	return orDash(c.d.DrReplicaUniverseState)
}

// PrimaryActive fetches whether the primary is active
func (c *Context) PrimaryActive() string {
	return fmt.Sprintf("%t", c.d.PrimaryUniverseActive)
}

// DrReplicaActive fetches whether the DR replica is active
func (c *Context) DrReplicaActive() string {
	return fmt.Sprintf("%t", c.d.DrReplicaUniverseActive)
}

// XClusterConfigUUID fetches the backing xCluster config
func (c *Context) XClusterConfigUUID() string {
	return orDash(c.d.XClusterConfigUUID)
}

// CreateTime fetches the creation time
func (c *Context) CreateTime() string {
	return orDash(c.d.CreateTime)
}

// ModifyTime fetches the last modification time
func (c *Context) ModifyTime() string {
	return orDash(c.d.ModifyTime)
}

// Tables fetches the replicated table IDs
func (c *Context) Tables() string {
	if len(c.d.Tables) == 0 {
		return "-"
	}
	return strings.Join(c.d.Tables, ", ")
}

// TableCount fetches the number of replicated tables
func (c *Context) TableCount() string {
	return fmt.Sprintf("%d", len(c.d.Tables))
}

// Dbs fetches the replicated namespace UUIDs
func (c *Context) Dbs() string {
	if len(c.d.Dbs) == 0 {
		return "-"
	}
	return strings.Join(c.d.Dbs, ", ")
}

// DatabaseCount fetches the number of replicated databases
func (c *Context) DatabaseCount() string {
	return fmt.Sprintf("%d", len(c.d.Dbs))
}

// StorageConfigUUID fetches the bootstrap storage config
func (c *Context) StorageConfigUUID() string {
	return orDash(c.d.BootstrapParams.BackupRequestParams.StorageConfigUUID)
}

// Parallelism fetches the bootstrap backup parallelism
func (c *Context) Parallelism() string {
	backup := c.d.BootstrapParams.BackupRequestParams
	if !backup.HasParallelism() {
		return "-"
	}
	return fmt.Sprintf("%d", backup.GetParallelism())
}

// MarshalJSON function
func (c *Context) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.d)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
