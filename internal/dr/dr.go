/*
 * Copyright (c) YugabyteDB, Inc.
 */

// Package dr implements xCluster disaster recovery operations on top of the
// YugabyteDB Anywhere REST API: resolving a universe to its DR config, the DR
// lifecycle (create, delete, pause, resume, switchover, failover, recover,
// sync) and changes to the replicated table set. Every operation re-reads
// state from the server and waits for the tasks it submits.
package dr

import (
	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/dataindataout/yb-day2ops/internal/client"
	"github.com/dataindataout/yb-day2ops/internal/model"
	"github.com/pkg/errors"
	ybaclient "github.com/yugabyte/platform-go-client"
)

// Errors returned by DR operations. Each matches one of the client error
// categories with errors.Is.
var (
	ErrUniverseNotFound = client.NewCategoryError(client.ErrNotFound,
		"universe not found")
	ErrNoDrConfig = client.NewCategoryError(client.ErrNotFound,
		"universe does not have a DR config as source")
	ErrNoStorageConfig = client.NewCategoryError(client.ErrNotFound,
		"no storage config found, at least one is required for xCluster DR setup")
	ErrDatabaseNotFound = client.NewCategoryError(client.ErrNotFound,
		"database not found")
	ErrTableNotFound = client.NewCategoryError(client.ErrNotFound,
		"table not found")

	ErrDrConfigAlreadyExists = client.NewCategoryError(client.ErrPreconditionFailed,
		"universe already has a DR config as source")
	ErrNoTablesChanged = client.NewCategoryError(client.ErrPreconditionFailed,
		"no table can be added to or removed from the DR config")
	ErrTableMissingOnReplica = client.NewCategoryError(client.ErrPreconditionFailed,
		"table does not exist on the DR replica")
	ErrNoSafetimes = client.NewCategoryError(client.ErrPreconditionFailed,
		"no safetimes reported for the DR config")
	ErrUnknownDrConfigField = client.NewCategoryError(client.ErrPreconditionFailed,
		"unknown DR config field")
)

// Client is the subset of the YugabyteDB Anywhere API used by DR operations.
// *client.AuthAPIClient implements it.
type Client interface {
	ListUniversesByName(name string) ([]ybaclient.UniverseResp, error)
	GetUniverse(uUUID string) (ybaclient.UniverseResp, error)
	GetAllNamespaces(uUUID string) ([]ybaclient.NamespaceInfoResp, error)
	GetAllTables(uUUID string) ([]ybaclient.TableInfoResp, error)
	GetListOfCustomerConfig() ([]ybaclient.CustomerConfigUI, error)

	GetXClusterConfig(xclusterUUID string) (ybaclient.XClusterConfigGetResp, error)
	EditXClusterConfig(
		xclusterUUID string,
		form ybaclient.XClusterConfigEditFormData,
	) (ybaclient.YBPTask, error)

	CreateDrConfig(form ybaclient.DrConfigCreateForm) (ybaclient.YBPTask, error)
	GetDrConfig(drUUID string) (model.DrConfig, error)
	GetDrConfigRaw(drUUID string) (map[string]interface{}, error)
	DeleteDrConfig(drUUID string, force bool) (ybaclient.YBPTask, error)
	SetTablesDrConfig(
		drUUID string,
		form ybaclient.DrConfigSetTablesForm,
	) (ybaclient.YBPTask, error)
	SwitchoverDrConfig(
		drUUID string,
		form ybaclient.DrConfigSwitchoverForm,
	) (ybaclient.YBPTask, error)
	FailoverDrConfig(
		drUUID string,
		form ybaclient.DrConfigFailoverForm,
	) (ybaclient.YBPTask, error)
	RestartDrConfig(
		drUUID string,
		form ybaclient.DrConfigRestartForm,
		force bool,
	) (ybaclient.YBPTask, error)
	SyncDrConfig(drUUID string) (ybaclient.YBPTask, error)
	GetDrConfigSafetime(drUUID string) (ybaclient.DrConfigSafetimeResp, error)

	WaitForTask(task ybaclient.YBPTask, label string) (model.TaskStatus, error)
}

// Service runs DR operations against one YugabyteDB Anywhere customer
type Service struct {
	client Client

	// TableType selects the namespaces and tables DR operates on
	TableType string
	// Parallelism is the bootstrap backup parallelism used when a DR config
	// does not carry one
	Parallelism int
	// NoWait makes operations return right after their task is submitted.
	// Submitted, if set, receives every such task.
	NoWait    bool
	Submitted func(task ybaclient.YBPTask, label string)
}

// NewService returns a Service for PGSQL tables with the default parallelism
func NewService(c Client) *Service {
	return &Service{
		client:      c,
		TableType:   util.PgSqlTableType,
		Parallelism: util.DefaultBootstrapParallelism,
	}
}

// await polls task to completion unless NoWait is set, and reports whether it did
func (s *Service) await(task ybaclient.YBPTask, label string) (bool, error) {
	if !s.NoWait {
		_, err := s.client.WaitForTask(task, label)
		return err == nil, err
	}
	if task.GetTaskUUID() == "" {
		return false, errors.Wrapf(client.ErrMalformedTaskResponse, "failed to process '%s'", label)
	}
	if s.Submitted != nil {
		s.Submitted(task, label)
	}
	return false, nil
}

func (s *Service) parallelism() int {
	if s.Parallelism <= 0 {
		return util.DefaultBootstrapParallelism
	}
	return s.Parallelism
}

func (s *Service) tableType() string {
	if s.TableType == "" {
		return util.PgSqlTableType
	}
	return s.TableType
}
