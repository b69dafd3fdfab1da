/*
 * Copyright (c) YugabyteDB, Inc.
 */

package util

// Allowed states for YugabyteDB Anywhere Tasks
const (
	// CreateTaskStatus task status
	CreatedTaskStatus = "Created"
	// InitializingTaskStatus task status
	InitializingTaskStatus = "Initializing"
	// RunningTaskStatus task status
	RunningTaskStatus = "Running"
	// SuccessTaskStatus task status
	SuccessTaskStatus = "Success"
	// FailureTaskStatus task status
	FailureTaskStatus = "Failure"
	// UnknownTaskStatus task status
	UnknownTaskStatus = "Unknown"
	// AbortTaskStatus task status
	AbortTaskStatus = "Abort"
	// AbortedTaskStatus task status
	AbortedTaskStatus = "Aborted"
)

// UniverseStates
const (
	// ReadyUniverseState state
	ReadyUniverseState = "Ready"
	// PausedUniverseState state
	PausedUniverseState = "Paused"
	// PendingUniverseState state
	PendingUniverseState = "Pending"
	// WarningUniverseState state
	WarningUniverseState = "Warning"
	// BadUniverseState state
	BadUniverseState = "Error"
	// UnknownUniverseState state
	UnknownUniverseState = "Loading"
)

// Node states
const (
	// LiveNodeState node is serving
	LiveNodeState = "Live"
	// StoppedNodeState node is stopped
	StoppedNodeState = "Stopped"
)

// DR config states as reported by YugabyteDB Anywhere
const (
	// InitializingDrState is set while the config is being created
	InitializingDrState = "Initializing"
	// ReplicatingDrState is the steady state
	ReplicatingDrState = "Replicating"
	// SwitchoverInProgressDrState is set during a planned switchover
	SwitchoverInProgressDrState = "Switchover in Progress"
	// FailoverInProgressDrState is set during an unplanned failover
	FailoverInProgressDrState = "Failover in Progress"
	// HaltedDrState means replication is halted and the config needs repair
	HaltedDrState = "Halted"
	// UpdatingDrState is set while tables are being changed
	UpdatingDrState = "Updating"
	// FailedDrState means the last operation on the config failed
	FailedDrState = "Failed"
)

// xCluster replication statuses
const (
	// RunningXClusterStatus replication is active
	RunningXClusterStatus = "Running"
	// PausedXClusterStatus replication is paused
	PausedXClusterStatus = "Paused"
	// InitializedXClusterStatus replication is being set up
	InitializedXClusterStatus = "Initialized"
	// UpdatingXClusterStatus replication is being changed
	UpdatingXClusterStatus = "Updating"
	// FailedXClusterStatus replication is broken
	FailedXClusterStatus = "Failed"
	// DeletedUniverseXClusterStatus one side of the replication was deleted
	DeletedUniverseXClusterStatus = "DeletedUniverse"
)

const (
	// StorageCustomerConfigType field name to denote in request bodies
	StorageCustomerConfigType = "STORAGE"
)

const (
	// PgSqlTableType table type
	PgSqlTableType = "PGSQL_TABLE_TYPE"

	// YqlTableType table type
	YqlTableType = "YQL_TABLE_TYPE"

	// RedisTableType table type
	RedisTableType = "REDIS_TABLE_TYPE"
)

const (
	// UserTableRelation relation type of a regular table
	UserTableRelation = "USER_TABLE_RELATION"

	// IndexTableRelation relation type of a secondary index
	IndexTableRelation = "INDEX_TABLE_RELATION"
)

const (
	// DefaultBootstrapParallelism is the backup parallelism used when none is configured
	DefaultBootstrapParallelism = 8

	// AllDrConfigFields selects the whole DR config in a field lookup
	AllDrConfigFields = "all"
)

// CompletedTaskStates returns set of states that mark the task as completed
func CompletedTaskStates() []string {
	return []string{SuccessTaskStatus, FailureTaskStatus, AbortedTaskStatus}
}

// ErrorTaskStates return set of states that mark state as failure
func ErrorTaskStates() []string {
	return []string{FailureTaskStatus, AbortedTaskStatus}
}

// IncompleteTaskStates return set of states for ongoing tasks
func IncompleteTaskStates() []string {
	return []string{CreatedTaskStatus, InitializingTaskStatus, RunningTaskStatus, AbortTaskStatus}
}

// DefaultDrStateHelp returns the operator guidance printed by "dr status" for
// each DR config state
func DefaultDrStateHelp() map[string]string {
	return map[string]string{
		InitializingDrState: "The DR config is being created. Wait for the bootstrap " +
			"task to finish before running other operations.",
		ReplicatingDrState: "Replication is healthy. Switchover, failover, pause and " +
			"table changes are allowed.",
		SwitchoverInProgressDrState: "A planned switchover is running. Do not start " +
			"another operation until it completes.",
		FailoverInProgressDrState: "A failover is running. Writes should be directed " +
			"to the DR replica once it completes.",
		HaltedDrState: "Replication is halted. Run \"dr recover\" to re-bootstrap " +
			"the former primary as the new DR replica.",
		UpdatingDrState: "The replicated table set is being changed.",
		FailedDrState: "The last operation failed. Check the task list in " +
			"YugabyteDB Anywhere, then retry or run \"dr recover\".",
	}
}
