/*
 * Copyright (c) YugabyteDB, Inc.
 */

package model

import (
	ybaclient "github.com/yugabyte/platform-go-client"
)

// DrConfig is the disaster recovery relationship between a primary and a
// replica universe, as returned by GET dr_configs/{uuid}. The generated
// ybaclient.DrConfig only carries name, state, uuid and timestamps.
type DrConfig struct {
	UUID                    string                           `json:"uuid"`
	Name                    string                           `json:"name"`
	XClusterConfigUUID      string                           `json:"xclusterConfigUuid"`
	PrimaryUniverseUUID     string                           `json:"primaryUniverseUuid"`
	DrReplicaUniverseUUID   string                           `json:"drReplicaUniverseUuid"`
	State                   string                           `json:"state"`
	Status                  string                           `json:"status"`
	Paused                  bool                             `json:"paused"`
	PrimaryUniverseState    string                           `json:"primaryUniverseState,omitempty"`
	DrReplicaUniverseState  string                           `json:"drReplicaUniverseState,omitempty"`
	PrimaryUniverseActive   bool                             `json:"primaryUniverseActive,omitempty"`
	DrReplicaUniverseActive bool                             `json:"drReplicaUniverseActive,omitempty"`
	Tables                  []string                         `json:"tables"`
	Dbs                     []string                         `json:"dbs,omitempty"`
	BootstrapParams         ybaclient.RestartBootstrapParams `json:"bootstrapParams"`
	CreateTime              string                           `json:"createTime,omitempty"`
	ModifyTime              string                           `json:"modifyTime,omitempty"`
}
