/*
 * Copyright (c) YugabyteDB, Inc.
 */

package dr

import (
	"fmt"
	"strings"

	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/dataindataout/yb-day2ops/internal/client"
	"github.com/dataindataout/yb-day2ops/internal/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	ybaclient "github.com/yugabyte/platform-go-client"
)

// CreateRequest describes a new DR config
type CreateRequest struct {
	Source string
	Target string
	// Databases are the names of the source databases to replicate
	Databases []string
	// StorageConfigName selects the backup storage config used for bootstrap.
	// When empty the first storage config is used.
	StorageConfigName string
	Parallelism       int
	// Name defaults to DR-config-<source>-to-<target>
	Name string
}

// Create sets up a DR config from Source to Target and returns its UUID once
// the create task has succeeded. It fails before looking up the target if the
// source already has a DR config.
func (s *Service) Create(req CreateRequest) (string, error) {
	if len(req.Databases) == 0 {
		return "", errors.Wrap(ErrDatabaseNotFound, "at least one database is required")
	}

	storageConfig, err := s.storageConfig(req.StorageConfigName)
	if err != nil {
		return "", err
	}

	source, err := s.Universe(req.Source)
	if err != nil {
		return "", errors.WithMessage(err, "source universe")
	}
	if drUUIDs := source.GetDrConfigUuidsAsSource(); len(drUUIDs) > 0 {
		return "", errors.Wrapf(ErrDrConfigAlreadyExists, "'%s' (%s)", req.Source, drUUIDs[0])
	}

	target, err := s.Universe(req.Target)
	if err != nil {
		return "", errors.WithMessage(err, "target universe")
	}

	dbs, err := s.namespaceUUIDs(source, req.Databases)
	if err != nil {
		return "", err
	}

	parallelism := req.Parallelism
	if parallelism <= 0 {
		parallelism = s.parallelism()
	}
	name := req.Name
	if name == "" {
		name = fmt.Sprintf("DR-config-%s-to-%s", req.Source, req.Target)
	}

	task, err := s.client.CreateDrConfig(ybaclient.DrConfigCreateForm{
		Name:               name,
		SourceUniverseUUID: source.GetUniverseUUID(),
		TargetUniverseUUID: target.GetUniverseUUID(),
		Dbs:                dbs,
		BootstrapParams: &ybaclient.RestartBootstrapParams{
			BackupRequestParams: ybaclient.BootstarpBackupParams{
				StorageConfigUUID: storageConfig.GetConfigUUID(),
				Parallelism:       ybaclient.PtrInt32(int32(parallelism)),
			},
		},
	})
	if err != nil {
		return "", err
	}
	if _, err := s.await(task, "Create xCluster DR"); err != nil {
		return "", err
	}
	if task.GetResourceUUID() == "" {
		return "", errors.Wrap(client.ErrMalformedResponse, "create task has no resource UUID")
	}
	return task.GetResourceUUID(), nil
}

// storageConfig picks the backup storage config by name, or the first one
func (s *Service) storageConfig(name string) (ybaclient.CustomerConfigUI, error) {
	configs, err := s.client.GetListOfCustomerConfig()
	if err != nil {
		return ybaclient.CustomerConfigUI{}, err
	}
	storageConfigs := make([]ybaclient.CustomerConfigUI, 0)
	for _, c := range configs {
		if c.Type == util.StorageCustomerConfigType {
			storageConfigs = append(storageConfigs, c)
		}
	}
	if len(storageConfigs) == 0 {
		return ybaclient.CustomerConfigUI{}, ErrNoStorageConfig
	}
	if name == "" {
		logrus.Warnf("No storage config name given, using \"%s\" (%s)\n",
			storageConfigs[0].ConfigName, storageConfigs[0].GetConfigUUID())
		return storageConfigs[0], nil
	}
	for _, c := range storageConfigs {
		if c.ConfigName == name {
			return c, nil
		}
	}
	return ybaclient.CustomerConfigUI{}, errors.Wrapf(ErrNoStorageConfig, "'%s'", name)
}

// namespaceUUIDs maps database names to namespace UUIDs on a universe
func (s *Service) namespaceUUIDs(u ybaclient.UniverseResp, names []string) ([]string, error) {
	namespaces, err := s.client.GetAllNamespaces(u.GetUniverseUUID())
	if err != nil {
		return nil, err
	}
	byName := make(map[string]string)
	for _, ns := range namespaces {
		if ns.GetTableType() == s.tableType() {
			byName[ns.GetName()] = ns.GetNamespaceUUID()
		}
	}
	out := make([]string, 0, len(names))
	missing := make([]string, 0)
	for _, n := range names {
		nsUUID, ok := byName[n]
		if !ok {
			missing = append(missing, n)
			continue
		}
		out = append(out, nsUUID)
	}
	if len(missing) > 0 {
		return nil, errors.Wrapf(ErrDatabaseNotFound, "%s on universe '%s'",
			strings.Join(missing, ", "), u.GetName())
	}
	return out, nil
}

// Delete removes the DR config the named universe is the source of and
// returns its UUID. force ignores errors on the replica side.
func (s *Service) Delete(source string, force bool) (string, error) {
	_, drUUID, err := s.sourceDrConfigUUID(source)
	if err != nil {
		return "", err
	}
	task, err := s.client.DeleteDrConfig(drUUID, force)
	if err != nil {
		return "", err
	}
	if _, err := s.await(task, "Delete xCluster DR"); err != nil {
		return "", err
	}
	return drUUID, nil
}

// Pause pauses replication of the DR config the named universe is the source
// of. A paused config is returned as is.
func (s *Service) Pause(source string) (model.DrConfig, error) {
	return s.setReplicationStatus(source, util.PausedXClusterStatus)
}

// Resume resumes replication of the DR config the named universe is the
// source of. A config that is not paused is returned as is.
func (s *Service) Resume(source string) (model.DrConfig, error) {
	return s.setReplicationStatus(source, util.RunningXClusterStatus)
}

func (s *Service) setReplicationStatus(source, status string) (model.DrConfig, error) {
	dr, err := s.DrConfigForSource(source)
	if err != nil {
		return dr, err
	}
	pause := status == util.PausedXClusterStatus
	if dr.Paused == pause {
		logrus.Infof("xCluster replication of '%s' is already %s\n",
			source, strings.ToLower(status))
		return dr, nil
	}

	label := "Resume xCluster Replication"
	if pause {
		label = "Pause xCluster Replication"
	}
	// status changes go to the xCluster config, not to the DR config
	task, err := s.client.EditXClusterConfig(dr.XClusterConfigUUID,
		ybaclient.XClusterConfigEditFormData{Status: ybaclient.PtrString(status)})
	if err != nil {
		return dr, err
	}
	waited, err := s.await(task, label)
	if err != nil || !waited {
		return dr, err
	}

	dr, err = s.client.GetDrConfig(dr.UUID)
	if err != nil {
		return dr, err
	}
	if dr.Paused != pause {
		logrus.Warnf("DR config %s reports paused=%t after the task finished\n",
			dr.UUID, dr.Paused)
	}
	return dr, nil
}

// Switchover reverses the replication direction of the DR config the named
// universe is the source of. The DR replica becomes the primary.
func (s *Service) Switchover(source string) (string, error) {
	dr, err := s.DrConfigForSource(source)
	if err != nil {
		return "", err
	}
	task, err := s.client.SwitchoverDrConfig(dr.UUID, ybaclient.DrConfigSwitchoverForm{
		PrimaryUniverseUuid:   ybaclient.PtrString(dr.DrReplicaUniverseUUID),
		DrReplicaUniverseUuid: ybaclient.PtrString(dr.PrimaryUniverseUUID),
	})
	if err != nil {
		return "", err
	}
	if _, err := s.await(task, "Switchover XCluster DR"); err != nil {
		return "", err
	}
	return dr.UUID, nil
}

// Failover promotes the DR replica of the DR config the named universe is the
// source of. The current safetimes are read right before the failover request
// and sent with it.
func (s *Service) Failover(source string) (string, error) {
	dr, err := s.DrConfigForSource(source)
	if err != nil {
		return "", err
	}
	safetimes, err := s.client.GetDrConfigSafetime(dr.UUID)
	if err != nil {
		return "", err
	}
	namespaceSafetimes := safetimes.GetSafetimes()
	if len(namespaceSafetimes) == 0 {
		return "", errors.Wrapf(ErrNoSafetimes, "DR config %s", dr.UUID)
	}
	epochs := make(map[string]int64, len(namespaceSafetimes))
	for _, st := range namespaceSafetimes {
		if st.NamespaceId == "" {
			return "", errors.Wrap(client.ErrMalformedResponse, "safetime without namespaceId")
		}
		epochs[st.NamespaceId] = st.SafetimeEpochUs
	}

	task, err := s.client.FailoverDrConfig(dr.UUID, ybaclient.DrConfigFailoverForm{
		PrimaryUniverseUuid:           ybaclient.PtrString(dr.DrReplicaUniverseUUID),
		DrReplicaUniverseUuid:         ybaclient.PtrString(dr.PrimaryUniverseUUID),
		NamespaceIdSafetimeEpochUsMap: &epochs,
	})
	if err != nil {
		return "", err
	}
	if _, err := s.await(task, "Failover XCluster DR"); err != nil {
		return "", err
	}
	return dr.UUID, nil
}

// Recover re-establishes replication after a failover. The named universe is
// the current primary; the former primary becomes the DR replica and is fully
// re-bootstrapped. databases optionally replaces the replicated databases.
func (s *Service) Recover(source string, databases []string, force bool) (string, error) {
	u, drUUID, err := s.sourceDrConfigUUID(source)
	if err != nil {
		return "", err
	}
	form := ybaclient.DrConfigRestartForm{Dbs: []string{}}
	if len(databases) > 0 {
		form.Dbs, err = s.namespaceUUIDs(u, databases)
		if err != nil {
			return "", err
		}
	}
	task, err := s.client.RestartDrConfig(drUUID, form, force)
	if err != nil {
		return "", err
	}
	if _, err := s.await(task, "Repair XCluster DR"); err != nil {
		return "", err
	}
	return drUUID, nil
}

// Sync reconciles the DR config the named universe is the source of with
// changes made to the replication outside of YugabyteDB Anywhere
func (s *Service) Sync(source string) (string, error) {
	_, drUUID, err := s.sourceDrConfigUUID(source)
	if err != nil {
		return "", err
	}
	task, err := s.client.SyncDrConfig(drUUID)
	if err != nil {
		return "", err
	}
	if _, err := s.await(task, "Synchronize XCluster DR"); err != nil {
		return "", err
	}
	return drUUID, nil
}

// Safetimes returns the current per database safetimes of the DR config the
// named universe is the source of
func (s *Service) Safetimes(source string) ([]ybaclient.NamespaceSafetime, error) {
	_, drUUID, err := s.sourceDrConfigUUID(source)
	if err != nil {
		return nil, err
	}
	r, err := s.client.GetDrConfigSafetime(drUUID)
	if err != nil {
		return nil, err
	}
	return r.GetSafetimes(), nil
}
