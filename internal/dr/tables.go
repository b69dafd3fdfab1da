/*
 * Copyright (c) YugabyteDB, Inc.
 */

package dr

import (
	"sort"
	"strings"

	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/dataindataout/yb-day2ops/internal/model"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	ybaclient "github.com/yugabyte/platform-go-client"
	"golang.org/x/exp/slices"
)

// UnreplicatedTables returns the tables of the given type that are neither
// index tables nor in the replicated set, ordered by keyspace and table name
func UnreplicatedTables(
	all []ybaclient.TableInfoResp,
	replicated []string,
	tableType string,
) []ybaclient.TableInfoResp {
	inSet := make(map[string]bool, len(replicated))
	for _, id := range replicated {
		inSet[id] = true
	}
	out := make([]ybaclient.TableInfoResp, 0)
	for _, t := range all {
		if t.GetTableType() != tableType ||
			t.GetRelationType() == util.IndexTableRelation ||
			inSet[t.GetTableID()] {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].GetKeySpace() != out[j].GetKeySpace() {
			return out[i].GetKeySpace() < out[j].GetKeySpace()
		}
		if out[i].GetTableName() != out[j].GetTableName() {
			return out[i].GetTableName() < out[j].GetTableName()
		}
		return out[i].GetPgSchemaName() < out[j].GetPgSchemaName()
	})
	return out
}

// MergeTableIDs returns current followed by the requested IDs that are not
// already present, without duplicates
func MergeTableIDs(current, requested []string) []string {
	seen := make(map[string]bool, len(current)+len(requested))
	out := make([]string, 0, len(current)+len(requested))
	for _, ids := range [][]string{current, requested} {
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// AvailableTables returns the tables of the named universe that can be added
// to the DR config it is the source of
func (s *Service) AvailableTables(source string) ([]ybaclient.TableInfoResp, error) {
	u, drUUID, err := s.sourceDrConfigUUID(source)
	if err != nil {
		return nil, err
	}
	dr, err := s.client.GetDrConfig(drUUID)
	if err != nil {
		return nil, err
	}
	all, err := s.client.GetAllTables(u.GetUniverseUUID())
	if err != nil {
		return nil, err
	}
	return UnreplicatedTables(all, dr.Tables, s.tableType()), nil
}

// AddTables adds tables to the DR config the named universe is the source of.
// Every requested table must be a table of the source that can be replicated
// and must exist on the DR replica. The complete table set is resubmitted.
// It returns the UUID of the DR config and the number of tables added; tables
// that are already replicated are skipped.
func (s *Service) AddTables(source string, tableIDs []string) (string, int, error) {
	u, drUUID, err := s.sourceDrConfigUUID(source)
	if err != nil {
		return "", 0, err
	}
	dr, err := s.client.GetDrConfig(drUUID)
	if err != nil {
		return "", 0, err
	}
	all, err := s.client.GetAllTables(u.GetUniverseUUID())
	if err != nil {
		return "", 0, err
	}
	available := UnreplicatedTables(all, dr.Tables, s.tableType())

	added := make([]ybaclient.TableInfoResp, 0)
	unknown := make([]string, 0)
	for _, id := range MergeTableIDs(nil, tableIDs) {
		i := slices.IndexFunc(available, func(t ybaclient.TableInfoResp) bool {
			return t.GetTableID() == id
		})
		switch {
		case i >= 0:
			added = append(added, available[i])
		case slices.Contains(dr.Tables, id):
			logrus.Debugf("Table %s is already replicated\n", id)
		default:
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return "", 0, errors.Wrapf(ErrTableNotFound, "%s on universe '%s'",
			strings.Join(unknown, ", "), source)
	}
	if len(added) == 0 {
		return "", 0, errors.Wrapf(ErrNoTablesChanged, "DR config %s", dr.UUID)
	}

	if err := s.validateReplicaTables(dr.DrReplicaUniverseUUID, added); err != nil {
		return "", 0, err
	}

	addedIDs := make([]string, 0, len(added))
	for _, t := range added {
		if t.GetSizeBytes() > 0 {
			logrus.Warnf("Table %s.%s holds %s of data, adding it triggers a full bootstrap\n",
				t.GetKeySpace(), t.GetTableName(), humanize.Bytes(uint64(t.GetSizeBytes())))
		}
		addedIDs = append(addedIDs, t.GetTableID())
	}

	drUUID, err = s.setTables(dr, MergeTableIDs(dr.Tables, addedIDs), "Add YSQL Tables")
	if err != nil {
		return "", 0, err
	}
	return drUUID, len(addedIDs), nil
}

// RemoveTables removes tables from the DR config the named universe is the
// source of. Drop a table only after it has been removed from replication.
func (s *Service) RemoveTables(source string, tableIDs []string) (string, error) {
	dr, err := s.DrConfigForSource(source)
	if err != nil {
		return "", err
	}
	remaining := make([]string, 0, len(dr.Tables))
	for _, id := range dr.Tables {
		if !slices.Contains(tableIDs, id) {
			remaining = append(remaining, id)
		}
	}
	if len(remaining) == len(dr.Tables) {
		return "", errors.Wrapf(ErrNoTablesChanged, "DR config %s", dr.UUID)
	}
	return s.setTables(dr, remaining, "Removing YSQL Tables from xCluster DR")
}

func (s *Service) setTables(dr model.DrConfig, tables []string, label string) (string, error) {
	params := dr.BootstrapParams
	if params.BackupRequestParams.GetParallelism() <= 0 {
		params.BackupRequestParams.Parallelism = ybaclient.PtrInt32(int32(s.parallelism()))
	}
	task, err := s.client.SetTablesDrConfig(dr.UUID, ybaclient.DrConfigSetTablesForm{
		Tables:                 &tables,
		AutoIncludeIndexTables: ybaclient.PtrBool(true),
		BootstrapParams:        &params,
	})
	if err != nil {
		return "", err
	}
	if _, err := s.await(task, label); err != nil {
		return "", err
	}
	return dr.UUID, nil
}

type tableKey struct {
	keySpace, schema, name string
}

func keyOf(t ybaclient.TableInfoResp) tableKey {
	return tableKey{t.GetKeySpace(), t.GetPgSchemaName(), t.GetTableName()}
}

// validateReplicaTables checks that every table exists on the DR replica,
// matching on keyspace, schema and table name
func (s *Service) validateReplicaTables(
	replicaUUID string,
	tables []ybaclient.TableInfoResp,
) error {
	replicaTables, err := s.client.GetAllTables(replicaUUID)
	if err != nil {
		return err
	}
	onReplica := make(map[tableKey]bool, len(replicaTables))
	for _, t := range replicaTables {
		onReplica[keyOf(t)] = true
	}
	missing := make([]string, 0)
	for _, t := range tables {
		k := keyOf(t)
		if !onReplica[k] {
			missing = append(missing, k.keySpace+"."+k.schema+"."+k.name)
		}
	}
	if len(missing) > 0 {
		return errors.Wrapf(ErrTableMissingOnReplica, "%s", strings.Join(missing, ", "))
	}
	return nil
}
