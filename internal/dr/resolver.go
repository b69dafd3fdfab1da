/*
 * Copyright (c) YugabyteDB, Inc.
 */

package dr

import (
	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/dataindataout/yb-day2ops/internal/model"
	"github.com/pkg/errors"
	ybaclient "github.com/yugabyte/platform-go-client"
)

// Universe looks up a universe by its name
func (s *Service) Universe(name string) (ybaclient.UniverseResp, error) {
	r, err := s.client.ListUniversesByName(name)
	if err != nil {
		return ybaclient.UniverseResp{}, err
	}
	if len(r) == 0 {
		return ybaclient.UniverseResp{}, errors.Wrapf(ErrUniverseNotFound, "'%s'", name)
	}
	return r[0], nil
}

// sourceDrConfigUUID returns the universe and the UUID of the DR config it is the source of
func (s *Service) sourceDrConfigUUID(name string) (ybaclient.UniverseResp, string, error) {
	u, err := s.Universe(name)
	if err != nil {
		return u, "", err
	}
	drUUIDs := u.GetDrConfigUuidsAsSource()
	if len(drUUIDs) == 0 {
		return u, "", errors.Wrapf(ErrNoDrConfig, "'%s'", name)
	}
	return u, drUUIDs[0], nil
}

// DrConfigForSource returns the DR config the named universe is the source of
func (s *Service) DrConfigForSource(name string) (model.DrConfig, error) {
	_, drUUID, err := s.sourceDrConfigUUID(name)
	if err != nil {
		return model.DrConfig{}, err
	}
	return s.client.GetDrConfig(drUUID)
}

// ResolveDrConfig returns one field of the DR config the named universe is
// the source of, or the whole config as returned by the server when field is
// "all"
func (s *Service) ResolveDrConfig(name, field string) (interface{}, error) {
	_, drUUID, err := s.sourceDrConfigUUID(name)
	if err != nil {
		return nil, err
	}
	raw, err := s.client.GetDrConfigRaw(drUUID)
	if err != nil {
		return nil, err
	}
	if field == "" || field == util.AllDrConfigFields {
		return raw, nil
	}
	v, ok := raw[field]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDrConfigField, "'%s'", field)
	}
	return v, nil
}

// DescribeUniverse returns the full record of the named universe
func (s *Service) DescribeUniverse(name string) (ybaclient.UniverseResp, error) {
	u, err := s.Universe(name)
	if err != nil {
		return u, err
	}
	return s.client.GetUniverse(u.GetUniverseUUID())
}

// Status is a point in time view of a DR config
type Status struct {
	DrConfig              model.DrConfig
	XClusterConfig        ybaclient.XClusterConfigGetResp
	PrimaryUniverseName   string
	DrReplicaUniverseName string
}

// Status returns the DR config the named universe is the source of, together
// with its xCluster config and the names of both universes
func (s *Service) Status(name string) (Status, error) {
	dr, err := s.DrConfigForSource(name)
	if err != nil {
		return Status{}, err
	}
	st := Status{DrConfig: dr, PrimaryUniverseName: name}
	replica, err := s.client.GetUniverse(dr.DrReplicaUniverseUUID)
	if err != nil {
		return st, err
	}
	st.DrReplicaUniverseName = replica.GetName()
	st.XClusterConfig, err = s.client.GetXClusterConfig(dr.XClusterConfigUUID)
	return st, err
}
