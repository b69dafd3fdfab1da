/*
 * Copyright (c) YugabyteDB, Inc.
 */

package client

import (
	ybaclient "github.com/yugabyte/platform-go-client"
)

// ListUniversesByName fetches the universes with the given name. YugabyteDB
// Anywhere returns an empty list when none match.
func (a *AuthAPIClient) ListUniversesByName(name string) ([]ybaclient.UniverseResp, error) {
	r, response, err := a.APIClient.UniverseManagementApi.ListUniverses(
		a.ctx, a.CustomerUUID).Name(name).Execute()
	if err != nil {
		return r, apiError(response, err, "List Universes")
	}
	return r, nil
}

// GetUniverse fetches a universe by UUID
func (a *AuthAPIClient) GetUniverse(uUUID string) (ybaclient.UniverseResp, error) {
	r, response, err := a.APIClient.UniverseManagementApi.GetUniverse(
		a.ctx, a.CustomerUUID, uUUID).Execute()
	if err != nil {
		return r, apiError(response, err, "Get Universe")
	}
	return r, nil
}
