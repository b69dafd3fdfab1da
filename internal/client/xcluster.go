/*
 * Copyright (c) YugabyteDB, Inc.
 */

package client

import (
	ybaclient "github.com/yugabyte/platform-go-client"
)

// GetXClusterConfig get xCluster config
func (a *AuthAPIClient) GetXClusterConfig(xclusterUUID string) (ybaclient.XClusterConfigGetResp, error) {
	r, response, err := a.APIClient.AsynchronousReplicationApi.GetXClusterConfig(
		a.ctx, a.CustomerUUID, xclusterUUID).Execute()
	if err != nil {
		return r, apiError(response, err, "Get xCluster Config")
	}
	return r, nil
}

// EditXClusterConfig edit xCluster config
func (a *AuthAPIClient) EditXClusterConfig(
	xclusterUUID string,
	form ybaclient.XClusterConfigEditFormData,
) (ybaclient.YBPTask, error) {
	r, response, err := a.APIClient.AsynchronousReplicationApi.EditXClusterConfig(
		a.ctx, a.CustomerUUID, xclusterUUID).XclusterReplicationEditFormData(form).Execute()
	if err != nil {
		return r, apiError(response, err, "Edit xCluster Config")
	}
	return r, nil
}
