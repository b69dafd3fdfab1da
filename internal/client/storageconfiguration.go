/*
 * Copyright (c) YugabyteDB, Inc.
 */

package client

import (
	ybaclient "github.com/yugabyte/platform-go-client"
)

// GetListOfCustomerConfig fetches all customer configs, of every type
func (a *AuthAPIClient) GetListOfCustomerConfig() ([]ybaclient.CustomerConfigUI, error) {
	r, response, err := a.APIClient.CustomerConfigurationApi.GetListOfCustomerConfig(
		a.ctx, a.CustomerUUID).Execute()
	if err != nil {
		return r, apiError(response, err, "List Customer Configs")
	}
	return r, nil
}
