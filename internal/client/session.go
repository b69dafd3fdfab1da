/*
 * Copyright (c) YugabyteDB, Inc.
 */

package client

import (
	"github.com/pkg/errors"
	ybaclient "github.com/yugabyte/platform-go-client"
)

// GetSessionInfo fetches YugabyteDB Anywhere session info
func (a *AuthAPIClient) GetSessionInfo() (ybaclient.SessionInfo, error) {
	r, response, err := a.APIClient.SessionManagementApi.GetSessionInfo(a.ctx).Execute()
	if err != nil {
		return r, apiError(response, err, "Get Session Info")
	}
	return r, nil
}

// GetCustomerUUID fetches YugabyteDB Anywhere customer UUID
func (a *AuthAPIClient) GetCustomerUUID() error {
	r, err := a.GetSessionInfo()
	if err != nil {
		return err
	}
	if r.GetCustomerUUID() == "" {
		return errors.Wrap(ErrMalformedResponse, "could not retrieve Customer UUID")
	}
	a.CustomerUUID = r.GetCustomerUUID()
	return nil
}
