/*
 * Copyright (c) YugabyteDB, Inc.
 */

package client

import (
	"fmt"
	"net/http"

	"github.com/dataindataout/yb-day2ops/internal/model"
	ybaclient "github.com/yugabyte/platform-go-client"
)

// CreateDrConfig submits a new DR config
func (a *AuthAPIClient) CreateDrConfig(form ybaclient.DrConfigCreateForm) (ybaclient.YBPTask, error) {
	r, response, err := a.APIClient.DisasterRecoveryApi.CreateDrConfig(a.ctx, a.CustomerUUID).
		DisasterRecoveryCreateFormData(form).Execute()
	if err != nil {
		return r, apiError(response, err, "Create DR Config")
	}
	return r, nil
}

// GetDrConfig fetches a DR config. The generated ybaclient.DrConfig has no
// tables, pause state or xCluster config UUID, so the call is made directly.
func (a *AuthAPIClient) GetDrConfig(drUUID string) (model.DrConfig, error) {
	r := model.DrConfig{}
	err := a.callJSON(http.MethodGet,
		fmt.Sprintf("dr_configs/%s", drUUID),
		"Get DR Config", &r)
	return r, err
}

// GetDrConfigRaw fetches a DR config as returned by the server, including
// fields the typed record does not carry
func (a *AuthAPIClient) GetDrConfigRaw(drUUID string) (map[string]interface{}, error) {
	r := make(map[string]interface{})
	err := a.callJSON(http.MethodGet,
		fmt.Sprintf("dr_configs/%s", drUUID),
		"Get DR Config", &r)
	return r, err
}

// DeleteDrConfig deletes a DR config, force skips errors on the replica side
func (a *AuthAPIClient) DeleteDrConfig(drUUID string, force bool) (ybaclient.YBPTask, error) {
	r, response, err := a.APIClient.DisasterRecoveryApi.DeleteXClusterConfig(
		a.ctx, a.CustomerUUID, drUUID).IsForceDelete(force).Execute()
	if err != nil {
		return r, apiError(response, err, "Delete DR Config")
	}
	return r, nil
}

// SetTablesDrConfig replaces the replicated table set of a DR config
func (a *AuthAPIClient) SetTablesDrConfig(
	drUUID string,
	form ybaclient.DrConfigSetTablesForm,
) (ybaclient.YBPTask, error) {
	r, response, err := a.APIClient.DisasterRecoveryApi.SetTablesDrConfig(
		a.ctx, a.CustomerUUID, drUUID).DisasterRecoverySetTablesFormData(form).Execute()
	if err != nil {
		return r, apiError(response, err, "Set Tables DR Config")
	}
	return r, nil
}

// SwitchoverDrConfig swaps the primary and replica roles of a DR config
func (a *AuthAPIClient) SwitchoverDrConfig(
	drUUID string,
	form ybaclient.DrConfigSwitchoverForm,
) (ybaclient.YBPTask, error) {
	r, response, err := a.APIClient.DisasterRecoveryApi.SwitchoverDrConfig(
		a.ctx, a.CustomerUUID, drUUID).DisasterRecoverySwitchoverFormData(form).Execute()
	if err != nil {
		return r, apiError(response, err, "Switchover DR Config")
	}
	return r, nil
}

// FailoverDrConfig promotes the replica of a DR config
func (a *AuthAPIClient) FailoverDrConfig(
	drUUID string,
	form ybaclient.DrConfigFailoverForm,
) (ybaclient.YBPTask, error) {
	r, response, err := a.APIClient.DisasterRecoveryApi.FailoverDrConfig(
		a.ctx, a.CustomerUUID, drUUID).DisasterRecoveryFailoverFormData(form).Execute()
	if err != nil {
		return r, apiError(response, err, "Failover DR Config")
	}
	return r, nil
}

// RestartDrConfig re-bootstraps replication of a DR config
func (a *AuthAPIClient) RestartDrConfig(
	drUUID string,
	form ybaclient.DrConfigRestartForm,
	force bool,
) (ybaclient.YBPTask, error) {
	r, response, err := a.APIClient.DisasterRecoveryApi.RestartDrConfig(
		a.ctx, a.CustomerUUID, drUUID).
		DisasterRecoveryRestartFormData(form).
		IsForceDelete(force).Execute()
	if err != nil {
		return r, apiError(response, err, "Restart DR Config")
	}
	return r, nil
}

// SyncDrConfig reconciles the DR config with the replication state on the universes
func (a *AuthAPIClient) SyncDrConfig(drUUID string) (ybaclient.YBPTask, error) {
	r, response, err := a.APIClient.DisasterRecoveryApi.SyncDrConfig(
		a.ctx, a.CustomerUUID, drUUID).Execute()
	if err != nil {
		return r, apiError(response, err, "Sync DR Config")
	}
	return r, nil
}

// GetDrConfigSafetime fetches the current per namespace safe times of a DR config
func (a *AuthAPIClient) GetDrConfigSafetime(drUUID string) (ybaclient.DrConfigSafetimeResp, error) {
	r, response, err := a.APIClient.DisasterRecoveryApi.GetDrConfigSafetime(
		a.ctx, a.CustomerUUID, drUUID).Execute()
	if err != nil {
		return r, apiError(response, err, "Get DR Config Safetime")
	}
	return r, nil
}
