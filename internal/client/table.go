/*
 * Copyright (c) YugabyteDB, Inc.
 */

package client

import (
	"fmt"
	"net/http"

	ybaclient "github.com/yugabyte/platform-go-client"
)

// GetAllTables fetches the tables of a universe that can be used with
// xCluster. The generated client has no table listing operation.
func (a *AuthAPIClient) GetAllTables(uUUID string) ([]ybaclient.TableInfoResp, error) {
	r := make([]ybaclient.TableInfoResp, 0)
	err := a.callJSON(http.MethodGet,
		fmt.Sprintf("universes/%s/tables?includeParentTableInfo=false"+
			"&onlySupportedForXCluster=true", uUUID),
		"List Tables", &r)
	return r, err
}

// GetAllNamespaces fetches the databases and keyspaces of a universe. The
// generated client has no namespace listing operation.
func (a *AuthAPIClient) GetAllNamespaces(uUUID string) ([]ybaclient.NamespaceInfoResp, error) {
	r := make([]ybaclient.NamespaceInfoResp, 0)
	err := a.callJSON(http.MethodGet,
		fmt.Sprintf("universes/%s/namespaces", uUUID),
		"List Namespaces", &r)
	return r, err
}
