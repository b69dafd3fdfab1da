/*
 * Copyright (c) YugabyteDB, Inc.
 */

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RestAPIParameters is a struct to hold the parameters for a REST API call
// to an endpoint the generated client does not cover or decodes lossily
type RestAPIParameters struct {
	reqBytes        []byte
	method          string
	urlRoute        string
	operationString string
}

// RestAPICall makes a REST call to /api/v1/customers/{customer}/{route}
// with the host, headers and HTTP client of the generated API client
func (a *AuthAPIClient) RestAPICall(
	params RestAPIParameters,
) ([]byte, error) {
	cfg := a.APIClient.GetConfig()
	requestURL := fmt.Sprintf("%s://%s/api/v1/customers/%s/%s",
		cfg.Scheme, cfg.Host, a.CustomerUUID, params.urlRoute)

	var reqBody io.Reader
	if params.reqBytes != nil {
		reqBody = bytes.NewBuffer(params.reqBytes)
	}

	req, err := http.NewRequestWithContext(a.ctx, params.method, requestURL, reqBody)
	if err != nil {
		return nil, &TransportError{
			Operation: params.operationString,
			Method:    params.method,
			URL:       requestURL,
			Err:       err,
		}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)
	for k, v := range cfg.DefaultHeader {
		req.Header.Set(k, v)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logrus.Debugf("%s %s\n", params.method, requestURL)
	r, err := httpClient.Do(req)
	if err != nil {
		return nil, apiError(nil, err, params.operationString)
	}
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, &TransportError{
			Operation:  params.operationString,
			Method:     params.method,
			URL:        requestURL,
			StatusCode: r.StatusCode,
			Err:        errors.Wrap(err, "reading response body"),
		}
	}
	logrus.Debugf("%s %s returned %d\n", params.method, requestURL, r.StatusCode)

	if r.StatusCode < 200 || r.StatusCode > 299 {
		return nil, statusError(r, body, params.operationString)
	}
	return body, nil
}

// callJSON executes a bodiless call and decodes the response into out
func (a *AuthAPIClient) callJSON(method, route, operation string, out interface{}) error {
	body, err := a.RestAPICall(RestAPIParameters{
		method:          method,
		urlRoute:        route,
		operationString: operation,
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(ErrMalformedResponse, "%s: %s", operation, err.Error())
	}
	return nil
}
