/*
 * Copyright (c) YugabyteDB, Inc.
 */

package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/pkg/errors"
	ybaclient "github.com/yugabyte/platform-go-client"
)

// Error categories. Every error returned by this package and by the DR
// operations built on it matches one of these with errors.Is, or is a
// *TaskFailedError or *TransportError.
var (
	// ErrNotFound is returned when a universe, DR config or storage config is absent
	ErrNotFound = errors.New("not found")
	// ErrPreconditionFailed is returned when the backend state does not allow an operation
	ErrPreconditionFailed = errors.New("precondition failed")
	// ErrMalformedResponse is returned when an expected field is missing from a payload
	ErrMalformedResponse = errors.New("malformed response")

	// ErrMalformedTaskResponse is returned when a submitted operation did not
	// return a task UUID
	ErrMalformedTaskResponse = NewCategoryError(ErrMalformedResponse,
		"response has no task UUID")
)

type categoryError struct {
	category error
	msg      string
}

func (e *categoryError) Error() string { return e.msg }

func (e *categoryError) Unwrap() error { return e.category }

// NewCategoryError returns a sentinel error reading as msg that matches
// category with errors.Is
func NewCategoryError(category error, msg string) error {
	return &categoryError{category: category, msg: msg}
}

// TaskFailedError is returned when an asynchronous YugabyteDB Anywhere task
// reaches Failure or Aborted
type TaskFailedError struct {
	TaskUUID string
	Label    string
	Status   string
	// Errors holds the error strings of all failed subtasks
	Errors []string
}

func (e *TaskFailedError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("Task '%s': %s failed, but could not get the failure messages",
			e.Label, e.TaskUUID)
	}
	return fmt.Sprintf("Task '%s': %s failed with the following errors: %s",
		e.Label, e.TaskUUID, strings.Join(e.Errors, "\n"))
}

// TransportError is returned on connection, TLS or HTTP level failures
type TransportError struct {
	Operation string
	Method    string
	URL       string
	// StatusCode is 0 when no response was received
	StatusCode int
	// Message is the error reported by YugabyteDB Anywhere, if any
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("%s: %s %s", e.Operation, e.Method, e.URL)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s returned %d", msg, e.StatusCode)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err.Error())
	}
	return msg
}

// Unwrap exposes ErrNotFound for 404 responses and the underlying network error otherwise
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrWaitTimeout is returned when polling exceeds the configured wait timeout.
// The task itself is not aborted.
var ErrWaitTimeout = errors.New("wait timeout, operation could still be on-going")

// apiError maps the error of a generated client call to the categories of
// this package. A failed decode of a 2xx response is ErrMalformedResponse.
func apiError(r *http.Response, err error, operation string) error {
	if r == nil {
		transportErr := &TransportError{Operation: operation, Err: err}
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			transportErr.Method = urlErr.Op
			transportErr.URL = urlErr.URL
			transportErr.Err = urlErr.Err
		}
		return transportErr
	}
	var body []byte
	var openAPIErr ybaclient.GenericOpenAPIError
	if errors.As(err, &openAPIErr) {
		body = openAPIErr.Body()
	}
	if r.StatusCode >= 200 && r.StatusCode <= 299 {
		return errors.Wrapf(ErrMalformedResponse, "%s: %s", operation, err.Error())
	}
	return statusError(r, body, operation)
}

func statusError(r *http.Response, body []byte, operation string) error {
	transportErr := &TransportError{
		Operation:  operation,
		StatusCode: r.StatusCode,
		Message:    util.ErrorFromBody(body),
	}
	if r.Request != nil {
		transportErr.Method = r.Request.Method
		transportErr.URL = r.Request.URL.String()
	}
	if r.StatusCode == http.StatusNotFound {
		transportErr.Err = ErrNotFound
	}
	return transportErr
}
