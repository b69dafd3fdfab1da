/*
 * Copyright (c) YugabyteDB, Inc.
 */

package client

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/dataindataout/yb-day2ops/internal/model"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	ybaclient "github.com/yugabyte/platform-go-client"
	"golang.org/x/exp/slices"
	"golang.org/x/term"
)

// GetCustomerTaskStatus fetches the customer task status
func (a *AuthAPIClient) GetCustomerTaskStatus(taskUUID string) (model.TaskStatus, error) {
	r := model.TaskStatus{}
	status, response, err := a.APIClient.CustomerTasksApi.TaskStatus(
		a.ctx, a.CustomerUUID, taskUUID).Execute()
	if err != nil {
		return r, apiError(response, err, "Get Task Status")
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &r,
	})
	if err != nil {
		return r, err
	}
	if err := decoder.Decode(status); err != nil {
		return r, errors.Wrapf(ErrMalformedResponse, "task %s status: %s", taskUUID, err.Error())
	}
	if r.Status == "" {
		return r, errors.Wrapf(ErrMalformedResponse, "task %s status has no state", taskUUID)
	}
	return r, nil
}

// ListFailedSubtasks fetches the failed subtasks of a task. The generated
// FailedSubtasks call decodes tasks/{uuid}/failed into a map of maps, which
// does not match the payload, so the call is made directly.
func (a *AuthAPIClient) ListFailedSubtasks(taskUUID string) (ybaclient.FailedSubtasks, error) {
	r := ybaclient.FailedSubtasks{}
	err := a.callJSON(http.MethodGet,
		fmt.Sprintf("tasks/%s/failed", taskUUID),
		"Get Failed Tasks", &r)
	return r, err
}

// WaitForTask polls a YugabyteDB Anywhere task until it reaches a terminal
// state. Success returns the final task status; Failure and Aborted return a
// *TaskFailedError carrying the errors of the failed subtasks. Polling is
// unbounded unless WaitTimeout is set, and stops early if the client context
// is cancelled. Neither case aborts the task on the server.
func (a *AuthAPIClient) WaitForTask(
	task ybaclient.YBPTask,
	label string,
) (model.TaskStatus, error) {
	taskUUID := task.GetTaskUUID()
	if taskUUID == "" {
		return model.TaskStatus{},
			errors.Wrapf(ErrMalformedTaskResponse, "failed to process '%s'", label)
	}

	var s *spinner.Spinner
	if a.useSpinner() {
		s = spinner.New(spinner.CharSets[36], 300*time.Millisecond)
		s.Color(formatter.GreenColor)
		s.Suffix = fmt.Sprintf(" Waiting for '%s' (task='%s')", label, taskUUID)
		s.FinalMSG = ""
		s.Start()
		defer s.Stop()
	}

	var timeout <-chan time.Time
	if a.WaitTimeout > 0 {
		timer := time.NewTimer(a.WaitTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	for {
		r, err := a.GetCustomerTaskStatus(taskUUID)
		if err != nil {
			return r, err
		}

		if r.Status == util.SuccessTaskStatus {
			if s != nil {
				s.Stop()
			}
			a.report(fmt.Sprintf("Task '%s': %s finished successfully!", label, taskUUID))
			return r, nil
		}
		if slices.Contains(util.ErrorTaskStates(), r.Status) {
			if s != nil {
				s.Stop()
			}
			return r, a.taskFailure(taskUUID, label, r.Status)
		}

		progress := fmt.Sprintf("Waiting for '%s' (task='%s'): %.0f%% complete...",
			label, taskUUID, r.Percent)
		if s != nil {
			s.Suffix = " " + progress
		} else {
			a.report(progress)
		}

		select {
		case <-a.ctx.Done():
			return r, errors.Wrapf(a.ctx.Err(),
				"stopped waiting for '%s' (task='%s'), the task could still be running",
				label, taskUUID)
		case <-timeout:
			return r, errors.Wrapf(ErrWaitTimeout, "'%s' (task='%s')", label, taskUUID)
		case <-time.After(a.PollInterval):
		}
	}
}

func (a *AuthAPIClient) taskFailure(taskUUID, label, status string) error {
	failure := &TaskFailedError{
		TaskUUID: taskUUID,
		Label:    label,
		Status:   status,
	}
	r, err := a.ListFailedSubtasks(taskUUID)
	if err != nil {
		logrus.Debugf("Could not fetch failed subtasks of %s: %s\n", taskUUID, err.Error())
		return failure
	}
	for _, f := range r.GetFailedSubTasks() {
		logrus.Debugf("SubTaskType: \"%s\", Error: \"%s\"\n",
			f.GetSubTaskType(), f.GetErrorString())
		if f.GetErrorString() != "" {
			failure.Errors = append(failure.Errors, f.GetErrorString())
		}
	}
	return failure
}

// report writes a poller message to Progress, or logs it
func (a *AuthAPIClient) report(message string) {
	if a.Progress != nil {
		fmt.Fprintln(a.Progress, message)
		return
	}
	logrus.Info(message + "\n")
}

// useSpinner is true for interactive terminals outside of CI
func (a *AuthAPIClient) useSpinner() bool {
	if a.Progress != nil {
		return false
	}
	if strings.ToLower(os.Getenv("YBA_CI")) == "true" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
