/*
 * Copyright (c) YugabyteDB, Inc.
 */

package client

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/dataindataout/yb-day2ops/internal/ybafake"
	ybaclient "github.com/yugabyte/platform-go-client"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func taskPolls(s *ybafake.Server) int {
	n := 0
	for _, r := range s.Requests() {
		if strings.Contains(r.Path, "/tasks/") && !strings.HasSuffix(r.Path, "/failed") {
			n++
		}
	}
	return n
}

func TestWaitForTaskWithoutTaskUUID(t *testing.T) {
	s := ybafake.NewServer()
	defer s.Close()
	c, out := newTestClient(t, s)

	_, err := c.WaitForTask(ybaclient.YBPTask{ResourceUUID: ybaclient.PtrString("r")}, "Create xCluster DR")
	assert.Check(t, errors.Is(err, ErrMalformedTaskResponse))
	assert.Check(t, errors.Is(err, ErrMalformedResponse))
	assert.Check(t, is.Len(s.Requests(), 0))
	assert.Check(t, is.Equal("", out.String()))
}

func TestWaitForTaskReportsProgress(t *testing.T) {
	s := ybafake.NewServer()
	defer s.Close()
	c, out := newTestClient(t, s)
	s.NextTaskScript([]ybafake.TaskStep{
		{Status: util.RunningTaskStatus, Percent: 10},
		{Status: util.RunningTaskStatus, Percent: 55.4},
		{Status: util.SuccessTaskStatus, Percent: 100},
	})
	task := s.SubmitTask("Create DR Config")

	r, err := c.WaitForTask(task, "Create xCluster DR")
	assert.NilError(t, err)
	assert.Check(t, is.Equal(util.SuccessTaskStatus, r.Status))
	assert.Check(t, is.Equal("Create DR Config", r.Title))
	assert.Check(t, is.Equal(3, taskPolls(s)))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Assert(t, is.Len(lines, 3))
	assert.Check(t, is.Equal(
		"Waiting for 'Create xCluster DR' (task='"+task.GetTaskUUID()+"'): 10% complete...",
		lines[0]))
	assert.Check(t, is.Equal(
		"Waiting for 'Create xCluster DR' (task='"+task.GetTaskUUID()+"'): 55% complete...",
		lines[1]))
	assert.Check(t, is.Equal(
		"Task 'Create xCluster DR': "+task.GetTaskUUID()+" finished successfully!",
		lines[2]))
}

func TestWaitForTaskFailureCarriesSubtaskErrors(t *testing.T) {
	s := ybafake.NewServer()
	defer s.Close()
	c, _ := newTestClient(t, s)
	s.NextTaskScript([]ybafake.TaskStep{
		{Status: util.RunningTaskStatus, Percent: 20},
		{Status: util.FailureTaskStatus, Percent: 40},
	}, "backup failed", "restore failed")
	task := s.SubmitTask("Failover DR Config")

	r, err := c.WaitForTask(task, "Failover XCluster DR")
	assert.Check(t, is.Equal(util.FailureTaskStatus, r.Status))
	var failed *TaskFailedError
	assert.Assert(t, errors.As(err, &failed))
	assert.Check(t, is.DeepEqual([]string{"backup failed", "restore failed"}, failed.Errors))
	assert.Check(t, is.Equal(task.GetTaskUUID(), failed.TaskUUID))
	assert.Check(t, is.Contains(err.Error(), "backup failed\nrestore failed"))
	assert.Check(t, is.Equal(1, s.CountRequests("GET", "/failed")))
}

func TestWaitForTaskFailureWithoutDetails(t *testing.T) {
	s := ybafake.NewServer()
	defer s.Close()
	c, _ := newTestClient(t, s)
	s.NextTaskScript([]ybafake.TaskStep{{Status: util.FailureTaskStatus}})
	task := s.SubmitTask("Sync DR Config")

	_, err := c.WaitForTask(task, "Synchronize XCluster DR")
	var failed *TaskFailedError
	assert.Assert(t, errors.As(err, &failed))
	assert.Check(t, is.Len(failed.Errors, 0))
	assert.Check(t, is.Equal(
		"Task 'Synchronize XCluster DR': "+task.GetTaskUUID()+
			" failed, but could not get the failure messages",
		err.Error()))
}

func TestWaitForTaskAborted(t *testing.T) {
	s := ybafake.NewServer()
	defer s.Close()
	c, _ := newTestClient(t, s)
	s.NextTaskScript([]ybafake.TaskStep{{Status: util.AbortedTaskStatus}})

	_, err := c.WaitForTask(s.SubmitTask("Restart DR Config"), "Repair XCluster DR")
	var failed *TaskFailedError
	assert.Assert(t, errors.As(err, &failed))
	assert.Check(t, is.Equal(util.AbortedTaskStatus, failed.Status))
}

func TestWaitForTaskTimeout(t *testing.T) {
	s := ybafake.NewServer()
	defer s.Close()
	c, _ := newTestClient(t, s)
	c.PollInterval = 5 * time.Millisecond
	c.WaitTimeout = 30 * time.Millisecond
	s.NextTaskScript([]ybafake.TaskStep{{Status: util.RunningTaskStatus, Percent: 1}})

	_, err := c.WaitForTask(s.SubmitTask("Create DR Config"), "Create xCluster DR")
	assert.Check(t, errors.Is(err, ErrWaitTimeout))
}

func TestWaitForTaskStopsOnCancel(t *testing.T) {
	s := ybafake.NewServer()
	defer s.Close()
	c, _ := newTestClient(t, s)
	c.PollInterval = time.Hour
	s.NextTaskScript([]ybafake.TaskStep{{Status: util.RunningTaskStatus, Percent: 1}})
	task := s.SubmitTask("Create DR Config")

	ctx, cancel := context.WithCancel(context.Background())
	c.WithContext(ctx)
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := c.WaitForTask(task, "Create xCluster DR")
	assert.Check(t, errors.Is(err, context.Canceled))
	assert.Check(t, is.Equal(1, taskPolls(s)))
}
