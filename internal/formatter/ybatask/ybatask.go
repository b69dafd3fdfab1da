/*
 * Copyright (c) YugabyteDB, Inc.
 */

package ybatask

import (
	"encoding/json"

	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/sirupsen/logrus"
	ybaclient "github.com/yugabyte/platform-go-client"
)

const (
	defaultTaskListing = "table {{.TaskUUID}}\t{{.ResourceUUID}}\t{{.Operation}}"

	taskUUIDHeader     = "Task UUID"
	resourceUUIDHeader = "Resource UUID"
	operationHeader    = "Operation"
)

// SubmittedTask is a task that was submitted without waiting for it
type SubmittedTask struct {
	TaskUUID     string `json:"taskUUID"`
	ResourceUUID string `json:"resourceUUID"`
	Operation    string `json:"operation"`
}

// NewSubmittedTask labels a task handle returned by YugabyteDB Anywhere
func NewSubmittedTask(task ybaclient.YBPTask, operation string) SubmittedTask {
	return SubmittedTask{
		TaskUUID:     task.GetTaskUUID(),
		ResourceUUID: task.GetResourceUUID(),
		Operation:    operation,
	}
}

// Context for task outputs
type Context struct {
	formatter.HeaderContext
	formatter.Context
	t SubmittedTask
}

// NewTaskFormat for formatting output
func NewTaskFormat(source string) formatter.Format {
	switch source {
	case formatter.TableFormatKey, "":
		format := defaultTaskListing
		return formatter.Format(format)
	default: // custom format or json or pretty
		return formatter.Format(source)
	}
}

// Write renders the context for a list of Tasks
func Write(ctx formatter.Context, tasks []SubmittedTask) error {
	if (ctx.Format.IsJSON() || ctx.Format.IsPrettyJSON()) && ctx.Command.IsListCommand() {
		var output []byte
		var err error

		if ctx.Format.IsPrettyJSON() {
			output, err = json.MarshalIndent(tasks, "", "  ")
		} else {
			output, err = json.Marshal(tasks)
		}

		if err != nil {
			logrus.Errorf("Error marshaling tasks to json: %v\n", err)
			return err
		}

		_, err = ctx.Output.Write(output)
		return err
	}
	render := func(format func(subContext formatter.SubContext) error) error {
		for _, task := range tasks {
			err := format(&Context{t: task})
			if err != nil {
				logrus.Debugf("Error rendering task: %v", err)
				return err
			}
		}
		return nil
	}
	return ctx.Write(NewTaskContext(), render)
}

// NewTaskContext creates a new context for rendering task
func NewTaskContext() *Context {
	taskCtx := Context{}
	taskCtx.Header = formatter.SubHeaderContext{
		"TaskUUID":     taskUUIDHeader,
		"ResourceUUID": resourceUUIDHeader,
		"Operation":    operationHeader,
	}
	return &taskCtx
}

// TaskUUID fetches the task UUID
func (c *Context) TaskUUID() string {
	return c.t.TaskUUID
}

// ResourceUUID fetches the resource UUID
func (c *Context) ResourceUUID() string {
	return c.t.ResourceUUID
}

// Operation fetches the operation the task runs
func (c *Context) Operation() string {
	return c.t.Operation
}

// MarshalJSON function
func (c *Context) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.t)
}
