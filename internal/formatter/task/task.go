/*
 * Copyright (c) YugabyteDB, Inc.
 */

package task

import (
	"encoding/json"
	"fmt"

	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/dataindataout/yb-day2ops/internal/model"
	"github.com/sirupsen/logrus"
)

const (
	defaultTaskListing = "table {{.Title}}\t{{.UUID}}\t{{.Target}}" +
		"\t{{.Status}}\t{{.Percent}}\t{{.CreateTime}}\t{{.CompletionTime}}"

	titleHeader          = "Title"
	targetHeader         = "Target(Target UUID)"
	percentHeader        = "Percent Complete"
	createTimeHeader     = "Creation Time"
	completionTimeHeader = "Completion Time"

	maxTitleLength = 60
)

// Context for task outputs
type Context struct {
	formatter.HeaderContext
	formatter.Context
	t model.TaskStatus
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
func Write(ctx formatter.Context, tasks []model.TaskStatus) error {
	if ctx.Format.IsJSON() || ctx.Format.IsPrettyJSON() {
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
		"Title":          titleHeader,
		"UUID":           formatter.UUIDHeader,
		"Target":         targetHeader,
		"Status":         formatter.StatusHeader,
		"Percent":        percentHeader,
		"CreateTime":     createTimeHeader,
		"CompletionTime": completionTimeHeader,
	}
	return &taskCtx
}

// UUID fetches Task UUID
func (c *Context) UUID() string {
	return c.t.ID
}

// Title fetches Task title
func (c *Context) Title() string {
	return formatter.Truncate(c.t.Title, maxTitleLength)
}

// Target fetches Task Target
func (c *Context) Target() string {
	if c.t.Target == "" && c.t.TargetUUID == "" {
		return "-"
	}
	return fmt.Sprintf("%s(%s)", c.t.Target, c.t.TargetUUID)
}

// Status fetches the task state
func (c *Context) Status() string {
	switch c.t.Status {
	case util.SuccessTaskStatus:
		return formatter.Colorize(c.t.Status, formatter.GreenColor)
	case util.FailureTaskStatus, util.AbortedTaskStatus:
		return formatter.Colorize(c.t.Status, formatter.RedColor)
	default:
		return formatter.Colorize(c.t.Status, formatter.YellowColor)
	}
}

// Percent fetches the completion percentage
func (c *Context) Percent() string {
	return fmt.Sprintf("%.0f%%", c.t.Percent)
}

// CreateTime fetches Task create time
func (c *Context) CreateTime() string {
	if c.t.CreateTime == "" {
		return "-"
	}
	return c.t.CreateTime
}

// CompletionTime fetches Task completion time
func (c *Context) CompletionTime() string {
	if c.t.CompletionTime == "" {
		return "-"
	}
	return c.t.CompletionTime
}

// MarshalJSON function
func (c *Context) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.t)
}
