/*
 * Copyright (c) YugabyteDB, Inc.
 */

package task

import (
	"os"

	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/dataindataout/yb-day2ops/internal/formatter/task"
	"github.com/dataindataout/yb-day2ops/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// TaskCmd set of commands are used to follow tasks submitted with --wait=false
var TaskCmd = &cobra.Command{
	Use:   "task",
	Short: "Follow YugabyteDB Anywhere tasks",
	Long:  "Show or wait for YugabyteDB Anywhere tasks, such as DR operations submitted with --wait=false",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	TaskCmd.PersistentFlags().StringP("uuid", "u", "",
		"[Required] The task UUID, as printed when the task was submitted.")
	TaskCmd.AddCommand(describeTaskCmd)
	TaskCmd.AddCommand(waitTaskCmd)
}

// taskUUID returns the validated --uuid value
func taskUUID(cmd *cobra.Command) string {
	value, err := cmd.Flags().GetString("uuid")
	if err != nil {
		logrus.Fatal(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
	}
	if len(value) == 0 {
		cmd.Help()
		logrus.Fatalln(formatter.Colorize("No task uuid found\n", formatter.RedColor))
	}
	if _, err := uuid.Parse(value); err != nil {
		logrus.Fatal(formatter.Colorize(
			errors.Wrapf(err, "invalid task uuid %q", value).Error()+"\n", formatter.RedColor))
	}
	return value
}

func writeTask(operation string, t model.TaskStatus) {
	taskCtx := formatter.Context{
		Command: formatter.Command(operation),
		Output:  os.Stdout,
		Format:  task.NewTaskFormat(viper.GetString("output")),
	}
	task.Write(taskCtx, []model.TaskStatus{t})
}
