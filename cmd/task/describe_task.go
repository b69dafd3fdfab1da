/*
 * Copyright (c) YugabyteDB, Inc.
 */

package task

import (
	ybaAuthClient "github.com/dataindataout/yb-day2ops/internal/client"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var describeTaskCmd = &cobra.Command{
	Use:     "describe",
	Aliases: []string{"get"},
	Short:   "Describe a YugabyteDB Anywhere task",
	Long:    "Show the status and progress of a YugabyteDB Anywhere task",
	Example: `yb-day2ops task describe --uuid <task-uuid>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		taskUUID(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		authAPI := ybaAuthClient.NewAuthAPIClientAndCustomer()
		defer authAPI.Close()

		t, err := authAPI.GetCustomerTaskStatus(taskUUID(cmd))
		if err != nil {
			logrus.Fatal(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		writeTask("describe", t)
	},
}
