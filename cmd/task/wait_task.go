/*
 * Copyright (c) YugabyteDB, Inc.
 */

package task

import (
	ybaAuthClient "github.com/dataindataout/yb-day2ops/internal/client"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	ybaclient "github.com/yugabyte/platform-go-client"
)

var waitTaskCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for a YugabyteDB Anywhere task to finish",
	Long: "Poll a YugabyteDB Anywhere task until it succeeds or fails. " +
		"Use it to follow an operation submitted with --wait=false.",
	Example: `yb-day2ops task wait --uuid <task-uuid> --timeout 30m`,
	PreRun: func(cmd *cobra.Command, args []string) {
		taskUUID(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		authAPI := ybaAuthClient.NewAuthAPIClientAndCustomer()
		defer authAPI.Close()

		id := taskUUID(cmd)
		label := "task"
		if t, err := authAPI.GetCustomerTaskStatus(id); err == nil && t.Title != "" {
			label = t.Title
		}
		t, err := authAPI.WaitForTask(ybaclient.YBPTask{TaskUUID: ybaclient.PtrString(id)}, label)
		if err != nil {
			logrus.Fatal(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		writeTask("wait", t)
	},
}
