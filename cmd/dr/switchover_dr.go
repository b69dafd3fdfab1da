/*
 * Copyright (c) YugabyteDB, Inc.
 */

package dr

import (
	"fmt"

	"github.com/dataindataout/yb-day2ops/cmd/dr/drutil"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var switchoverDrCmd = &cobra.Command{
	Use:   "switchover",
	Short: "Swap the primary and DR replica of a DR config",
	Long: "Perform a planned switchover: the DR replica becomes the primary and the " +
		"source universe becomes the DR replica. Replication is drained first, so " +
		"no data is lost. Stop writes to the source universe before running it.",
	Example: `yb-day2ops dr switchover --source-universe <source>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		source := drutil.SourceUniverse(cmd)
		drutil.Confirm(cmd, fmt.Sprintf(
			"Are you sure you want to switch over the DR config of universe: %s", source))
	},
	Run: func(cmd *cobra.Command, args []string) {
		svc, authAPI := drutil.NewService("switchover")
		defer authAPI.Close()

		drUUID, err := svc.Switchover(drutil.SourceUniverse(cmd))
		if err != nil {
			drutil.Failed("Switchover", err)
			return
		}
		if svc.NoWait {
			return
		}
		logrus.Infof("Switchover of DR config %s completed\n",
			formatter.Colorize(drUUID, formatter.GreenColor))
		d, err := authAPI.GetDrConfig(drUUID)
		if err != nil {
			drutil.Failed("Switchover", err)
			return
		}
		drutil.WriteDrConfig(authAPI, "switchover", d)
	},
}

func init() {
	switchoverDrCmd.Flags().SortFlags = false
	drutil.AddForceFlag(switchoverDrCmd)
}
