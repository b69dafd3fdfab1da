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

var failoverDrCmd = &cobra.Command{
	Use:   "failover",
	Short: "Promote the DR replica of a DR config",
	Long: "Perform an unplanned failover: the DR replica is restored to the latest " +
		"safetime of each database and promoted to primary. Writes not yet " +
		"replicated are lost. Run \"dr recover\" afterwards to protect the new primary.",
	Example: `yb-day2ops dr failover --source-universe <source>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		source := drutil.SourceUniverse(cmd)
		drutil.Confirm(cmd, fmt.Sprintf(
			"Are you sure you want to fail over the DR config of universe: %s", source))
	},
	Run: func(cmd *cobra.Command, args []string) {
		svc, authAPI := drutil.NewService("failover")
		defer authAPI.Close()

		drUUID, err := svc.Failover(drutil.SourceUniverse(cmd))
		if err != nil {
			drutil.Failed("Failover", err)
			return
		}
		if svc.NoWait {
			return
		}
		logrus.Infof("Failover of DR config %s completed\n",
			formatter.Colorize(drUUID, formatter.GreenColor))
		d, err := authAPI.GetDrConfig(drUUID)
		if err != nil {
			drutil.Failed("Failover", err)
			return
		}
		drutil.WriteFullDrConfig(authAPI, "failover", d, drutil.StateHelp(d.State))
	},
}

func init() {
	failoverDrCmd.Flags().SortFlags = false
	drutil.AddForceFlag(failoverDrCmd)
}
