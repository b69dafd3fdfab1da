/*
 * Copyright (c) YugabyteDB, Inc.
 */

package dr

import (
	"github.com/dataindataout/yb-day2ops/cmd/dr/drutil"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var syncDrCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile a DR config with the universes",
	Long: "Reconcile the DR config the source universe is the primary of with the " +
		"replication state stored on the universes, e.g. after tables were changed " +
		"outside of YugabyteDB Anywhere.",
	Example: `yb-day2ops dr sync --source-universe <source>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		drutil.SourceUniverse(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		svc, authAPI := drutil.NewService("sync")
		defer authAPI.Close()

		drUUID, err := svc.Sync(drutil.SourceUniverse(cmd))
		if err != nil {
			drutil.Fatal(err)
		}
		if svc.NoWait {
			return
		}
		logrus.Infof("The DR config %s has been synchronized\n",
			formatter.Colorize(drUUID, formatter.GreenColor))
	},
}
