/*
 * Copyright (c) YugabyteDB, Inc.
 */

package dr

import (
	"github.com/dataindataout/yb-day2ops/cmd/dr/drutil"
	ybaAuthClient "github.com/dataindataout/yb-day2ops/internal/client"
	"github.com/dataindataout/yb-day2ops/internal/dr"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var statusDrCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the replication status of a DR config",
	Long: "Show the state, replication status and universe roles of the DR config " +
		"the source universe is the primary of, with guidance for the current state.",
	Example: `yb-day2ops dr status --source-universe <source>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		drutil.SourceUniverse(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		authAPI := ybaAuthClient.NewAuthAPIClientAndCustomer()
		defer authAPI.Close()
		svc := dr.NewService(authAPI)

		st, err := svc.Status(drutil.SourceUniverse(cmd))
		if err != nil {
			drutil.Fatal(err)
		}
		x := st.XClusterConfig
		if x.GetStatus() != st.DrConfig.Status || x.GetPaused() != st.DrConfig.Paused {
			logrus.Warnf(formatter.Colorize(
				"The xCluster config %s reports status %s (paused=%t)\n", formatter.YellowColor),
				x.GetUuid(), x.GetStatus(), x.GetPaused())
		}
		drutil.WriteFullDrConfig(authAPI, "status", st.DrConfig,
			drutil.StateHelp(st.DrConfig.State))
	},
}
