/*
 * Copyright (c) YugabyteDB, Inc.
 */

package dr

import (
	"os"

	"github.com/dataindataout/yb-day2ops/cmd/dr/drutil"
	ybaAuthClient "github.com/dataindataout/yb-day2ops/internal/client"
	"github.com/dataindataout/yb-day2ops/internal/dr"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/dataindataout/yb-day2ops/internal/formatter/safetime"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var safetimeDrCmd = &cobra.Command{
	Use:     "safetime",
	Aliases: []string{"latency", "lag"},
	Short:   "Show the replication lag of a DR config",
	Long: "Show the safetime of every replicated database of the DR config the source " +
		"universe is the primary of, with its lag, skew and the data a failover " +
		"would lose right now.",
	Example: `yb-day2ops dr safetime --source-universe <source>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		drutil.SourceUniverse(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		authAPI := ybaAuthClient.NewAuthAPIClientAndCustomer()
		defer authAPI.Close()
		svc := dr.NewService(authAPI)

		safetimes, err := svc.Safetimes(drutil.SourceUniverse(cmd))
		if err != nil {
			drutil.Fatal(err)
		}
		if len(safetimes) == 0 {
			logrus.Info("No safetimes reported for the DR config\n")
			return
		}
		safetimeCtx := formatter.Context{
			Command: "safetime",
			Output:  os.Stdout,
			Format:  safetime.NewSafetimeFormat(viper.GetString("output")),
		}
		safetime.Write(safetimeCtx, safetimes)
	},
}
