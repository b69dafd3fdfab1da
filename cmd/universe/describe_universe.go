/*
 * Copyright (c) YugabyteDB, Inc.
 */

package universe

import (
	"os"

	"github.com/dataindataout/yb-day2ops/cmd/util"
	ybaAuthClient "github.com/dataindataout/yb-day2ops/internal/client"
	"github.com/dataindataout/yb-day2ops/internal/dr"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/dataindataout/yb-day2ops/internal/formatter/universe"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	ybaclient "github.com/yugabyte/platform-go-client"
)

var describeUniverseCmd = &cobra.Command{
	Use:     "describe",
	Aliases: []string{"get"},
	Short:   "Describe a YugabyteDB Anywhere universe",
	Long: "Describe a universe in YugabyteDB Anywhere: its nodes and the DR configs " +
		"it takes part in",
	Example: `yb-day2ops universe describe --name <universe-name>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		universeName, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatal(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		if len(universeName) == 0 {
			cmd.Help()
			logrus.Fatalln(
				formatter.Colorize("No universe name found to describe\n", formatter.RedColor))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		authAPI := ybaAuthClient.NewAuthAPIClientAndCustomer()
		defer authAPI.Close()

		universeName, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatal(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		u, err := dr.NewService(authAPI).DescribeUniverse(universeName)
		if err != nil {
			logrus.Fatal(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		if util.IsOutputType(formatter.TableFormatKey) {
			fullUniverseContext := *universe.NewFullUniverseContext()
			fullUniverseContext.Output = os.Stdout
			fullUniverseContext.Format = universe.NewFullUniverseFormat(viper.GetString("output"))
			fullUniverseContext.SetFullUniverse(u)
			fullUniverseContext.Write()
			return
		}

		universeCtx := formatter.Context{
			Command: "describe",
			Output:  os.Stdout,
			Format:  universe.NewUniverseFormat(viper.GetString("output")),
		}
		universe.Write(universeCtx, []ybaclient.UniverseResp{u})
	},
}

func init() {
	describeUniverseCmd.Flags().SortFlags = false
	describeUniverseCmd.Flags().StringP("name", "n", "",
		"[Required] The name of the universe to be described.")
	describeUniverseCmd.MarkFlagRequired("name")
}
