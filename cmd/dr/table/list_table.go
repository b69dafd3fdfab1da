/*
 * Copyright (c) YugabyteDB, Inc.
 */

package table

import (
	"os"

	"github.com/dataindataout/yb-day2ops/cmd/dr/drutil"
	ybaAuthClient "github.com/dataindataout/yb-day2ops/internal/client"
	"github.com/dataindataout/yb-day2ops/internal/dr"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/dataindataout/yb-day2ops/internal/formatter/table"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var listTableCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "unreplicated"},
	Short:   "List the tables that can be added to a DR config",
	Long: "List the tables of the source universe that are not replicated by its " +
		"DR config. Index tables are left out, they follow their base table.",
	Example: `yb-day2ops dr table list --source-universe <source>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		drutil.SourceUniverse(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		authAPI := ybaAuthClient.NewAuthAPIClientAndCustomer()
		defer authAPI.Close()
		svc := dr.NewService(authAPI)
		svc.TableType = viper.GetString("table-type")

		tables, err := svc.AvailableTables(drutil.SourceUniverse(cmd))
		if err != nil {
			drutil.Fatal(err)
		}
		if len(tables) < 1 && viper.GetString("output") == formatter.TableFormatKey {
			logrus.Info("All tables of the source universe are replicated\n")
			return
		}
		tableCtx := formatter.Context{
			Command: "list",
			Output:  os.Stdout,
			Format:  table.NewTableFormat(viper.GetString("output")),
		}
		table.Write(tableCtx, tables)
	},
}
