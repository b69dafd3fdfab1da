/*
 * Copyright (c) YugabyteDB, Inc.
 */

package dr

import (
	"os"

	"github.com/dataindataout/yb-day2ops/cmd/dr/drutil"
	"github.com/dataindataout/yb-day2ops/cmd/util"
	ybaAuthClient "github.com/dataindataout/yb-day2ops/internal/client"
	"github.com/dataindataout/yb-day2ops/internal/dr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var describeDrCmd = &cobra.Command{
	Use:     "describe",
	Aliases: []string{"get"},
	Short:   "Describe the DR config of a universe",
	Long: "Describe the DR config the source universe is the primary of. " +
		"Use --key to print a single field of the DR config.",
	Example: `yb-day2ops dr describe --source-universe <source>
yb-day2ops dr describe --source-universe <source> --key xclusterConfigUuid`,
	PreRun: func(cmd *cobra.Command, args []string) {
		drutil.SourceUniverse(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		authAPI := ybaAuthClient.NewAuthAPIClientAndCustomer()
		defer authAPI.Close()
		svc := dr.NewService(authAPI)

		key, err := cmd.Flags().GetString("key")
		if err != nil {
			drutil.Fatal(err)
		}
		source := drutil.SourceUniverse(cmd)

		// json and pretty print the config exactly as the server returned it
		if (key == "" || key == util.AllDrConfigFields) && !drutil.IsJSONOutput() {
			d, err := svc.DrConfigForSource(source)
			if err != nil {
				drutil.Fatal(err)
			}
			drutil.WriteFullDrConfig(authAPI, "describe", d, "")
			return
		}

		value, err := svc.ResolveDrConfig(source, key)
		if err != nil {
			drutil.Fatal(err)
		}
		if err := drutil.WriteValue(os.Stdout, value, viper.GetString("output")); err != nil {
			drutil.Fatal(err)
		}
	},
}

func init() {
	describeDrCmd.Flags().SortFlags = false
	describeDrCmd.Flags().StringP("key", "k", util.AllDrConfigFields,
		"[Optional] Field of the DR config to print, e.g. uuid, state, tables. "+
			"\"all\" prints the whole config.")
}
