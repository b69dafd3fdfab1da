/*
 * Copyright (c) YugabyteDB, Inc.
 */

package dr

import (
	"fmt"

	"github.com/dataindataout/yb-day2ops/cmd/dr/drutil"
	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/dataindataout/yb-day2ops/internal/dr"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var createDrCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"setup"},
	Short:   "Create a DR config between two universes",
	Long: "Create an xCluster disaster recovery config replicating the given databases " +
		"from the source universe to the target universe. The target is bootstrapped " +
		"from a backup written to the selected storage config.",
	Example: `yb-day2ops dr create --source-universe <source> --target-universe <target> \
	--databases db1,db2 --storage-config <storage-config-name>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		viper.BindPFlag("target-universe", cmd.Flags().Lookup("target-universe"))
		viper.BindPFlag("databases", cmd.Flags().Lookup("databases"))
		viper.BindPFlag("storage-config", cmd.Flags().Lookup("storage-config"))
		drutil.SourceUniverse(cmd)
		if viper.GetString("target-universe") == "" {
			cmd.Help()
			logrus.Fatalln(
				formatter.Colorize("No target universe name found\n", formatter.RedColor))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		svc, authAPI := drutil.NewService("create")
		defer authAPI.Close()

		databases, err := cmd.Flags().GetStringSlice("databases")
		if err != nil {
			drutil.Fatal(err)
		}
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			drutil.Fatal(err)
		}
		req := dr.CreateRequest{
			Source:            drutil.SourceUniverse(cmd),
			Target:            viper.GetString("target-universe"),
			Databases:         util.ListFromFlagOrConfig(databases, "databases"),
			StorageConfigName: viper.GetString("storage-config"),
			Parallelism:       viper.GetInt("parallelism"),
			Name:              name,
		}

		logrus.Infof("Creating DR config from %s to %s for databases %v\n",
			formatter.Colorize(req.Source, formatter.GreenColor),
			formatter.Colorize(req.Target, formatter.GreenColor), req.Databases)
		drUUID, err := svc.Create(req)
		if err != nil {
			drutil.Fatal(err)
		}
		if svc.NoWait {
			return
		}
		logrus.Info(fmt.Sprintf("The DR config %s has been created\n",
			formatter.Colorize(drUUID, formatter.GreenColor)))

		d, err := authAPI.GetDrConfig(drUUID)
		if err != nil {
			drutil.Fatal(err)
		}
		drutil.WriteDrConfig(authAPI, "create", d)
	},
}

func init() {
	createDrCmd.Flags().SortFlags = false
	createDrCmd.Flags().StringP("target-universe", "t", "",
		"[Required] Name of the universe that becomes the DR replica.")
	createDrCmd.Flags().StringSlice("databases", []string{},
		"[Required] Comma separated names of the source databases to replicate. "+
			"Can also be set as a list under \"databases\" in the config file.")
	createDrCmd.Flags().String("storage-config", "",
		"[Optional] Name of the backup storage config used to bootstrap the replica. "+
			"Defaults to the first storage config of the customer.")
	createDrCmd.Flags().String("name", "",
		"[Optional] Name of the DR config. "+
			"Defaults to DR-config-<source-universe>-to-<target-universe>.")
}
