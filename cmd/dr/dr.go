/*
 * Copyright (c) YugabyteDB, Inc.
 */

package dr

import (
	"github.com/dataindataout/yb-day2ops/cmd/dr/table"
	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// DrCmd set of commands are used to perform xCluster disaster recovery
// operations in YugabyteDB Anywhere. Every command addresses the DR config
// through the name of its current primary (source) universe.
var DrCmd = &cobra.Command{
	Use:     "dr",
	Aliases: []string{"disaster-recovery"},
	Short:   "Manage xCluster disaster recovery configs",
	Long: "Set up, operate and recover xCluster disaster recovery (DR) configs " +
		"between two YugabyteDB Anywhere universes",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	DrCmd.PersistentFlags().SortFlags = false
	DrCmd.PersistentFlags().StringP("source-universe", "s", "",
		"[Required] Name of the current primary (source) universe of the DR config.")
	DrCmd.PersistentFlags().String("table-type", util.PgSqlTableType,
		"[Optional] Table type DR operates on.")
	DrCmd.PersistentFlags().Int("parallelism", util.DefaultBootstrapParallelism,
		"[Optional] Backup parallelism used to bootstrap replication.")

	viper.BindPFlag("source-universe", DrCmd.PersistentFlags().Lookup("source-universe"))
	viper.BindPFlag("table-type", DrCmd.PersistentFlags().Lookup("table-type"))
	viper.BindPFlag("parallelism", DrCmd.PersistentFlags().Lookup("parallelism"))

	DrCmd.AddCommand(createDrCmd)
	DrCmd.AddCommand(deleteDrCmd)
	DrCmd.AddCommand(describeDrCmd)
	DrCmd.AddCommand(statusDrCmd)
	DrCmd.AddCommand(safetimeDrCmd)
	DrCmd.AddCommand(pauseDrCmd)
	DrCmd.AddCommand(resumeDrCmd)
	DrCmd.AddCommand(syncDrCmd)
	DrCmd.AddCommand(switchoverDrCmd)
	DrCmd.AddCommand(failoverDrCmd)
	DrCmd.AddCommand(recoverDrCmd)
	DrCmd.AddCommand(table.TableCmd)
}
