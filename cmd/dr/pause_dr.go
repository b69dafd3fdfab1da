/*
 * Copyright (c) YugabyteDB, Inc.
 */

package dr

import (
	"fmt"

	"github.com/dataindataout/yb-day2ops/cmd/dr/drutil"
	"github.com/dataindataout/yb-day2ops/internal/dr"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/dataindataout/yb-day2ops/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var pauseDrCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause replication of a DR config",
	Long: "Pause xCluster replication of the DR config the source universe is the " +
		"primary of. Pausing an already paused config does nothing.",
	Example: `yb-day2ops dr pause --source-universe <source>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		source := drutil.SourceUniverse(cmd)
		drutil.Confirm(cmd, fmt.Sprintf(
			"Are you sure you want to pause replication from universe: %s", source))
	},
	Run: func(cmd *cobra.Command, args []string) {
		runReplicationStatusChange(cmd, "pause", "paused", (*dr.Service).Pause)
	},
}

var resumeDrCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume replication of a DR config",
	Long: "Resume xCluster replication of the DR config the source universe is the " +
		"primary of. Resuming a config that is not paused does nothing.",
	Example: `yb-day2ops dr resume --source-universe <source>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		source := drutil.SourceUniverse(cmd)
		drutil.Confirm(cmd, fmt.Sprintf(
			"Are you sure you want to resume replication from universe: %s", source))
	},
	Run: func(cmd *cobra.Command, args []string) {
		runReplicationStatusChange(cmd, "resume", "resumed", (*dr.Service).Resume)
	},
}

func runReplicationStatusChange(
	cmd *cobra.Command,
	operation, done string,
	change func(*dr.Service, string) (model.DrConfig, error),
) {
	svc, authAPI := drutil.NewService(operation)
	defer authAPI.Close()

	source := drutil.SourceUniverse(cmd)
	d, err := change(svc, source)
	if err != nil {
		drutil.Fatal(err)
	}
	if svc.NoWait {
		return
	}
	logrus.Infof("Replication of DR config %s has been %s\n",
		formatter.Colorize(d.UUID, formatter.GreenColor), done)
	drutil.WriteDrConfig(authAPI, operation, d)
}

func init() {
	pauseDrCmd.Flags().SortFlags = false
	drutil.AddForceFlag(pauseDrCmd)
	resumeDrCmd.Flags().SortFlags = false
	drutil.AddForceFlag(resumeDrCmd)
}
