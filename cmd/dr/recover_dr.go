/*
 * Copyright (c) YugabyteDB, Inc.
 */

package dr

import (
	"fmt"

	"github.com/dataindataout/yb-day2ops/cmd/dr/drutil"
	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var recoverDrCmd = &cobra.Command{
	Use:     "recover",
	Aliases: []string{"repair", "restart"},
	Short:   "Re-establish replication of a halted DR config",
	Long: "Re-bootstrap the DR replica of a DR config, typically after a failover. " +
		"Pass the name of the current primary (the promoted universe) as " +
		"--source-universe. Without --databases the databases of the config are kept.",
	Example: `yb-day2ops dr recover --source-universe <current-primary>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		source := drutil.SourceUniverse(cmd)
		drutil.Confirm(cmd, fmt.Sprintf(
			"Are you sure you want to recover the DR config of universe: %s", source))
	},
	Run: func(cmd *cobra.Command, args []string) {
		svc, authAPI := drutil.NewService("recover")
		defer authAPI.Close()

		databases, err := cmd.Flags().GetStringSlice("databases")
		if err != nil {
			drutil.Failed("Recovery", err)
			return
		}
		forceDelete, err := cmd.Flags().GetBool("force-delete")
		if err != nil {
			drutil.Failed("Recovery", err)
			return
		}

		dbs := make([]string, 0, len(databases))
		for _, db := range databases {
			dbs = append(dbs, util.SplitList(db)...)
		}
		drUUID, err := svc.Recover(drutil.SourceUniverse(cmd), dbs, forceDelete)
		if err != nil {
			drutil.Failed("Recovery", err)
			return
		}
		if svc.NoWait {
			return
		}
		logrus.Infof("Recovery of DR config %s completed\n",
			formatter.Colorize(drUUID, formatter.GreenColor))
		d, err := authAPI.GetDrConfig(drUUID)
		if err != nil {
			drutil.Failed("Recovery", err)
			return
		}
		drutil.WriteDrConfig(authAPI, "recover", d)
	},
}

func init() {
	recoverDrCmd.Flags().SortFlags = false
	recoverDrCmd.Flags().StringSlice("databases", []string{},
		"[Optional] Comma separated names of the databases to replicate after recovery.")
	recoverDrCmd.Flags().Bool("force-delete", false,
		"[Optional] Force deletion of the stale replication streams during recovery.")
	drutil.AddForceFlag(recoverDrCmd)
}
