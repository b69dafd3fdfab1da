/*
 * Copyright (c) YugabyteDB, Inc.
 */

package dr

import (
	"fmt"

	"github.com/dataindataout/yb-day2ops/cmd/dr/drutil"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var deleteDrCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"remove", "rm"},
	Short:   "Delete the DR config of a universe",
	Long: "Delete the DR config the source universe is the primary of. " +
		"Replication stops and both universes keep their data.",
	Example: `yb-day2ops dr delete --source-universe <source>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		source := drutil.SourceUniverse(cmd)
		drutil.Confirm(cmd,
			fmt.Sprintf("Are you sure you want to delete the DR config of universe: %s", source))
	},
	Run: func(cmd *cobra.Command, args []string) {
		svc, authAPI := drutil.NewService("delete")
		defer authAPI.Close()

		forceDelete, err := cmd.Flags().GetBool("force-delete")
		if err != nil {
			drutil.Fatal(err)
		}
		source := drutil.SourceUniverse(cmd)
		drUUID, err := svc.Delete(source, forceDelete)
		if err != nil {
			drutil.Fatal(err)
		}
		if svc.NoWait {
			return
		}
		logrus.Infof("The DR config %s of universe %s has been deleted\n",
			formatter.Colorize(drUUID, formatter.GreenColor), source)
	},
}

func init() {
	deleteDrCmd.Flags().SortFlags = false
	deleteDrCmd.Flags().Bool("force-delete", false,
		"[Optional] Delete the DR config even if it is in a bad state.")
	drutil.AddForceFlag(deleteDrCmd)
}
