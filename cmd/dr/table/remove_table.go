/*
 * Copyright (c) YugabyteDB, Inc.
 */

package table

import (
	"fmt"
	"strings"

	"github.com/dataindataout/yb-day2ops/cmd/dr/drutil"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var removeTableCmd = &cobra.Command{
	Use:     "remove",
	Aliases: []string{"rm"},
	Short:   "Remove tables from a DR config",
	Long: "Remove tables from the DR config of the source universe. " +
		"Remove a table from replication before dropping it.",
	Example: `yb-day2ops dr table remove --source-universe <source> --table-ids <id1>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		source := drutil.SourceUniverse(cmd)
		ids := tableIDs(cmd)
		if len(ids) == 0 {
			cmd.Help()
			logrus.Fatalln(
				formatter.Colorize("No table IDs found to remove\n", formatter.RedColor))
		}
		drutil.Confirm(cmd, fmt.Sprintf(
			"Are you sure you want to stop replicating %s from universe: %s",
			strings.Join(ids, ", "), source))
	},
	Run: func(cmd *cobra.Command, args []string) {
		svc, authAPI := drutil.NewService("remove")
		defer authAPI.Close()

		ids := tableIDs(cmd)
		drUUID, err := svc.RemoveTables(drutil.SourceUniverse(cmd), ids)
		if err != nil {
			drutil.Fatal(err)
		}
		if svc.NoWait {
			return
		}
		logrus.Infof("Removed %d table(s) from DR config %s\n",
			len(ids), formatter.Colorize(drUUID, formatter.GreenColor))
	},
}

func init() {
	removeTableCmd.Flags().SortFlags = false
	removeTableCmd.Flags().StringSlice("table-ids", []string{},
		"[Required] Comma separated IDs of the tables to remove.")
	removeTableCmd.MarkFlagRequired("table-ids")
	drutil.AddForceFlag(removeTableCmd)
}
