/*
 * Copyright (c) YugabyteDB, Inc.
 */

package table

import (
	"github.com/dataindataout/yb-day2ops/cmd/dr/drutil"
	"github.com/dataindataout/yb-day2ops/cmd/util"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var addTableCmd = &cobra.Command{
	Use:   "add",
	Short: "Add tables to a DR config",
	Long: "Add tables of the source universe to its DR config. Every table must " +
		"already exist on the DR replica. The new tables are bootstrapped from a backup.",
	Example: `yb-day2ops dr table add --source-universe <source> --table-ids <id1>,<id2>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		drutil.SourceUniverse(cmd)
		if len(tableIDs(cmd)) == 0 {
			cmd.Help()
			logrus.Fatalln(formatter.Colorize("No table IDs found to add\n", formatter.RedColor))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		svc, authAPI := drutil.NewService("add")
		defer authAPI.Close()

		ids := tableIDs(cmd)
		drUUID, added, err := svc.AddTables(drutil.SourceUniverse(cmd), ids)
		if err != nil {
			drutil.Fatal(err)
		}
		if svc.NoWait {
			return
		}
		logrus.Infof("Added %d table(s) to DR config %s\n",
			added, formatter.Colorize(drUUID, formatter.GreenColor))
	},
}

// tableIDs returns the --table-ids values, split and trimmed
func tableIDs(cmd *cobra.Command) []string {
	values, err := cmd.Flags().GetStringSlice("table-ids")
	if err != nil {
		drutil.Fatal(err)
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		ids = append(ids, util.SplitList(v)...)
	}
	return ids
}

func init() {
	addTableCmd.Flags().SortFlags = false
	addTableCmd.Flags().StringSlice("table-ids", []string{},
		"[Required] Comma separated IDs of the tables to add, "+
			"as printed by \"dr table list\".")
	addTableCmd.MarkFlagRequired("table-ids")
}
