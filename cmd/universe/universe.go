/*
 * Copyright (c) YugabyteDB, Inc.
 */

package universe

import (
	"github.com/spf13/cobra"
)

// UniverseCmd set of commands are used to inspect universes taking part in
// xCluster DR
var UniverseCmd = &cobra.Command{
	Use:   "universe",
	Short: "Inspect YugabyteDB Anywhere universes",
	Long:  "Inspect YugabyteDB Anywhere universes and their DR configs",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	UniverseCmd.AddCommand(describeUniverseCmd)
}
