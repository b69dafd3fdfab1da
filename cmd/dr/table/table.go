/*
 * Copyright (c) YugabyteDB, Inc.
 */

package table

import (
	"github.com/spf13/cobra"
)

// TableCmd set of commands are used to change the set of tables replicated
// by a DR config
var TableCmd = &cobra.Command{
	Use:     "table",
	Aliases: []string{"tables"},
	Short:   "Manage the tables replicated by a DR config",
	Long:    "List, add and remove the tables replicated by a DR config",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	TableCmd.AddCommand(listTableCmd)
	TableCmd.AddCommand(addTableCmd)
	TableCmd.AddCommand(removeTableCmd)
}
