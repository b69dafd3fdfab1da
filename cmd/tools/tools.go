/*
 * Copyright (c) YugabyteDB, Inc.
 */

package tools

import (
	"fmt"
	"os"
	"strings"

	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

var documentationFormat = []string{"markdown", "yaml", "rest", "man"}

// ToolsCmd groups developer tools, enabled with YBA_FF_TOOLS=true
var ToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Tools command",
	Long:  "Developer tools for yb-day2ops",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var generateDocsCmd = &cobra.Command{
	Use:   "gen-doc",
	Short: "Generate docs",
	Long:  "Generate the command reference in the selected format",
	PreRun: func(cmd *cobra.Command, args []string) {
		viper.BindPFlag("format", cmd.Flags().Lookup("format"))
		if !slices.Contains(documentationFormat, viper.GetString("format")) {
			logrus.Fatalf("Format only accepts %s as value\n", strings.Join(documentationFormat, ","))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		dir, err := cmd.Flags().GetString("dir")
		if err != nil {
			logrus.Fatal(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		if err := GenerateDocs(cmd.Root(), viper.GetString("format"), dir); err != nil {
			logrus.Fatal(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		logrus.Infof("Documentation written to %s\n", dir)
	},
}

// GenerateDocs writes the documentation of root and its subcommands to dir
func GenerateDocs(root *cobra.Command, format, dir string) error {
	root.DisableAutoGenTag = true
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	switch format {
	case "markdown":
		return doc.GenMarkdownTree(root, dir)
	case "yaml":
		return doc.GenYamlTree(root, dir)
	case "rest":
		return doc.GenReSTTree(root, dir)
	case "man":
		return doc.GenManTree(root, &doc.GenManHeader{
			Title:   strings.ToUpper(root.Name()),
			Section: "1",
		}, dir)
	}
	return fmt.Errorf("unknown documentation format %s", format)
}

func init() {
	ToolsCmd.Hidden = true
	ToolsCmd.AddCommand(generateDocsCmd)

	generateDocsCmd.Flags().SortFlags = false
	generateDocsCmd.Flags().String("format", "markdown",
		fmt.Sprintf("[Optional] Documentation output format (%s).",
			strings.Join(documentationFormat, ",")))
	generateDocsCmd.Flags().String("dir", "./docs",
		"[Optional] Directory the documentation is written to.")
}
