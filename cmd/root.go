/*
 * Copyright (c) YugabyteDB, Inc.
 */

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/dataindataout/yb-day2ops/cmd/dr"
	"github.com/dataindataout/yb-day2ops/cmd/task"
	"github.com/dataindataout/yb-day2ops/cmd/tools"
	"github.com/dataindataout/yb-day2ops/cmd/universe"
	"github.com/dataindataout/yb-day2ops/cmd/util"
	ybaAuthClient "github.com/dataindataout/yb-day2ops/internal/client"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/dataindataout/yb-day2ops/internal/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const configName = ".yb-day2ops"

var (
	cfgFile      string
	cfgDirectory string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yb-day2ops",
	Short: "yb-day2ops - Day 2 operations for YugabyteDB xCluster disaster recovery.",
	Long: `
	yb-day2ops drives xCluster disaster recovery (DR) through the YugabyteDB
	Anywhere REST API: set up replication between two universes, change the
	replicated tables, watch replication lag, and perform switchover, failover
	and recovery. Every long running operation is followed until its task
	finishes.`,

	Run: func(cmd *cobra.Command, args []string) {
		myFigure := figure.NewFigure("yb-day2ops", "", true)
		myFigure.Print()
		logrus.Printf("\n")
		cmd.Help()
	},
}

// called on module init
func init() {
	cobra.OnInitialize(initConfig)
	cobra.EnableCaseInsensitive = true

	setDefaults()
	rootCmd.PersistentFlags().SortFlags = false
	rootCmd.PersistentFlags().StringVar(&cfgDirectory, "directory", "",
		"Directory containing the yb-day2ops configuration file '"+configName+".yaml'. "+
			"Defaults to '$HOME/"+configName+"/'.")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Full path to a specific configuration file. "+
			"Takes precedence over --directory.")
	rootCmd.PersistentFlags().StringP("host", "H", "http://localhost:9000",
		"YugabyteDB Anywhere Host")
	rootCmd.PersistentFlags().StringP("apiToken", "a", "", "YugabyteDB Anywhere api token.")
	rootCmd.PersistentFlags().String("customer-uuid", "",
		"YugabyteDB Anywhere customer UUID. Looked up from the api token when empty.")
	rootCmd.PersistentFlags().StringP("output", "o", formatter.TableFormatKey,
		"Select the desired output format. Allowed values: table, json, pretty.")
	rootCmd.PersistentFlags().StringP("logLevel", "l", "info",
		"Select the desired log level format. Allowed values: debug, info, warn, error, fatal.")
	rootCmd.PersistentFlags().Bool("debug", false, "Use debug mode, same as --logLevel debug.")
	rootCmd.PersistentFlags().
		Bool("disable-color", false, "Disable colors in output. (default false)")
	rootCmd.PersistentFlags().Bool("wait", true,
		"Wait until the task is completed, otherwise it will exit immediately "+
			"and print the task UUID.")
	rootCmd.PersistentFlags().Duration("timeout", 0,
		"Wait command timeout, example: 5m, 1h. 0 waits until the task finishes.")
	rootCmd.PersistentFlags().Duration("poll-interval", ybaAuthClient.DefaultPollInterval,
		"Delay between two task status checks.")
	rootCmd.PersistentFlags().Duration("request-timeout", 0,
		"Timeout of a single request to YugabyteDB Anywhere. 0 means no timeout.")
	rootCmd.PersistentFlags().Bool("insecure", true,
		"Allow insecure connections to YugabyteDB Anywhere."+
			" Value ignored for http endpoints.")
	rootCmd.PersistentFlags().String("ca-cert", "",
		"CA certificate file path for secure connection to YugabyteDB Anywhere.")

	for _, key := range []string{
		"host", "apiToken", "customer-uuid", "output", "logLevel", "debug", "disable-color",
		"wait", "timeout", "poll-interval", "request-timeout", "insecure", "ca-cert",
	} {
		viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}

	rootCmd.AddCommand(dr.DrCmd)
	rootCmd.AddCommand(universe.UniverseCmd)
	rootCmd.AddCommand(task.TaskCmd)
	util.AddCommandIfFeatureFlag(rootCmd, tools.ToolsCmd, util.TOOLS)

	addGroupsCmd(rootCmd)
}

// Execute commands
func Execute(version string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("yb-day2ops version: {{.Version}}\n")
	if err := rootCmd.Execute(); err != nil {
		log.SetLogLevel(viper.GetString("logLevel"), viper.GetBool("debug"))
		logrus.Fatal(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
	}
}

func setDefaults() {
	viper.SetDefault("host", "http://localhost:9000")
	viper.SetDefault("output", formatter.TableFormatKey)
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("debug", false)
	viper.SetDefault("disable-color", false)
	viper.SetDefault("wait", true)
	viper.SetDefault("timeout", time.Duration(0))
	viper.SetDefault("poll-interval", ybaAuthClient.DefaultPollInterval)
	viper.SetDefault("request-timeout", time.Duration(0))
	viper.SetDefault("insecure", true)
	viper.SetDefault("ca-cert", "")
	viper.SetDefault("parallelism", util.DefaultBootstrapParallelism)
	viper.SetDefault("table-type", util.PgSqlTableType)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else if cfgDirectory != "" {
		if stat, err := os.Stat(cfgDirectory); err != nil || !stat.IsDir() {
			logrus.Fatalf("%s",
				formatter.Colorize(
					"Provided configuration directory does not exist: "+cfgDirectory,
					formatter.RedColor,
				))
		}
		viper.SetConfigType("yaml")
		viper.SetConfigFile(filepath.Join(cfgDirectory, configName+".yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.SetConfigType("yaml")
		viper.SetConfigFile(filepath.Join(home, configName, configName+".yaml"))
	}

	// YBA_HOST, YBA_APITOKEN, YBA_SOURCE_UNIVERSE, ...
	viper.SetEnvPrefix("yba")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := log.SetLogLevel(viper.GetString("logLevel"), viper.GetBool("debug")); err != nil {
		logrus.Fatal(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
	}
	if err := viper.ReadInConfig(); err == nil {
		logrus.Debugf("Using config file: %s\n", viper.ConfigFileUsed())
		// logLevel may come from the file
		log.SetLogLevel(viper.GetString("logLevel"), viper.GetBool("debug"))
	}
}

func addGroupsCmd(rootCmd *cobra.Command) {
	rootCmd.AddGroup(
		&cobra.Group{
			ID:    "dr",
			Title: "Disaster Recovery Commands",
		},
	)
	dr.DrCmd.GroupID = "dr"

	rootCmd.AddGroup(
		&cobra.Group{
			ID:    "inspect",
			Title: "Inspection Commands",
		},
	)
	universe.UniverseCmd.GroupID = "inspect"
	task.TaskCmd.GroupID = "inspect"
}
