/*
 * Copyright (c) YugabyteDB, Inc.
 */

package drutil

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dataindataout/yb-day2ops/cmd/util"
	ybaAuthClient "github.com/dataindataout/yb-day2ops/internal/client"
	"github.com/dataindataout/yb-day2ops/internal/dr"
	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/dataindataout/yb-day2ops/internal/formatter/drconfig"
	"github.com/dataindataout/yb-day2ops/internal/formatter/ybatask"
	"github.com/dataindataout/yb-day2ops/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	ybaclient "github.com/yugabyte/platform-go-client"
)

// Fatal logs err in red and exits with status 1
func Fatal(err error) {
	logrus.Fatal(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
}

// Failed logs err in red without exiting. Switchover, failover and recovery
// report errors this way so that the operator sees the full task output.
func Failed(operation string, err error) {
	logrus.Error(formatter.Colorize(
		fmt.Sprintf("%s failed: %s\n", operation, err.Error()), formatter.RedColor))
}

// SourceUniverse returns the --source-universe value, printing the command
// help and exiting when it is missing
func SourceUniverse(cmd *cobra.Command) string {
	name := strings.TrimSpace(viper.GetString("source-universe"))
	if name == "" {
		cmd.Help()
		logrus.Fatalln(
			formatter.Colorize("No source universe name found\n", formatter.RedColor))
	}
	return name
}

// Confirm asks the operator to confirm a mutating command unless --force is set
func Confirm(cmd *cobra.Command, message string) {
	viper.BindPFlag("force", cmd.Flags().Lookup("force"))
	err := util.ConfirmCommand(message, viper.GetBool("force"))
	if err != nil {
		logrus.Fatal(formatter.Colorize(err.Error(), formatter.RedColor))
	}
}

// AddForceFlag adds the --force flag that bypasses confirmation prompts
func AddForceFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP("force", "f", false,
		"[Optional] Bypass the prompt for non-interactive usage.")
}

// NewService connects to YugabyteDB Anywhere and returns the DR service
// configured from table-type, parallelism and wait. Callers close the client.
func NewService(operation string) (*dr.Service, *ybaAuthClient.AuthAPIClient) {
	authAPI := ybaAuthClient.NewAuthAPIClientAndCustomer()
	svc := dr.NewService(authAPI)
	svc.TableType = viper.GetString("table-type")
	svc.Parallelism = viper.GetInt("parallelism")
	svc.NoWait = !viper.GetBool("wait")
	svc.Submitted = func(task ybaclient.YBPTask, label string) {
		logrus.Infof("The %s task %s has been submitted\n",
			formatter.Colorize(label, formatter.GreenColor), task.GetTaskUUID())
		taskCtx := formatter.Context{
			Command: formatter.Command(operation),
			Output:  os.Stdout,
			Format:  ybatask.NewTaskFormat(viper.GetString("output")),
		}
		ybatask.Write(taskCtx, []ybatask.SubmittedTask{ybatask.NewSubmittedTask(task, label)})
	}
	return svc, authAPI
}

// UniverseNames maps the given universe UUIDs to their names. Universes that
// cannot be read are left out.
func UniverseNames(authAPI *ybaAuthClient.AuthAPIClient, uuids ...string) map[string]string {
	names := make(map[string]string, len(uuids))
	for _, uuid := range uuids {
		if uuid == "" {
			continue
		}
		u, err := authAPI.GetUniverse(uuid)
		if err != nil {
			logrus.Debugf("Could not read universe %s: %s\n", uuid, err.Error())
			continue
		}
		names[uuid] = u.GetName()
	}
	return names
}

// WriteDrConfig prints a DR config in the selected output format
func WriteDrConfig(
	authAPI *ybaAuthClient.AuthAPIClient,
	operation string,
	d model.DrConfig,
) {
	names := UniverseNames(authAPI, d.PrimaryUniverseUUID, d.DrReplicaUniverseUUID)
	drCtx := formatter.Context{
		Command: formatter.Command(operation),
		Output:  os.Stdout,
		Format:  drconfig.NewDrConfigFormat(viper.GetString("output")),
	}
	drconfig.Write(drCtx, []model.DrConfig{d}, names)
}

// WriteFullDrConfig prints the detailed view of a DR config followed by help
func WriteFullDrConfig(
	authAPI *ybaAuthClient.AuthAPIClient,
	operation string,
	d model.DrConfig,
	help string,
) {
	if !util.IsOutputType(formatter.TableFormatKey) {
		WriteDrConfig(authAPI, operation, d)
		return
	}
	names := UniverseNames(authAPI, d.PrimaryUniverseUUID, d.DrReplicaUniverseUUID)
	fullCtx := *drconfig.NewFullDrConfigContext()
	fullCtx.Output = os.Stdout
	fullCtx.Format = drconfig.NewFullDrConfigFormat(viper.GetString("output"))
	fullCtx.SetFullDrConfig(d, names)
	fullCtx.SetStateHelp(help)
	fullCtx.Write()
}

// IsJSONOutput reports whether --output selects json or pretty
func IsJSONOutput() bool {
	return util.IsOutputType(formatter.JSONFormatKey) ||
		util.IsOutputType(formatter.PrettyFormatKey)
}

// WriteValue prints a value looked up in a DR config. Maps and lists are
// printed as JSON for the json and pretty outputs and as YAML otherwise.
func WriteValue(w io.Writer, value interface{}, output string) error {
	var s string
	switch output {
	case formatter.JSONFormatKey, formatter.PrettyFormatKey:
		var out []byte
		var err error
		if output == formatter.PrettyFormatKey {
			out, err = json.MarshalIndent(value, "", "  ")
		} else {
			out, err = json.Marshal(value)
		}
		if err != nil {
			return err
		}
		s = string(out)
	default:
		var err error
		s, err = util.ValueToYAMLString(value)
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, s)
	return err
}

// StateHelp returns the operator guidance for a DR config state. Entries of
// the status-help config map override the built-in text.
func StateHelp(state string) string {
	// viper lower-cases map keys
	configured := viper.GetStringMapString("status-help")
	if help, ok := configured[strings.ToLower(state)]; ok {
		return help
	}
	return util.DefaultDrStateHelp()[state]
}
